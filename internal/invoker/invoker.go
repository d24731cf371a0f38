package invoker

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/Belphemur/MediaProc/internal/apperrors"
	"github.com/Belphemur/MediaProc/internal/config"
	"github.com/Belphemur/MediaProc/internal/metrics"
	"github.com/Belphemur/MediaProc/internal/models"
)

// DefaultMissingOutput is the diagnostic used when a command does not set its own.
const DefaultMissingOutput = "Output file not created"

// Invoker runs external tools once and classifies the outcome.
type Invoker struct {
	runner Runner
	logger zerolog.Logger
}

// New creates an Invoker. A nil runner uses ExecRunner.
func New(runner Runner) *Invoker {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Invoker{
		runner: runner,
		logger: config.GetLogger(),
	}
}

// Run executes cmd synchronously. It succeeds only when the tool exits with code
// zero and, if cmd.ExpectedOutput is set, that file exists and is not empty.
// There is no retry. Cancelling ctx does not stop a running tool; values carried
// by ctx are still passed to the runner.
func (i *Invoker) Run(ctx context.Context, cmd models.Command) (*models.Outcome, error) {
	tool := filepath.Base(cmd.Name)
	i.logger.Debug().
		Str("tool", tool).
		Str("command", cmd.String()).
		Str("dir", cmd.Dir).
		Msg("Running external tool")

	start := time.Now()
	result, err := i.runner.Run(context.WithoutCancel(ctx), cmd.Dir, cmd.Name, cmd.Args...)
	elapsed := time.Since(start)
	metrics.ToolInvocationDuration.WithLabelValues(tool).Observe(elapsed.Seconds())

	if err != nil {
		status := metrics.StatusFailed
		if result.ExitCode < 0 {
			status = metrics.StatusStartFailed
		}
		metrics.ToolInvocationsTotal.WithLabelValues(tool, status).Inc()

		procErr := apperrors.NewProcessError(tool, result.ExitCode, result.Output, err)
		i.logger.Error().
			Err(err).
			Str("tool", tool).
			Int("exit_code", result.ExitCode).
			Str("output", procErr.Output).
			Dur("elapsed", elapsed).
			Msg("External tool failed")
		return nil, procErr
	}

	if cmd.ExpectedOutput != "" && !nonEmptyFile(cmd.ExpectedOutput) {
		metrics.ToolInvocationsTotal.WithLabelValues(tool, metrics.StatusNoOutput).Inc()
		message := cmd.MissingOutput
		if message == "" {
			message = DefaultMissingOutput
		}
		i.logger.Error().
			Str("tool", tool).
			Str("expected_output", cmd.ExpectedOutput).
			Msg("External tool exited cleanly without producing output")
		return nil, apperrors.NewOutputMissingError(cmd.ExpectedOutput, message)
	}

	metrics.ToolInvocationsTotal.WithLabelValues(tool, metrics.StatusSuccess).Inc()
	i.logger.Info().
		Str("tool", tool).
		Str("output_path", cmd.ExpectedOutput).
		Dur("elapsed", elapsed).
		Msg("External tool completed")

	return &models.Outcome{
		OutputPath: cmd.ExpectedOutput,
		Output:     result.Output,
	}, nil
}

func nonEmptyFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Size() > 0
}
