package services

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/Belphemur/MediaProc/internal/models"
)

// fakeRunner records commands and writes the expected output unless told otherwise.
type fakeRunner struct {
	mu       sync.Mutex
	commands []models.Command
	err      error
	content  []byte
}

func (f *fakeRunner) Run(_ context.Context, cmd models.Command) (*models.Outcome, error) {
	f.mu.Lock()
	f.commands = append(f.commands, cmd)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if cmd.ExpectedOutput != "" {
		content := f.content
		if content == nil {
			content = []byte("output")
		}
		if err := os.WriteFile(cmd.ExpectedOutput, content, 0o644); err != nil {
			return nil, err
		}
	}
	return &models.Outcome{OutputPath: cmd.ExpectedOutput}, nil
}

func (f *fakeRunner) only(t *testing.T) models.Command {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.commands) != 1 {
		t.Fatalf("expected exactly one command, got %d", len(f.commands))
	}
	return f.commands[0]
}

func equalArgs(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("args length = %d, want %d\n got: %q\nwant: %q", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arg[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
