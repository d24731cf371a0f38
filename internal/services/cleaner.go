package services

import (
	"github.com/Belphemur/MediaProc/internal/config"
	"github.com/Belphemur/MediaProc/internal/models"
	"github.com/Belphemur/MediaProc/internal/workspace"
)

// Cleaner empties a temp directory, keeping the directory itself
type Cleaner interface {
	ClearDirectory(dir string) (models.CleanupReport, error)
}

// DefaultCleaner implements Cleaner on the local filesystem
type DefaultCleaner struct{}

// NewCleaner creates a Cleaner
func NewCleaner() Cleaner {
	return DefaultCleaner{}
}

// ClearDirectory removes every entry of dir. Entries that cannot be removed are
// reported in the returned report rather than as an error.
func (DefaultCleaner) ClearDirectory(dir string) (models.CleanupReport, error) {
	logger := config.GetLogger()

	report, err := workspace.ClearDirectory(dir)
	if err != nil {
		return report, err
	}
	for _, failed := range report.Failed {
		logger.Warn().Str("path", failed.Path).Str("error", failed.Err).Msg("Could not delete temp path")
	}
	logger.Info().
		Str("directory", dir).
		Int("removed", len(report.Removed)).
		Int("failed", len(report.Failed)).
		Msg("Temp directory cleared")
	return report, nil
}
