// Package workspace owns the shared temp directory used for uploads and tool outputs.
//
// The directory is created once at startup and is never removed by the process;
// only ClearDirectory empties it. Every request works through a Session whose paths are
// randomized, so concurrent requests never collide and need no locking.
package workspace

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Belphemur/MediaProc/internal/config"
	"github.com/Belphemur/MediaProc/internal/metrics"
	"github.com/Belphemur/MediaProc/internal/models"
)

// Workspace is the shared temp directory.
type Workspace struct {
	dir    string
	logger zerolog.Logger
}

// New returns a Workspace rooted at dir. Call Ensure before use.
func New(dir string) *Workspace {
	return &Workspace{
		dir:    filepath.Clean(dir),
		logger: config.GetLogger(),
	}
}

// Ensure creates the directory if it does not exist.
func (w *Workspace) Ensure() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create temp dir %s: %w", w.dir, err)
	}
	return nil
}

// Dir returns the workspace root.
func (w *Workspace) Dir() string {
	return w.dir
}

// NewPath returns a fresh random path inside the workspace. Nothing is created.
func (w *Workspace) NewPath(suffix string) string {
	return filepath.Join(w.dir, uuid.NewString()+normalizeSuffix(suffix))
}

// NewSession starts tracking the paths of one request.
func (w *Workspace) NewSession() *Session {
	return &Session{ws: w}
}

// Session tracks every path created for one request so that all of them can be
// removed on either the success or the error branch.
type Session struct {
	ws    *Workspace
	paths []string
}

// Path reserves a random path with the given suffix and tracks it.
func (s *Session) Path(suffix string) string {
	p := s.ws.NewPath(suffix)
	s.paths = append(s.paths, p)
	return p
}

// Save streams r into a new tracked file with the given suffix.
func (s *Session) Save(r io.Reader, suffix string) (string, error) {
	p := s.Path(suffix)
	f, err := os.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", p, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", p, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", p, err)
	}
	return p, nil
}

// Cleanup removes every tracked path. Failures are collected and logged, never returned.
func (s *Session) Cleanup() models.CleanupReport {
	report := RemovePaths(s.paths...)
	s.ws.logReport(report, "Removed request temp files")
	s.paths = nil
	return report
}

// RemovePaths deletes each path. Paths that are already gone count as removed.
func RemovePaths(paths ...string) models.CleanupReport {
	var report models.CleanupReport
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.RemoveAll(p); err != nil {
			report.Failed = append(report.Failed, models.FailedDeletion{Path: p, Err: err.Error()})
			continue
		}
		report.Removed = append(report.Removed, p)
	}
	record(report)
	return report
}

// ClearDirectory removes every entry inside dir. A missing dir is an empty success.
func ClearDirectory(dir string) (models.CleanupReport, error) {
	report := models.CleanupReport{Directory: dir}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return report, nil
		}
		return report, fmt.Errorf("read temp dir %s: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	report.Merge(RemovePaths(paths...))
	return report, nil
}

func record(report models.CleanupReport) {
	metrics.CleanupRemovedTotal.Add(float64(len(report.Removed)))
	metrics.CleanupFailuresTotal.Add(float64(len(report.Failed)))
}

func (w *Workspace) logReport(report models.CleanupReport, msg string) {
	for _, failed := range report.Failed {
		w.logger.Warn().Str("path", failed.Path).Str("error", failed.Err).Msg("Could not delete temp path")
	}
	w.logger.Debug().
		Int("removed", len(report.Removed)).
		Int("failed", len(report.Failed)).
		Msg(msg)
}

func normalizeSuffix(suffix string) string {
	suffix = strings.TrimSpace(suffix)
	if suffix == "" || strings.ContainsAny(suffix, `/\`) {
		return ""
	}
	if !strings.HasPrefix(suffix, ".") {
		suffix = "." + suffix
	}
	return suffix
}
