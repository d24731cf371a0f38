// Package services composes external tool invocations and HTTP calls into the media pipeline operations.
package services

import (
	"context"

	"github.com/Belphemur/MediaProc/internal/models"
)

// CommandRunner executes one external tool invocation.
type CommandRunner interface {
	Run(ctx context.Context, cmd models.Command) (*models.Outcome, error)
}
