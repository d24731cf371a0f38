package services

import (
	"context"

	"github.com/Belphemur/MediaProc/internal/models"
)

// SubtitleBurner defines the interface for rendering subtitles into a video stream
type SubtitleBurner interface {
	// PrepareSubtitles decodes an uploaded subtitle file and converts cue-based text to line-based text
	PrepareSubtitles(raw []byte) (models.SubtitleDocument, error)

	// BurnSubtitles re-encodes videoPath with subtitlePath rendered on top into outputPath
	BurnSubtitles(ctx context.Context, videoPath, subtitlePath, outputPath string) error
}
