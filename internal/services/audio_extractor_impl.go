package services

import (
	"context"
	"fmt"

	"github.com/Belphemur/MediaProc/internal/config"
	"github.com/Belphemur/MediaProc/internal/models"
)

const (
	audioSampleRate = "16000"
	audioChannels   = "1"
	audioCodec      = "pcm_s16le"
)

// DefaultAudioExtractor implements AudioExtractor with ffmpeg
type DefaultAudioExtractor struct {
	runner CommandRunner
	ffmpeg string
}

// NewAudioExtractor creates an extractor that runs the given ffmpeg binary
func NewAudioExtractor(runner CommandRunner, ffmpegBinary string) AudioExtractor {
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	return &DefaultAudioExtractor{runner: runner, ffmpeg: ffmpegBinary}
}

// ExtractAudio drops the video stream and resamples the audio for speech recognition
func (e *DefaultAudioExtractor) ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	logger := config.GetLogger()
	logger.Info().Str("video", videoPath).Str("audio", audioPath).Msg("Extracting audio")

	cmd := models.Command{
		Name: e.ffmpeg,
		Args: []string{
			"-i", videoPath,
			"-vn",
			"-acodec", audioCodec,
			"-ar", audioSampleRate,
			"-ac", audioChannels,
			"-y",
			audioPath,
		},
		ExpectedOutput: audioPath,
		MissingOutput:  "Audio file not created",
	}

	if _, err := e.runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("failed to extract audio: %w", err)
	}
	return nil
}
