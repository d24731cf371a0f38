package services

import "context"

// AudioExtractor defines the interface for pulling a speech-ready audio track out of a video
type AudioExtractor interface {
	// ExtractAudio writes 16 kHz mono PCM WAV audio from videoPath to audioPath
	ExtractAudio(ctx context.Context, videoPath, audioPath string) error
}
