package services

import "context"

// Transcriber defines the interface for turning speech audio into subtitles via a remote ASR service
type Transcriber interface {
	// Transcribe uploads audioPath and writes the returned SRT text to outputPath
	Transcribe(ctx context.Context, audioPath, outputPath string) error
}
