package services

import "context"

// VideoDownloader defines the interface for fetching a remote video to local disk
type VideoDownloader interface {
	// Download stores the video behind rawURL at outputPath
	Download(ctx context.Context, rawURL, outputPath string) error
}
