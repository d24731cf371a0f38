package models

import "github.com/Belphemur/MediaProc/internal/subtitle"

// SubtitleDocument is decoded subtitle text tagged with its detected format.
type SubtitleDocument struct {
	Format    subtitle.Format
	Text      string
	Encoding  string // Encoding the upload was decoded from
	Converted bool   // True when Text was converted from cue format to line format
}

// Extension returns the file extension the document should be written with.
func (d SubtitleDocument) Extension() string {
	if d.Format == subtitle.FormatCue && !d.Converted {
		return ".srt"
	}
	return ".lrc"
}
