package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Belphemur/MediaProc/internal/config"
	"github.com/Belphemur/MediaProc/internal/models"
	"github.com/Belphemur/MediaProc/internal/subtitle"
)

// SubtitleStyle is the ASS force_style applied to every burned subtitle.
const SubtitleStyle = "FontName=Arial,FontSize=24,PrimaryColour=&HFFFFFF,OutlineColour=&H000000," +
	"BackColour=&H80000000,BorderStyle=4,Outline=2,Shadow=1,MarginV=30"

var (
	// filter option values unescape \ ' and : once
	optionEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `:`, `\:`)
	// quotes cannot appear inside a quoted filtergraph token
	graphQuoter = strings.NewReplacer(`'`, `'\''`)
)

// DefaultSubtitleBurner implements SubtitleBurner with ffmpeg's subtitles filter
type DefaultSubtitleBurner struct {
	runner CommandRunner
	ffmpeg string
}

// NewSubtitleBurner creates a burner that runs the given ffmpeg binary
func NewSubtitleBurner(runner CommandRunner, ffmpegBinary string) SubtitleBurner {
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	return &DefaultSubtitleBurner{runner: runner, ffmpeg: ffmpegBinary}
}

// PrepareSubtitles decodes raw with the fallback chain, classifies it, and converts
// cue-format text to the line format the renderer is fed. Line-format and
// unrecognised text pass through unchanged.
func (b *DefaultSubtitleBurner) PrepareSubtitles(raw []byte) (models.SubtitleDocument, error) {
	logger := config.GetLogger()

	text, encoding, err := subtitle.Decode(raw)
	if err != nil {
		return models.SubtitleDocument{}, err
	}

	doc := models.SubtitleDocument{
		Format:   subtitle.Classify(text),
		Text:     text,
		Encoding: encoding,
	}
	if doc.Format.NeedsConversion() {
		doc.Text = subtitle.ConvertSRTToLRC(text)
		doc.Converted = true
	}

	logger.Info().
		Str("format", doc.Format.String()).
		Str("encoding", encoding).
		Bool("converted", doc.Converted).
		Msg("Prepared subtitles")
	return doc, nil
}

// BurnSubtitles renders subtitlePath onto videoPath, copying the audio track and
// re-encoding video with libx264.
func (b *DefaultSubtitleBurner) BurnSubtitles(ctx context.Context, videoPath, subtitlePath, outputPath string) error {
	logger := config.GetLogger()
	logger.Info().
		Str("video", videoPath).
		Str("subtitles", subtitlePath).
		Str("output", outputPath).
		Msg("Burning subtitles")

	cmd := models.Command{
		Name: b.ffmpeg,
		Args: []string{
			"-i", videoPath,
			"-vf", SubtitleFilter(subtitlePath),
			"-c:a", "copy",
			"-c:v", "libx264",
			"-preset", "medium",
			"-crf", "23",
			"-y",
			outputPath,
		},
		ExpectedOutput: outputPath,
		MissingOutput:  "Output video not created",
	}

	if _, err := b.runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("failed to burn subtitles: %w", err)
	}
	return nil
}

// SubtitleFilter builds the -vf argument for rendering the subtitle file at path.
func SubtitleFilter(path string) string {
	return fmt.Sprintf("subtitles='%s':force_style='%s'", graphQuoter.Replace(optionEscaper.Replace(path)), SubtitleStyle)
}
