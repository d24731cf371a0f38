package subtitle

import "strings"

// Format identifies the timing layout of a subtitle document.
type Format int

const (
	// FormatUnknown is text with neither cue timing lines nor bracketed line stamps.
	FormatUnknown Format = iota
	// FormatCue is the SRT layout: index, "start --> end", text lines, blank line.
	FormatCue
	// FormatLine is the LRC layout: "[MM:SS.ss]text" per line.
	FormatLine
)

// CueSeparator splits the start and end timestamps of an SRT timing line.
const CueSeparator = " --> "

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatCue:
		return "srt"
	case FormatLine:
		return "lrc"
	default:
		return "unknown"
	}
}

// Classify detects the format of decoded subtitle text.
//
// Both checks run independently over the whole text. A document is FormatLine
// whenever any line, once trimmed, starts with '[' and contains ']'; this wins
// even if cue separators are also present. Otherwise a document containing the
// cue separator is FormatCue. Anything else is FormatUnknown.
func Classify(text string) Format {
	hasCue := strings.Contains(text, CueSeparator)
	hasLine := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.Contains(trimmed, "]") {
			hasLine = true
			break
		}
	}

	switch {
	case hasLine:
		return FormatLine
	case hasCue:
		return FormatCue
	default:
		return FormatUnknown
	}
}

// NeedsConversion reports whether the renderer, which only reads line format,
// must receive a converted copy of a document with this format.
func (f Format) NeedsConversion() bool {
	return f == FormatCue
}
