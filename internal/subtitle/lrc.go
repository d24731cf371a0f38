package subtitle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ConvertSRTToLRC converts an SRT document to LRC lines.
//
// Only the start time of each cue is kept. Multi-line cue text is joined with
// single spaces. Cues whose timing line cannot be parsed, and cues without
// text, are dropped; the remaining cues keep their original order.
func ConvertSRTToLRC(srt string) string {
	lines := strings.Split(strings.TrimSpace(srt), "\n")
	converted := make([]string, 0, len(lines)/3)

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		i++
		if isCueIndex(line) || !strings.Contains(line, CueSeparator) {
			continue
		}

		start, _, _ := strings.Cut(line, CueSeparator)
		stamp, err := lrcTimestamp(start)
		if err != nil {
			continue
		}

		var text []string
		for i < len(lines) && isCueText(lines[i]) {
			text = append(text, strings.TrimSpace(lines[i]))
			i++
		}
		if len(text) > 0 {
			converted = append(converted, stamp+strings.Join(text, " "))
		}
	}

	return strings.Join(converted, "\n")
}

// lrcTimestamp turns "HH:MM:SS[,mmm]" into "[MM:SS.ss]". Seconds may carry
// their own fraction ("SS.mmm") when no comma is present.
func lrcTimestamp(srtTime string) (string, error) {
	clock, millis, found := strings.Cut(strings.TrimSpace(srtTime), ",")

	parts := strings.Split(clock, ":")
	if len(parts) != 3 {
		return "", fmt.Errorf("timestamp %q: expected HH:MM:SS", srtTime)
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return "", fmt.Errorf("timestamp %q: hours: %w", srtTime, err)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", fmt.Errorf("timestamp %q: minutes: %w", srtTime, err)
	}
	secondsField := strings.TrimSpace(parts[2])
	if found {
		secondsField += "." + strings.TrimSpace(millis)
	}
	seconds, err := strconv.ParseFloat(secondsField, 64)
	if err != nil {
		return "", fmt.Errorf("timestamp %q: seconds: %w", srtTime, err)
	}
	if hours < 0 || minutes < 0 || seconds < 0 {
		return "", fmt.Errorf("timestamp %q: negative component", srtTime)
	}

	total := float64(hours*3600+minutes*60) + seconds
	return fmt.Sprintf("[%02d:%05.2f]", int(total/60), math.Mod(total, 60)), nil
}

func isCueText(raw string) bool {
	line := strings.TrimSpace(raw)
	return line != "" && !isCueIndex(line) && !strings.Contains(raw, CueSeparator)
}

func isCueIndex(line string) bool {
	if line == "" {
		return false
	}
	for _, r := range line {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
