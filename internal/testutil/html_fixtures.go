package testutil

import (
	"fmt"
	"html"
	"strings"
)

// VideoPageOptions describes the video references a generated watch page carries.
// Empty fields are omitted from the page.
type VideoPageOptions struct {
	Title         string
	Charset       string // <meta charset>, omitted when empty
	OGSecureURL   string // og:video:secure_url
	OGURL         string // og:video:url
	OGVideo       string // og:video
	TwitterStream string // twitter:player:stream
	VideoSrc      string // <video src>
	SourceSrc     string // <video><source src>
}

// GenerateVideoPageHTML builds a watch page similar to what video hosts serve
// in place of the media file itself.
func GenerateVideoPageHTML(opts VideoPageOptions) string {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	if opts.Charset != "" {
		fmt.Fprintf(&sb, "\t<meta charset=%q>\n", opts.Charset)
	}
	title := opts.Title
	if title == "" {
		title = "Watch"
	}
	fmt.Fprintf(&sb, "\t<title>%s</title>\n", html.EscapeString(title))

	meta := []struct{ attr, name, value string }{
		{"property", "og:video:secure_url", opts.OGSecureURL},
		{"property", "og:video:url", opts.OGURL},
		{"property", "og:video", opts.OGVideo},
		{"name", "twitter:player:stream", opts.TwitterStream},
	}
	for _, m := range meta {
		if m.value != "" {
			fmt.Fprintf(&sb, "\t<meta %s=%q content=\"%s\">\n", m.attr, m.name, html.EscapeString(m.value))
		}
	}
	sb.WriteString("</head>\n<body>\n")

	switch {
	case opts.VideoSrc != "":
		fmt.Fprintf(&sb, "\t<video controls src=\"%s\"></video>\n", html.EscapeString(opts.VideoSrc))
	case opts.SourceSrc != "":
		fmt.Fprintf(&sb, "\t<video controls>\n\t\t<source src=\"%s\" type=\"video/mp4\">\n\t</video>\n", html.EscapeString(opts.SourceSrc))
	default:
		sb.WriteString("\t<p>This video is unavailable.</p>\n")
	}

	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}
