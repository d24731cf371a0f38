package parser

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Belphemur/MediaProc/internal/config"
)

// ErrNoVideo is returned when an HTML page does not reference a video file.
var ErrNoVideo = errors.New("no video reference found in page")

// videoSources are checked in order; the first non-empty value wins.
var videoSources = []struct {
	selector string
	attr     string
}{
	{`meta[property="og:video:secure_url"]`, "content"},
	{`meta[property="og:video:url"]`, "content"},
	{`meta[property="og:video"]`, "content"},
	{`meta[name="twitter:player:stream"]`, "content"},
	{`video[src]`, "src"},
	{`video source[src]`, "src"},
}

// VideoPageParser finds the media URL embedded in a web page that was fetched
// in place of a direct video file.
type VideoPageParser struct {
	pageURL *url.URL
}

// NewVideoPageParser creates a parser that resolves relative references against pageURL.
func NewVideoPageParser(pageURL *url.URL) SingleResultParser[*url.URL] {
	return &VideoPageParser{pageURL: pageURL}
}

// ParseHtml returns the absolute URL of the first video reference in the page.
func (p *VideoPageParser) ParseHtml(body io.Reader) (*url.URL, error) {
	logger := config.GetLogger()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, source := range videoSources {
		var found string
		doc.Find(source.selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			found = strings.TrimSpace(s.AttrOr(source.attr, ""))
			return found == ""
		})
		if found == "" {
			continue
		}

		ref, err := url.Parse(found)
		if err != nil {
			logger.Debug().Err(err).Str("selector", source.selector).Str("value", found).Msg("Skipping unparsable video reference")
			continue
		}
		resolved := ref
		if p.pageURL != nil {
			resolved = p.pageURL.ResolveReference(ref)
		}
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			logger.Debug().Str("selector", source.selector).Str("value", found).Msg("Skipping non-HTTP video reference")
			continue
		}

		logger.Debug().Str("selector", source.selector).Str("video_url", resolved.String()).Msg("Resolved video reference from page")
		return resolved, nil
	}

	return nil, ErrNoVideo
}
