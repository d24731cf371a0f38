package parser

import (
	"io"

	"golang.org/x/net/html/charset"
)

// NewUTF8Reader wraps an io.Reader with automatic character encoding detection and conversion to UTF-8.
// Downloaded HTML pages are converted before goquery parses them.
//
// The charset is detected from, in order:
//  1. the charset parameter of contentType (the response Content-Type header)
//  2. a byte order mark
//  3. HTML <meta charset="..."> or <meta http-equiv="Content-Type"> tags
//  4. heuristics when none of the above are present
//
// If the content is already UTF-8, this is a no-op wrapper with minimal overhead.
func NewUTF8Reader(body io.Reader, contentType string) (io.Reader, error) {
	return charset.NewReader(body, contentType)
}
