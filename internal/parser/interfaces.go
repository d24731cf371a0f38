package parser

import "io"

// SingleResultParser extracts one value from an HTML document
type SingleResultParser[T any] interface {
	ParseHtml(body io.Reader) (T, error)
}
