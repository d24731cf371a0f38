package subtitle

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/Belphemur/MediaProc/internal/apperrors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decoder is one step of the fallback chain. accept rejects input the
// encoding would decode without error but incorrectly.
type decoder struct {
	name   string
	enc    encoding.Encoding
	accept func(raw []byte) bool
}

// decodeChain is tried in order; the first accepted, error-free decode wins.
var decodeChain = []decoder{
	{
		name: "utf-8",
		enc:  unicode.UTF8,
		accept: func(raw []byte) bool {
			return !bytes.HasPrefix(raw, utf8BOM) && utf8.Valid(raw)
		},
	},
	{
		name: "utf-8-sig",
		enc:  unicode.UTF8BOM,
		accept: func(raw []byte) bool {
			return bytes.HasPrefix(raw, utf8BOM) && utf8.Valid(raw)
		},
	},
	{
		// Latin-1 maps every byte, so only NUL (binary content) is refused.
		name: "latin-1",
		enc:  charmap.ISO8859_1,
		accept: func(raw []byte) bool {
			return bytes.IndexByte(raw, 0) < 0
		},
	},
}

// Decode converts uploaded subtitle bytes to a UTF-8 string and reports which
// encoding was used. It returns *apperrors.DecodeError when no step of the
// chain accepts the input.
func Decode(raw []byte) (string, string, error) {
	tried := make([]string, 0, len(decodeChain))
	var lastErr error

	for _, d := range decodeChain {
		tried = append(tried, d.name)
		if !d.accept(raw) {
			lastErr = fmt.Errorf("%s: input rejected", d.name)
			continue
		}
		out, _, err := transform.Bytes(d.enc.NewDecoder(), raw)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", d.name, err)
			continue
		}
		return string(out), d.name, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no decoder available")
	}
	return "", "", &apperrors.DecodeError{Tried: tried, Err: lastErr}
}
