package client

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// acceptEncoding advertises every encoding in decoders.
const acceptEncoding = "gzip, br, zstd"

// decoders maps a Content-Encoding token to a constructor for its decompressing reader.
var decoders = map[string]func(io.Reader) (io.ReadCloser, error){
	"gzip": func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	},
	"br": func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(r)), nil
	},
	"zstd": func(r io.Reader) (io.ReadCloser, error) {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	},
}

// compressionTransport advertises gzip, brotli and zstd support and transparently
// decompresses response bodies. Streaming is preserved; nothing is buffered.
type compressionTransport struct {
	transport http.RoundTripper
}

func newCompressionTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &compressionTransport{transport: base}
}

// RoundTrip sets Accept-Encoding when the caller has not, then swaps the body
// for a decompressing reader when the server used a known encoding.
func (t *compressionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Accept-Encoding") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}

	resp, err := t.transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	newDecoder, ok := decoders[parseContentEncoding(resp.Header.Get("Content-Encoding"))]
	if !ok {
		return resp, nil
	}
	reader, err := newDecoder(resp.Body)
	if err != nil {
		_ = resp.Body.Close()
		return nil, err
	}

	resp.Body = &decompressReadCloser{reader: reader, originalBody: resp.Body}
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true

	return resp, nil
}

// decompressReadCloser closes both the decompressor and the network body.
type decompressReadCloser struct {
	reader       io.ReadCloser
	originalBody io.ReadCloser
}

func (d *decompressReadCloser) Read(p []byte) (int, error) {
	return d.reader.Read(p)
}

func (d *decompressReadCloser) Close() error {
	readerErr := d.reader.Close()
	bodyErr := d.originalBody.Close()
	if readerErr != nil {
		return readerErr
	}
	return bodyErr
}

// parseContentEncoding returns the outermost (last applied) encoding of a
// Content-Encoding header, lowercased, or "" when the header is empty.
func parseContentEncoding(header string) string {
	parts := strings.Split(header, ",")
	return strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
}
