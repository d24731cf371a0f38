package client

import (
	"net/http"
	"net/url"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/Belphemur/MediaProc/internal/config"
)

// NewHTTPClient creates the HTTP client shared by downloads and transcription.
// A zero timeout leaves the client unbounded, which streamed video downloads need.
func NewHTTPClient(cfg *config.Config, timeout time.Duration) *http.Client {
	logger := config.GetLogger()

	// Clone DefaultTransport to keep its pooling and HTTP/2 settings
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &userAgentTransport{
			userAgent: cfg.UserAgent,
			transport: newCompressionTransport(baseTransport),
		},
	}
}

// userAgentTransport sets a User-Agent on requests that lack one.
// The value config.RandomUserAgent picks a new browser string per request.
type userAgentTransport struct {
	userAgent string
	transport http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.resolve())
	}
	return t.transport.RoundTrip(req)
}

func (t *userAgentTransport) resolve() string {
	switch t.userAgent {
	case config.RandomUserAgent:
		return gofakeit.UserAgent()
	case "":
		return config.DefaultUserAgent
	default:
		return t.userAgent
	}
}
