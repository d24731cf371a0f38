package client

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Belphemur/MediaProc/internal/config"
)

func TestNewHTTPClient_Timeout(t *testing.T) {
	t.Parallel()
	c := NewHTTPClient(&config.Config{}, 5*time.Second)
	if c.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", c.Timeout)
	}
	if NewHTTPClient(&config.Config{}, 0).Timeout != 0 {
		t.Error("A zero timeout must leave the client unbounded")
	}
}

func TestNewHTTPClient_UserAgent(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		configUA  string
		requestUA string
		check     func(string) bool
	}{
		{
			name:     "configured",
			configUA: "MediaProc/1.0",
			check:    func(ua string) bool { return ua == "MediaProc/1.0" },
		},
		{
			name:     "empty falls back to default",
			configUA: "",
			check:    func(ua string) bool { return ua == config.DefaultUserAgent },
		},
		{
			name:     "random",
			configUA: config.RandomUserAgent,
			check:    func(ua string) bool { return ua != "" && ua != config.RandomUserAgent && !strings.HasPrefix(ua, "Go-http-client") },
		},
		{
			name:      "request header wins",
			configUA:  "MediaProc/1.0",
			requestUA: "custom",
			check:     func(ua string) bool { return ua == "custom" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("User-Agent")
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
			if tt.requestUA != "" {
				req.Header.Set("User-Agent", tt.requestUA)
			}
			resp, err := NewHTTPClient(&config.Config{UserAgent: tt.configUA}, time.Second).Do(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			_ = resp.Body.Close()

			if !tt.check(got) {
				t.Errorf("unexpected User-Agent %q", got)
			}
		})
	}
}

func TestNewHTTPClient_InvalidProxyIgnored(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewHTTPClient(&config.Config{ProxyConnectionString: "://bad proxy"}, time.Second)
	resp, err := c.Get(server.URL)
	if err != nil {
		t.Fatalf("an invalid proxy must be ignored, got %v", err)
	}
	_ = resp.Body.Close()
}
