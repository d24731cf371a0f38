package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Belphemur/MediaProc/internal/apperrors"
	"github.com/Belphemur/MediaProc/internal/testutil"
)

func TestIsYouTube(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://www.youtube.com/watch?v=abc", true},
		{"https://youtube.com/shorts/abc", true},
		{"https://m.youtube.com/watch?v=abc", true},
		{"https://youtu.be/abc", true},
		{"https://notyoutube.com/watch", false},
		{"https://cdn.example.com/youtube.com/clip.mp4", false},
	}
	for _, tt := range tests {
		u, err := url.Parse(tt.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.raw, err)
		}
		if got := isYouTube(u); got != tt.want {
			t.Errorf("isYouTube(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestDownload_YouTubeUsesYtDlp(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{}
	out := filepath.Join(t.TempDir(), "video.mp4")

	err := NewVideoDownloader(runner, http.DefaultClient, "").Download(context.Background(), "https://youtu.be/dQw4w9WgXcQ", out)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}

	cmd := runner.only(t)
	if cmd.Name != "yt-dlp" {
		t.Errorf("Name = %q, want yt-dlp", cmd.Name)
	}
	equalArgs(t, cmd.Args, []string{
		"-f", "best[ext=mp4]/best", "-o", out, "--quiet", "--no-warnings", "https://youtu.be/dQw4w9WgXcQ",
	})
	if cmd.ExpectedOutput != out {
		t.Errorf("ExpectedOutput = %q", cmd.ExpectedOutput)
	}
}

var (
	emptyPage = testutil.GenerateVideoPageHTML(testutil.VideoPageOptions{Title: "Removed"})
	largePage = "<html><body>" + strings.Repeat("<p>transcript</p>", maxPageSize/16) + "</body></html>"
)

func newVideoServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/clip.mp4", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "video/mp4")
		_, _ = w.Write([]byte("fake mp4 bytes"))
	})
	mux.HandleFunc("/watch", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(testutil.GenerateVideoPageHTML(testutil.VideoPageOptions{OGVideo: "/clip.mp4"})))
	})
	mux.HandleFunc("/empty-page", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(emptyPage))
	})
	mux.HandleFunc("/large-page", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(largePage))
	})
	mux.HandleFunc("/loop", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(testutil.GenerateVideoPageHTML(testutil.VideoPageOptions{VideoSrc: "/empty-page"})))
	})
	mux.HandleFunc("/broken-embed", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(testutil.GenerateVideoPageHTML(testutil.VideoPageOptions{OGVideo: "/gone"})))
	})
	mux.HandleFunc("/empty.mp4", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "video/mp4")
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone for good", http.StatusGone)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDownload_HTTP(t *testing.T) {
	t.Parallel()
	srv := newVideoServer(t)
	tests := []struct {
		name string
		path string
		want string
	}{
		{"direct file", "/clip.mp4", "fake mp4 bytes"},
		{"page with embedded video", "/watch", "fake mp4 bytes"},
		{"page without video is saved as served", "/empty-page", emptyPage},
		{"embedded url answering with html is saved as served", "/loop", emptyPage},
		{"page larger than the parse limit is saved whole", "/large-page", largePage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := filepath.Join(t.TempDir(), "video.mp4")
			runner := &fakeRunner{}

			if err := NewVideoDownloader(runner, srv.Client(), "").Download(context.Background(), srv.URL+tt.path, out); err != nil {
				t.Fatalf("Download: %v", err)
			}

			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatalf("read output: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("output has %d bytes, want %d", len(data), len(tt.want))
			}
			if _, err := os.Stat(out + partialSuffix); !os.IsNotExist(err) {
				t.Error("partial file left behind")
			}
			if len(runner.commands) != 0 {
				t.Error("yt-dlp must not run for plain HTTP URLs")
			}
		})
	}
}

func TestDownload_HTTPFailures(t *testing.T) {
	t.Parallel()
	srv := newVideoServer(t)
	tests := []struct {
		name  string
		path  string
		check func(t *testing.T, err error)
	}{
		{
			name: "non-2xx status",
			path: "/gone",
			check: func(t *testing.T, err error) {
				var se *apperrors.ServiceError
				if !errors.As(err, &se) {
					t.Fatalf("expected ServiceError, got %v", err)
				}
				if se.StatusCode != http.StatusGone || se.Body != "gone for good" {
					t.Errorf("unexpected ServiceError %+v", se)
				}
			},
		},
		{
			name: "embedded video missing",
			path: "/broken-embed",
			check: func(t *testing.T, err error) {
				var se *apperrors.ServiceError
				if !errors.As(err, &se) || se.StatusCode != http.StatusGone {
					t.Fatalf("expected ServiceError 410 for the embedded url, got %v", err)
				}
			},
		},
		{
			name: "empty body",
			path: "/empty.mp4",
			check: func(t *testing.T, err error) {
				if !errors.Is(err, &apperrors.OutputMissingError{}) {
					t.Fatalf("expected OutputMissingError, got %v", err)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := filepath.Join(t.TempDir(), "video.mp4")
			err := NewVideoDownloader(&fakeRunner{}, srv.Client(), "").Download(context.Background(), srv.URL+tt.path, out)
			tt.check(t, err)

			for _, p := range []string{out, out + partialSuffix} {
				if _, statErr := os.Stat(p); !os.IsNotExist(statErr) {
					t.Errorf("%s should not exist after a failed download", p)
				}
			}
		})
	}
}

func TestDownload_InvalidURL(t *testing.T) {
	t.Parallel()
	d := NewVideoDownloader(&fakeRunner{}, http.DefaultClient, "")
	for _, raw := range []string{"ftp://example.com/a.mp4", "::not a url"} {
		if err := d.Download(context.Background(), raw, filepath.Join(t.TempDir(), "v.mp4")); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}
