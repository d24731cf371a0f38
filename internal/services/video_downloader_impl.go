package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/Belphemur/MediaProc/internal/apperrors"
	"github.com/Belphemur/MediaProc/internal/config"
	"github.com/Belphemur/MediaProc/internal/models"
	"github.com/Belphemur/MediaProc/internal/parser"
)

const partialSuffix = ".part"

// maxPageSize bounds how much of an HTML page is read when looking for an embedded video
const maxPageSize = 5 << 20

// DefaultVideoDownloader implements VideoDownloader with yt-dlp for hosted platforms and a plain HTTP GET otherwise
type DefaultVideoDownloader struct {
	runner     CommandRunner
	httpClient *http.Client
	ytDlp      string
}

// NewVideoDownloader creates a downloader
func NewVideoDownloader(runner CommandRunner, httpClient *http.Client, ytDlpBinary string) VideoDownloader {
	if ytDlpBinary == "" {
		ytDlpBinary = "yt-dlp"
	}
	return &DefaultVideoDownloader{runner: runner, httpClient: httpClient, ytDlp: ytDlpBinary}
}

// Download fetches rawURL into outputPath
func (d *DefaultVideoDownloader) Download(ctx context.Context, rawURL, outputPath string) error {
	logger := config.GetLogger()

	target, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid video URL %q: %w", rawURL, err)
	}

	if isYouTube(target) {
		logger.Info().Str("url", rawURL).Str("output", outputPath).Msg("Downloading video with yt-dlp")
		return d.downloadWithYtDlp(ctx, rawURL, outputPath)
	}

	if target.Scheme != "http" && target.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme %q", target.Scheme)
	}

	logger.Info().Str("url", rawURL).Str("output", outputPath).Msg("Downloading video over HTTP")
	if err := d.downloadHTTP(ctx, target, outputPath); err != nil {
		return fmt.Errorf("failed to download video: %w", err)
	}
	return nil
}

func isYouTube(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	for _, domain := range []string{"youtube.com", "youtu.be"} {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func (d *DefaultVideoDownloader) downloadWithYtDlp(ctx context.Context, rawURL, outputPath string) error {
	cmd := models.Command{
		Name: d.ytDlp,
		Args: []string{
			"-f", "best[ext=mp4]/best",
			"-o", outputPath,
			"--quiet",
			"--no-warnings",
			rawURL,
		},
		ExpectedOutput: outputPath,
		MissingOutput:  "Video file not created",
	}
	if _, err := d.runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("failed to download video: %w", err)
	}
	return nil
}

// downloadHTTP streams target into a partial file and renames it into place. An
// HTML response is searched for an embedded video, which is fetched once. A page
// without one, or an embedded URL that answers with HTML again, is saved as served.
func (d *DefaultVideoDownloader) downloadHTTP(ctx context.Context, target *url.URL, outputPath string) error {
	logger := config.GetLogger()

	resp, err := d.get(ctx, target)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	var body io.Reader = resp.Body
	if contentType := resp.Header.Get("Content-Type"); isHTML(contentType) {
		page, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
		if err != nil {
			return fmt.Errorf("failed to read page %s: %w", target, err)
		}

		if mediaURL, err := resolvePage(page, contentType, target); err != nil {
			logger.Info().Err(err).Str("page", target.String()).Msg("No embedded video in page, saving response as served")
			body = io.MultiReader(bytes.NewReader(page), resp.Body)
		} else {
			logger.Info().Str("page", target.String()).Str("video_url", mediaURL.String()).Msg("Following video embedded in page")
			media, err := d.get(ctx, mediaURL)
			if err != nil {
				return err
			}
			_ = resp.Body.Close()
			resp, body = media, media.Body
		}
	}

	partial := outputPath + partialSuffix
	written, err := writeFile(partial, body)
	if err != nil {
		_ = os.Remove(partial)
		return err
	}
	if written == 0 {
		_ = os.Remove(partial)
		return apperrors.NewOutputMissingError(outputPath, "Downloaded file is empty")
	}
	if err := os.Rename(partial, outputPath); err != nil {
		_ = os.Remove(partial)
		return fmt.Errorf("failed to move download into place: %w", err)
	}

	logger.Info().Str("output", outputPath).Int64("bytes", written).Msg("Video downloaded")
	return nil
}

func (d *DefaultVideoDownloader) get(ctx context.Context, target *url.URL) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, apperrors.MaxDiagnosticLength))
		_ = resp.Body.Close()
		return nil, apperrors.NewServiceError(target.String(), resp.StatusCode, string(body))
	}
	return resp, nil
}

func resolvePage(page []byte, contentType string, pageURL *url.URL) (*url.URL, error) {
	body, err := parser.NewUTF8Reader(bytes.NewReader(page), contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode page: %w", err)
	}
	mediaURL, err := parser.NewVideoPageParser(pageURL).ParseHtml(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pageURL, err)
	}
	return mediaURL, nil
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && (mediaType == "text/html" || mediaType == "application/xhtml+xml")
}

func writeFile(path string, r io.Reader) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	written, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if copyErr != nil {
		return written, fmt.Errorf("failed to write %s: %w", path, copyErr)
	}
	if closeErr != nil {
		return written, fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	return written, nil
}
