package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Belphemur/MediaProc/internal/apperrors"
	"github.com/Belphemur/MediaProc/internal/cache"
	"github.com/Belphemur/MediaProc/internal/config"
	"github.com/Belphemur/MediaProc/internal/metrics"
)

// DefaultLanguage is sent to the ASR service when none is configured
const DefaultLanguage = "en"

// TranscriberOptions configures a DefaultTranscriber
type TranscriberOptions struct {
	APIURL   string      // Base URL of the ASR service; "/asr" is appended
	Language string      // Spoken language hint, DefaultLanguage when empty
	Cache    cache.Store // Optional store of previous results keyed by audio content
}

// DefaultTranscriber implements Transcriber against a whisper-asr-webservice compatible API.
// The request timeout comes from the HTTP client.
type DefaultTranscriber struct {
	httpClient *http.Client
	endpoint   string
	language   string
	cache      cache.Store
}

// NewTranscriber creates a transcriber
func NewTranscriber(httpClient *http.Client, opts TranscriberOptions) Transcriber {
	language := opts.Language
	if language == "" {
		language = DefaultLanguage
	}
	return &DefaultTranscriber{
		httpClient: httpClient,
		endpoint:   strings.TrimRight(opts.APIURL, "/") + "/asr",
		language:   language,
		cache:      opts.Cache,
	}
}

// Transcribe posts the audio as multipart form data and stores the SRT response as UTF-8.
func (t *DefaultTranscriber) Transcribe(ctx context.Context, audioPath, outputPath string) error {
	logger := config.GetLogger()

	audio, err := os.Open(audioPath)
	if err != nil {
		metrics.TranscriptionsTotal.WithLabelValues(metrics.StatusFailed).Inc()
		return fmt.Errorf("failed to open audio: %w", err)
	}
	defer func() { _ = audio.Close() }()

	key := ""
	if t.cache != nil {
		if key, err = cache.ContentKey(audio, t.language); err != nil {
			metrics.TranscriptionsTotal.WithLabelValues(metrics.StatusFailed).Inc()
			return fmt.Errorf("failed to hash audio: %w", err)
		}
		if srt, ok := t.cache.Get(ctx, key); ok {
			logger.Info().Str("audio", audioPath).Msg("Using cached transcription")
			metrics.TranscriptionsTotal.WithLabelValues(metrics.StatusCached).Inc()
			return writeSRT(outputPath, srt)
		}
		if _, err := audio.Seek(0, io.SeekStart); err != nil {
			metrics.TranscriptionsTotal.WithLabelValues(metrics.StatusFailed).Inc()
			return fmt.Errorf("failed to rewind audio: %w", err)
		}
	}

	logger.Info().
		Str("audio", audioPath).
		Str("endpoint", t.endpoint).
		Str("language", t.language).
		Msg("Requesting transcription")

	srt, err := t.post(ctx, audio, filepath.Base(audioPath))
	if err != nil {
		metrics.TranscriptionsTotal.WithLabelValues(metrics.StatusFailed).Inc()
		logger.Error().Err(err).Str("endpoint", t.endpoint).Msg("Transcription failed")
		return err
	}

	if err := writeSRT(outputPath, srt); err != nil {
		metrics.TranscriptionsTotal.WithLabelValues(metrics.StatusFailed).Inc()
		return err
	}
	if t.cache != nil {
		t.cache.Set(ctx, key, srt)
	}

	metrics.TranscriptionsTotal.WithLabelValues(metrics.StatusSuccess).Inc()
	logger.Info().Str("output", outputPath).Int("bytes", len(srt)).Msg("Transcription stored")
	return nil
}

func (t *DefaultTranscriber) post(ctx context.Context, audio io.Reader, filename string) ([]byte, error) {
	body, contentType := multipartBody(audio, filename, map[string]string{
		"task":     "transcribe",
		"language": t.language,
		"output":   "srt",
	})
	defer func() { _ = body.Close() }()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcription request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcription response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewServiceError(t.endpoint, resp.StatusCode, string(payload))
	}
	return payload, nil
}

// multipartBody streams the form through a pipe so the audio is never held in memory.
func multipartBody(file io.Reader, filename string, fields map[string]string) (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := func() error {
			for name, value := range fields {
				if err := mw.WriteField(name, value); err != nil {
					return err
				}
			}
			part, err := mw.CreateFormFile("audio_file", filename)
			if err != nil {
				return err
			}
			if _, err := io.Copy(part, file); err != nil {
				return err
			}
			return mw.Close()
		}()
		_ = pw.CloseWithError(err)
	}()

	return pr, mw.FormDataContentType()
}

func writeSRT(path string, srt []byte) error {
	if err := os.WriteFile(path, srt, 0o644); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}
	return nil
}
