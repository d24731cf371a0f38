package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/Belphemur/MediaProc/internal/cache"
	"github.com/Belphemur/MediaProc/internal/client"
	"github.com/Belphemur/MediaProc/internal/config"
	"github.com/Belphemur/MediaProc/internal/invoker"
	"github.com/Belphemur/MediaProc/internal/services"
)

const (
	defaultTranscriptionTimeout = 300 * time.Second
	transcriptionCacheName      = "transcriptions"
)

// app builds the pipeline services from configuration. runner is replaced in tests.
type app struct {
	cfg    *config.Config
	runner invoker.Runner
}

func newApp(cfg *config.Config) *app {
	return &app{cfg: cfg}
}

func (a *app) invoker() *invoker.Invoker {
	return invoker.New(a.runner)
}

func (a *app) downloadClient() *http.Client {
	return client.NewHTTPClient(a.cfg, config.ParseDuration("client_timeout", a.cfg.ClientTimeout, 0))
}

func (a *app) audioExtractor() services.AudioExtractor {
	return services.NewAudioExtractor(a.invoker(), a.cfg.FFmpegBinary)
}

func (a *app) subtitleBurner() services.SubtitleBurner {
	return services.NewSubtitleBurner(a.invoker(), a.cfg.FFmpegBinary)
}

func (a *app) videoDownloader() services.VideoDownloader {
	return services.NewVideoDownloader(a.invoker(), a.downloadClient(), a.cfg.YtDlpBinary)
}

// transcriber returns a Transcriber for apiURL and a release func for its cache.
// An empty apiURL falls back to transcription.url. An unavailable cache only
// disables caching.
func (a *app) transcriber(apiURL string) (services.Transcriber, func(), error) {
	logger := config.GetLogger()

	if apiURL == "" {
		apiURL = a.cfg.Transcription.URL
	}
	if apiURL == "" {
		return nil, nil, errors.New("transcription API URL is required")
	}
	timeout := config.ParseDuration("transcription.timeout", a.cfg.Transcription.Timeout, defaultTranscriptionTimeout)

	store, err := cache.NewFromConfig(a.cfg, transcriptionCacheName)
	release := func() {}
	if err != nil {
		logger.Warn().Err(err).Str("provider", a.cfg.Cache.Provider).Msg("Transcription cache unavailable, continuing without it")
		store = nil
	} else {
		release = func() { _ = store.Close() }
	}

	return services.NewTranscriber(client.NewHTTPClient(a.cfg, timeout), services.TranscriberOptions{
		APIURL:   apiURL,
		Language: a.cfg.Transcription.Language,
		Cache:    store,
	}), release, nil
}
