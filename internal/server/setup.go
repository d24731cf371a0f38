package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/Belphemur/MediaProc/internal/config"
	"github.com/Belphemur/MediaProc/internal/errortracking"
	"github.com/Belphemur/MediaProc/internal/metrics"
	"github.com/Belphemur/MediaProc/internal/services"
	"github.com/Belphemur/MediaProc/internal/workspace"
)

// maxUploadSize bounds request bodies; burned videos are uploaded whole.
const maxUploadSize = "4G"

// Dependencies are the pipeline operations the HTTP surface exposes.
type Dependencies struct {
	Workspace *workspace.Workspace
	Extractor services.AudioExtractor
	Burner    services.SubtitleBurner
	Cleaner   services.Cleaner
	Reporter  *errortracking.Reporter // Optional
}

// NewHTTPServer creates a fully configured echo instance with request logging,
// request metrics, JSON errors and all routes registered.
func NewHTTPServer(deps Dependencies) *echo.Echo {
	logger := config.GetLogger()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = jsonErrorHandler(logger, deps.Reporter)

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(maxUploadSize))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		HandleError:  true,
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogError:     true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			route := v.RoutePath
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(v.Status)).Inc()

			event := logger.Info()
			if v.Status >= http.StatusInternalServerError {
				event = logger.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("remote_ip", v.RemoteIP).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("Handled request")
			return nil
		},
	}))

	s := NewServer(deps)
	e.POST("/extract-audio", s.ExtractAudio)
	e.POST("/burn-subtitles", s.BurnSubtitles)
	e.GET("/clear", s.Clear)
	e.GET("/health", s.Health)

	return e
}

// jsonErrorHandler renders every error as {"error": "..."}. Errors that are not
// echo.HTTPError become 500s and are reported.
func jsonErrorHandler(logger zerolog.Logger, reporter *errortracking.Reporter) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := err.Error()

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
			if he.Internal != nil {
				message = fmt.Sprintf("%s: %v", message, he.Internal)
			}
		} else {
			reporter.Capture(err, map[string]string{"route": c.Path()})
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, errorResponse{Error: message})
		}
		if err != nil {
			logger.Error().Err(err).Msg("Failed to write error response")
		}
	}
}
