package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Belphemur/MediaProc/internal/config"
	"github.com/Belphemur/MediaProc/internal/models"
	"github.com/Belphemur/MediaProc/internal/services"
	"github.com/Belphemur/MediaProc/internal/workspace"
)

const (
	formVideo    = "video_file"
	formSubtitle = "srt_file"

	defaultVideoExt = ".mp4"
)

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type clearResponse struct {
	Status    string                  `json:"status"`
	Directory string                  `json:"directory"`
	Failed    []models.FailedDeletion `json:"failed,omitempty"`
}

// Server holds the route handlers.
type Server struct {
	ws        *workspace.Workspace
	extractor services.AudioExtractor
	burner    services.SubtitleBurner
	cleaner   services.Cleaner
	logger    zerolog.Logger
}

// NewServer creates the handler set.
func NewServer(deps Dependencies) *Server {
	cleaner := deps.Cleaner
	if cleaner == nil {
		cleaner = services.NewCleaner()
	}
	return &Server{
		ws:        deps.Workspace,
		extractor: deps.Extractor,
		burner:    deps.Burner,
		cleaner:   cleaner,
		logger:    config.GetLogger(),
	}
}

// ExtractAudio handles POST /extract-audio. The uploaded video is converted to
// 16 kHz mono WAV and returned as an attachment.
func (s *Server) ExtractAudio(c echo.Context) error {
	session := s.ws.NewSession()
	defer session.Cleanup()

	upload, err := formFile(c, formVideo)
	if err != nil {
		return err
	}
	videoPath, err := saveUpload(session, upload, defaultVideoExt)
	if err != nil {
		return err
	}

	audioPath := session.Path(".wav")
	if err := s.extractor.ExtractAudio(c.Request().Context(), videoPath, audioPath); err != nil {
		return err
	}

	return sendFile(c, audioPath, "audio/wav", stem(upload.Filename, "audio")+".wav")
}

// BurnSubtitles handles POST /burn-subtitles. Cue-format subtitles are converted
// to line format before being rendered onto the uploaded video.
func (s *Server) BurnSubtitles(c echo.Context) error {
	session := s.ws.NewSession()
	defer session.Cleanup()

	videoUpload, err := formFile(c, formVideo)
	if err != nil {
		return err
	}
	subUpload, err := formFile(c, formSubtitle)
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("video", videoUpload.Filename).
		Str("subtitles", subUpload.Filename).
		Msg("Received burn request")

	raw, err := readUpload(subUpload)
	if err != nil {
		return err
	}
	doc, err := s.burner.PrepareSubtitles(raw)
	if err != nil {
		return err
	}

	videoPath, err := saveUpload(session, videoUpload, defaultVideoExt)
	if err != nil {
		return err
	}
	subPath, err := session.Save(strings.NewReader(doc.Text), doc.Extension())
	if err != nil {
		return err
	}

	outputPath := session.Path(".mp4")
	if err := s.burner.BurnSubtitles(c.Request().Context(), videoPath, subPath, outputPath); err != nil {
		return err
	}

	return sendFile(c, outputPath, "video/mp4", "subtitled_"+stem(videoUpload.Filename, "video")+".mp4")
}

// Clear handles GET /clear by emptying the shared temp directory.
func (s *Server) Clear(c echo.Context) error {
	report, err := s.cleaner.ClearDirectory(s.ws.Dir())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clearResponse{
		Status:    "cleaned",
		Directory: s.ws.Dir(),
		Failed:    report.Failed,
	})
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, statusResponse{Status: "healthy"})
}

func formFile(c echo.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("missing form file %q", field))
	}
	return fh, nil
}

func saveUpload(session *workspace.Session, fh *multipart.FileHeader, fallbackExt string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer func() { _ = src.Close() }()

	ext := filepath.Ext(fh.Filename)
	if ext == "" {
		ext = fallbackExt
	}
	return session.Save(src, ext)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer func() { _ = src.Close() }()

	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}
	return raw, nil
}

// sendFile streams path as an attachment. The caller's deferred session cleanup
// runs once the body has been written.
func sendFile(c echo.Context, path, contentType, filename string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("output unavailable: %w", err)
	}
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	return c.Attachment(path, filename)
}

func stem(filename, fallback string) string {
	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fallback
	}
	return name
}
