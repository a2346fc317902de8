package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"spritepad/internal/domain"
	"spritepad/internal/preview"
	"spritepad/internal/service"
)

// Response bodies of POST /output.
const (
	MsgSaved     = "File saved successfully"
	MsgSaveError = "Error saving file"
)

// Exports is the part of the export service the HTTP layer needs.
type Exports interface {
	Save(ctx context.Context, body []byte) (string, error)
	List() ([]domain.ExportRecord, error)
	Frames(id string) ([]domain.Frame, error)
}

var _ Exports = (*service.ExportService)(nil)

// Deps wires the server to its collaborators.
type Deps struct {
	Exports Exports
	Assets  fs.FS // UI bundle root; index.html is the SPA fallback
}

// Server is the export endpoint: UI assets, the export sink and the
// export index.
type Server struct {
	echo    *echo.Echo
	exports Exports
	assets  fs.FS
}

// New builds the echo router.
func New(deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, exports: deps.Exports, assets: deps.Assets}

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))
	if s.assets != nil {
		e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:       ".",
			Filesystem: http.FS(s.assets),
			Skipper: func(c echo.Context) bool {
				m := c.Request().Method
				return m != http.MethodGet && m != http.MethodHead
			},
		}))
	}

	e.POST("/output", s.handleOutput)
	e.GET("/exports", s.handleListExports)
	e.GET("/exports/:id/sheet.png", s.handleSheet)
	e.GET("/*", s.handleIndex)

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Start listens on addr until Shutdown.
func (s *Server) Start(addr string) error {
	log.Printf("server: listening on http://%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// ── Handlers ──────────────────────────────────────────────

func (s *Server) handleOutput(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		log.Printf("server: read export body: %v", err)
		return c.String(http.StatusInternalServerError, MsgSaveError)
	}
	name, err := s.exports.Save(c.Request().Context(), body)
	if err != nil {
		log.Printf("server: %v", err)
		return c.String(http.StatusInternalServerError, MsgSaveError)
	}
	log.Printf("server: saved %s (%d bytes)", name, len(body))
	return c.String(http.StatusOK, MsgSaved)
}

func (s *Server) handleListExports(c echo.Context) error {
	records, err := s.exports.List()
	if err != nil {
		log.Printf("server: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "listing exports failed")
	}
	return c.JSON(http.StatusOK, records)
}

func (s *Server) handleSheet(c echo.Context) error {
	opts := preview.Options{CellSize: preview.DefaultCellSize}
	if v := c.QueryParam("cell"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > preview.MaxCellSize {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("cell must be between 1 and %d", preview.MaxCellSize))
		}
		opts.CellSize = n
	}
	if v := c.QueryParam("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "width must be a positive integer")
		}
		opts.Width = n
	}

	frames, err := s.exports.Frames(c.Param("id"))
	if errors.Is(err, domain.ErrExportNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "export not found")
	}
	if err != nil {
		log.Printf("server: sheet %s: %v", c.Param("id"), err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "export cannot be decoded")
	}

	if len(frames) > 0 && opts.Width > len(frames[0]) {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("width must be between 1 and %d", len(frames[0])))
	}

	var buf bytes.Buffer
	err = preview.Render(&buf, frames, opts)
	if errors.Is(err, preview.ErrTooLarge) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		log.Printf("server: sheet %s: %v", c.Param("id"), err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// handleIndex serves index.html for any GET that matched no asset.
func (s *Server) handleIndex(c echo.Context) error {
	if s.assets == nil {
		return echo.ErrNotFound
	}
	return echo.StaticFileHandler("index.html", s.assets)(c)
}
