package server

import (
	"context"
	"embed"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"pagebrief/internal/database"
	"pagebrief/internal/models"
	"pagebrief/internal/summarizer"
)

const recentSummariesLimit = 10

//go:embed templates/*.html
var templatesFS embed.FS

// ScrapeService fetches and cleans a page. Implemented by *scraper.Scraper.
type ScrapeService interface {
	Scrape(ctx context.Context, rawURL string) (*models.ScrapedContent, error)
}

// SummaryClient is a configured backend client for one request.
type SummaryClient interface {
	summarizer.Summarizer
	summarizer.ModelLister
	Model() string
	Provider() summarizer.Provider
}

// ClientFactory builds a SummaryClient for the selected provider, model and
// optional per-request key override.
type ClientFactory func(providerName, model, keyOverride string) (SummaryClient, error)

type Server struct {
	echo      *echo.Echo
	db        *database.Database
	scraper   ScrapeService
	newClient ClientFactory
	log       *slog.Logger
}

type templateRenderer struct {
	templates *template.Template
}

func (t *templateRenderer) Render(
	w io.Writer,
	name string,
	data any,
	_ echo.Context,
) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

func New(
	db *database.Database,
	scraper ScrapeService,
	newClient ClientFactory,
	log *slog.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.InfoContext(c.Request().Context(), "Request is handled",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status)

			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.Renderer = &templateRenderer{
		templates: template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}

	s := &Server{
		echo:      e,
		db:        db,
		scraper:   scraper,
		newClient: newClient,
		log:       log,
	}

	e.GET("/", s.handleIndex)
	e.POST("/summarize", s.handleSummarizeForm)
	e.POST("/api/summarize", s.handleSummarizeAPI)
	e.GET("/api/models", s.handleListModels)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return s
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the routing tree for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
