package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"pagebrief/internal/models"
	"pagebrief/internal/scraper"
	"pagebrief/internal/summarizer"
)

type pageData struct {
	Providers    []summarizer.Provider
	Input        string
	Provider     string
	Model        string
	APIKey       string
	ErrorMessage string
	Content      *models.ScrapedContent
	Summary      string
	Recent       []models.SummaryRecord
}

type summarizeRequest struct {
	Input    string `json:"input"    form:"input"`
	Provider string `json:"provider" form:"provider"`
	Model    string `json:"model"    form:"model"`
	APIKey   string `json:"api_key"  form:"api_key"`
}

type summarizeResponse struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	Summary   string `json:"summary"`
	Truncated bool   `json:"truncated"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", s.newPageData(c.Request().Context(), summarizeRequest{
		Provider: summarizer.ProviderOpenAI,
	}))
}

func (s *Server) handleSummarizeForm(c echo.Context) error {
	var req summarizeRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusOK, "index.html", s.newPageDataWithError(
			c.Request().Context(), req, "Invalid request."))
	}

	ctx := c.Request().Context()

	content, summary, err := s.summarize(ctx, req)
	if err != nil {
		message, _ := describeError(err, content != nil)

		data := s.newPageDataWithError(ctx, req, message)
		data.Content = content

		return c.Render(http.StatusOK, "index.html", data)
	}

	data := s.newPageData(ctx, req)
	data.Content = content
	data.Summary = summary

	return c.Render(http.StatusOK, "index.html", data)
}

func (s *Server) handleSummarizeAPI(c echo.Context) error {
	var req summarizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	ctx := c.Request().Context()

	content, summary, err := s.summarize(ctx, req)
	if err != nil {
		message, status := describeError(err, content != nil)

		return c.JSON(status, errorResponse{Error: message})
	}

	return c.JSON(http.StatusOK, summarizeResponse{
		URL:       content.URL,
		Title:     content.Title,
		Provider:  strings.TrimSpace(strings.ToLower(req.Provider)),
		Model:     strings.TrimSpace(req.Model),
		Summary:   summary,
		Truncated: content.Truncated,
	})
}

func (s *Server) handleListModels(c echo.Context) error {
	client, err := s.newClient(
		c.QueryParam("provider"),
		"",
		c.QueryParam("api_key"),
	)
	if err != nil {
		message, status := describeError(err, false)

		return c.JSON(status, errorResponse{Error: message})
	}

	modelIDs, err := client.ListModels(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadGateway, errorResponse{
			Error: fmt.Sprintf("Could not fetch models. Check API key validity: %v", err),
		})
	}

	return c.JSON(http.StatusOK, map[string][]string{"models": modelIDs})
}

// summarize runs the full pipeline for one request: URL extraction, scrape,
// completion call and history write. The returned content is non-nil as
// soon as scraping succeeded, even when summarization fails afterwards.
func (s *Server) summarize(
	ctx context.Context,
	req summarizeRequest,
) (*models.ScrapedContent, string, error) {
	pageURL, err := scraper.ExtractURL(req.Input)
	if err != nil {
		return nil, "", fmt.Errorf("extract URL: %w", err)
	}

	client, err := s.newClient(req.Provider, req.Model, req.APIKey)
	if err != nil {
		return nil, "", fmt.Errorf("create summarizer: %w", err)
	}

	content, err := s.scraper.Scrape(ctx, pageURL)
	if err != nil {
		return nil, "", fmt.Errorf("scrape page: %w", err)
	}

	summary, err := client.Summarize(ctx, summarizer.Input{
		URL:   content.URL,
		Title: content.Title,
		Text:  content.Text,
	})
	if err != nil {
		return content, "", fmt.Errorf("summarize: %w", err)
	}

	if _, saveErr := s.db.SaveSummary(ctx, models.SummaryRecord{
		URL:      content.URL,
		Title:    content.Title,
		Provider: client.Provider().Name,
		Model:    client.Model(),
		Summary:  summary,
	}); saveErr != nil {
		s.log.ErrorContext(ctx, "Failed to save summary",
			"error", saveErr,
			"url", content.URL)
	}

	return content, summary, nil
}

func (s *Server) newPageData(ctx context.Context, req summarizeRequest) pageData {
	recent, err := s.db.RecentSummaries(ctx, recentSummariesLimit)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to fetch recent summaries",
			"error", err,
			"limit", recentSummariesLimit)
	}

	return pageData{
		Providers: summarizer.Providers(),
		Input:     strings.TrimSpace(req.Input),
		Provider:  strings.TrimSpace(strings.ToLower(req.Provider)),
		Model:     strings.TrimSpace(req.Model),
		APIKey:    strings.TrimSpace(req.APIKey),
		Recent:    recent,
	}
}

func (s *Server) newPageDataWithError(
	ctx context.Context,
	req summarizeRequest,
	message string,
) pageData {
	data := s.newPageData(ctx, req)
	data.ErrorMessage = message

	return data
}

// describeError maps a pipeline failure to the message shown to the user
// and the matching API status. scraped reports whether the error happened
// after the page was already fetched, which makes it a completion failure
// rather than a scrape failure.
func describeError(err error, scraped bool) (string, int) {
	switch {
	case errors.Is(err, scraper.ErrNoURLFound):
		return "Please enter a URL starting with http:// or https://", http.StatusBadRequest
	case errors.Is(err, scraper.ErrInvalidURL):
		return "Please enter a valid URL starting with http:// or https://", http.StatusBadRequest
	case errors.Is(err, summarizer.ErrUnknownProvider):
		return "Unknown provider. Choose OpenAI, OpenRouter or Ollama.", http.StatusBadRequest
	case errors.Is(err, summarizer.ErrMissingAPIKey):
		return "API key not found. Please enter your key for the selected provider.", http.StatusBadRequest
	}

	if scraped {
		return fmt.Sprintf("Error generating summary: %v", err), http.StatusBadGateway
	}

	switch scraper.KindOf(err) {
	case scraper.KindParse:
		return fmt.Sprintf("Parsing error: %v", err), http.StatusUnprocessableEntity
	default:
		return fmt.Sprintf("Network error: %v", err), http.StatusBadGateway
	}
}
