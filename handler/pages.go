package handler

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"brieftube/auth"
	"brieftube/storage"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages serves the owner-scoped summary views: the list, the details page
// and, when a vector store is configured, semantic search.
type Pages struct {
	summaryRepo storage.SummaryRepository
	vectorRepo  storage.VectorRepository
	sessions    *auth.Sessions
	templates   *template.Template
	logger      *slog.Logger
}

func NewPages(summaryRepo storage.SummaryRepository, vectorRepo storage.VectorRepository, sessions *auth.Sessions, logger *slog.Logger) *Pages {
	return &Pages{
		summaryRepo: summaryRepo,
		vectorRepo:  vectorRepo,
		sessions:    sessions,
		templates:   template.Must(template.ParseFS(templateFS, "templates/*.html")),
		logger:      logger,
	}
}

func (p *Pages) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		Error(w, http.StatusMethodNotAllowed, "Invalid request method")
		return
	}

	head, tail := ShiftPath(r.URL.Path)
	switch head {
	case "":
		p.List(w, r)
	case "summary-details":
		id, _ := ShiftPath(tail)
		p.Details(w, r, id)
	case "search":
		p.Search(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (p *Pages) List(w http.ResponseWriter, r *http.Request) {
	session, err := p.sessions.FromRequest(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	summaries, err := p.summaryRepo.FindByOwner(session.Owner)
	if err != nil {
		p.logger.Error("could not list summaries", slog.String("error", err.Error()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	p.render(w, "all-summaries.html", map[string]any{
		"VideoSummaries": summaries,
	})
}

func (p *Pages) Details(w http.ResponseWriter, r *http.Request, rawID string) {
	session, err := p.sessions.FromRequest(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	summary, err := p.summaryRepo.FindByOwnerAndID(session.Owner, id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		p.logger.Error("could not fetch summary", slog.String("error", err.Error()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	p.render(w, "summary-details.html", map[string]any{
		"VideoSummary": summary,
	})
}

func (p *Pages) Search(w http.ResponseWriter, r *http.Request) {
	session, err := p.sessions.FromRequest(r)
	if err != nil {
		Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if p.vectorRepo == nil {
		Error(w, http.StatusNotFound, "Search is not available")
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		Error(w, http.StatusBadRequest, "Missing query")
		return
	}
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 50 {
			limit = parsed
		}
	}

	summaries, err := p.vectorRepo.Search(r.Context(), session.Owner, query, limit)
	if err != nil {
		p.logger.Error("search failed", slog.String("error", err.Error()))
		Error(w, http.StatusInternalServerError, "Search failed")
		return
	}

	type respSummary struct {
		ID         string `json:"id"`
		Title      string `json:"title"`
		SourceLink string `json:"source_link"`
		Summary    string `json:"summary"`
	}
	resp := make([]respSummary, 0, len(summaries))
	for _, summary := range summaries {
		resp = append(resp, respSummary{
			ID:         summary.ID.String(),
			Title:      summary.Title,
			SourceLink: summary.SourceLink,
			Summary:    summary.SummaryText,
		})
	}

	JSON(w, http.StatusOK, resp)
}

func (p *Pages) render(w http.ResponseWriter, name string, data map[string]any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.templates.ExecuteTemplate(w, name, data); err != nil {
		p.logger.Error("could not render template", slog.String("template", name), slog.String("error", err.Error()))
	}
}
