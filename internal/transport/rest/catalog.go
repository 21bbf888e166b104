package rest

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
	"github.com/heartmarshall/moviedeck-backend/internal/provider"
	"github.com/heartmarshall/moviedeck-backend/internal/service/catalog"
)

type catalogService interface {
	Popular(ctx context.Context, page int) (*provider.MoviePage, error)
	Search(ctx context.Context, input catalog.SearchInput) (*provider.MoviePage, error)
	Category(ctx context.Context, input catalog.CategoryInput) (*provider.MoviePage, error)
	Details(ctx context.Context, tmdbID int64) (*provider.MovieDetails, error)
	Genres(ctx context.Context) ([]provider.Genre, error)
	Languages(ctx context.Context) ([]provider.Language, error)
}

// CatalogHandler serves the public catalog endpoints. Catalog results are
// passed through in the external catalog's JSON shape.
type CatalogHandler struct {
	errorWriter
	svc catalogService
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		errorWriter: errorWriter{log: logger.With("handler", "catalog")},
		svc:         svc,
	}
}

// Popular handles GET /api/movie/popular?page=.
func (h *CatalogHandler) Popular(w http.ResponseWriter, r *http.Request) {
	page, err := queryPage(r)
	if err != nil {
		h.handleListError(w, r, err)
		return
	}

	result, err := h.svc.Popular(r.Context(), page)
	if err != nil {
		h.handleListError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Search handles GET /api/movie/search?query=&page=.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, err := queryPage(r)
	if err != nil {
		h.handleListError(w, r, err)
		return
	}

	result, err := h.svc.Search(r.Context(), catalog.SearchInput{
		Query: r.URL.Query().Get("query"),
		Page:  page,
	})
	if err != nil {
		h.handleListError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Category handles GET /api/movie/category/{category}.
func (h *CatalogHandler) Category(w http.ResponseWriter, r *http.Request) {
	input, err := parseCategoryInput(r)
	if err != nil {
		h.handleListError(w, r, err)
		return
	}

	result, err := h.svc.Category(r.Context(), input)
	if err != nil {
		h.handleListError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Details handles GET /api/movie/{id}.
func (h *CatalogHandler) Details(w http.ResponseWriter, r *http.Request) {
	id, err := pathTMDBID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	details, err := h.svc.Details(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// Genres handles GET /api/movie/genres.
func (h *CatalogHandler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.svc.Genres(r.Context())
	if err != nil {
		h.handleListError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"genres": genres})
}

// Languages handles GET /api/movie/languages.
func (h *CatalogHandler) Languages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.svc.Languages(r.Context())
	if err != nil {
		h.handleListError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, languages)
}

// parseCategoryInput reads the category listing filters. Only syntax is
// checked here.
func parseCategoryInput(r *http.Request) (catalog.CategoryInput, error) {
	q := r.URL.Query()
	input := catalog.CategoryInput{
		Category:         domain.Category(r.PathValue("category")),
		OriginalLanguage: strings.TrimSpace(q.Get("with_original_language")),
		Region:           strings.ToUpper(strings.TrimSpace(q.Get("region"))),
	}

	var errs []domain.FieldError

	page, err := queryPage(r)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "page", Message: "must be an integer"})
	}
	input.Page = page

	if raw := strings.TrimSpace(q.Get("with_genres")); raw != "" {
		input.Genres, input.GenresAny, errs = parseGenres(raw, errs)
	}

	input.VoteAverageGTE, errs = parseFloatParam(q.Get("vote_average_gte"), "vote_average_gte", errs)
	input.VoteAverageLTE, errs = parseFloatParam(q.Get("vote_average_lte"), "vote_average_lte", errs)

	if len(errs) > 0 {
		return catalog.CategoryInput{}, &domain.ValidationError{Errors: errs}
	}
	return input, nil
}

// parseGenres reads a genre list joined by "," (all must match) or by "|"
// (any may match). Mixing both separators is ambiguous and rejected.
func parseGenres(raw string, errs []domain.FieldError) ([]int, bool, []domain.FieldError) {
	sep := ","
	if strings.Contains(raw, "|") {
		if strings.Contains(raw, ",") {
			return nil, false, append(errs, domain.FieldError{Field: "with_genres", Message: "must not mix ',' and '|' separators"})
		}
		sep = "|"
	}

	var ids []int
	for _, part := range strings.Split(raw, sep) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, false, append(errs, domain.FieldError{Field: "with_genres", Message: "must be a ',' or '|' separated list of genre ids"})
		}
		ids = append(ids, id)
	}
	return ids, sep == "|", errs
}

func parseFloatParam(raw, field string, errs []domain.FieldError) (*float64, []domain.FieldError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errs
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, append(errs, domain.FieldError{Field: field, Message: "must be a number"})
	}
	return &v, errs
}
