package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error   string          `json:"error"`
	Details []fieldResponse `json:"details,omitempty"`
	Results *[]struct{}     `json:"results,omitempty"`
}

type fieldResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads a bounded JSON body into dst. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			return domain.NewValidationError("body", "request body too large")
		case errors.Is(err, io.EOF):
			return domain.NewValidationError("body", "request body is required")
		default:
			return domain.NewValidationError("body", "invalid JSON")
		}
	}
	return nil
}

// errorWriter maps service errors to HTTP responses.
type errorWriter struct {
	log *slog.Logger
}

func (e errorWriter) handleError(w http.ResponseWriter, r *http.Request, err error) {
	e.respond(w, r, err, false)
}

// handleListError is handleError for list endpoints: upstream failures still
// carry an empty results array.
func (e errorWriter) handleListError(w http.ResponseWriter, r *http.Request, err error) {
	e.respond(w, r, err, true)
}

func (e errorWriter) respond(w http.ResponseWriter, r *http.Request, err error, list bool) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		resp := errorResponse{Error: ve.Error(), Details: make([]fieldResponse, 0, len(ve.Errors))}
		if len(ve.Errors) == 1 {
			resp.Error = ve.Errors[0].Message
		}
		for _, fe := range ve.Errors {
			resp.Details = append(resp.Details, fieldResponse{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, domain.ErrUsernameTaken):
		writeError(w, http.StatusBadRequest, "username already exists")
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "email already exists")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusBadRequest, "already exists")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrMovieNotFound):
		writeError(w, http.StatusNotFound, "movie not found")
	case errors.Is(err, domain.ErrReviewNotFound):
		writeError(w, http.StatusNotFound, "review not found")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUpstream):
		e.log.WarnContext(r.Context(), "catalog unavailable", slog.String("error", err.Error()))
		resp := errorResponse{Error: "movie catalog unavailable"}
		if list {
			resp.Results = &[]struct{}{}
		}
		writeJSON(w, http.StatusBadGateway, resp)
	default:
		e.log.ErrorContext(r.Context(), "internal error",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// ---------------------------------------------------------------------------
// Parameter parsing
// ---------------------------------------------------------------------------

// pathTMDBID reads the {id} path value as a positive catalog id.
func pathTMDBID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}

// pathUUID reads the {id} path value as a uuid.
func pathUUID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", "must be a valid id")
	}
	return id, nil
}

// queryPage reads ?page=, defaulting to 1. Range checks belong to the service.
func queryPage(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("page"))
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError("page", "must be an integer")
	}
	return page, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
