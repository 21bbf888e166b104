package catalog

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
)

// MaxPage is the highest page the external catalog serves.
const MaxPage = 500

var languageCode = regexp.MustCompile(`^[a-z]{2}$`)

// SearchInput holds the parameters for a title search.
type SearchInput struct {
	Query string
	Page  int
}

// Validate checks all fields and collects all errors.
func (i SearchInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Query) == "" {
		errs = append(errs, domain.FieldError{Field: "query", Message: "query is required"})
	}
	errs = appendPageError(errs, i.Page)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CategoryInput holds the parameters for a curated listing with optional
// discover filters.
type CategoryInput struct {
	Category         domain.Category
	Page             int
	Genres           []int
	GenresAny        bool
	VoteAverageGTE   *float64
	VoteAverageLTE   *float64
	OriginalLanguage string
	Region           string
}

// HasFilters reports whether any discover filter is set. Region alone does
// not count.
func (i CategoryInput) HasFilters() bool {
	return len(i.Genres) > 0 || i.VoteAverageGTE != nil || i.VoteAverageLTE != nil || i.OriginalLanguage != ""
}

// Validate checks all fields and collects all errors.
func (i CategoryInput) Validate() error {
	var errs []domain.FieldError

	if !i.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "must be one of popular, top-rated, upcoming, now-playing"})
	}
	errs = appendPageError(errs, i.Page)

	for _, g := range i.Genres {
		if g <= 0 {
			errs = append(errs, domain.FieldError{Field: "with_genres", Message: "genre ids must be positive"})
			break
		}
	}

	if i.VoteAverageGTE != nil && (*i.VoteAverageGTE < 0 || *i.VoteAverageGTE > 10) {
		errs = append(errs, domain.FieldError{Field: "vote_average_gte", Message: "must be between 0 and 10"})
	}
	if i.VoteAverageLTE != nil && (*i.VoteAverageLTE < 0 || *i.VoteAverageLTE > 10) {
		errs = append(errs, domain.FieldError{Field: "vote_average_lte", Message: "must be between 0 and 10"})
	}
	if i.VoteAverageGTE != nil && i.VoteAverageLTE != nil && *i.VoteAverageGTE > *i.VoteAverageLTE {
		errs = append(errs, domain.FieldError{Field: "vote_average_gte", Message: "must not exceed vote_average_lte"})
	}

	if i.OriginalLanguage != "" && !languageCode.MatchString(i.OriginalLanguage) {
		errs = append(errs, domain.FieldError{Field: "with_original_language", Message: "must be a two-letter lowercase language code"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func appendPageError(errs []domain.FieldError, page int) []domain.FieldError {
	if page < 1 || page > MaxPage {
		return append(errs, domain.FieldError{Field: "page", Message: "must be between 1 and 500"})
	}
	return errs
}
