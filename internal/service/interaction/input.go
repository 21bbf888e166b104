package interaction

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/moviedeck-backend/internal/domain"
)

// RateInput holds the parameters for rating a movie.
type RateInput struct {
	TMDBID int64
	Rating *int
}

// Validate checks all fields and collects all errors.
func (i RateInput) Validate() error {
	var errs []domain.FieldError

	errs = appendTMDBIDError(errs, i.TMDBID)
	if i.Rating == nil {
		errs = append(errs, domain.FieldError{Field: "rating", Message: "rating is required"})
	} else if err := domain.ValidateRating("rating", *i.Rating); err != nil {
		errs = append(errs, fieldErrors(err)...)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ReviewInput holds the parameters for submitting a review.
type ReviewInput struct {
	TMDBID  int64
	Rating  *int
	Comment string
}

// Validate checks all fields and collects all errors.
func (i ReviewInput) Validate() error {
	var errs []domain.FieldError

	errs = appendTMDBIDError(errs, i.TMDBID)
	if i.Rating == nil {
		errs = append(errs, domain.FieldError{Field: "rating", Message: "score is required"})
	} else if err := domain.ValidateReviewRating("rating", *i.Rating); err != nil {
		errs = append(errs, fieldErrors(err)...)
	}
	if utf8.RuneCountInString(strings.TrimSpace(i.Comment)) > domain.MaxReviewCommentLength {
		errs = append(errs, domain.FieldError{Field: "comment", Message: "max 5000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateReviewInput holds the parameters for editing a review.
type UpdateReviewInput struct {
	ReviewID uuid.UUID
	Rating   *int    // nil = don't change
	Comment  *string // nil = don't change
}

// Validate checks all fields and collects all errors.
func (i UpdateReviewInput) Validate() error {
	var errs []domain.FieldError

	if i.ReviewID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "review_id", Message: "required"})
	}
	if i.Rating == nil && i.Comment == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Rating != nil {
		if err := domain.ValidateReviewRating("rating", *i.Rating); err != nil {
			errs = append(errs, fieldErrors(err)...)
		}
	}
	if i.Comment != nil {
		comment := strings.TrimSpace(*i.Comment)
		if comment == "" {
			errs = append(errs, domain.FieldError{Field: "comment", Message: "comment is required"})
		}
		if utf8.RuneCountInString(comment) > domain.MaxReviewCommentLength {
			errs = append(errs, domain.FieldError{Field: "comment", Message: "max 5000 characters"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CommentInput holds the parameters for commenting on a review.
type CommentInput struct {
	ReviewID uuid.UUID
	Content  string
}

// Validate checks all fields and collects all errors.
func (i CommentInput) Validate() error {
	var errs []domain.FieldError

	if i.ReviewID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "review_id", Message: "required"})
	}
	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "content is required"})
	}
	if utf8.RuneCountInString(content) > domain.MaxCommentLength {
		errs = append(errs, domain.FieldError{Field: "content", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func appendTMDBIDError(errs []domain.FieldError, tmdbID int64) []domain.FieldError {
	if tmdbID <= 0 {
		return append(errs, domain.FieldError{Field: "movie_id", Message: "must be a positive integer"})
	}
	return errs
}

func fieldErrors(err error) []domain.FieldError {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Errors
	}
	return []domain.FieldError{{Field: "input", Message: err.Error()}}
}
