package tmdb

import "github.com/heartmarshall/moviedeck-backend/internal/provider"

// genreListResponse is the body of /genre/movie/list.
type genreListResponse struct {
	Genres []provider.Genre `json:"genres"`
}
