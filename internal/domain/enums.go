package domain

// MembershipKind names one of the four independent per-user movie sets.
type MembershipKind string

const (
	MembershipWatchlist MembershipKind = "watchlist"
	MembershipFavorites MembershipKind = "favorites"
	MembershipWatched   MembershipKind = "watched"
	MembershipLikes     MembershipKind = "likes"
)

func (k MembershipKind) String() string { return string(k) }

func (k MembershipKind) IsValid() bool {
	switch k {
	case MembershipWatchlist, MembershipFavorites, MembershipWatched, MembershipLikes:
		return true
	}
	return false
}

// AllMembershipKinds lists every membership set in display order.
func AllMembershipKinds() []MembershipKind {
	return []MembershipKind{MembershipWatchlist, MembershipFavorites, MembershipWatched, MembershipLikes}
}

// Category is a curated catalog listing.
type Category string

const (
	CategoryPopular    Category = "popular"
	CategoryTopRated   Category = "top-rated"
	CategoryUpcoming   Category = "upcoming"
	CategoryNowPlaying Category = "now-playing"
)

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryPopular, CategoryTopRated, CategoryUpcoming, CategoryNowPlaying:
		return true
	}
	return false
}

// UserReviewKind distinguishes written reviews from bare ratings in the
// merged "my reviews" listing.
type UserReviewKind string

const (
	UserReviewKindReview UserReviewKind = "review"
	UserReviewKindRating UserReviewKind = "rating"
)
