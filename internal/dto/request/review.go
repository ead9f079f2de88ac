package request

// CreateReviewRequest is the review form. The author is never read from the
// form; it always comes from the session. MovieID is accepted but the route
// parameter is authoritative.
type CreateReviewRequest struct {
	MovieID string `form:"movie_id"`
	Point   string `form:"point" validate:"required,notblank,oneof=1 2 3 4 5"`
	Comment string `form:"comment" validate:"required,notblank"`
}
