package response

import (
	"time"

	"movie-review/internal/data/entity"
)

type ReviewResponse struct {
	ID        int64
	Point     int
	Comment   string
	UserID    int64
	UserName  string
	CreatedAt time.Time
}

// Helper converter
func ReviewToResponse(review *entity.ReviewWithUser) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		Point:     review.Point,
		Comment:   review.Comment,
		UserID:    review.UserID,
		UserName:  review.UserName,
		CreatedAt: review.CreatedAt,
	}
}
