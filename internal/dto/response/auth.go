package response

import (
	"movie-review/internal/data/entity"
)

// UserResponse is the public view of a user; it never carries the hash.
type UserResponse struct {
	ID    int64
	Name  string
	Email string
}

func UserToResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
