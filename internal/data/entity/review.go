package entity

type Review struct {
	Base
	Point   int    `db:"point"`
	Comment string `db:"comment"`
	MovieID int64  `db:"movie_id"`
	UserID  int64  `db:"user_id"`
}

// ReviewWithUser is a review joined with its author's name.
type ReviewWithUser struct {
	Review
	UserName string `db:"user_name"`
}
