package model

import "time"

// Purchase records that a user bought a course. The (user_id, course_id)
// pair is unique at the database level.
type Purchase struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
