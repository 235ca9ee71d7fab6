package models

import "time"

type Blog struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time

	// AuthorUsername is populated on reads by joining users; it is not a
	// column of the blogs table.
	AuthorUsername string
}
