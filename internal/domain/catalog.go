package domain

import "time"

// Devotional is a dated reading with its verse of the day.
type Devotional struct {
	ID        int64
	Date      time.Time
	Title     string
	VerseRef  string
	VerseText string
	Body      string
	ImageURL  *string
}

// Event is an upcoming gathering announced to the community.
type Event struct {
	ID          int64
	Title       string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
	Description string
}
