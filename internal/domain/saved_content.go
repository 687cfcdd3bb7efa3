package domain

import "time"

// SavedContent links a user to an external content item such as a sermon
// video or a devotional.
type SavedContent struct {
	ID          int64
	UserID      *int64
	ContentType string
	ContentID   string
	Title       string
	Thumbnail   *string
	CreatedAt   time.Time
}
