package domain

import "time"

// Testimony is a user-authored faith-experience post. A nil UserID means the
// post has no resolvable author and renders as anonymous.
type Testimony struct {
	ID          int64
	UserID      *int64
	Content     string
	IsAnonymous bool
	ImageURL    *string
	CreatedAt   time.Time
}
