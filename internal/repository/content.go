package repository

import (
	"context"
	"time"

	"fellowship-server/internal/domain"
)

// ContentRepository serves the read-mostly catalog of devotionals and events.
type ContentRepository interface {
	Init(ctx context.Context) error
	DevotionalForDate(ctx context.Context, date time.Time) (*domain.Devotional, error)
	ListDevotionals(ctx context.Context, limit int) ([]domain.Devotional, error)
	UpcomingEvents(ctx context.Context, now time.Time) ([]domain.Event, error)
}
