package live

import (
	"context"
	"time"

	"fellowship-server/internal/domain"
)

// StatusProvider answers whether the channel is streaming and what sermons
// were published recently. Backed by a real YouTube Data API client in
// production; the static provider below ships until an API key is wired in.
type StatusProvider interface {
	LiveStatus(ctx context.Context) (domain.LiveStatus, error)
	RecentVideos(ctx context.Context, limit int) ([]domain.Video, error)
}

// StaticProvider serves fixture data. Live status follows the Sunday service
// schedule instead of pretending to always be on air.
type StaticProvider struct {
	Now func() time.Time
}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{Now: time.Now}
}

var _ StatusProvider = (*StaticProvider)(nil)

var sermonLibrary = []domain.Video{
	{
		ID:           "video1",
		Title:        "Sunday Service: The Power of Faith",
		Thumbnail:    "https://images.unsplash.com/photo-1616849540498-78bb2c54d29b?w=800&h=450&auto=format&fit=crop&q=80",
		ChannelTitle: "Grace Fellowship",
		PublishedAt:  time.Date(2023, time.April, 30, 10, 0, 0, 0, time.UTC),
		Duration:     "42:15",
	},
	{
		ID:           "video2",
		Title:        "Finding Your Purpose in Christ",
		Thumbnail:    "https://images.unsplash.com/photo-1593111774240-d529f12cf4bb?w=300&h=200&auto=format&fit=crop&q=80",
		ChannelTitle: "Grace Fellowship",
		PublishedAt:  time.Date(2023, time.April, 23, 10, 0, 0, 0, time.UTC),
		Duration:     "38:50",
	},
	{
		ID:           "video3",
		Title:        "Overcoming Life's Challenges through Prayer",
		Thumbnail:    "https://images.unsplash.com/photo-1585485673520-3254c058b414?w=300&h=200&auto=format&fit=crop&q=80",
		ChannelTitle: "Grace Fellowship",
		PublishedAt:  time.Date(2023, time.April, 16, 10, 0, 0, 0, time.UTC),
		Duration:     "45:22",
	},
}

func (p *StaticProvider) LiveStatus(ctx context.Context) (domain.LiveStatus, error) {
	now := p.Now()
	// Service streams Sunday mornings, 9am to noon local time.
	if now.Weekday() == time.Sunday && now.Hour() >= 9 && now.Hour() < 12 {
		videoID := "live1"
		title := "Sunday Service: The Power of Faith"
		viewers := 245
		return domain.LiveStatus{
			IsLive:      true,
			VideoID:     &videoID,
			Title:       &title,
			ViewerCount: &viewers,
		}, nil
	}
	return domain.LiveStatus{}, nil
}

func (p *StaticProvider) RecentVideos(ctx context.Context, limit int) ([]domain.Video, error) {
	videos := make([]domain.Video, len(sermonLibrary))
	copy(videos, sermonLibrary)
	if limit > 0 && limit < len(videos) {
		videos = videos[:limit]
	}
	return videos, nil
}
