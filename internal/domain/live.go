package domain

import "time"

// Video describes a published sermon recording.
type Video struct {
	ID           string
	Title        string
	Thumbnail    string
	ChannelTitle string
	PublishedAt  time.Time
	Duration     string
}

// LiveStatus reports whether the channel is currently streaming.
type LiveStatus struct {
	IsLive      bool
	VideoID     *string
	Title       *string
	ViewerCount *int
}
