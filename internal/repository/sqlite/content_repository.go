package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fellowship-server/internal/domain"
	"fellowship-server/internal/repository"
)

const createDevotionalsTable = `
CREATE TABLE IF NOT EXISTS devotionals (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	verse_ref TEXT NOT NULL,
	verse_text TEXT NOT NULL,
	body TEXT NOT NULL,
	image_url TEXT
);
`

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	location TEXT NOT NULL,
	starts_at DATETIME NOT NULL,
	ends_at DATETIME NOT NULL,
	description TEXT NOT NULL
);
`

const dateLayout = "2006-01-02"

// ContentRepository stores the devotional and event catalog in sqlite.
type ContentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) repository.ContentRepository {
	return &ContentRepository{db: db}
}

// Init creates the tables and seeds the catalog when it is empty.
func (r *ContentRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createDevotionalsTable); err != nil {
		return fmt.Errorf("create devotionals table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createEventsTable); err != nil {
		return fmt.Errorf("create events table: %w", err)
	}
	if err := r.seedDevotionals(ctx); err != nil {
		return err
	}
	return r.seedEvents(ctx)
}

func (r *ContentRepository) DevotionalForDate(ctx context.Context, date time.Time) (*domain.Devotional, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, date, title, verse_ref, verse_text, body, image_url
FROM devotionals
WHERE date = ?`,
		date.Format(dateLayout),
	)
	devotional, err := scanDevotional(row)
	if err == nil {
		return devotional, nil
	}

	// No entry for the day: fall back to the most recent one.
	row = r.db.QueryRowContext(ctx, `
SELECT id, date, title, verse_ref, verse_text, body, image_url
FROM devotionals
ORDER BY date DESC
LIMIT 1`)
	return scanDevotional(row)
}

func (r *ContentRepository) ListDevotionals(ctx context.Context, limit int) ([]domain.Devotional, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, date, title, verse_ref, verse_text, body, image_url
FROM devotionals
ORDER BY date DESC
LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list devotionals: %w", err)
	}
	defer rows.Close()

	var devotionals []domain.Devotional
	for rows.Next() {
		devotional, err := scanDevotional(rows)
		if err != nil {
			return nil, err
		}
		devotionals = append(devotionals, *devotional)
	}
	return devotionals, rows.Err()
}

func (r *ContentRepository) UpcomingEvents(ctx context.Context, now time.Time) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, location, starts_at, ends_at, description
FROM events
WHERE ends_at >= ?
ORDER BY starts_at ASC`,
		now.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Location,
			&event.StartsAt,
			&event.EndsAt,
			&event.Description,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func scanDevotional(row interface {
	Scan(dest ...any) error
}) (*domain.Devotional, error) {
	var devotional domain.Devotional
	var date string
	var imageURL sql.NullString
	if err := row.Scan(
		&devotional.ID,
		&date,
		&devotional.Title,
		&devotional.VerseRef,
		&devotional.VerseText,
		&devotional.Body,
		&imageURL,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("devotional not found")
		}
		return nil, fmt.Errorf("scan devotional: %w", err)
	}
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("parse devotional date: %w", err)
	}
	devotional.Date = parsed
	if imageURL.Valid {
		devotional.ImageURL = &imageURL.String
	}
	return &devotional, nil
}

func (r *ContentRepository) seedDevotionals(ctx context.Context) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM devotionals`).Scan(&count); err != nil {
		return fmt.Errorf("count devotionals: %w", err)
	}
	if count > 0 {
		return nil
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	image := "https://images.unsplash.com/photo-1603378517858-7cae1c080887?w=800&h=400&auto=format&fit=crop&q=80"
	seeds := []domain.Devotional{
		{
			Date:      today,
			Title:     "Finding Peace in God's Presence",
			VerseRef:  "Jeremiah 29:11",
			VerseText: "For I know the plans I have for you, declares the LORD, plans to prosper you and not to harm you, plans to give you hope and a future.",
			Body:      "In today's fast-paced world, finding moments of peace can seem impossible. But scripture teaches us that true peace comes from spending time in God's presence...",
			ImageURL:  &image,
		},
		{
			Date:      today.AddDate(0, 0, -1),
			Title:     "Strength for the Journey",
			VerseRef:  "Philippians 4:13",
			VerseText: "I can do all things through Christ who strengthens me.",
			Body:      "Every journey has stretches that feel too long to walk alone. Paul wrote from prison, yet his confidence was not in circumstances...",
		},
		{
			Date:      today.AddDate(0, 0, -2),
			Title:     "A Heart of Gratitude",
			VerseRef:  "1 Thessalonians 5:18",
			VerseText: "Give thanks in all circumstances; for this is the will of God in Christ Jesus for you.",
			Body:      "Gratitude is not a reaction to getting what we want. It is a discipline that reshapes how we see what we already have...",
		},
	}

	for _, seed := range seeds {
		var imageURL any
		if seed.ImageURL != nil {
			imageURL = *seed.ImageURL
		}
		_, err := r.db.ExecContext(ctx, `
INSERT INTO devotionals (date, title, verse_ref, verse_text, body, image_url)
VALUES (?, ?, ?, ?, ?, ?)`,
			seed.Date.Format(dateLayout),
			seed.Title,
			seed.VerseRef,
			seed.VerseText,
			seed.Body,
			imageURL,
		)
		if err != nil {
			return fmt.Errorf("seed devotional: %w", err)
		}
	}
	return nil
}

func (r *ContentRepository) seedEvents(ctx context.Context) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return fmt.Errorf("count events: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	seeds := []domain.Event{
		{
			Title:       "Special Prayer Night",
			Location:    "Main Sanctuary",
			StartsAt:    now.AddDate(0, 0, 3).Truncate(time.Hour),
			EndsAt:      now.AddDate(0, 0, 3).Truncate(time.Hour).Add(2 * time.Hour),
			Description: "An evening of intercession and worship.",
		},
		{
			Title:       "Baptism Sunday",
			Location:    "Main Sanctuary",
			StartsAt:    now.AddDate(0, 0, 10).Truncate(time.Hour),
			EndsAt:      now.AddDate(0, 0, 10).Truncate(time.Hour).Add(2 * time.Hour),
			Description: "Celebrating new believers taking the next step.",
		},
		{
			Title:       "Annual Bible Conference",
			Location:    "Fellowship Hall",
			StartsAt:    now.AddDate(0, 0, 24).Truncate(time.Hour),
			EndsAt:      now.AddDate(0, 0, 24).Truncate(time.Hour).Add(7 * time.Hour),
			Description: "A full day in the Word with guest speakers.",
		},
	}

	for _, seed := range seeds {
		_, err := r.db.ExecContext(ctx, `
INSERT INTO events (title, location, starts_at, ends_at, description)
VALUES (?, ?, ?, ?, ?)`,
			seed.Title,
			seed.Location,
			seed.StartsAt,
			seed.EndsAt,
			seed.Description,
		)
		if err != nil {
			return fmt.Errorf("seed event: %w", err)
		}
	}
	return nil
}
