package service

import (
	"context"
	"strings"

	"fellowship-server/internal/domain"
	"fellowship-server/internal/store"
)

// SavedContentInput carries the fields accepted when bookmarking content.
type SavedContentInput struct {
	ContentType string
	ContentID   string
	Title       string
	Thumbnail   *string
}

// LibraryService manages a member's saved content.
type LibraryService interface {
	Save(ctx context.Context, userID int64, input SavedContentInput) (*domain.SavedContent, error)
	List(ctx context.Context, userID int64) ([]domain.SavedContent, error)
	Delete(ctx context.Context, userID, id int64) error
}

type libraryService struct {
	store store.Store
}

func NewLibraryService(st store.Store) LibraryService {
	return &libraryService{store: st}
}

func (s *libraryService) Save(ctx context.Context, userID int64, input SavedContentInput) (*domain.SavedContent, error) {
	if strings.TrimSpace(input.ContentType) == "" {
		return nil, validationError("contentType is required")
	}
	if strings.TrimSpace(input.ContentID) == "" {
		return nil, validationError("contentId is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, validationError("title is required")
	}

	content := s.store.CreateSavedContent(domain.SavedContent{
		UserID:      &userID,
		ContentType: input.ContentType,
		ContentID:   input.ContentID,
		Title:       input.Title,
		Thumbnail:   input.Thumbnail,
	})
	return &content, nil
}

func (s *libraryService) List(ctx context.Context, userID int64) ([]domain.SavedContent, error) {
	return s.store.SavedContentsByUser(userID), nil
}

// Delete removes a saved record. A record owned by someone else is reported
// as not found, so ids cannot be probed across accounts.
func (s *libraryService) Delete(ctx context.Context, userID, id int64) error {
	content := s.store.SavedContentByID(id)
	if content == nil || content.UserID == nil || *content.UserID != userID {
		return ErrNotFound
	}
	s.store.DeleteSavedContent(id)
	return nil
}
