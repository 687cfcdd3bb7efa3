package service

import (
	"context"
	"strings"

	"fellowship-server/internal/domain"
	"fellowship-server/internal/store"
)

// AnonymousDisplayName replaces the author on anonymous or ownerless posts.
const AnonymousDisplayName = "Anonymous"

// TestimonyInput carries the fields accepted when sharing a testimony.
type TestimonyInput struct {
	Content     string
	IsAnonymous bool
	ImageURL    *string
}

// AuthorView is the display data attached to a listed testimony.
type AuthorView struct {
	ID             int64
	DisplayName    string
	ProfilePicture *string
}

// TestimonyView is a testimony enriched with its author's display data.
type TestimonyView struct {
	domain.Testimony
	Author AuthorView
}

// CommunityService handles sharing and reading testimonies.
type CommunityService interface {
	ListTestimonies(ctx context.Context, limit int) ([]TestimonyView, error)
	Create(ctx context.Context, userID int64, input TestimonyInput) (*domain.Testimony, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Testimony, error)
}

type communityService struct {
	store store.Store
}

func NewCommunityService(st store.Store) CommunityService {
	return &communityService{store: st}
}

func (s *communityService) ListTestimonies(ctx context.Context, limit int) ([]TestimonyView, error) {
	testimonies := s.store.Testimonies(limit)

	views := make([]TestimonyView, len(testimonies))
	for i, testimony := range testimonies {
		views[i] = TestimonyView{Testimony: testimony, Author: s.resolveAuthor(testimony)}
	}
	return views, nil
}

// resolveAuthor looks up the owner's display data. Anonymous posts, posts
// without an owner and posts whose owner no longer resolves all render as
// Anonymous with no picture.
func (s *communityService) resolveAuthor(testimony domain.Testimony) AuthorView {
	anonymous := AuthorView{DisplayName: AnonymousDisplayName}
	if testimony.IsAnonymous || testimony.UserID == nil {
		return anonymous
	}
	user := s.store.UserByID(*testimony.UserID)
	if user == nil {
		return anonymous
	}
	return AuthorView{
		ID:             user.ID,
		DisplayName:    user.DisplayName,
		ProfilePicture: user.ProfilePicture,
	}
}

func (s *communityService) Create(ctx context.Context, userID int64, input TestimonyInput) (*domain.Testimony, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, validationError("content is required")
	}

	testimony := s.store.CreateTestimony(domain.Testimony{
		UserID:      &userID,
		Content:     input.Content,
		IsAnonymous: input.IsAnonymous,
		ImageURL:    input.ImageURL,
	})
	return &testimony, nil
}

func (s *communityService) ListByUser(ctx context.Context, userID int64) ([]domain.Testimony, error) {
	return s.store.TestimoniesByUser(userID), nil
}
