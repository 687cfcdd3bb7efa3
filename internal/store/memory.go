package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"fellowship-server/internal/domain"
)

// MemStore keeps every collection in process memory. A single mutex guards
// the maps and the id counters so concurrent creates never reuse an id.
type MemStore struct {
	mu sync.Mutex

	users         map[int64]domain.User
	testimonies   map[int64]domain.Testimony
	donations     map[int64]domain.Donation
	savedContents map[int64]domain.SavedContent

	nextUserID         int64
	nextTestimonyID    int64
	nextDonationID     int64
	nextSavedContentID int64

	now func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:              make(map[int64]domain.User),
		testimonies:        make(map[int64]domain.Testimony),
		donations:          make(map[int64]domain.Donation),
		savedContents:      make(map[int64]domain.SavedContent),
		nextUserID:         1,
		nextTestimonyID:    1,
		nextDonationID:     1,
		nextSavedContentID: 1,
		now:                time.Now,
	}
}

var _ Store = (*MemStore)(nil)

func (s *MemStore) CreateUser(user domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.nextUserID
	s.nextUserID++
	user.CreatedAt = s.now().UTC()
	s.users[user.ID] = user
	return user
}

func (s *MemStore) UserByID(id int64) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[id]; ok {
		return &user
	}
	return nil
}

func (s *MemStore) UserByUsername(username string) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Username, username) {
			u := user
			return &u
		}
	}
	return nil
}

func (s *MemStore) UserByEmail(email string) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u
		}
	}
	return nil
}

func (s *MemStore) CreateTestimony(testimony domain.Testimony) domain.Testimony {
	s.mu.Lock()
	defer s.mu.Unlock()

	testimony.ID = s.nextTestimonyID
	s.nextTestimonyID++
	testimony.CreatedAt = s.now().UTC()
	s.testimonies[testimony.ID] = testimony
	return testimony
}

func (s *MemStore) TestimonyByID(id int64) *domain.Testimony {
	s.mu.Lock()
	defer s.mu.Unlock()

	if testimony, ok := s.testimonies[id]; ok {
		return &testimony
	}
	return nil
}

// Testimonies returns testimonies newest-first. A limit of zero or less
// returns the full list.
func (s *MemStore) Testimonies(limit int) []domain.Testimony {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]domain.Testimony, 0, len(s.testimonies))
	for _, testimony := range s.testimonies {
		list = append(list, testimony)
	}
	sortNewestFirst(list, func(t domain.Testimony) (time.Time, int64) { return t.CreatedAt, t.ID })

	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func (s *MemStore) TestimoniesByUser(userID int64) []domain.Testimony {
	s.mu.Lock()
	defer s.mu.Unlock()

	var list []domain.Testimony
	for _, testimony := range s.testimonies {
		if testimony.UserID != nil && *testimony.UserID == userID {
			list = append(list, testimony)
		}
	}
	sortNewestFirst(list, func(t domain.Testimony) (time.Time, int64) { return t.CreatedAt, t.ID })
	return list
}

func (s *MemStore) CreateDonation(donation domain.Donation) domain.Donation {
	s.mu.Lock()
	defer s.mu.Unlock()

	donation.ID = s.nextDonationID
	s.nextDonationID++
	donation.CreatedAt = s.now().UTC()
	s.donations[donation.ID] = donation
	return donation
}

func (s *MemStore) DonationsByUser(userID int64) []domain.Donation {
	s.mu.Lock()
	defer s.mu.Unlock()

	var list []domain.Donation
	for _, donation := range s.donations {
		if donation.UserID != nil && *donation.UserID == userID {
			list = append(list, donation)
		}
	}
	sortNewestFirst(list, func(d domain.Donation) (time.Time, int64) { return d.CreatedAt, d.ID })
	return list
}

func (s *MemStore) CreateSavedContent(content domain.SavedContent) domain.SavedContent {
	s.mu.Lock()
	defer s.mu.Unlock()

	content.ID = s.nextSavedContentID
	s.nextSavedContentID++
	content.CreatedAt = s.now().UTC()
	s.savedContents[content.ID] = content
	return content
}

func (s *MemStore) SavedContentByID(id int64) *domain.SavedContent {
	s.mu.Lock()
	defer s.mu.Unlock()

	if content, ok := s.savedContents[id]; ok {
		return &content
	}
	return nil
}

func (s *MemStore) SavedContentsByUser(userID int64) []domain.SavedContent {
	s.mu.Lock()
	defer s.mu.Unlock()

	var list []domain.SavedContent
	for _, content := range s.savedContents {
		if content.UserID != nil && *content.UserID == userID {
			list = append(list, content)
		}
	}
	sortNewestFirst(list, func(c domain.SavedContent) (time.Time, int64) { return c.CreatedAt, c.ID })
	return list
}

func (s *MemStore) DeleteSavedContent(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.savedContents[id]; !ok {
		return false
	}
	delete(s.savedContents, id)
	return true
}

// sortNewestFirst orders by creation time descending, breaking timestamp ties
// by id so ordering stays deterministic for records created within the same
// clock tick.
func sortNewestFirst[T any](list []T, key func(T) (time.Time, int64)) {
	sort.Slice(list, func(i, j int) bool {
		ti, idi := key(list[i])
		tj, idj := key(list[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return idi > idj
	})
}
