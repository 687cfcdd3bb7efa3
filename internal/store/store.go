package store

import "fellowship-server/internal/domain"

// Store holds the engagement entities. Lookups report absence with a nil
// result; creates assign the next sequential id per entity type and stamp the
// creation time server-side.
type Store interface {
	CreateUser(user domain.User) domain.User
	UserByID(id int64) *domain.User
	UserByUsername(username string) *domain.User
	UserByEmail(email string) *domain.User

	CreateTestimony(testimony domain.Testimony) domain.Testimony
	TestimonyByID(id int64) *domain.Testimony
	Testimonies(limit int) []domain.Testimony
	TestimoniesByUser(userID int64) []domain.Testimony

	CreateDonation(donation domain.Donation) domain.Donation
	DonationsByUser(userID int64) []domain.Donation

	CreateSavedContent(content domain.SavedContent) domain.SavedContent
	SavedContentByID(id int64) *domain.SavedContent
	SavedContentsByUser(userID int64) []domain.SavedContent
	DeleteSavedContent(id int64) bool
}
