package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fellowship-server/internal/domain"
	"fellowship-server/internal/live"
	"fellowship-server/internal/payment"
	"fellowship-server/internal/service"
	"fellowship-server/internal/session"
	"fellowship-server/internal/storage"
	"fellowship-server/internal/store"
)

type stubProcessor struct {
	receipt payment.Receipt
	err     error
	calls   int
}

func (s *stubProcessor) Initiate(ctx context.Context, req payment.Request) (payment.Receipt, error) {
	s.calls++
	if s.err != nil {
		return payment.Receipt{}, s.err
	}
	return s.receipt, nil
}

type stubContent struct{}

func (stubContent) Init(ctx context.Context) error { return nil }

func (stubContent) DevotionalForDate(ctx context.Context, date time.Time) (*domain.Devotional, error) {
	return &domain.Devotional{
		ID:        1,
		Date:      date,
		Title:     "Finding Peace in God's Presence",
		VerseRef:  "Jeremiah 29:11",
		VerseText: "For I know the plans I have for you...",
		Body:      "True peace comes from spending time in God's presence.",
	}, nil
}

func (c stubContent) ListDevotionals(ctx context.Context, limit int) ([]domain.Devotional, error) {
	devotional, _ := c.DevotionalForDate(ctx, time.Now())
	return []domain.Devotional{*devotional}, nil
}

func (stubContent) UpcomingEvents(ctx context.Context, now time.Time) ([]domain.Event, error) {
	return nil, nil
}

type testEnv struct {
	router    *gin.Engine
	store     *store.MemStore
	processor *stubProcessor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemStore()
	sessions := session.NewStore(time.Hour, time.Hour)
	processor := &stubProcessor{receipt: payment.Receipt{TransactionID: "MPESA-000042", Message: "Payment successful"}}

	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil))

	handler := NewHandler(
		service.NewUserService(st),
		service.NewCommunityService(st),
		service.NewGivingService(st, processor),
		service.NewLibraryService(st),
		stubContent{},
		live.NewStaticProvider(),
		storage.NewLocalService(t.TempDir(), "/media"),
		sessions,
		"test-secret",
		time.Second,
		logger,
	)

	router := gin.New()
	handler.RegisterRoutes(router)

	return &testEnv{router: router, store: st, processor: processor}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// register creates an account and returns its session cookies.
func (e *testEnv) register(t *testing.T, username string, profilePicture *string) []*http.Cookie {
	t.Helper()

	rr := e.do(t, http.MethodPost, "/api/register", map[string]any{
		"username":       username,
		"password":       "correct-horse",
		"email":          username + "@example.com",
		"displayName":    "Member " + username,
		"profilePicture": profilePicture,
	}, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	cookies := rr.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestRegisterLoginAndCurrentUser(t *testing.T) {
	env := newTestEnv(t)

	cookies := env.register(t, "grace", nil)

	rr := env.do(t, http.MethodGet, "/api/user", nil, cookies)
	require.Equal(t, http.StatusOK, rr.Code)
	user := decodeJSON[UserResponse](t, rr)
	assert.Equal(t, "grace", user.Username)
	assert.Equal(t, "Member grace", user.DisplayName)

	rr = env.do(t, http.MethodPost, "/api/login", map[string]any{"username": "grace", "password": "correct-horse"}, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodPost, "/api/login", map[string]any{"username": "grace", "password": "nope-nope-nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRegisterDuplicateUsernameCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "Grace", nil)

	rr := env.do(t, http.MethodPost, "/api/register", map[string]any{
		"username":    "grace",
		"password":    "correct-horse",
		"email":       "second@example.com",
		"displayName": "Second Grace",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "already taken")
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/testimonies", map[string]any{"content": "hello"}, nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, rr.Body.String())
	assert.Empty(t, env.store.Testimonies(0), "no record may be created without a session")

	for _, path := range []string{"/api/donations", "/api/saved-contents", "/api/testimonies/user", "/api/user"} {
		rr := env.do(t, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}

func TestTestimonyEnrichment(t *testing.T) {
	env := newTestEnv(t)

	picture := "https://example.com/grace.jpg"
	cookies := env.register(t, "grace", &picture)

	rr := env.do(t, http.MethodPost, "/api/testimonies", map[string]any{"content": "God is faithful"}, cookies)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = env.do(t, http.MethodPost, "/api/testimonies", map[string]any{"content": "Shared quietly", "isAnonymous": true}, cookies)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/testimonies", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	views := decodeJSON[[]EnrichedTestimonyResponse](t, rr)
	require.Len(t, views, 2)

	anon := views[0]
	assert.True(t, anon.IsAnonymous)
	assert.Equal(t, "Anonymous", anon.User.DisplayName)
	assert.Nil(t, anon.User.ProfilePicture)

	named := views[1]
	assert.Equal(t, "Member grace", named.User.DisplayName)
	require.NotNil(t, named.User.ProfilePicture)
	assert.Equal(t, picture, *named.User.ProfilePicture)

	rr = env.do(t, http.MethodGet, "/api/testimonies?limit=1", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeJSON[[]EnrichedTestimonyResponse](t, rr), 1)

	rr = env.do(t, http.MethodGet, "/api/testimonies?limit=bogus", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/testimonies/user", nil, cookies)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeJSON[[]TestimonyResponse](t, rr), 2)
}

func TestDonationFlow(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.register(t, "grace", nil)

	// A non-numeric amount fails binding before any payment attempt.
	rr := env.do(t, http.MethodPost, "/api/donations", map[string]any{"amount": "abc", "purpose": "Tithe"}, cookies)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Zero(t, env.processor.calls)

	rr = env.do(t, http.MethodPost, "/api/donations", map[string]any{"amount": -50, "purpose": "Tithe"}, cookies)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Zero(t, env.processor.calls)

	rr = env.do(t, http.MethodPost, "/api/donations", map[string]any{"amount": 500, "purpose": "Tithe", "phoneNumber": "+254700000000"}, cookies)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	donation := decodeJSON[DonationResponse](t, rr)
	assert.Equal(t, "completed", donation.Status)
	require.NotNil(t, donation.TransactionID)
	assert.Equal(t, "MPESA-000042", *donation.TransactionID)

	rr = env.do(t, http.MethodGet, "/api/donations", nil, cookies)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeJSON[[]DonationResponse](t, rr), 1)
}

func TestDonationPaymentFailureSurfaced(t *testing.T) {
	env := newTestEnv(t)
	env.processor.err = context.DeadlineExceeded
	cookies := env.register(t, "grace", nil)

	rr := env.do(t, http.MethodPost, "/api/donations", map[string]any{"amount": 500, "purpose": "Tithe"}, cookies)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "payment failed")

	rr = env.do(t, http.MethodGet, "/api/donations", nil, cookies)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decodeJSON[[]DonationResponse](t, rr))
}

func TestSavedContentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "grace", nil)
	other := env.register(t, "joy", nil)

	rr := env.do(t, http.MethodPost, "/api/saved-contents", map[string]any{
		"contentType": "video",
		"contentId":   "video1",
		"title":       "Sunday Service: The Power of Faith",
	}, owner)
	require.Equal(t, http.StatusCreated, rr.Code)
	saved := decodeJSON[SavedContentResponse](t, rr)

	rr = env.do(t, http.MethodDelete, "/api/saved-contents/999", nil, owner)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Another member cannot delete it, and it survives the attempt.
	rr = env.do(t, http.MethodDelete, "/api/saved-contents/1", nil, other)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotNil(t, env.store.SavedContentByID(saved.ID))

	rr = env.do(t, http.MethodDelete, "/api/saved-contents/1", nil, owner)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/saved-contents", nil, owner)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decodeJSON[[]SavedContentResponse](t, rr))

	rr = env.do(t, http.MethodDelete, "/api/saved-contents/1", nil, owner)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLogoutDestroysSession(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.register(t, "grace", nil)

	rr := env.do(t, http.MethodPost, "/api/logout", nil, cookies)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/user", nil, cookies)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestForgedSessionCookieRejected(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/user", nil, []*http.Cookie{{
		Name:  "fellowship_session",
		Value: "not-a-signed-token",
	}})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDevotionalEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/devotional", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	devotional := decodeJSON[DevotionalResponse](t, rr)
	assert.Equal(t, "Finding Peace in God's Presence", devotional.Title)
	assert.Equal(t, "Jeremiah 29:11", devotional.VerseRef)
}

func TestVideosEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/videos?limit=2", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	videos := decodeJSON[[]VideoResponse](t, rr)
	require.Len(t, videos, 2)
	assert.Equal(t, "Sunday Service: The Power of Faith", videos[0].Title)
}
