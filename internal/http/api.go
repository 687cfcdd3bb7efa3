package http

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fellowship-server/internal/domain"
	"fellowship-server/internal/live"
	"fellowship-server/internal/repository"
	"fellowship-server/internal/service"
	"fellowship-server/internal/session"
	"fellowship-server/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users          service.UserService
	community      service.CommunityService
	giving         service.GivingService
	library        service.LibraryService
	content        repository.ContentRepository
	live           live.StatusProvider
	media          storage.Service
	sessions       *session.Store
	jwtSecret      []byte
	paymentTimeout time.Duration
	logger         *logrus.Logger
}

func NewHandler(
	users service.UserService,
	community service.CommunityService,
	giving service.GivingService,
	library service.LibraryService,
	content repository.ContentRepository,
	liveProvider live.StatusProvider,
	media storage.Service,
	sessions *session.Store,
	jwtSecret string,
	paymentTimeout time.Duration,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		users:          users,
		community:      community,
		giving:         giving,
		library:        library,
		content:        content,
		live:           liveProvider,
		media:          media,
		sessions:       sessions,
		jwtSecret:      []byte(jwtSecret),
		paymentTimeout: paymentTimeout,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.GET("/testimonies", h.listTestimonies)
		api.GET("/devotional", h.todayDevotional)
		api.GET("/devotionals", h.listDevotionals)
		api.GET("/events", h.upcomingEvents)
		api.GET("/live/status", h.liveStatus)
		api.GET("/videos", h.listVideos)

		authed := api.Group("", h.requireAuth())
		{
			authed.POST("/logout", h.logout)
			authed.GET("/user", h.currentUser)
			authed.POST("/testimonies", h.createTestimony)
			authed.GET("/testimonies/user", h.myTestimonies)
			authed.GET("/donations", h.listDonations)
			authed.POST("/donations", h.createDonation)
			authed.GET("/saved-contents", h.listSavedContents)
			authed.POST("/saved-contents", h.createSavedContent)
			authed.DELETE("/saved-contents/:id", h.deleteSavedContent)
			authed.POST("/uploads", h.uploadMedia)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// serviceError maps service failures onto the response taxonomy. Anything
// unexpected is logged and reported as a generic 500.
func (h *Handler) serviceError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrPaymentFailed):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Content not found"})
	default:
		h.logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func (h *Handler) todayDevotional(c *gin.Context) {
	devotional, err := h.content.DevotionalForDate(c.Request.Context(), time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Devotional not found"})
		return
	}
	c.JSON(http.StatusOK, devotionalToResponse(*devotional))
}

func (h *Handler) listDevotionals(c *gin.Context) {
	limit, ok := parseLimit(c, 10)
	if !ok {
		return
	}

	devotionals, err := h.content.ListDevotionals(c.Request.Context(), limit)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := make([]DevotionalResponse, len(devotionals))
	for i := range devotionals {
		resp[i] = devotionalToResponse(devotionals[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) upcomingEvents(c *gin.Context) {
	events, err := h.content.UpcomingEvents(c.Request.Context(), time.Now())
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := make([]EventResponse, len(events))
	for i := range events {
		resp[i] = eventToResponse(events[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) liveStatus(c *gin.Context) {
	status, err := h.live.LiveStatus(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, LiveStatusResponse{
		IsLive:      status.IsLive,
		VideoID:     status.VideoID,
		Title:       status.Title,
		ViewerCount: status.ViewerCount,
	})
}

func (h *Handler) listVideos(c *gin.Context) {
	limit, ok := parseLimit(c, 10)
	if !ok {
		return
	}

	videos, err := h.live.RecentVideos(c.Request.Context(), limit)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := make([]VideoResponse, len(videos))
	for i := range videos {
		resp[i] = videoToResponse(videos[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) uploadMedia(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file is required"})
		return
	}
	defer file.Close()

	key := "uploads/" + uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	url, err := h.media.UploadObject(c.Request.Context(), key, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

// parseLimit reads the optional limit query parameter. A limit of zero means
// no truncation. Writes the 400 itself when the value is malformed.
func parseLimit(c *gin.Context, fallback int) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return fallback, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid limit"})
		return 0, false
	}
	return limit, true
}

type UserResponse struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	DisplayName    string  `json:"displayName"`
	Email          string  `json:"email"`
	ProfilePicture *string `json:"profilePicture"`
	CreatedAt      string  `json:"createdAt"`
}

type DevotionalResponse struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	Title     string  `json:"title"`
	VerseRef  string  `json:"verseRef"`
	VerseText string  `json:"verseText"`
	Body      string  `json:"body"`
	ImageURL  *string `json:"imageUrl"`
}

type EventResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	StartsAt    string `json:"startsAt"`
	EndsAt      string `json:"endsAt"`
	Description string `json:"description"`
}

type VideoResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	Duration     string `json:"duration"`
}

type LiveStatusResponse struct {
	IsLive      bool    `json:"isLive"`
	VideoID     *string `json:"videoId"`
	Title       *string `json:"title"`
	ViewerCount *int    `json:"viewerCount"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		DisplayName:    user.DisplayName,
		Email:          user.Email,
		ProfilePicture: user.ProfilePicture,
		CreatedAt:      user.CreatedAt.Format(time.RFC3339),
	}
}

func devotionalToResponse(devotional domain.Devotional) DevotionalResponse {
	return DevotionalResponse{
		ID:        devotional.ID,
		Date:      devotional.Date.Format("2006-01-02"),
		Title:     devotional.Title,
		VerseRef:  devotional.VerseRef,
		VerseText: devotional.VerseText,
		Body:      devotional.Body,
		ImageURL:  devotional.ImageURL,
	}
}

func eventToResponse(event domain.Event) EventResponse {
	return EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Location:    event.Location,
		StartsAt:    event.StartsAt.Format(time.RFC3339),
		EndsAt:      event.EndsAt.Format(time.RFC3339),
		Description: event.Description,
	}
}

func videoToResponse(video domain.Video) VideoResponse {
	return VideoResponse{
		ID:           video.ID,
		Title:        video.Title,
		Thumbnail:    video.Thumbnail,
		ChannelTitle: video.ChannelTitle,
		PublishedAt:  video.PublishedAt.Format(time.RFC3339),
		Duration:     video.Duration,
	}
}
