package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fellowship-server/internal/domain"
	"fellowship-server/internal/service"
)

type createTestimonyRequest struct {
	Content     string  `json:"content" binding:"required"`
	IsAnonymous bool    `json:"isAnonymous"`
	ImageURL    *string `json:"imageUrl"`
}

type createDonationRequest struct {
	Amount      int64  `json:"amount" binding:"required"`
	Purpose     string `json:"purpose" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
}

type createSavedContentRequest struct {
	ContentType string  `json:"contentType" binding:"required"`
	ContentID   string  `json:"contentId" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Thumbnail   *string `json:"thumbnail"`
}

func (h *Handler) listTestimonies(c *gin.Context) {
	limit, ok := parseLimit(c, 10)
	if !ok {
		return
	}

	views, err := h.community.ListTestimonies(c.Request.Context(), limit)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := make([]EnrichedTestimonyResponse, len(views))
	for i := range views {
		resp[i] = enrichedTestimonyToResponse(views[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createTestimony(c *gin.Context) {
	var req createTestimonyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	testimony, err := h.community.Create(c.Request.Context(), h.currentUserID(c), service.TestimonyInput{
		Content:     req.Content,
		IsAnonymous: req.IsAnonymous,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, testimonyToResponse(*testimony))
}

func (h *Handler) myTestimonies(c *gin.Context) {
	testimonies, err := h.community.ListByUser(c.Request.Context(), h.currentUserID(c))
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := make([]TestimonyResponse, len(testimonies))
	for i := range testimonies {
		resp[i] = testimonyToResponse(testimonies[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listDonations(c *gin.Context) {
	donations, err := h.giving.History(c.Request.Context(), h.currentUserID(c))
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := make([]DonationResponse, len(donations))
	for i := range donations {
		resp[i] = donationToResponse(donations[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createDonation(c *gin.Context) {
	var req createDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	// The payment collaborator gets a bounded window to answer.
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.paymentTimeout)
	defer cancel()

	donation, err := h.giving.Donate(ctx, h.currentUserID(c), service.DonationInput{
		Amount:      req.Amount,
		Purpose:     req.Purpose,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, donationToResponse(*donation))
}

func (h *Handler) listSavedContents(c *gin.Context) {
	contents, err := h.library.List(c.Request.Context(), h.currentUserID(c))
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := make([]SavedContentResponse, len(contents))
	for i := range contents {
		resp[i] = savedContentToResponse(contents[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createSavedContent(c *gin.Context) {
	var req createSavedContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	content, err := h.library.Save(c.Request.Context(), h.currentUserID(c), service.SavedContentInput{
		ContentType: req.ContentType,
		ContentID:   req.ContentID,
		Title:       req.Title,
		Thumbnail:   req.Thumbnail,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, savedContentToResponse(*content))
}

func (h *Handler) deleteSavedContent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid content id"})
		return
	}

	if err := h.library.Delete(c.Request.Context(), h.currentUserID(c), id); err != nil {
		h.serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type TestimonyResponse struct {
	ID          int64   `json:"id"`
	UserID      *int64  `json:"userId"`
	Content     string  `json:"content"`
	IsAnonymous bool    `json:"isAnonymous"`
	ImageURL    *string `json:"imageUrl"`
	CreatedAt   string  `json:"createdAt"`
}

type TestimonyAuthorResponse struct {
	ID             int64   `json:"id,omitempty"`
	DisplayName    string  `json:"displayName"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

type EnrichedTestimonyResponse struct {
	TestimonyResponse
	User TestimonyAuthorResponse `json:"user"`
}

type DonationResponse struct {
	ID            int64   `json:"id"`
	UserID        *int64  `json:"userId"`
	Amount        int64   `json:"amount"`
	Purpose       string  `json:"purpose"`
	Status        string  `json:"status"`
	TransactionID *string `json:"transactionId"`
	CreatedAt     string  `json:"createdAt"`
}

type SavedContentResponse struct {
	ID          int64   `json:"id"`
	UserID      *int64  `json:"userId"`
	ContentType string  `json:"contentType"`
	ContentID   string  `json:"contentId"`
	Title       string  `json:"title"`
	Thumbnail   *string `json:"thumbnail"`
	CreatedAt   string  `json:"createdAt"`
}

func testimonyToResponse(testimony domain.Testimony) TestimonyResponse {
	return TestimonyResponse{
		ID:          testimony.ID,
		UserID:      testimony.UserID,
		Content:     testimony.Content,
		IsAnonymous: testimony.IsAnonymous,
		ImageURL:    testimony.ImageURL,
		CreatedAt:   testimony.CreatedAt.Format(time.RFC3339),
	}
}

func enrichedTestimonyToResponse(view service.TestimonyView) EnrichedTestimonyResponse {
	return EnrichedTestimonyResponse{
		TestimonyResponse: testimonyToResponse(view.Testimony),
		User: TestimonyAuthorResponse{
			ID:             view.Author.ID,
			DisplayName:    view.Author.DisplayName,
			ProfilePicture: view.Author.ProfilePicture,
		},
	}
}

func donationToResponse(donation domain.Donation) DonationResponse {
	return DonationResponse{
		ID:            donation.ID,
		UserID:        donation.UserID,
		Amount:        donation.Amount,
		Purpose:       donation.Purpose,
		Status:        donation.Status,
		TransactionID: donation.TransactionID,
		CreatedAt:     donation.CreatedAt.Format(time.RFC3339),
	}
}

func savedContentToResponse(content domain.SavedContent) SavedContentResponse {
	return SavedContentResponse{
		ID:          content.ID,
		UserID:      content.UserID,
		ContentType: content.ContentType,
		ContentID:   content.ContentID,
		Title:       content.Title,
		Thumbnail:   content.Thumbnail,
		CreatedAt:   content.CreatedAt.Format(time.RFC3339),
	}
}
