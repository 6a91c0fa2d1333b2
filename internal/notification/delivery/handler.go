package delivery

import (
	"net/http"
	"strconv"
	"time"

	"callbox-backend/internal/notification/repository"
	"callbox-backend/internal/notification/usecase"
	"callbox-backend/pkg/speech"

	"github.com/gin-gonic/gin"
)

// NotificationHandler handles dispatch history, provider callbacks and the
// voice list
type NotificationHandler struct {
	dispatchUsecase  usecase.DispatchUsecase
	notificationRepo repository.NotificationRepository
	speechClient     *speech.Client
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(dispatchUsecase usecase.DispatchUsecase, notificationRepo repository.NotificationRepository, speechClient *speech.Client) *NotificationHandler {
	return &NotificationHandler{
		dispatchUsecase:  dispatchUsecase,
		notificationRepo: notificationRepo,
		speechClient:     speechClient,
	}
}

// ProviderStatusRequest is the asynchronous status callback payload
type ProviderStatusRequest struct {
	ProviderRef     string `json:"provider_ref" binding:"required"`
	Status          string `json:"status" binding:"required"`
	DurationSeconds int    `json:"duration_seconds"`
}

// GetNotifications returns the dispatch history for the user
// GET /api/notifications?since=RFC3339&limit=50
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID := c.GetString("userID")

	var since *time.Time
	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since must be RFC3339"})
			return
		}
		since = &t
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := h.notificationRepo.FindByUser(userID, since, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Callers use this to decide whether the user was already called today
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dispatchedToday, err := h.notificationRepo.CountForUserSince(userID, midnight)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications":    records,
		"total":            len(records),
		"dispatched_today": dispatchedToday,
	})
}

// ProviderStatus applies an asynchronous provider status update
// POST /api/notifications/status
func (h *NotificationHandler) ProviderStatus(c *gin.Context) {
	var req ProviderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.dispatchUsecase.ApplyProviderStatus(c.Request.Context(), req.ProviderRef, req.Status, req.DurationSeconds); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status applied"})
}

// GetVoices lists the available synthesis voices, degrading to the default
// voice when the provider is unreachable
// GET /api/voices
func (h *NotificationHandler) GetVoices(c *gin.Context) {
	voices, err := h.speechClient.ListVoices(c.Request.Context())
	if err != nil || len(voices) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"voices":  []speech.Voice{{ID: h.speechClient.DefaultVoice(), Name: "Default"}},
			"default": h.speechClient.DefaultVoice(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"voices": voices, "default": h.speechClient.DefaultVoice()})
}
