package delivery

import (
	"errors"
	"net/http"

	digestusecase "callbox-backend/internal/digest/usecase"
	notificationdomain "callbox-backend/internal/notification/domain"
	notificationusecase "callbox-backend/internal/notification/usecase"
	"callbox-backend/pkg/phone"
	"callbox-backend/pkg/telephony"

	"github.com/gin-gonic/gin"
)

// DigestHandler handles digest generation and dispatch HTTP requests
type DigestHandler struct {
	digestUsecase   digestusecase.DigestUsecase
	dispatchUsecase notificationusecase.DispatchUsecase
}

// NewDigestHandler creates a new DigestHandler
func NewDigestHandler(digestUsecase digestusecase.DigestUsecase, dispatchUsecase notificationusecase.DispatchUsecase) *DigestHandler {
	return &DigestHandler{
		digestUsecase:   digestUsecase,
		dispatchUsecase: dispatchUsecase,
	}
}

// DispatchRequest asks for a fresh digest delivered over one channel
type DispatchRequest struct {
	Destination string `json:"destination" binding:"required"`
	Channel     string `json:"channel" binding:"required"`
	Voice       string `json:"voice"`
}

// GetDigest generates the digest without dispatching it
// GET /api/digest
func (h *DigestHandler) GetDigest(c *gin.Context) {
	userID := c.GetString("userID")

	digest, err := h.digestUsecase.Generate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	// An empty bucket still returns a deliverable script
	c.JSON(http.StatusOK, digest)
}

// DispatchDigest generates a fresh digest and delivers it
// POST /api/digest/dispatch
func (h *DigestHandler) DispatchDigest(c *gin.Context) {
	userID := c.GetString("userID")

	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	channel := notificationdomain.Channel(req.Channel)
	if !channel.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "channel must be one of voice, sms, whatsapp"})
		return
	}

	// Regenerated fresh on every request; the sender set can change
	// between calls
	digest, err := h.digestUsecase.Generate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	record, err := h.dispatchUsecase.Dispatch(c.Request.Context(), userID, req.Destination, channel, digest, req.Voice)
	if err != nil {
		switch {
		case errors.Is(err, phone.ErrMalformedDestination):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, notificationdomain.ErrNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, telephony.ErrProviderUnavailable):
			// The failed attempt is already logged; the caller may retry
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "retryable": true, "notification": record})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"digest": digest, "notification": record})
}
