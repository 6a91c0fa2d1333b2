package delivery

import (
	"errors"
	"net/http"

	verificationdomain "callbox-backend/internal/verification/domain"
	"callbox-backend/internal/verification/usecase"
	"callbox-backend/pkg/phone"
	"callbox-backend/pkg/telephony"

	"github.com/gin-gonic/gin"
)

// VerificationHandler handles one-time-code HTTP requests
type VerificationHandler struct {
	verificationUsecase usecase.VerificationUsecase
}

// NewVerificationHandler creates a new VerificationHandler
func NewVerificationHandler(verificationUsecase usecase.VerificationUsecase) *VerificationHandler {
	return &VerificationHandler{verificationUsecase: verificationUsecase}
}

// SendCodeRequest represents a send-code request
type SendCodeRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// VerifyCodeRequest represents a verify-code request
type VerifyCodeRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// SendCode issues a one-time code to a phone number
// POST /api/verification/send-code
func (h *VerificationHandler) SendCode(c *gin.Context) {
	userID := c.GetString("userID")

	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.verificationUsecase.SendCode(c.Request.Context(), userID, req.Phone); err != nil {
		switch {
		case errors.Is(err, phone.ErrMalformedDestination):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, telephony.ErrProviderUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "retryable": true})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verification code sent"})
}

// VerifyCode checks a candidate code for a phone number
// POST /api/verification/verify-code
func (h *VerificationHandler) VerifyCode(c *gin.Context) {
	userID := c.GetString("userID")

	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.verificationUsecase.VerifyCode(c.Request.Context(), userID, req.Phone, req.Code); err != nil {
		switch {
		case errors.Is(err, phone.ErrMalformedDestination),
			errors.Is(err, verificationdomain.ErrNoSession),
			errors.Is(err, verificationdomain.ErrCodeExpired),
			errors.Is(err, verificationdomain.ErrCodeMismatch),
			errors.Is(err, verificationdomain.ErrCodeConsumed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, verificationdomain.ErrTooManyAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "phone number verified"})
}
