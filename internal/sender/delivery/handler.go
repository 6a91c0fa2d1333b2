package delivery

import (
	"net/http"
	"time"

	senderdomain "callbox-backend/internal/sender/domain"
	"callbox-backend/internal/sender/usecase"

	"github.com/gin-gonic/gin"
)

// SenderHandler handles sender and category rule HTTP requests
type SenderHandler struct {
	senderUsecase usecase.SenderUsecase
}

// NewSenderHandler creates a new SenderHandler
func NewSenderHandler(senderUsecase usecase.SenderUsecase) *SenderHandler {
	return &SenderHandler{senderUsecase: senderUsecase}
}

// ObserveMessageRequest represents one observed inbound message
type ObserveMessageRequest struct {
	Email       string `json:"email" binding:"required"`
	DisplayName string `json:"display_name"`
	Subject     string `json:"subject"`
	Preview     string `json:"preview"`
	ReceivedAt  string `json:"received_at"`
}

// SetCategoryRequest represents a category assignment
type SetCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

// UpsertRuleRequest represents a domain rule
type UpsertRuleRequest struct {
	Domain   string `json:"domain" binding:"required"`
	Category string `json:"category" binding:"required"`
	Reason   string `json:"reason"`
}

// GetSenders returns all senders with resolved categories
// GET /api/senders
func (h *SenderHandler) GetSenders(c *gin.Context) {
	userID := c.GetString("userID")

	senders, err := h.senderUsecase.ListSenders(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"senders": senders, "total": len(senders)})
}

// ObserveMessage records one observed message from a sender
// POST /api/senders/observe
func (h *SenderHandler) ObserveMessage(c *gin.Context) {
	userID := c.GetString("userID")

	var req ObserveMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receivedAt := time.Now()
	if req.ReceivedAt != "" {
		if t, err := time.Parse(time.RFC3339, req.ReceivedAt); err == nil {
			receivedAt = t
		}
	}

	sender, err := h.senderUsecase.RecordMessage(userID, req.Email, req.DisplayName, req.Subject, req.Preview, receivedAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sender)
}

// SetCategory assigns a category to a sender
// PATCH /api/senders/:id/category
func (h *SenderHandler) SetCategory(c *gin.Context) {
	userID := c.GetString("userID")
	senderID := c.Param("id")

	var req SetCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.senderUsecase.SetCategory(userID, senderID, senderdomain.Category(req.Category)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category updated"})
}

// GetRules returns the user's category rules
// GET /api/rules
func (h *SenderHandler) GetRules(c *gin.Context) {
	userID := c.GetString("userID")

	rules, err := h.senderUsecase.ListRules(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules, "total": len(rules)})
}

// CreateRule creates or replaces the rule for a domain
// POST /api/rules
func (h *SenderHandler) CreateRule(c *gin.Context) {
	userID := c.GetString("userID")

	var req UpsertRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := h.senderUsecase.UpsertRule(userID, req.Domain, senderdomain.Category(req.Category), req.Reason)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rule)
}

// DeleteRule removes the rule for a domain
// DELETE /api/rules/:domain
func (h *SenderHandler) DeleteRule(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.senderUsecase.DeleteRule(userID, c.Param("domain")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rule deleted"})
}
