package api

import (
	authusecase "callbox-backend/internal/auth/usecase"
	digestdelivery "callbox-backend/internal/digest/delivery"
	notificationdelivery "callbox-backend/internal/notification/delivery"
	senderdelivery "callbox-backend/internal/sender/delivery"
	verificationdelivery "callbox-backend/internal/verification/delivery"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase         authusecase.AuthUsecase
	senderHandler       *senderdelivery.SenderHandler
	digestHandler       *digestdelivery.DigestHandler
	verificationHandler *verificationdelivery.VerificationHandler
	notificationHandler *notificationdelivery.NotificationHandler
}

func NewHandler(
	authUsecase authusecase.AuthUsecase,
	senderHandler *senderdelivery.SenderHandler,
	digestHandler *digestdelivery.DigestHandler,
	verificationHandler *verificationdelivery.VerificationHandler,
	notificationHandler *notificationdelivery.NotificationHandler,
) *Handler {
	return &Handler{
		authUsecase:         authUsecase,
		senderHandler:       senderHandler,
		digestHandler:       digestHandler,
		verificationHandler: verificationHandler,
		notificationHandler: notificationHandler,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.senderHandler, h.digestHandler, h.verificationHandler, h.notificationHandler)

	return r.Run(addr)
}
