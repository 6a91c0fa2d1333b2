package api

import (
	"net/http"

	authdelivery "callbox-backend/internal/auth/delivery"
	authusecase "callbox-backend/internal/auth/usecase"
	digestdelivery "callbox-backend/internal/digest/delivery"
	notificationdelivery "callbox-backend/internal/notification/delivery"
	senderdelivery "callbox-backend/internal/sender/delivery"
	verificationdelivery "callbox-backend/internal/verification/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authUsecase authusecase.AuthUsecase,
	senderHandler *senderdelivery.SenderHandler,
	digestHandler *digestdelivery.DigestHandler,
	verificationHandler *verificationdelivery.VerificationHandler,
	notificationHandler *notificationdelivery.NotificationHandler,
) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Provider status callback (no auth; providers don't carry our tokens)
		api.POST("/notifications/status", notificationHandler.ProviderStatus)

		// Sender routes (protected)
		senders := api.Group("/senders")
		senders.Use(authdelivery.AuthMiddleware(authUsecase))
		{
			senders.GET("", senderHandler.GetSenders)
			senders.POST("/observe", senderHandler.ObserveMessage)
			senders.PATCH("/:id/category", senderHandler.SetCategory)
		}

		// Category rule routes (protected)
		rules := api.Group("/rules")
		rules.Use(authdelivery.AuthMiddleware(authUsecase))
		{
			rules.GET("", senderHandler.GetRules)
			rules.POST("", senderHandler.CreateRule)
			rules.DELETE("/:domain", senderHandler.DeleteRule)
		}

		// Digest routes (protected)
		digest := api.Group("/digest")
		digest.Use(authdelivery.AuthMiddleware(authUsecase))
		{
			digest.GET("", digestHandler.GetDigest)
			digest.POST("/dispatch", digestHandler.DispatchDigest)
		}

		// Verification routes (protected)
		verification := api.Group("/verification")
		verification.Use(authdelivery.AuthMiddleware(authUsecase))
		{
			verification.POST("/send-code", verificationHandler.SendCode)
			verification.POST("/verify-code", verificationHandler.VerifyCode)
		}

		// Notification history and voices (protected)
		protected := api.Group("")
		protected.Use(authdelivery.AuthMiddleware(authUsecase))
		{
			protected.GET("/notifications", notificationHandler.GetNotifications)
			protected.GET("/voices", notificationHandler.GetVoices)
		}
	}
}
