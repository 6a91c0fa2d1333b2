package main

import (
	"log"

	api "callbox-backend/cmd/api"
	authusecase "callbox-backend/internal/auth/usecase"
	digestdelivery "callbox-backend/internal/digest/delivery"
	digestusecase "callbox-backend/internal/digest/usecase"
	notificationdelivery "callbox-backend/internal/notification/delivery"
	notificationdomain "callbox-backend/internal/notification/domain"
	notificationrepo "callbox-backend/internal/notification/repository"
	notificationusecase "callbox-backend/internal/notification/usecase"
	senderdelivery "callbox-backend/internal/sender/delivery"
	senderdomain "callbox-backend/internal/sender/domain"
	senderrepo "callbox-backend/internal/sender/repository"
	senderusecase "callbox-backend/internal/sender/usecase"
	verificationdelivery "callbox-backend/internal/verification/delivery"
	verificationrepo "callbox-backend/internal/verification/repository"
	verificationusecase "callbox-backend/internal/verification/usecase"
	"callbox-backend/pkg/config"
	"callbox-backend/pkg/database"
	"callbox-backend/pkg/redisclient"
	"callbox-backend/pkg/speech"
	"callbox-backend/pkg/telephony"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&senderdomain.Sender{}, &senderdomain.CategoryRule{}, &notificationdomain.NotificationRecord{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize redis for verification sessions
	redisClient, err := redisclient.New(cfg)
	if err != nil {
		log.Fatal("Failed to connect to redis:", err)
	}

	// Initialize provider adapters
	telephonyClient := telephony.NewClient(cfg.TelephonyBaseURL, cfg.TelephonyAccountID,
		cfg.TelephonyAuthToken, cfg.TelephonyFromNumber, cfg.ProviderTimeout, cfg.DialTimeout)
	speechClient := speech.NewClient(cfg.SpeechBaseURL, cfg.SpeechAPIKey,
		cfg.SpeechDefaultVoice, cfg.ProviderTimeout)

	// Initialize repositories (dependency injection)
	senderRepository := senderrepo.NewSenderRepository(db)
	ruleRepository := senderrepo.NewCategoryRuleRepository(db)
	notificationRepository := notificationrepo.NewNotificationRepository(db)
	sessionStore := verificationrepo.NewRedisSessionStore(redisClient)

	// Initialize use cases
	authUsecaseInstance := authusecase.NewAuthUsecase(cfg)
	senderUsecaseInstance := senderusecase.NewSenderUsecase(senderRepository, ruleRepository)
	digestUsecaseInstance := digestusecase.NewDigestUsecase(senderRepository, ruleRepository)
	verificationUsecaseInstance := verificationusecase.NewVerificationUsecase(sessionStore,
		telephonyClient, cfg.VerificationCodeTTL, cfg.VerificationMaxAttempts, cfg.VerifiedNumberTTL)
	dispatchUsecaseInstance := notificationusecase.NewDispatchUsecase(notificationRepository,
		verificationUsecaseInstance, telephonyClient, speechClient, cfg.WhatsAppFromNumber)

	// Initialize HTTP handlers
	senderHandler := senderdelivery.NewSenderHandler(senderUsecaseInstance)
	digestHandler := digestdelivery.NewDigestHandler(digestUsecaseInstance, dispatchUsecaseInstance)
	verificationHandler := verificationdelivery.NewVerificationHandler(verificationUsecaseInstance)
	notificationHandler := notificationdelivery.NewNotificationHandler(dispatchUsecaseInstance,
		notificationRepository, speechClient)

	handler := api.NewHandler(authUsecaseInstance, senderHandler, digestHandler,
		verificationHandler, notificationHandler)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
