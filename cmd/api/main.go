package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"cwrs/internal/adapter/api"
	"cwrs/internal/adapter/api/handler"
	apimiddleware "cwrs/internal/adapter/api/middleware"
	"cwrs/internal/adapter/api/router"
	"cwrs/internal/adapter/repository"
	"cwrs/internal/domain/service"
	"cwrs/internal/infrastructure/firebase"
	"cwrs/internal/infrastructure/ratelimit"
	"cwrs/internal/infrastructure/storage"
	"cwrs/internal/infrastructure/websocket"
	"cwrs/internal/usecase"
	"cwrs/pkg/config"
	"cwrs/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Init(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opt, err := firebase.ClientOption(cfg)
	if err != nil {
		log.Fatalf("Failed to load Firebase credentials: %v", err)
	}

	firebaseApp, err := firebase.NewApp(ctx, cfg, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	firebaseAuthClient, err := firebase.NewFirebaseAuthClient(ctx, authClient, cfg.FirebaseApiKey)
	if err != nil {
		log.Fatalf("Failed to initialize Identity Toolkit: %v", err)
	}

	var files service.FileUploadService
	if cfg.StorageBucket != "" {
		storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opt)
		if err != nil {
			log.Fatalf("Failed to initialize Cloud Storage: %v", err)
		}
		defer storageClient.Close()
		files = storageClient
	} else {
		logger.Info("STORAGE_BUCKET not set, avatars are stored inline")
	}

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	profileRepo := repository.NewFirestoreProfileRepository(firestoreClient)
	productRepo := repository.NewFirestoreProductRepository(firestoreClient)
	cartRepo := repository.NewFirestoreCartRepository(firestoreClient)
	orderRepo := repository.NewFirestoreOrderRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)

	limiter := ratelimit.NewRateLimiter(policies(cfg))
	limiter.StartCleanupRoutine(ctx, 10*time.Minute)

	responder, err := service.NewDefaultKeywordResponder()
	if err != nil {
		log.Fatalf("Failed to build assistant: %v", err)
	}

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo, profileRepo, productRepo, firebaseAuthClient,
		usecase.NewAvatarStore(files, cfg.MaxAvatarBytes))
	productUseCase := usecase.NewProductUseCase(productRepo, userRepo)
	cartUseCase := usecase.NewCartUseCase(cartRepo, orderRepo, productUseCase, userRepo)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, productRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, messageRepo, userRepo, limiter)
	assistantUseCase := usecase.NewAssistantUseCase(responder)

	wsManager := websocket.NewManager(chatUseCase)
	wsManager.Start(ctx)

	handler.Setup(authUseCase, userUseCase, productUseCase, cartUseCase, orderUseCase, chatUseCase, assistantUseCase)
	handler.SetupHealthHandler(firebaseAuthClient, wsManager)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient)
	roleMiddleware := apimiddleware.NewRoleMiddleware(userRepo)

	router.Setup(e, authMiddleware, roleMiddleware, limiter)
	router.SetupWebSocketRouter(e, handler.NewWebSocketHandler(wsManager, authMiddleware))
	router.SetupStaticRouter(e, cfg.StaticDir)

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}

// policies applies ASSISTANT_RATE on top of the default rate limit policies.
func policies(cfg *config.Config) map[string]ratelimit.Policy {
	p := make(map[string]ratelimit.Policy, len(ratelimit.DefaultPolicies))
	for action, policy := range ratelimit.DefaultPolicies {
		p[action] = policy
	}
	if n := cfg.AssistantRatePerMinute; n > 0 {
		p[ratelimit.ActionAssistant] = ratelimit.Policy{Burst: n, Every: time.Minute / time.Duration(n)}
	}
	return p
}
