package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"sponsorconnect/internal/adapter/api"
	"sponsorconnect/internal/adapter/api/handler"
	apimiddleware "sponsorconnect/internal/adapter/api/middleware"
	"sponsorconnect/internal/adapter/api/router"
	"sponsorconnect/internal/adapter/repository"
	domainrepo "sponsorconnect/internal/domain/repository"
	"sponsorconnect/internal/domain/service"
	"sponsorconnect/internal/infrastructure/firebase"
	"sponsorconnect/internal/infrastructure/localauth"
	"sponsorconnect/internal/infrastructure/localstore"
	"sponsorconnect/internal/infrastructure/ratelimit"
	"sponsorconnect/internal/infrastructure/storage"
	"sponsorconnect/internal/infrastructure/websocket"
	"sponsorconnect/internal/usecase"
	"sponsorconnect/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var (
		userRepo        domainrepo.UserRepository
		sponsorshipRepo domainrepo.SponsorshipRepository
		agreementRepo   domainrepo.AgreementRepository
		convRepo        domainrepo.ConversationRepository
		authClient      usecase.AuthProvider
		fileStorage     usecase.FileStorage
	)

	// The storage backend is chosen once at startup. "firestore" is the real
	// deployment; "local" keeps everything in a JSON file for demos.
	switch cfg.StorageBackend {
	case "local":
		store, err := localstore.Open(cfg.LocalDataPath)
		if err != nil {
			log.Fatalf("Failed to open local store: %v", err)
		}

		userRepo = repository.NewLocalUserRepository(store)
		sponsorshipRepo = repository.NewLocalSponsorshipRepository(store)
		agreementRepo = repository.NewLocalAgreementRepository(store)
		convRepo = repository.NewLocalConversationRepository(store)
		authClient = localauth.NewLocalAuthClient(store, cfg.LocalAuthSecret)

		log.Printf("Using local storage backend at %s", cfg.LocalDataPath)

	case "firestore":
		var opt option.ClientOption
		if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
			opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
		} else {
			serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
			if serviceAccountPath == "" {
				serviceAccountPath = "./service-account.json"
			}
			if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
				log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
			}
			opt = option.WithCredentialsFile(serviceAccountPath)
		}

		firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}

		fbAuth, err := firebaseApp.Auth(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase Auth: %v", err)
		}

		firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()

		userRepo = repository.NewFirestoreUserRepository(firestoreClient)
		sponsorshipRepo = repository.NewFirestoreSponsorshipRepository(firestoreClient)
		agreementRepo = repository.NewFirestoreAgreementRepository(firestoreClient)
		convRepo = repository.NewFirestoreConversationRepository(firestoreClient)
		authClient = firebase.NewFirebaseAuthClient(fbAuth, cfg.FirebaseApiKey)

		if cfg.StorageBucket != "" {
			storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.FirebaseProject, os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"))
			if err != nil {
				log.Fatalf("Failed to initialize Cloud Storage: %v", err)
			}
			defer storageClient.Close()
			fileStorage = storageClient
		}

	default:
		log.Fatalf("Unknown storage backend: %s", cfg.StorageBackend)
	}

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	messageLimiter := ratelimit.NewRateLimiter()
	messageLimiter.StartCleanupRoutine()

	paymentService := service.NewStripePaymentService(cfg.StripeSecretKey)
	splitCalculator := service.NewSplitCalculator(cfg.PlatformFeeRate)

	authUseCase := usecase.NewAuthUseCase(userRepo, authClient)
	userUseCase := usecase.NewUserUseCase(userRepo, fileStorage)
	sponsorshipUseCase := usecase.NewSponsorshipUseCase(sponsorshipRepo, userRepo, wsManager)
	fundingUseCase := usecase.NewFundingUseCase(sponsorshipUseCase, sponsorshipRepo, agreementRepo, userRepo, paymentService, splitCalculator, wsManager)
	messagingUseCase := usecase.NewMessagingUseCase(convRepo, userRepo, sponsorshipRepo, wsManager, messageLimiter)
	adminUseCase := usecase.NewAdminUseCase(userRepo, sponsorshipRepo, agreementRepo, authClient)

	handler.Setup(authUseCase, userUseCase, sponsorshipUseCase, fundingUseCase, messagingUseCase, adminUseCase)
	handler.SetupHealthHandler(cfg.StorageBackend)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	handler.SetupWebSocketHandler(wsManager, authMiddleware)

	router.Setup(e, authMiddleware, adminMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
