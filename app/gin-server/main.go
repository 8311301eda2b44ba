package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/roomsathi/roomsathi/config"
	"github.com/roomsathi/roomsathi/internal/api/handlers"
	"github.com/roomsathi/roomsathi/internal/api/middleware"
	"github.com/roomsathi/roomsathi/internal/api/routes"
	"github.com/roomsathi/roomsathi/internal/cache"
	"github.com/roomsathi/roomsathi/internal/geo"
	"github.com/roomsathi/roomsathi/internal/logger"
	mongorepo "github.com/roomsathi/roomsathi/internal/repositories/mongo"
	pgrepo "github.com/roomsathi/roomsathi/internal/repositories/postgres"
	"github.com/roomsathi/roomsathi/internal/services"
	"github.com/roomsathi/roomsathi/internal/storage"
	"github.com/roomsathi/roomsathi/internal/workers"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()

	// Init MongoDB
	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	fmt.Println("MongoDB connected")
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	fmt.Println("PostgreSQL connected")

	// Init Redis
	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	fmt.Println("Redis connected")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Object storage
	bucket := os.Getenv("GCS_BUCKET")
	if bucket == "" {
		log.Fatal("GCS_BUCKET environment variable is not set")
	}
	uploader, err := storage.NewGCSUploader(ctx, bucket)
	if err != nil {
		log.Fatalf("GCS init error: %v", err)
	}
	defer uploader.Close()

	// Repositories
	mongoDB := config.MongoDatabase()
	profileRepo := pgrepo.NewProfileRepo(config.PostgresDB)
	listingRepo := pgrepo.NewListingRepo(config.PostgresDB)
	requestRepo := pgrepo.NewRequestRepo(config.PostgresDB)
	ratingRepo := pgrepo.NewRatingRepo(config.PostgresDB)
	reportRepo := pgrepo.NewReportRepo(config.PostgresDB)
	verificationRepo := pgrepo.NewVerificationRepo(config.PostgresDB)
	chatRepo := mongorepo.NewChatRepo(mongoDB)
	notificationRepo := mongorepo.NewNotificationRepo(mongoDB)

	// Geo
	geocoderURL := os.Getenv("GEOCODER_URL")
	if geocoderURL == "" {
		geocoderURL = "https://nominatim.openstreetmap.org"
	}
	geocoder := geo.NewGeocoder(geo.GeocoderConfig{
		BaseURL:   geocoderURL,
		APIKey:    os.Getenv("GEOCODER_API_KEY"),
		UserAgent: "roomsathi-backend",
	})
	locator := geo.NewIPLocator(os.Getenv("IP_LOCATOR_URL"))

	// Services
	redisCache := cache.NewRedisCache(config.RedisClient)
	notificationSvc := services.NewNotificationService(notificationRepo, l)
	profileSvc := services.NewProfileService(profileRepo, redisCache)
	listingSvc := services.NewListingService(listingRepo, config.RedisClient)
	requestSvc := services.NewRequestService(requestRepo)
	matchSvc := services.NewMatchService(profileSvc, listingRepo, requestRepo, profileRepo, locator, l)
	chatSvc := services.NewChatService(chatRepo, notificationSvc)
	ratingSvc := services.NewRatingService(ratingRepo, redisCache)
	reportSvc := services.NewReportService(reportRepo, listingRepo, notificationSvc)
	verificationSvc := services.NewVerificationService(verificationRepo, profileRepo, uploader, uploader, notificationSvc)
	adminSvc := services.NewAdminService(profileRepo, listingRepo, requestRepo, reportRepo, verificationRepo)

	// Workers
	geocodePool := &workers.GeocodeWorkerPool{
		Redis:    config.RedisClient,
		Listings: listingRepo,
		Geocoder: geocoder,
		Logger:   l,
	}
	if err := geocodePool.Start(ctx); err != nil {
		log.Fatalf("geocode worker error: %v", err)
	}

	expiry := &workers.ExpiryWorker{
		Listings: listingRepo,
		Requests: requestRepo,
		Logger:   l,
	}
	if err := expiry.Start(ctx); err != nil {
		log.Fatalf("expiry worker error: %v", err)
	}

	// Gin server
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Profile:      handlers.NewProfileHandler(profileSvc, ratingSvc),
		Listing:      handlers.NewListingHandler(listingSvc, uploader),
		Request:      handlers.NewRequestHandler(requestSvc),
		Match:        handlers.NewMatchHandler(matchSvc),
		Chat:         handlers.NewChatHandler(chatSvc),
		WS:           handlers.NewWSHandler(chatSvc, config.RedisClient),
		Rating:       handlers.NewRatingHandler(ratingSvc),
		Report:       handlers.NewReportHandler(reportSvc),
		Verification: handlers.NewVerificationHandler(verificationSvc),
		Notification: handlers.NewNotificationHandler(notificationSvc),
		Admin:        handlers.NewAdminHandler(adminSvc, reportSvc, verificationSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()
	l.WithField("port", port).Info("server started")

	<-ctx.Done()
	l.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.WithError(err).Error("graceful shutdown failed")
	}
}
