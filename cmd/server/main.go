package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/yourspace/yourspace-api/internal/booking"
	"github.com/yourspace/yourspace-api/internal/config"
	"github.com/yourspace/yourspace-api/internal/database"
	"github.com/yourspace/yourspace-api/internal/handler"
	appmw "github.com/yourspace/yourspace-api/internal/middleware"
	"github.com/yourspace/yourspace-api/internal/queue"
	"github.com/yourspace/yourspace-api/internal/repository"
	"github.com/yourspace/yourspace-api/internal/router"
	"github.com/yourspace/yourspace-api/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional; a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiter disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	spaces := repository.NewSpaceRepo(db)
	slots := repository.NewSlotRepo(db)
	bookings := repository.NewBookingRepo(db)
	profiles := repository.NewProfileRepo(db)
	notifications := repository.NewNotificationRepo(db)

	publisher := service.NewEventPublisher(bookings)
	resolver := booking.NewResolver(bookings, publisher)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	cacheMW := appmw.NewRedisCache(config.LoadCacheConfig(), rdb)
	rateMW := appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	auth := handler.NewAuthHandler(cfg, users, tokens)
	public := handler.NewPublicHandler(spaces, slots, resolver)
	userBooking := handler.NewBookingHandler(resolver, bookings, slots, spaces)
	profile := handler.NewProfileHandler(cfg, profiles, notifications)
	adminSpace := handler.NewAdminSpaceHandler(spaces)
	adminSlot := handler.NewAdminSlotHandler(slots, spaces, bookings, resolver)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterPublic(e, public, cacheMW)
	router.RegisterUser(e, userBooking, profile, cfg.JWTSecret, rateMW)
	router.RegisterAdmin(e, adminSpace, adminSlot, cfg.JWTSecret)

	// Uploaded avatars are served straight from disk.
	e.Static("/uploads", cfg.UploadDir)

	// Background consumer: logs booking events and stores notifications.
	go func() {
		if err := queue.StartBookingConsumer(notifications); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
