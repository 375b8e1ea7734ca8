package main // Entry point package

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/excursion-booking/internal/config"
	"github.com/iliyamo/excursion-booking/internal/database"
	"github.com/iliyamo/excursion-booking/internal/handler"
	"github.com/iliyamo/excursion-booking/internal/middleware"
	"github.com/iliyamo/excursion-booking/internal/queue"
	"github.com/iliyamo/excursion-booking/internal/repository"
	"github.com/iliyamo/excursion-booking/internal/router"
)

func main() {
	// Load .env if present; real deployments inject env vars directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not read .env file")
	}

	cfg := config.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Env == "dev" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	guides := repository.NewGuideRepo(db)
	clients := repository.NewClientRepo(db)
	moderators := repository.NewModeratorRepo(db)
	excursions := repository.NewExcursionRepo(db)
	bookings := repository.NewBookingRepo(db)
	payments := repository.NewPaymentRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	excursionH := handler.NewExcursionHandler(excursions, bookings)
	bookingH := handler.NewBookingHandler(db, excursions, bookings, clients, payments)
	guideH := handler.NewGuideHandler(guides, excursions, bookings)
	moderationH := handler.NewModerationHandler(excursions, moderators)
	adminH := handler.NewAdminHandler(users, guides, excursions, bookings)
	uploadH := handler.NewUploadHandler(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, excursionH, config.LoadCacheConfig(), rdb)
	router.RegisterClient(e, bookingH, uploadH, cfg.JWTSecret)
	router.RegisterGuide(e, guideH, cfg.JWTSecret)
	router.RegisterModeration(e, moderationH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	// Uploaded photos are served straight from disk.
	e.Static(cfg.StaticPrefix, cfg.UploadDir)

	// Background consumer that appends confirmed bookings to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			logrus.WithError(err).Error("booking consumer stopped")
		}
	}()

	addr := ":" + cfg.Port
	logrus.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")

	if err := e.Start(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
