package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Hamuko/daiseihai/config"
	"github.com/Hamuko/daiseihai/handlers"
	"github.com/Hamuko/daiseihai/models"
	"github.com/Hamuko/daiseihai/services"
	"github.com/Hamuko/daiseihai/utils"
	"github.com/Hamuko/daiseihai/workers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	if err := db.AutoMigrate(
		&models.League{},
		&models.Tournament{},
		&models.Team{},
		&models.Chat{},
		&models.Video{},
		&models.Matchup{},
		&models.VideoBookmark{},
	); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	if err := utils.InitStorage(cfg); err != nil {
		logrus.WithError(err).Fatal("failed to initialize blob store")
	}

	leagueService := services.NewLeagueService(db, cfg)
	tournamentService := services.NewTournamentService(db, cfg)
	teamService := services.NewTeamService(db, cfg)
	chatService := services.NewChatService(db, cfg)
	videoService := services.NewVideoService(db, cfg)

	app := fiber.New(fiber.Config{
		BodyLimit: 64 * 1024 * 1024,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.SetupAdminRoutes(app, cfg.AdminToken,
		leagueService, tournamentService, teamService, chatService, videoService)
	handlers.SetupArchiveRoutes(app, tournamentService, teamService, videoService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	leagueSync := workers.NewLeagueSyncWorker(db, cfg.LeagueMetadataURL, cfg.LeagueSyncInterval)
	if err := leagueSync.Start(ctx); err != nil {
		logrus.WithError(err).Fatal("failed to start league sync worker")
	}
	defer leagueSync.Stop()

	go func() {
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logrus.WithError(err).Error("server stopped")
		}
	}()
	logrus.WithField("port", cfg.Port).Info("archive server running")

	<-ctx.Done()
	logrus.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		logrus.WithError(err).Error("shutdown failed")
	}
}
