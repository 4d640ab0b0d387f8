package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	moderncSqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"

	"github.com/Hamuko/daiseihai/config"
	"github.com/Hamuko/daiseihai/models"
)

func testConfig() *config.Config {
	return &config.Config{
		VideoBaseURL:      "https://videos.example.com/",
		CDNBaseURL:        "https://cdn.example.com",
		LeagueMetadataURL: "https://wiki.example.com/leagues",
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(moderncSqlite.New(moderncSqlite.Config{
		DSN:        dsn,
		DriverName: "sqlite",
	}), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.League{},
		&models.Tournament{},
		&models.Team{},
		&models.Chat{},
		&models.Video{},
		&models.Matchup{},
		&models.VideoBookmark{},
	))
	return db
}

var testSequence int

func nextSequence() int {
	testSequence++
	return testSequence
}

func createTournament(t *testing.T, db *gorm.DB) *models.Tournament {
	t.Helper()
	n := nextSequence()
	tournament := &models.Tournament{
		Name:      fmt.Sprintf("Summer Cup %d", n),
		Slug:      fmt.Sprintf("summer-cup-%d", n),
		StartDate: models.NewDate(2018, time.July, 27),
		EndDate:   models.NewDate(2018, time.August, 12),
	}
	require.NoError(t, db.Create(tournament).Error)
	return tournament
}

func createTeam(t *testing.T, db *gorm.DB, name string) *models.Team {
	t.Helper()
	team := &models.Team{
		Name:           name,
		Slug:           fmt.Sprintf("team-%d", nextSequence()),
		MainColor:      0x000000,
		SecondaryColor: 0xffffff,
	}
	require.NoError(t, db.Create(team).Error)
	return team
}

func createVideo(t *testing.T, db *gorm.DB, tournament *models.Tournament, date models.Date, order int, visible bool) *models.Video {
	t.Helper()
	video := &models.Video{
		TournamentID: tournament.ID,
		Type:         models.VideoTypeNormal,
		Date:         date,
		Order:        order,
		Filename:     fmt.Sprintf("broadcast-%d.mp4", nextSequence()),
		IsVisible:    visible,
	}
	require.NoError(t, db.Create(video).Error)
	return video
}

func createMatchup(t *testing.T, db *gorm.DB, video *models.Video, home, away *models.Team, order int) *models.Matchup {
	t.Helper()
	matchup := &models.Matchup{
		VideoID: video.ID,
		HomeID:  home.ID,
		AwayID:  away.ID,
		Order:   order,
	}
	require.NoError(t, db.Create(matchup).Error)
	return matchup
}

// newTestApp wires the public routes against an in-memory database the
// same way main does against Postgres.
func newTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	cfg := testConfig()

	tournamentService := NewTournamentService(db, cfg)
	teamService := NewTeamService(db, cfg)
	videoService := NewVideoService(db, cfg)
	chatService := NewChatService(db, cfg)

	app := fiber.New()

	// Write-side routes, registered without the admin token middleware.
	app.Post("/videos", videoService.CreateVideo)
	app.Put("/videos/:id", videoService.UpdateVideo)
	app.Delete("/videos/:id", videoService.DeleteVideo)
	app.Delete("/tournaments/:slug", tournamentService.DeleteTournament)
	app.Delete("/chats/:id", chatService.DeleteChat)

	app.Get("/teams/", teamService.ListTeams)
	app.Get("/team/:slug/", teamService.GetTeam)
	app.Get("/video/:id/bookmarks/", videoService.GetBookmarks)
	app.Get("/video/:slug/:date/:order/", videoService.GetVideo)
	app.Get("/video/:slug/:date/", videoService.GetVideo)
	app.Get("/video/:id/", videoService.LegacyRedirect)
	app.Get("/", tournamentService.ListTournaments)
	app.Get("/:slug/", tournamentService.GetTournament)
	return app
}
