package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Hamuko/daiseihai/services"
)

// SetupArchiveRoutes registers the public read-side routes. Fiber
// matches in registration order, so the catch-all tournament slug goes
// last.
func SetupArchiveRoutes(app *fiber.App,
	tournamentService *services.TournamentService,
	teamService *services.TeamService,
	videoService *services.VideoService) {

	app.Get("/", tournamentService.ListTournaments)
	app.Get("/teams/", teamService.ListTeams)
	app.Get("/team/:slug/", teamService.GetTeam)

	app.Get("/video/:id/bookmarks/", videoService.GetBookmarks)
	app.Get("/video/:slug/:date/:order/", videoService.GetVideo)
	app.Get("/video/:slug/:date/", videoService.GetVideo)
	app.Get("/video/:id/", videoService.LegacyRedirect)

	app.Get("/:slug/", tournamentService.GetTournament)
}
