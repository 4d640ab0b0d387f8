package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Hamuko/daiseihai/middleware"
	"github.com/Hamuko/daiseihai/services"
)

// SetupAdminRoutes registers the write-side CRUD surface. Every route
// requires the admin bearer token.
func SetupAdminRoutes(app *fiber.App, adminToken string,
	leagueService *services.LeagueService,
	tournamentService *services.TournamentService,
	teamService *services.TeamService,
	chatService *services.ChatService,
	videoService *services.VideoService) {

	admin := app.Group("/admin", middleware.AdminAuthMiddleware(adminToken))

	admin.Get("/leagues", leagueService.ListLeagues)
	admin.Post("/leagues", leagueService.CreateLeague)
	admin.Put("/leagues/:slug", leagueService.UpdateLeague)
	admin.Delete("/leagues/:slug", leagueService.DeleteLeague)

	admin.Post("/tournaments", tournamentService.CreateTournament)
	admin.Put("/tournaments/:slug", tournamentService.UpdateTournament)
	admin.Delete("/tournaments/:slug", tournamentService.DeleteTournament)

	admin.Post("/teams", teamService.CreateTeam)
	admin.Put("/teams/:slug", teamService.UpdateTeam)
	admin.Delete("/teams/:slug", teamService.DeleteTeam)

	admin.Get("/chats", chatService.ListChats)
	admin.Post("/chats", chatService.CreateChat)
	admin.Delete("/chats/:id", chatService.DeleteChat)

	admin.Post("/videos", videoService.CreateVideo)
	admin.Put("/videos/:id", videoService.UpdateVideo)
	admin.Delete("/videos/:id", videoService.DeleteVideo)
}
