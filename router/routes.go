package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"artfolio/auth"
	handler "artfolio/handlers"
	"artfolio/middleware"
)

// SetupRoutes wires the HTTP surface. The /mine route is registered before
// /:id so it is not swallowed by the parameter match.
func SetupRoutes(app *fiber.App, accounts *handler.AccountHandler, artworks *handler.ArtworkHandler, authSvc *auth.Service) {
	api := app.Group("/api", logger.New())
	api.Get("/health", handler.Health)

	protected := middleware.Protected(authSvc)

	// Accounts
	acc := api.Group("/accounts")
	acc.Post("/signup", accounts.Signup)
	acc.Post("/login", accounts.Login)
	acc.Get("/profile", protected, accounts.GetProfile)
	acc.Put("/profile", protected, accounts.UpdateProfile)

	// Artworks
	art := api.Group("/artworks")
	art.Get("/", artworks.ListAll)
	art.Get("/mine", protected, artworks.ListMine)
	art.Get("/:id", artworks.GetOne)
	art.Post("/", protected, artworks.Upload)
	art.Delete("/:id", protected, artworks.Delete)
}
