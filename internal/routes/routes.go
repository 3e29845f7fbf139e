package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/scribehq/scribe-api/internal/config"
	"github.com/scribehq/scribe-api/internal/handlers/account"
	"github.com/scribehq/scribe-api/internal/handlers/auth"
	"github.com/scribehq/scribe-api/internal/handlers/callback"
	"github.com/scribehq/scribe-api/internal/handlers/changelogs"
	"github.com/scribehq/scribe-api/internal/handlers/projects"
	"github.com/scribehq/scribe-api/internal/middleware"
)

func Setup(app *fiber.App, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	{
		// Auth - public
		authRoutes.Post("/register", auth.Register)
		authRoutes.Post("/login", auth.Login)
		authRoutes.Get("/github", auth.GitHubLogin)

		// Auth - protected (JWT)
		authRoutes.Get("/user", middleware.AuthMiddleware(cfg), auth.GetUser)
	}

	// Callback (no auth)
	callbackRoutes := api.Group("/callback")
	{
		callbackRoutes.Get("/github", callback.GitHub)
	}

	// Account (JWT)
	accountRoutes := api.Group("/account", middleware.AuthMiddleware(cfg))
	{
		accountRoutes.Patch("/password", account.UpdatePassword)
		accountRoutes.Patch("/profile", account.UpdateProfile)
	}

	// Projects - reads are public, deletion needs an owner
	projectsRoutes := api.Group("/projects")
	{
		projectsRoutes.Get("/", projects.List)
		projectsRoutes.Get("/:projectId", projects.Get)
		projectsRoutes.Get("/:projectId/changelogs", changelogs.ListPublished)
		projectsRoutes.Delete("/:projectId", middleware.AuthMiddleware(cfg), projects.Delete)
	}

	// Changelogs (JWT)
	changelogsRoutes := api.Group("/changelogs", middleware.AuthMiddleware(cfg))
	{
		changelogsRoutes.Post("/generate", changelogs.Generate)
		changelogsRoutes.Get("/:changelogId", changelogs.Get)
		changelogsRoutes.Post("/:changelogId/publish", changelogs.Publish)
		changelogsRoutes.Delete("/:changelogId", changelogs.Delete)
	}
}
