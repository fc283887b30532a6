package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Score   *ScoreHandler
	Session *SessionHandler
	Role    *RoleHandler
	Compare *CompareHandler
}

// Register mounts the UI pages at the root and the JSON API under /api/v1.
func Register(app *fiber.App, h Handlers) {
	// UI
	app.Get("/", h.Score.HandleIndex)
	app.Post("/score", h.Score.HandleScorePage)
	app.Get("/sessions/:id", h.Session.HandleSessionPage)
	app.Get("/sessions/:id/results/:rid", h.Session.HandleResultPage)
	app.Post("/compare", h.Compare.HandleComparePage)
	app.Post("/feedback", h.Compare.HandleFeedbackPage)

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Get("/roles", h.Role.HandleListRoles)
	api.Post("/roles/reload", h.Role.HandleReload)
	api.Post("/roles/suggest", h.Role.HandleSuggest)

	api.Post("/score", h.Score.HandleScore)
	api.Get("/sessions/:id", h.Session.HandleGetSession)
	api.Get("/sessions/:id/export", h.Session.HandleExport)
	api.Get("/exports/:file", h.Session.HandleDownloadExport)
	api.Delete("/exports/:file", h.Session.HandleDeleteExport)

	api.Post("/compare", h.Compare.HandleCompare)
	api.Post("/feedback", h.Compare.HandleFeedback)
}
