package handlers

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-scorer/internal/models"
	"alfredoptarigan/resume-scorer/internal/repositories"
	"alfredoptarigan/resume-scorer/internal/services"
)

type ScoreHandler struct {
	store       services.ProfileStore
	pool        services.Pool
	sessions    repositories.SessionRepository
	validate    *validator.Validate
	defaults    models.Weights
	maxFileSize int64
}

func NewScoreHandler(
	store services.ProfileStore,
	pool services.Pool,
	sessions repositories.SessionRepository,
	defaults models.Weights,
	maxFileSize int64,
) *ScoreHandler {
	return &ScoreHandler{
		store:       store,
		pool:        pool,
		sessions:    sessions,
		validate:    validator.New(),
		defaults:    defaults,
		maxFileSize: maxFileSize,
	}
}

// score ranks the uploaded resumes and stores the session.
func (h *ScoreHandler) score(c *fiber.Ctx) (*models.ScoringSession, []string, error) {
	params, err := parseScoreRequest(c, h.validate, h.store, h.defaults)
	if err != nil {
		return nil, nil, err
	}

	docs, err := readResumes(c, "resumes", h.maxFileSize)
	if err != nil {
		return nil, nil, err
	}

	ranked := h.pool.ScoreBatch(c.UserContext(), docs, params.profile, params.weights)

	session := models.NewScoringSession(params.profile.Name, params.weights, ranked)
	if err := h.sessions.Create(session); err != nil {
		return nil, nil, fmt.Errorf("failed to save scoring session: %w", err)
	}

	log.Printf("📋 Session %s: %d resumes ranked for %s\n", session.ID, len(ranked), params.profile.Name)
	return session, params.warnings, nil
}

// HandleScore is the JSON variant of the scoring form.
func (h *ScoreHandler) HandleScore(c *fiber.Ctx) error {
	session, warnings, err := h.score(c)
	if err != nil {
		return jsonError(c, err)
	}

	resp := session.ToResponse()
	resp.Warnings = warnings
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// HandleIndex renders the upload form.
func (h *ScoreHandler) HandleIndex(c *fiber.Ctx) error {
	roles := make([]fiber.Map, 0)
	for _, p := range h.store.All() {
		roles = append(roles, fiber.Map{"Name": p.Name, "DisplayName": p.DisplayName()})
	}

	return c.Render("index", fiber.Map{
		"Title":   "Resume Scorer",
		"Roles":   roles,
		"Weights": h.defaults,
	}, "layouts/main")
}

// HandleScorePage scores the upload and renders the ranking.
func (h *ScoreHandler) HandleScorePage(c *fiber.Ctx) error {
	session, warnings, err := h.score(c)
	if err != nil {
		return pageError(c, err)
	}

	return c.Render("results", resultsView(session, warnings), "layouts/main")
}

func resultsView(session *models.ScoringSession, warnings []string) fiber.Map {
	return fiber.Map{
		"Title":    "Ranking",
		"Session":  session.ToResponse(),
		"Role":     (&models.RoleProfile{Name: session.Role}).DisplayName(),
		"Warnings": warnings,
	}
}
