package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-scorer/internal/models"
	"alfredoptarigan/resume-scorer/internal/services"
)

// CompareHandler serves the single-resume views: fit against every role and
// quick feedback for one typed role.
type CompareHandler struct {
	store       services.ProfileStore
	pipeline    services.Pipeline
	extractor   services.TextExtractor
	defaults    models.Weights
	maxFileSize int64
}

func NewCompareHandler(
	store services.ProfileStore,
	pipeline services.Pipeline,
	extractor services.TextExtractor,
	defaults models.Weights,
	maxFileSize int64,
) *CompareHandler {
	return &CompareHandler{
		store:       store,
		pipeline:    pipeline,
		extractor:   extractor,
		defaults:    defaults,
		maxFileSize: maxFileSize,
	}
}

func (h *CompareHandler) compare(c *fiber.Ctx) (*models.CompareResponse, []string, error) {
	doc, err := readSingleResume(c, "resume", h.maxFileSize)
	if err != nil {
		return nil, nil, err
	}

	profiles := h.store.All()
	if len(profiles) == 0 {
		return nil, nil, fiber.NewError(fiber.StatusServiceUnavailable, "no role profiles are loaded")
	}

	weights, warnings := resolveWeights(
		parseFloat(c.FormValue("keyword_weight")),
		parseFloat(c.FormValue("semantic_weight")),
		h.defaults,
	)

	fits, err := h.pipeline.CompareRoles(c.UserContext(), doc, profiles, weights)
	if err != nil {
		return nil, nil, err
	}

	return &models.CompareResponse{Filename: doc.Filename, Weights: weights, Fits: fits}, warnings, nil
}

func (h *CompareHandler) HandleCompare(c *fiber.Ctx) error {
	resp, _, err := h.compare(c)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(resp)
}

func (h *CompareHandler) HandleComparePage(c *fiber.Ctx) error {
	resp, warnings, err := h.compare(c)
	if err != nil {
		return pageError(c, err)
	}
	return c.Render("compare", fiber.Map{
		"Title":    "Role comparison",
		"Compare":  resp,
		"Warnings": warnings,
	}, "layouts/main")
}

func (h *CompareHandler) feedback(c *fiber.Ctx) (*models.FeedbackResponse, string, error) {
	role := c.FormValue("role")
	if role == "" {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "'role' is required")
	}

	doc, err := readSingleResume(c, "resume", h.maxFileSize)
	if err != nil {
		return nil, "", err
	}

	extracted, err := h.extractor.Extract(doc)
	if err != nil {
		return nil, "", err
	}

	profile, suggestions := h.pipeline.RoleFeedback(extracted.Text, role, h.store)
	resp := &models.FeedbackResponse{Suggestions: suggestions}
	display := role
	if profile != nil {
		resp.Role = profile.Name
		resp.Known = true
		display = profile.DisplayName()
	}
	return resp, display, nil
}

func (h *CompareHandler) HandleFeedback(c *fiber.Ctx) error {
	resp, _, err := h.feedback(c)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(resp)
}

func (h *CompareHandler) HandleFeedbackPage(c *fiber.Ctx) error {
	resp, display, err := h.feedback(c)
	if err != nil {
		return pageError(c, err)
	}
	return c.Render("feedback", fiber.Map{
		"Title":    "Resume feedback",
		"Role":     display,
		"Feedback": resp,
	}, "layouts/main")
}
