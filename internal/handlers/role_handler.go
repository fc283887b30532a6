package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-scorer/internal/models"
	"alfredoptarigan/resume-scorer/internal/services"
)

type RoleHandler struct {
	store       services.ProfileStore
	pipeline    services.Pipeline
	index       services.RoleIndex
	maxFileSize int64
}

// NewRoleHandler builds the role endpoints. index may be nil, in which case
// role suggestions answer 503.
func NewRoleHandler(
	store services.ProfileStore,
	pipeline services.Pipeline,
	index services.RoleIndex,
	maxFileSize int64,
) *RoleHandler {
	return &RoleHandler{
		store:       store,
		pipeline:    pipeline,
		index:       index,
		maxFileSize: maxFileSize,
	}
}

func (h *RoleHandler) HandleListRoles(c *fiber.Ctx) error {
	return c.JSON(models.RolesResponse{Roles: h.store.Names()})
}

// HandleReload re-reads the profile directory. Malformed files are listed in
// the response but do not fail the request.
func (h *RoleHandler) HandleReload(c *fiber.Ctx) error {
	report, err := h.store.Load()
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(models.RolesResponse{
		Roles:  h.store.Names(),
		Errors: report.ErrorMessages(),
	})
}

// HandleSuggest embeds the uploaded resume and returns the closest roles.
func (h *RoleHandler) HandleSuggest(c *fiber.Ctx) error {
	if h.index == nil {
		return jsonError(c, fiber.NewError(fiber.StatusServiceUnavailable, "role index is not configured"))
	}

	doc, err := readSingleResume(c, "resume", h.maxFileSize)
	if err != nil {
		return jsonError(c, err)
	}

	vector, err := h.pipeline.EmbedResume(c.UserContext(), doc)
	if err != nil {
		return jsonError(c, err)
	}

	matches, err := h.index.SearchRoles(c.UserContext(), vector, c.QueryInt("limit", 3))
	if err != nil {
		return jsonError(c, err)
	}

	// The index may still hold roles removed since the last reload.
	known := make([]models.RoleMatch, 0, len(matches))
	for _, m := range matches {
		if _, ok := h.store.Get(m.Role); ok {
			known = append(known, m)
		}
	}

	return c.JSON(fiber.Map{
		"filename": doc.Filename,
		"matches":  known,
	})
}
