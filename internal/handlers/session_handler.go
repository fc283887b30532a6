package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-scorer/internal/models"
	"alfredoptarigan/resume-scorer/internal/repositories"
	"alfredoptarigan/resume-scorer/internal/services"
)

type SessionHandler struct {
	sessions repositories.SessionRepository
	exports  services.ExportStore
}

func NewSessionHandler(sessions repositories.SessionRepository, exports services.ExportStore) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		exports:  exports,
	}
}

func (h *SessionHandler) findSession(c *fiber.Ctx) (*models.ScoringSession, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid session ID")
	}

	session, err := h.sessions.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
		}
		return nil, err
	}
	return session, nil
}

func (h *SessionHandler) HandleGetSession(c *fiber.Ctx) error {
	session, err := h.findSession(c)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(session.ToResponse())
}

// HandleExport streams the ranking as CSV. With ?save=true a copy is also
// written to the export directory.
func (h *SessionHandler) HandleExport(c *fiber.Ctx) error {
	session, err := h.findSession(c)
	if err != nil {
		return jsonError(c, err)
	}

	ranked := session.Ranked()

	var buf bytes.Buffer
	if err := services.WriteCSV(&buf, ranked); err != nil {
		return jsonError(c, err)
	}

	if c.QueryBool("save") && h.exports != nil {
		filename, _, err := h.exports.SaveExport(session.ID.String(), ranked)
		if err != nil {
			log.Printf("⚠️  Failed to save export for session %s: %v\n", session.ID, err)
		} else {
			c.Set("X-Export-File", filename)
		}
	}

	c.Attachment(fmt.Sprintf("ranking_%s.csv", session.ID))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

// HandleDownloadExport serves a CSV previously written with ?save=true.
func (h *SessionHandler) HandleDownloadExport(c *fiber.Ctx) error {
	path := h.exports.GetFilePath(c.Params("file"))
	if _, err := os.Stat(path); err != nil {
		return jsonError(c, fiber.NewError(fiber.StatusNotFound, "export not found"))
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Download(path)
}

func (h *SessionHandler) HandleDeleteExport(c *fiber.Ctx) error {
	if err := h.exports.DeleteFile(c.Params("file")); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return jsonError(c, fiber.NewError(fiber.StatusNotFound, "export not found"))
		}
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *SessionHandler) HandleSessionPage(c *fiber.Ctx) error {
	session, err := h.findSession(c)
	if err != nil {
		return pageError(c, err)
	}
	return c.Render("results", resultsView(session, nil), "layouts/main")
}

// HandleResultPage shows one resume's breakdown and suggestions.
func (h *SessionHandler) HandleResultPage(c *fiber.Ctx) error {
	session, err := h.findSession(c)
	if err != nil {
		return pageError(c, err)
	}

	rid := c.Params("rid")
	for _, r := range session.Ranked() {
		if r.ResumeID == rid {
			return c.Render("detail", fiber.Map{
				"Title":     r.Filename,
				"SessionID": session.ID.String(),
				"Role":      (&models.RoleProfile{Name: session.Role}).DisplayName(),
				"Result":    r,
			}, "layouts/main")
		}
	}

	return pageError(c, fiber.NewError(fiber.StatusNotFound, "result not found"))
}
