package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-scorer/internal/models"
	"alfredoptarigan/resume-scorer/internal/services"
)

// readResumes loads every file uploaded under field into memory.
func readResumes(c *fiber.Ctx, field string, maxFileSize int64) ([]models.ResumeDocument, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "failed to parse multipart form")
	}

	files := form.File[field]
	if len(files) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("no files uploaded. Upload PDF, DOCX or TXT files as '%s'", field))
	}

	docs := make([]models.ResumeDocument, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxFileSize {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s is too large. Max size: %d bytes", fh.Filename, maxFileSize))
		}

		data, err := readFile(fh)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("failed to read %s: %v", fh.Filename, err))
		}

		docs = append(docs, models.ResumeDocument{
			ID:       uuid.NewString(),
			Filename: fh.Filename,
			Format:   models.DetectFormat(fh.Filename, fh.Header.Get(fiber.HeaderContentType)),
			Data:     data,
		})
	}

	return docs, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}

// readSingleResume is readResumes for forms that take exactly one file.
func readSingleResume(c *fiber.Ctx, field string, maxFileSize int64) (models.ResumeDocument, error) {
	docs, err := readResumes(c, field, maxFileSize)
	if err != nil {
		return models.ResumeDocument{}, err
	}
	return docs[0], nil
}

// scoreParams is a parsed and resolved scoring form.
type scoreParams struct {
	profile  *models.RoleProfile
	weights  models.Weights
	warnings []string
}

// parseScoreRequest validates the form fields, resolves the target role and
// normalizes the weights. A pasted job description wins over a role name.
func parseScoreRequest(
	c *fiber.Ctx,
	validate *validator.Validate,
	store services.ProfileStore,
	defaults models.Weights,
) (*scoreParams, error) {
	var req models.ScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validate.Struct(req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "either 'role' or 'job_description' is required")
	}

	params := &scoreParams{}

	if jd := strings.TrimSpace(req.JobDescription); jd != "" {
		params.profile = models.AdHocProfile(jd)
	} else {
		profile, ok := store.Find(req.Role)
		if !ok {
			return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unknown role '%s'", req.Role))
		}
		params.profile = profile
	}

	params.weights, params.warnings = resolveWeights(req.KeywordWeight, req.SemanticWeight, defaults)
	return params, nil
}

// resolveWeights uses the defaults when neither weight was sent.
func resolveWeights(keyword, semantic float64, defaults models.Weights) (models.Weights, []string) {
	w := defaults
	if keyword != 0 || semantic != 0 {
		w = models.Weights{Keyword: keyword, Semantic: semantic}
	}

	normalized, cfgErr := services.NormalizeWeights(w)
	if cfgErr != nil {
		log.Printf("⚠️  %v\n", cfgErr)
		return normalized, []string{cfgErr.Error()}
	}
	return normalized, nil
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// errorStatus maps an error to an HTTP status and a message safe to show.
func errorStatus(err error) (int, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message
	}

	var extractionErr *services.ExtractionError
	if errors.As(err, &extractionErr) {
		return fiber.StatusUnprocessableEntity, extractionErr.Error()
	}

	var unavailable *services.EmbeddingUnavailableError
	if errors.As(err, &unavailable) {
		return fiber.StatusServiceUnavailable, unavailable.Error()
	}

	return fiber.StatusInternalServerError, err.Error()
}

func jsonError(c *fiber.Ctx, err error) error {
	code, msg := errorStatus(err)
	return c.Status(code).JSON(fiber.Map{
		"error": msg,
		"code":  code,
	})
}

func pageError(c *fiber.Ctx, err error) error {
	code, msg := errorStatus(err)
	return c.Status(code).Render("error", fiber.Map{
		"Title": "Something went wrong",
		"Code":  code,
		"Error": msg,
	}, "layouts/main")
}
