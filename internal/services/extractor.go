package services

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"alfredoptarigan/resume-scorer/internal/models"
)

type TextExtractor interface {
	Extract(doc models.ResumeDocument) (*ExtractedText, error)
}

type ExtractedText struct {
	Text      string
	PageCount int
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

// Extract implements TextExtractor.
func (t *textExtractor) Extract(doc models.ResumeDocument) (*ExtractedText, error) {
	var (
		raw   string
		pages = 1
		err   error
	)

	switch doc.Format {
	case models.FormatPDF:
		raw, pages, err = extractPDF(doc.Data)
	case models.FormatDOCX:
		raw, err = extractDOCX(doc.Data)
	default:
		raw = strings.ToValidUTF8(string(doc.Data), "")
	}
	if err != nil {
		var extractionErr *ExtractionError
		if errors.As(err, &extractionErr) {
			extractionErr.Filename = doc.Filename
			return nil, extractionErr
		}
		return nil, &ExtractionError{Filename: doc.Filename, Reason: "unreadable document", Cause: err}
	}

	text := CleanText(raw)
	if text == "" {
		return nil, &ExtractionError{Filename: doc.Filename, Reason: "no text content found"}
	}

	return &ExtractedText{Text: text, PageCount: pages}, nil
}

func extractPDF(data []byte) (text string, pages int, err error) {
	// The pdf package panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = &ExtractionError{Reason: "corrupt PDF", Cause: fmt.Errorf("%v", r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return "", 0, &ExtractionError{Reason: "password-protected PDF", Cause: err}
		}
		return "", 0, fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		if textBuilder.Len() > 0 {
			textBuilder.WriteString("\n")
		}
		textBuilder.WriteString(pageText)
	}

	return textBuilder.String(), totalPage, nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:tab/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}

var inlineSpace = regexp.MustCompile(`[ \t\r\f\v\x{00a0}]+`)

// CleanText collapses whitespace inside lines, trims every line and drops blank
// lines. Line breaks survive so headings can still be detected.
func CleanText(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(inlineSpace.ReplaceAllString(line, " "))
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n")
}

// LoadDocument reads a resume from disk for the CLI.
func LoadDocument(path string) (models.ResumeDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.ResumeDocument{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	name := filepath.Base(path)
	return models.ResumeDocument{
		ID:       uuid.NewString(),
		Filename: name,
		Format:   models.DetectFormat(name, ""),
		Data:     data,
	}, nil
}
