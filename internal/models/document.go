package models

import (
	"path/filepath"
	"strings"
)

type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatTXT  DocumentFormat = "txt"
	FormatDOCX DocumentFormat = "docx"
)

// ResumeDocument is an uploaded resume. It only lives for one scoring request.
type ResumeDocument struct {
	ID       string
	Filename string
	Format   DocumentFormat
	Data     []byte
}

// DetectFormat picks a format from the declared MIME type, falling back to the
// file extension. Anything unrecognized is treated as plain text.
func DetectFormat(filename, mimeType string) DocumentFormat {
	switch strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0])) {
	case "application/pdf":
		return FormatPDF
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return FormatDOCX
	case "text/plain":
		return FormatTXT
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	default:
		return FormatTXT
	}
}
