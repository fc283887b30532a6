package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"alfredoptarigan/resume-scorer/internal/models"
)

// ExportStore writes ranking CSVs to disk so they can be fetched later.
type ExportStore interface {
	SaveExport(sessionID string, results []models.RankedResult) (string, string, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureExportDir() error
}

type exportStore struct {
	exportPath string
}

func NewExportStore(exportPath string) ExportStore {
	return &exportStore{
		exportPath: exportPath,
	}
}

func (s *exportStore) EnsureExportDir() error {
	if err := os.MkdirAll(s.exportPath, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	return nil
}

// SaveExport renders the ranking as CSV and writes it under a unique name.
// It returns the filename and the full path.
func (s *exportStore) SaveExport(sessionID string, results []models.RankedResult) (string, string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, results); err != nil {
		return "", "", err
	}

	if sessionID == "" {
		sessionID = "ranking"
	}
	uniqueFilename := fmt.Sprintf("%s_%s.csv", sessionID, uuid.New().String()[:8])
	filePath := filepath.Join(s.exportPath, uniqueFilename)

	if err := os.WriteFile(filePath, buf.Bytes(), 0644); err != nil {
		return "", "", fmt.Errorf("failed to save export: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *exportStore) GetFilePath(filename string) string {
	return filepath.Join(s.exportPath, filepath.Base(filename))
}

func (s *exportStore) DeleteFile(filename string) error {
	filePath := s.GetFilePath(filename)
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
