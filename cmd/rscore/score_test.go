package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-scorer/internal/models"
)

type failingCloser struct {
	bytes.Buffer
	err error
}

func (f *failingCloser) Close() error { return f.err }

var ranking = []models.RankedResult{
	{Rank: 1, ResumeID: "a", Filename: "a.txt", Breakdown: models.ScoreBreakdown{CombinedScore: 0.5}},
}

func TestWriteCSVAndClose_ReportsCloseError(t *testing.T) {
	diskFull := errors.New("no space left on device")
	wc := &failingCloser{err: diskFull}

	err := writeCSVAndClose(wc, "out.csv", ranking)

	require.ErrorIs(t, err, diskFull)
	assert.Contains(t, err.Error(), "failed to close out.csv")
	assert.True(t, strings.HasPrefix(wc.String(), "resume_id,"))
}

func TestWriteCSVAndClose_OK(t *testing.T) {
	wc := &failingCloser{}
	assert.NoError(t, writeCSVAndClose(wc, "out.csv", ranking))
}

func TestWriteCSVFile_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ranking.csv")

	require.NoError(t, writeCSVFile(path, ranking))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "a.txt,0.0000,0.0000,0.5000,")
}
