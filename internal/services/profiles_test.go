package services

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-scorer/internal/models"
)

func writeProfile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

const flatProfile = `name: data_analyst
required_keywords: [SQL, Excel]
nice_to_have_keywords: [Tableau]
description: Analyst building dashboards.
`

const nestedProfile = `keywords:
  must_have: [Python, SQL]
  nice_to_have: [Docker]
description: Data scientist.
`

func TestProfileStore_Load(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "data_analyst.yml", flatProfile)
	writeProfile(t, dir, "data_scientist.yaml", nestedProfile)
	writeProfile(t, dir, "notes.txt", "ignored")

	store := NewProfileStore(dir)
	report, err := store.Load()

	require.NoError(t, err)
	assert.Empty(t, report.Errors)
	assert.Equal(t, []string{"data_analyst", "data_scientist"}, report.Loaded)
	assert.Equal(t, []string{"data_analyst", "data_scientist"}, store.Names())

	ds, ok := store.Get("data_scientist")
	require.True(t, ok)
	assert.Equal(t, []string{"Python", "SQL"}, ds.RequiredKeywords)
	assert.Equal(t, []string{"Docker"}, ds.NiceToHaveKeywords)
	assert.Equal(t, filepath.Join(dir, "data_scientist.yaml"), ds.Source)
}

func TestProfileStore_MalformedFilesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "good.yml", flatProfile)
	writeProfile(t, dir, "broken.yml", "name: [unterminated")
	writeProfile(t, dir, "empty.yml", "name: empty\n")
	writeProfile(t, dir, "zz_duplicate.yml", flatProfile)

	store := NewProfileStore(dir)
	report, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"data_analyst"}, report.Loaded)
	require.Len(t, report.Errors, 3)
	for _, e := range report.Errors {
		var loadErr *ProfileLoadError
		assert.ErrorAs(t, e, &loadErr)
	}
	assert.Len(t, report.ErrorMessages(), 3)
}

func TestProfileStore_MissingDirectory(t *testing.T) {
	_, err := NewProfileStore(filepath.Join(t.TempDir(), "nope")).Load()
	assert.Error(t, err)
}

func TestProfileStore_Find(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "data_analyst.yml", flatProfile)
	store := NewProfileStore(dir)
	_, err := store.Load()
	require.NoError(t, err)

	for _, q := range []string{"data_analyst", "Data Analyst", "data-analyst", "  DATA   analyst "} {
		p, ok := store.Find(q)
		require.True(t, ok, q)
		assert.Equal(t, "data_analyst", p.Name)
	}

	_, ok := store.Find("astronaut")
	assert.False(t, ok)
	_, ok = store.Find("")
	assert.False(t, ok)
}

func TestProfileStore_ReloadSwapsAndRunsHooks(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "data_analyst.yml", flatProfile)
	store := NewProfileStore(dir)

	var hookRuns atomic.Int32
	var lastCount atomic.Int32
	store.OnReload(func(profiles []*models.RoleProfile) {
		hookRuns.Add(1)
		lastCount.Store(int32(len(profiles)))
	})

	_, err := store.Load()
	require.NoError(t, err)
	writeProfile(t, dir, "ds.yml", nestedProfile)
	_, err = store.Load()
	require.NoError(t, err)

	assert.Equal(t, int32(2), hookRuns.Load())
	assert.Equal(t, int32(2), lastCount.Load())
	_, ok := store.Get("ds")
	assert.True(t, ok)
}

func TestProfileStore_WatchReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "data_analyst.yml", flatProfile)
	store := NewProfileStore(dir).(*profileStore)
	store.debounce = 20 * time.Millisecond
	_, err := store.Load()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	writeProfile(t, dir, "ds.yml", nestedProfile)

	assert.Eventually(t, func() bool {
		_, ok := store.Get("ds")
		return ok
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestParse_NameDefaultsToFileStem(t *testing.T) {
	store := NewProfileStore(".").(*profileStore)

	p, err := store.Parse("/profiles/ml_engineer.yml", []byte("required_keywords: [Python]\n"))

	require.NoError(t, err)
	assert.Equal(t, "ml_engineer", p.Name)
	assert.Equal(t, "Python", p.ComparisonText())
}

func TestParse_BlankKeywordsAreDropped(t *testing.T) {
	store := NewProfileStore(".").(*profileStore)

	p, err := store.Parse("x.yml", []byte("name: x\nrequired_keywords: [Python, '  ', SQL]\n"))

	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "SQL"}, p.RequiredKeywords)
}
