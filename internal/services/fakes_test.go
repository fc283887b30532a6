package services

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"alfredoptarigan/resume-scorer/internal/models"
)

// fakeEmbedder hashes words into a small bag-of-words vector, so texts that
// share vocabulary get similar vectors.
type fakeEmbedder struct {
	mu    sync.Mutex
	calls int
	texts int
	err   error
	delay time.Duration
	vec   func(text string) []float32
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	f.calls++
	f.texts += len(texts)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}

	out := make([][]float32, len(texts))
	for i, t := range texts {
		if f.vec != nil {
			out[i] = f.vec(t)
		} else {
			out[i] = bagOfWords(t)
		}
	}
	return out, nil
}

func (f *fakeEmbedder) stats() (calls, texts int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls, f.texts
}

func bagOfWords(text string) []float32 {
	v := make([]float32, 32)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(w))
		v[h.Sum32()%32]++
	}
	return v
}

func dataScientist() *models.RoleProfile {
	return &models.RoleProfile{
		Name:               "data_scientist",
		RequiredKeywords:   []string{"Python", "SQL", "R"},
		NiceToHaveKeywords: []string{"Docker"},
		Description:        "Data scientist building machine learning models with Python and SQL.",
	}
}
