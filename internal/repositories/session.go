package repositories

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-scorer/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(session *models.ScoringSession) error
	FindByID(id uuid.UUID) (*models.ScoringSession, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *models.ScoringSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) FindByID(id uuid.UUID) (*models.ScoringSession, error) {
	var session models.ScoringSession
	err := r.db.
		Preload("Results", func(db *gorm.DB) *gorm.DB {
			return db.Order("rank ASC")
		}).
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

type memoryEntry struct {
	session   *models.ScoringSession
	expiresAt time.Time
}

type memorySessionRepository struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[uuid.UUID]memoryEntry
}

// NewMemorySessionRepository keeps sessions in process memory. Sessions older
// than ttl are dropped; ttl <= 0 keeps them until restart.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return &memorySessionRepository{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[uuid.UUID]memoryEntry),
	}
}

func (r *memorySessionRepository) Create(session *models.ScoringSession) error {
	if session == nil {
		return errors.New("failed to create session: nil session")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.evictExpired()
	entry := memoryEntry{session: session}
	if r.ttl > 0 {
		entry.expiresAt = r.now().Add(r.ttl)
	}
	r.sessions[session.ID] = entry
	return nil
}

func (r *memorySessionRepository) FindByID(id uuid.UUID) (*models.ScoringSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok || r.expired(entry) {
		delete(r.sessions, id)
		return nil, ErrSessionNotFound
	}
	return entry.session, nil
}

func (r *memorySessionRepository) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && r.now().After(e.expiresAt)
}

func (r *memorySessionRepository) evictExpired() {
	for id, e := range r.sessions {
		if r.expired(e) {
			delete(r.sessions, id)
		}
	}
}
