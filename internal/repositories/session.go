package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"wearwise/style-advisor/internal/models"
)

// SessionRepository keeps sessions in memory; idle sessions expire after the TTL.
type SessionRepository interface {
	Create() (*models.Session, error)
	FindByID(id uuid.UUID) (*models.Session, error)
	Save(session *models.Session) error
}

type sessionRepository struct {
	store *cache.Cache
}

func NewSessionRepository(ttl time.Duration) SessionRepository {
	return &sessionRepository{
		store: cache.New(ttl, ttl*2),
	}
}

func (r *sessionRepository) Create() (*models.Session, error) {
	now := time.Now()
	session := models.Session{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.store.Add(session.ID.String(), session, cache.DefaultExpiration); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) FindByID(id uuid.UUID) (*models.Session, error) {
	value, ok := r.store.Get(id.String())
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}

	session := value.(models.Session)
	return &session, nil
}

// Save replaces the stored session and refreshes its expiry.
func (r *sessionRepository) Save(session *models.Session) error {
	if _, ok := r.store.Get(session.ID.String()); !ok {
		return fmt.Errorf("session %s: %w", session.ID, ErrNotFound)
	}

	session.UpdatedAt = time.Now()
	r.store.Set(session.ID.String(), *session, cache.DefaultExpiration)
	return nil
}
