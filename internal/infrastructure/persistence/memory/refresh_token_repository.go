package memory

import (
	"context"
	"time"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
)

// RefreshTokenRepository implementa repositories.RefreshTokenRepository em memória
type RefreshTokenRepository struct {
	s *store
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *entities.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, t := range r.s.tokens {
		if t.Token == token.Token {
			return ErrDuplicateKey
		}
	}

	if token.ID == "" {
		token.ID = newID()
	}
	token.CreatedAt = r.s.now()

	r.s.tokens[token.ID] = *token
	return nil
}

func (r *RefreshTokenRepository) FindByToken(ctx context.Context, token string) (*entities.RefreshToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, t := range r.s.tokens {
		if t.Token == token {
			found := t
			return &found, nil
		}
	}
	return nil, nil
}

func (r *RefreshTokenRepository) DeleteByID(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.tokens, id)
	return nil
}

func (r *RefreshTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, t := range r.s.tokens {
		if t.Token == token {
			delete(r.s.tokens, id)
		}
	}
	return nil
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var removed int64
	for id, t := range r.s.tokens {
		if now.After(t.ExpiresAt) {
			delete(r.s.tokens, id)
			removed++
		}
	}
	return removed, nil
}
