package memory

import (
	"context"
	"errors"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
)

// ErrDuplicateKey simula a violação de índice único do banco
var ErrDuplicateKey = errors.New("duplicate key")

// UserRepository implementa repositories.UserRepository em memória
type UserRepository struct {
	s *store
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email.String() == user.Email.String() {
			return ErrDuplicateKey
		}
	}

	if user.ID == "" {
		user.ID = newID()
	}
	now := r.s.now()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.s.users[user.ID] = *user
	r.s.userSeq[user.ID] = r.s.nextSeq()
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email.String() == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return errors.New("user not found")
	}
	user.UpdatedAt = r.s.now()
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.users, id)
	delete(r.s.userSeq, id)
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := make([]string, 0, len(r.s.users))
	for id := range r.s.users {
		ids = append(ids, id)
	}
	sortByRecency(ids, r.s.userSeq)

	users := make([]*entities.User, 0, len(ids))
	for _, id := range ids {
		u := r.s.users[id]
		users = append(users, &u)
	}
	return users, nil
}
