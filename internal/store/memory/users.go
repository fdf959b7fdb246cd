package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dropDatabas3/lifeline/internal/domain/repository"
	"github.com/google/uuid"
)

type userRepo struct {
	mu sync.RWMutex

	byID       map[string]*repository.User
	byUsername map[string]string // username → id
	byEmail    map[string]string // email → id
	order      []string          // IDs en orden de registro

	now func() time.Time
}

func newUserRepo(now func() time.Time) *userRepo {
	return &userRepo{
		byID:       make(map[string]*repository.User),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
		now:        now,
	}
}

func (r *userRepo) Create(ctx context.Context, input repository.CreateUserInput) (*repository.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if username == "" || email == "" || input.PasswordHash == "" {
		return nil, repository.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[username]; ok {
		return nil, repository.ErrConflict
	}
	if _, ok := r.byEmail[email]; ok {
		return nil, repository.ErrConflict
	}

	u := &repository.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		BloodGroup:   input.BloodGroup,
		Address:      input.Address,
		PasswordHash: input.PasswordHash,
		CreatedAt:    r.now().UTC(),
	}
	r.byID[u.ID] = u
	r.byUsername[username] = u.ID
	r.byEmail[email] = u.ID
	r.order = append(r.order, u.ID)

	out := *u
	return &out, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*repository.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUsername[strings.TrimSpace(username)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *r.byID[id]
	return &out, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *r.byID[id]
	return &out, nil
}

func (r *userRepo) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok, nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	if passwordHash == "" {
		return repository.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return repository.ErrNotFound
	}
	r.byID[id].PasswordHash = passwordHash
	return nil
}

func (r *userRepo) List(ctx context.Context, excludeID string) ([]repository.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]repository.User, 0, len(r.order))
	for _, id := range r.order {
		if id == excludeID {
			continue
		}
		out = append(out, *r.byID[id])
	}
	return out, nil
}
