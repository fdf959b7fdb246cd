package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dropDatabas3/lifeline/internal/domain/repository"
	"github.com/google/uuid"
)

type campRepo struct {
	mu    sync.RWMutex
	byID  map[string]*repository.BloodCamp
	order []string

	now func() time.Time
}

func newCampRepo(now func() time.Time) *campRepo {
	return &campRepo{
		byID: make(map[string]*repository.BloodCamp),
		now:  now,
	}
}

func (r *campRepo) Create(ctx context.Context, input repository.CreateCampInput) (*repository.BloodCamp, error) {
	if strings.TrimSpace(input.Name) == "" || input.Organizer == "" || input.Date.IsZero() {
		return nil, repository.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c := &repository.BloodCamp{
		ID:        uuid.NewString(),
		Organizer: input.Organizer,
		Name:      strings.TrimSpace(input.Name),
		Location:  strings.TrimSpace(input.Location),
		Date:      input.Date,
		CreatedAt: r.now().UTC(),
	}
	r.byID[c.ID] = c
	r.order = append(r.order, c.ID)

	out := *c
	return &out, nil
}

func (r *campRepo) Get(ctx context.Context, id string) (*repository.BloodCamp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (r *campRepo) ListUpcoming(ctx context.Context, from time.Time) ([]repository.BloodCamp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []repository.BloodCamp
	for _, id := range r.order {
		c := r.byID[id]
		if !c.Date.Before(from) {
			out = append(out, *c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *campRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *campRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []string
	deleted := 0
	for _, id := range r.order {
		if r.byID[id].Date.Before(cutoff) {
			delete(r.byID, id)
			deleted++
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return deleted, nil
}
