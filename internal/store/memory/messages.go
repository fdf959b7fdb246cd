package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dropDatabas3/lifeline/internal/domain/repository"
	"github.com/google/uuid"
)

type messageRepo struct {
	mu sync.RWMutex

	log []repository.Message
	seq int64
	// lastStamp garantiza timestamps monótonos aunque el reloj retroceda.
	lastStamp time.Time

	now func() time.Time
}

func newMessageRepo(now func() time.Time) *messageRepo {
	return &messageRepo{now: now}
}

func (r *messageRepo) Append(ctx context.Context, input repository.AppendMessageInput) (*repository.Message, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" || input.Sender == "" || input.Recipient == "" {
		return nil, repository.ErrInvalidInput
	}

	// El append completo (stamp + seq + insert) se serializa para que los
	// lectores vean un orden estable.
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp := r.now().UTC()
	if stamp.Before(r.lastStamp) {
		stamp = r.lastStamp
	}
	r.lastStamp = stamp
	r.seq++

	m := repository.Message{
		ID:        uuid.NewString(),
		Sender:    input.Sender,
		Recipient: input.Recipient,
		Content:   content,
		Seq:       r.seq,
		CreatedAt: stamp,
	}
	r.log = append(r.log, m)

	out := m
	return &out, nil
}

func (r *messageRepo) Thread(ctx context.Context, a, b string) ([]repository.Message, error) {
	return r.collect(a, b, func(m repository.Message) bool { return true }), nil
}

func (r *messageRepo) ThreadSince(ctx context.Context, a, b string, cursor time.Time) ([]repository.Message, error) {
	return r.collect(a, b, func(m repository.Message) bool {
		return m.CreatedAt.After(cursor)
	}), nil
}

// collect recorre el log en orden de inserción, que por construcción
// coincide con (CreatedAt, Seq) ascendente.
func (r *messageRepo) collect(a, b string, keep func(repository.Message) bool) []repository.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []repository.Message
	for _, m := range r.log {
		between := (m.Sender == a && m.Recipient == b) || (m.Sender == b && m.Recipient == a)
		if between && keep(m) {
			out = append(out, m)
		}
	}
	return out
}
