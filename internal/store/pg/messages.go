package pg

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/lifeline/internal/domain/repository"
)

type messageRepo struct {
	pool *pgxpool.Pool
}

const messageColumns = `id, sender_id, recipient_id, content, seq, created_at`

func (r *messageRepo) Append(ctx context.Context, input repository.AppendMessageInput) (*repository.Message, error) {
	content := strings.TrimSpace(input.Content)
	if input.Sender == "" || input.Recipient == "" || content == "" {
		return nil, repository.ErrInvalidInput
	}

	// created_at se clava al máximo ya asignado si el reloj retrocede; el
	// advisory lock serializa appends concurrentes para que el MAX leído
	// sea consistente. seq (BIGSERIAL) desempata stamps iguales.
	row := r.pool.QueryRow(ctx, `
		WITH guard AS (
			SELECT pg_advisory_xact_lock(hashtext('messages_append'))
		)
		INSERT INTO messages (sender_id, recipient_id, content, created_at)
		SELECT $1, $2, $3,
			GREATEST(clock_timestamp(), COALESCE((SELECT MAX(created_at) FROM messages), 'epoch'::timestamptz))
		FROM guard
		RETURNING `+messageColumns,
		input.Sender, input.Recipient, content,
	)

	var m repository.Message
	if err := row.Scan(&m.ID, &m.Sender, &m.Recipient, &m.Content, &m.Seq, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *messageRepo) Thread(ctx context.Context, a, b string) ([]repository.Message, error) {
	return r.query(ctx, `
		SELECT `+messageColumns+` FROM messages
		WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
		ORDER BY created_at, seq`,
		a, b)
}

func (r *messageRepo) ThreadSince(ctx context.Context, a, b string, cursor time.Time) ([]repository.Message, error) {
	return r.query(ctx, `
		SELECT `+messageColumns+` FROM messages
		WHERE ((sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1))
		  AND created_at > $3
		ORDER BY created_at, seq`,
		a, b, cursor)
}

func (r *messageRepo) query(ctx context.Context, sql string, args ...any) ([]repository.Message, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.Message
	for rows.Next() {
		var m repository.Message
		if err := rows.Scan(&m.ID, &m.Sender, &m.Recipient, &m.Content, &m.Seq, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
