package repository

import (
	"context"
	"time"
)

// Message es un mensaje directo entre dos usuarios. Inmutable una vez
// creado; este backend nunca borra mensajes.
type Message struct {
	ID        string
	Sender    string
	Recipient string
	Content   string
	// Seq es un secuencial global asignado por el store al hacer append.
	// Desempata mensajes con el mismo CreatedAt preservando el orden de
	// inserción.
	Seq       int64
	CreatedAt time.Time
}

// AppendMessageInput contiene los datos para persistir un mensaje.
// La autorización (gate de follows) ocurre en la capa de servicio ANTES de
// llegar acá; el repo solo valida contenido.
type AppendMessageInput struct {
	Sender    string
	Recipient string
	Content   string
}

// MessageRepository es el log append-only de mensajes.
type MessageRepository interface {
	// Append persiste un mensaje. El timestamp asignado es monótono no
	// decreciente respecto de todos los appends previos del store; el
	// append se serializa para que Thread/ThreadSince vean un orden
	// estable. Retorna ErrInvalidInput si el contenido queda vacío tras
	// trim.
	Append(ctx context.Context, input AppendMessageInput) (*Message, error)

	// Thread retorna todos los mensajes cuyo par {sender, recipient} es
	// {a, b}, en orden ascendente (CreatedAt, Seq). Lectura sin estado,
	// re-ejecutable.
	Thread(ctx context.Context, a, b string) ([]Message, error)

	// ThreadSince retorna solo los mensajes con CreatedAt > cursor, mismo
	// filtro y orden que Thread. Soporta el polling incremental del chat.
	ThreadSince(ctx context.Context, a, b string, cursor time.Time) ([]Message, error)
}
