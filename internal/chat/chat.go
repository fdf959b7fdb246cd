// Package chat implementa la mensajería directa condicionada al grafo
// social.
//
// La regla es una sola: dos usuarios pueden intercambiar mensajes si
// existe al menos una arista de follow entre ellos, en cualquier
// dirección. La regla se evalúa en cada send, no al abrir la conversación:
// un unfollow corta el intercambio inmediatamente, pero el historial ya
// persistido queda.
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dropDatabas3/lifeline/internal/domain/repository"
	"github.com/dropDatabas3/lifeline/internal/observability/logger"
)

// Errores del servicio de chat.
var (
	// ErrNotConnected indica que no hay arista de follow en ninguna
	// dirección entre los dos usuarios.
	ErrNotConnected = errors.New("chat: users are not connected")

	// ErrSelfChat indica un intento de chatear con uno mismo.
	ErrSelfChat = errors.New("chat: cannot message yourself")

	// ErrEmptyMessage indica contenido vacío tras recortar espacios.
	ErrEmptyMessage = errors.New("chat: empty message")

	// ErrMessageTooLong indica contenido por encima del máximo configurado.
	ErrMessageTooLong = errors.New("chat: message too long")
)

// Connector responde si dos usuarios están conectados en el grafo.
// social.Graph lo implementa.
type Connector interface {
	AreConnected(ctx context.Context, a, b string) (bool, error)
}

// Options ajusta el comportamiento del servicio.
type Options struct {
	// RequireConnectionToRead aplica el gate también a las lecturas.
	// Apagado por default: el historial persiste aunque la conexión se
	// corte, y leerlo no filtra información nueva.
	RequireConnectionToRead bool

	// MaxMessageLength limita el contenido en bytes. 0 usa 4096.
	MaxMessageLength int
}

// Service coordina autorización y persistencia de mensajes.
type Service struct {
	graph    Connector
	users    repository.UserRepository
	messages repository.MessageRepository
	opts     Options
}

// NewService crea el servicio de chat.
func NewService(graph Connector, users repository.UserRepository, messages repository.MessageRepository, opts Options) *Service {
	if opts.MaxMessageLength <= 0 {
		opts.MaxMessageLength = 4096
	}
	return &Service{graph: graph, users: users, messages: messages, opts: opts}
}

// CanExchange reporta si sender y recipient pueden intercambiar mensajes.
// ErrSelfChat si son el mismo usuario; ErrNotFound si el recipient no
// existe.
func (s *Service) CanExchange(ctx context.Context, sender, recipient string) error {
	if sender == recipient {
		return ErrSelfChat
	}
	ok, err := s.users.Exists(ctx, recipient)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrNotFound
	}
	connected, err := s.graph.AreConnected(ctx, sender, recipient)
	if err != nil {
		return err
	}
	if !connected {
		return ErrNotConnected
	}
	return nil
}

// Send valida la autorización y el contenido, y persiste el mensaje.
// La autorización se chequea en ESTA llamada; que antes hayan chateado no
// la otorga.
func (s *Service) Send(ctx context.Context, sender, recipient, content string) (*repository.Message, error) {
	if err := s.CanExchange(ctx, sender, recipient); err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}
	if len(trimmed) > s.opts.MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	msg, err := s.messages.Append(ctx, repository.AppendMessageInput{
		Sender:    sender,
		Recipient: recipient,
		Content:   trimmed,
	})
	if err != nil {
		return nil, err
	}

	logger.From(ctx).Debug("message stored",
		logger.Component("chat"), logger.Sender(sender), logger.Recipient(recipient))
	return msg, nil
}

// Thread retorna el historial completo entre viewer y other, ascendente.
func (s *Service) Thread(ctx context.Context, viewer, other string) ([]repository.Message, error) {
	if err := s.authorizeRead(ctx, viewer, other); err != nil {
		return nil, err
	}
	return s.messages.Thread(ctx, viewer, other)
}

// ThreadSince retorna solo los mensajes posteriores al cursor. Es la
// lectura del polling: re-ejecutable, sin efectos.
func (s *Service) ThreadSince(ctx context.Context, viewer, other string, cursor time.Time) ([]repository.Message, error) {
	if err := s.authorizeRead(ctx, viewer, other); err != nil {
		return nil, err
	}
	return s.messages.ThreadSince(ctx, viewer, other, cursor)
}

func (s *Service) authorizeRead(ctx context.Context, viewer, other string) error {
	if viewer == other {
		return ErrSelfChat
	}
	if !s.opts.RequireConnectionToRead {
		return nil
	}
	connected, err := s.graph.AreConnected(ctx, viewer, other)
	if err != nil {
		return err
	}
	if !connected {
		return ErrNotConnected
	}
	return nil
}
