// Package chat expone la mensajería directa: envío y lectura por polling.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	chatsvc "github.com/dropDatabas3/lifeline/internal/chat"
	"github.com/dropDatabas3/lifeline/internal/domain/repository"
	httpx "github.com/dropDatabas3/lifeline/internal/http"
	dto "github.com/dropDatabas3/lifeline/internal/http/dto/chat"
	httperrors "github.com/dropDatabas3/lifeline/internal/http/errors"
	mw "github.com/dropDatabas3/lifeline/internal/http/middlewares"
	"github.com/dropDatabas3/lifeline/internal/observability/logger"
)

// Controller maneja los endpoints de chat.
type Controller struct {
	service *chatsvc.Service
	users   repository.UserRepository
}

// NewController crea el controller de chat.
func NewController(service *chatsvc.Service, users repository.UserRepository) *Controller {
	return &Controller{service: service, users: users}
}

// Send maneja POST /v1/chat/{id}/messages.
func (c *Controller) Send(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Chat.Send"))
	viewer := mw.MustGetUserID(ctx)
	other := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, 32<<10) // 32KB

	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	msg, err := c.service.Send(ctx, viewer, other, req.Content)
	if err != nil {
		c.writeChatError(w, log, err)
		return
	}
	httpx.RecordMessageSent()

	names, err := c.usernames(ctx, viewer, other)
	if err != nil {
		log.Error("username lookup error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toMessageResponse(*msg, names))
}

// Thread maneja GET /v1/chat/{id}/messages. Con ?since=<RFC3339> retorna
// solo los mensajes posteriores al cursor (la lectura del polling).
func (c *Controller) Thread(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Chat.Thread"))
	viewer := mw.MustGetUserID(ctx)
	other := chi.URLParam(r, "id")

	var (
		msgs []repository.Message
		err  error
	)
	if since := r.URL.Query().Get("since"); since != "" {
		cursor, perr := time.Parse(time.RFC3339Nano, since)
		if perr != nil {
			httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("since must be RFC3339"))
			return
		}
		msgs, err = c.service.ThreadSince(ctx, viewer, other, cursor)
	} else {
		msgs, err = c.service.Thread(ctx, viewer, other)
	}
	if err != nil {
		c.writeChatError(w, log, err)
		return
	}

	names, err := c.usernames(ctx, viewer, other)
	if err != nil {
		log.Error("username lookup error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	resp := dto.ThreadResponse{Messages: make([]dto.MessageResponse, 0, len(msgs))}
	for _, m := range msgs {
		resp.Messages = append(resp.Messages, toMessageResponse(m, names))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) writeChatError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, chatsvc.ErrSelfChat):
		httperrors.WriteError(w, httperrors.ErrSelfReference)
	case errors.Is(err, chatsvc.ErrNotConnected):
		httperrors.WriteError(w, httperrors.ErrNotConnected)
	case errors.Is(err, chatsvc.ErrEmptyMessage):
		httperrors.WriteError(w, httperrors.ErrMessageEmpty)
	case errors.Is(err, chatsvc.ErrMessageTooLong):
		httperrors.WriteError(w, httperrors.ErrMessageTooLong)
	case repository.IsNotFound(err):
		httperrors.WriteError(w, httperrors.ErrUserNotFound)
	default:
		log.Error("chat error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}

// usernames resuelve los dos participantes a username para el render.
func (c *Controller) usernames(ctx context.Context, a, b string) (map[string]string, error) {
	out := make(map[string]string, 2)
	for _, id := range []string{a, b} {
		u, err := c.users.GetByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		out[id] = u.Username
	}
	return out, nil
}

func toMessageResponse(m repository.Message, names map[string]string) dto.MessageResponse {
	sender := names[m.Sender]
	if sender == "" {
		sender = m.Sender
	}
	return dto.MessageResponse{
		ID:        m.ID,
		Sender:    sender,
		Content:   m.Content,
		Timestamp: m.CreatedAt.Local().Format("15:04"),
		SentAt:    m.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
