// Package social expone el directorio de donantes y el grafo de follows.
package social

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/lifeline/internal/domain/repository"
	httpx "github.com/dropDatabas3/lifeline/internal/http"
	dto "github.com/dropDatabas3/lifeline/internal/http/dto/social"
	httperrors "github.com/dropDatabas3/lifeline/internal/http/errors"
	mw "github.com/dropDatabas3/lifeline/internal/http/middlewares"
	"github.com/dropDatabas3/lifeline/internal/observability/logger"
	socialsvc "github.com/dropDatabas3/lifeline/internal/social"
)

// Controller maneja directorio y follows.
type Controller struct {
	graph *socialsvc.Graph
	users repository.UserRepository
}

// NewController crea el controller social.
func NewController(graph *socialsvc.Graph, users repository.UserRepository) *Controller {
	return &Controller{graph: graph, users: users}
}

// Directory maneja GET /v1/users: todos los donantes menos el viewer, con
// el estado de follow de cada uno.
func (c *Controller) Directory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Social.Directory"))
	viewer := mw.MustGetUserID(ctx)

	users, err := c.users.List(ctx, viewer)
	if err != nil {
		log.Error("directory error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	out := make([]dto.UserSummary, 0, len(users))
	for _, u := range users {
		following, err := c.graph.IsFollowing(ctx, viewer, u.ID)
		if err != nil {
			log.Error("follow lookup error", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
			return
		}
		out = append(out, toSummary(u, following))
	}

	writeJSON(w, http.StatusOK, dto.DirectoryResponse{Users: out})
}

// Toggle maneja POST /v1/users/{id}/follow: crea la arista si no existe,
// la borra si existe.
func (c *Controller) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Social.Toggle"))
	viewer := mw.MustGetUserID(ctx)
	target := chi.URLParam(r, "id")

	following, err := c.graph.Toggle(ctx, viewer, target)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSelfReference):
			httperrors.WriteError(w, httperrors.ErrSelfReference)
		case repository.IsNotFound(err):
			httperrors.WriteError(w, httperrors.ErrUserNotFound)
		default:
			log.Error("toggle error", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	httpx.RecordFollowToggle(following)
	writeJSON(w, http.StatusOK, dto.FollowResponse{Following: following})
}

// Connections maneja GET /v1/connections: followers y following del viewer.
func (c *Controller) Connections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Social.Connections"))
	viewer := mw.MustGetUserID(ctx)

	followers, err := c.graph.Followers(ctx, viewer)
	if err != nil {
		log.Error("followers error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}
	following, err := c.graph.Following(ctx, viewer)
	if err != nil {
		log.Error("following error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	resp := dto.ConnectionsResponse{
		Followers: make([]dto.UserSummary, 0, len(followers)),
		Following: make([]dto.UserSummary, 0, len(following)),
	}
	for _, u := range followers {
		back, err := c.graph.IsFollowing(ctx, viewer, u.ID)
		if err != nil {
			log.Error("follow lookup error", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
			return
		}
		resp.Followers = append(resp.Followers, toSummary(u, back))
	}
	for _, u := range following {
		resp.Following = append(resp.Following, toSummary(u, true))
	}

	writeJSON(w, http.StatusOK, resp)
}

func toSummary(u repository.User, following bool) dto.UserSummary {
	return dto.UserSummary{
		ID:         u.ID,
		Username:   u.Username,
		BloodGroup: u.BloodGroup,
		Address:    u.Address,
		Following:  following,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
