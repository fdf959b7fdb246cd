// Package camps expone las campañas de donación.
package camps

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/lifeline/internal/domain/repository"
	dto "github.com/dropDatabas3/lifeline/internal/http/dto/camps"
	httperrors "github.com/dropDatabas3/lifeline/internal/http/errors"
	mw "github.com/dropDatabas3/lifeline/internal/http/middlewares"
	"github.com/dropDatabas3/lifeline/internal/observability/logger"
)

const dateLayout = "2006-01-02"

// Controller maneja el CRUD de campañas.
type Controller struct {
	camps repository.CampRepository
	users repository.UserRepository
	now   func() time.Time
}

// NewController crea el controller de campañas.
func NewController(camps repository.CampRepository, users repository.UserRepository) *Controller {
	return &Controller{camps: camps, users: users, now: time.Now}
}

// Create maneja POST /v1/camps.
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Camps.Create"))
	organizer := mw.MustGetUserID(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, 32<<10) // 32KB

	var req dto.CreateCampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}
	if req.Name == "" || req.Date == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields)
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("date must be YYYY-MM-DD"))
		return
	}

	camp, err := c.camps.Create(ctx, repository.CreateCampInput{
		Organizer: organizer,
		Name:      req.Name,
		Location:  req.Location,
		Date:      date,
	})
	if err != nil {
		log.Error("create camp error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	resp, err := c.render(ctx, *camp, organizer)
	if err != nil {
		log.Error("render camp error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// List maneja GET /v1/camps. Antes de listar purga las campañas anteriores
// a ayer, igual que hacía el sitio original en cada listado.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Camps.List"))
	viewer := mw.MustGetUserID(ctx)

	yesterday := c.now().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	if purged, err := c.camps.DeleteOlderThan(ctx, yesterday); err != nil {
		log.Error("camp purge error", logger.Err(err))
	} else if purged > 0 {
		log.Info("stale camps purged", logger.Count(purged))
	}

	list, err := c.camps.ListUpcoming(ctx, yesterday)
	if err != nil {
		log.Error("list camps error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	resp := dto.ListResponse{Camps: make([]dto.CampResponse, 0, len(list))}
	for _, camp := range list {
		item, err := c.render(ctx, camp, viewer)
		if err != nil {
			log.Error("render camp error", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
			return
		}
		resp.Camps = append(resp.Camps, item)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete maneja DELETE /v1/camps/{id}. Solo el organizador puede borrar.
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Camps.Delete"))
	viewer := mw.MustGetUserID(ctx)
	id := chi.URLParam(r, "id")

	camp, err := c.camps.Get(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			httperrors.WriteError(w, httperrors.ErrNotFound)
			return
		}
		log.Error("camp lookup error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}
	if camp.Organizer != viewer {
		httperrors.WriteError(w, httperrors.ErrNotOrganizer)
		return
	}

	if err := c.camps.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			httperrors.WriteError(w, httperrors.ErrNotFound)
			return
		}
		log.Error("delete camp error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) render(ctx context.Context, camp repository.BloodCamp, viewer string) (dto.CampResponse, error) {
	organizer := camp.Organizer
	u, err := c.users.GetByID(ctx, camp.Organizer)
	if err == nil {
		organizer = u.Username
	} else if !repository.IsNotFound(err) {
		return dto.CampResponse{}, err
	}
	return dto.CampResponse{
		ID:        camp.ID,
		Name:      camp.Name,
		Location:  camp.Location,
		Date:      camp.Date.Format(dateLayout),
		Organizer: organizer,
		Mine:      camp.Organizer == viewer,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
