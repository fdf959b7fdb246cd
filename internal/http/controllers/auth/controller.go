// Package auth expone los endpoints de registro y login.
package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	authsvc "github.com/dropDatabas3/lifeline/internal/auth"
	"github.com/dropDatabas3/lifeline/internal/domain/repository"
	dto "github.com/dropDatabas3/lifeline/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/lifeline/internal/http/errors"
	mw "github.com/dropDatabas3/lifeline/internal/http/middlewares"
	"github.com/dropDatabas3/lifeline/internal/observability/logger"
)

// Controller maneja signup, login y perfil propio.
type Controller struct {
	service *authsvc.Service
	users   repository.UserRepository
}

// NewController crea el controller de auth.
func NewController(service *authsvc.Service, users repository.UserRepository) *Controller {
	return &Controller{service: service, users: users}
}

// Signup maneja POST /v1/auth/signup.
func (c *Controller) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Auth.Signup"))

	r.Body = http.MaxBytesReader(w, r.Body, 32<<10) // 32KB

	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	sess, err := c.service.Signup(ctx, authsvc.SignupInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		Phone:      req.Phone,
		BloodGroup: req.BloodGroup,
		Address:    req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrMissingFields):
			httperrors.WriteError(w, httperrors.ErrMissingFields)
		case errors.Is(err, authsvc.ErrWeakPassword):
			httperrors.WriteError(w, httperrors.ErrPasswordTooWeak)
		case errors.Is(err, authsvc.ErrInvalidBloodGroup):
			httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("unknown blood group"))
		case errors.Is(err, repository.ErrConflict):
			httperrors.WriteError(w, httperrors.ErrAlreadyExists.WithDetail("username or email already registered"))
		default:
			log.Error("signup error", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse(sess))
	log.Debug("signup completed", logger.UserID(sess.User.ID))
}

// Login maneja POST /v1/auth/login.
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Auth.Login"))

	r.Body = http.MaxBytesReader(w, r.Body, 32<<10) // 32KB

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}
	if req.Username == "" || req.Password == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields)
		return
	}

	sess, err := c.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidCredentials) {
			httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
			return
		}
		log.Error("login error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse(sess))
}

// Me maneja GET /v1/me.
func (c *Controller) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Auth.Me"))

	u, err := c.users.GetByID(ctx, mw.MustGetUserID(ctx))
	if err != nil {
		if repository.IsNotFound(err) {
			httperrors.WriteError(w, httperrors.ErrUserNotFound)
			return
		}
		log.Error("profile lookup error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func tokenResponse(s *authsvc.Session) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken: s.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(s.ExpiresAt).Seconds()),
	}
}

func toUserResponse(u *repository.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Phone:      u.Phone,
		BloodGroup: u.BloodGroup,
		Address:    u.Address,
		CreatedAt:  u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
