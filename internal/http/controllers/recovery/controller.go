// Package recovery expone el flujo forgot / verify / reset.
package recovery

import (
	"encoding/json"
	"errors"
	"net/http"

	httpx "github.com/dropDatabas3/lifeline/internal/http"
	dto "github.com/dropDatabas3/lifeline/internal/http/dto/recovery"
	httperrors "github.com/dropDatabas3/lifeline/internal/http/errors"
	"github.com/dropDatabas3/lifeline/internal/observability/logger"
	recoverysvc "github.com/dropDatabas3/lifeline/internal/recovery"
)

// Controller maneja los tres pasos de recuperación de cuenta.
type Controller struct {
	service *recoverysvc.Service
}

// NewController crea el controller de recuperación.
func NewController(service *recoverysvc.Service) *Controller {
	return &Controller{service: service}
}

// Forgot maneja POST /v1/recovery/forgot: emite el código.
func (c *Controller) Forgot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Recovery.Forgot"))

	r.Body = http.MaxBytesReader(w, r.Body, 32<<10) // 32KB

	var req dto.ForgotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}
	if req.Email == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields)
		return
	}

	if err := c.service.Begin(ctx, req.Email); err != nil {
		if errors.Is(err, recoverysvc.ErrUnknownIdentity) {
			httperrors.WriteError(w, httperrors.ErrUserNotFound.WithDetail("email not registered"))
			return
		}
		log.Error("forgot error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	httpx.RecordOTPIssued()
	writeJSON(w, http.StatusOK, dto.StatusResponse{Status: "code_sent"})
}

// Verify maneja POST /v1/recovery/verify: consume el código.
func (c *Controller) Verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Recovery.Verify"))

	r.Body = http.MaxBytesReader(w, r.Body, 32<<10) // 32KB

	var req dto.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}
	if req.Email == "" || req.Code == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields)
		return
	}

	if err := c.service.Confirm(ctx, req.Email, req.Code); err != nil {
		switch {
		case errors.Is(err, recoverysvc.ErrInvalidCode):
			httperrors.WriteError(w, httperrors.ErrInvalidCode)
		case errors.Is(err, recoverysvc.ErrSessionExpired):
			httperrors.WriteError(w, httperrors.ErrSessionExpired)
		default:
			log.Error("verify error", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.StatusResponse{Status: "verified"})
}

// Reset maneja POST /v1/recovery/reset: fija la contraseña nueva.
func (c *Controller) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Recovery.Reset"))

	r.Body = http.MaxBytesReader(w, r.Body, 32<<10) // 32KB

	var req dto.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}
	if req.Email == "" || req.NewPassword == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields)
		return
	}

	if err := c.service.Complete(ctx, req.Email, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, recoverysvc.ErrSessionExpired):
			httperrors.WriteError(w, httperrors.ErrSessionExpired)
		case errors.Is(err, recoverysvc.ErrWeakPassword):
			httperrors.WriteError(w, httperrors.ErrPasswordTooWeak)
		default:
			log.Error("reset error", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.StatusResponse{Status: "password_reset"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
