// Package auth implementa registro y login de donantes.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dropDatabas3/lifeline/internal/domain/repository"
	jwtx "github.com/dropDatabas3/lifeline/internal/jwt"
	"github.com/dropDatabas3/lifeline/internal/observability/logger"
	"github.com/dropDatabas3/lifeline/internal/security/password"
)

// Errores del servicio de auth.
var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrWeakPassword       = errors.New("auth: password does not meet policy")
	ErrInvalidBloodGroup  = errors.New("auth: invalid blood group")
	ErrMissingFields      = errors.New("auth: missing required fields")
)

// SignupInput son los datos de registro.
type SignupInput struct {
	Username   string
	Email      string
	Password   string
	Phone      string
	BloodGroup string
	Address    string
}

// Session es el resultado de un login o signup exitoso.
type Session struct {
	User        *repository.User
	AccessToken string
	ExpiresAt   time.Time
}

// Service implementa los casos de uso de autenticación.
type Service struct {
	users  repository.UserRepository
	issuer *jwtx.Issuer
}

// NewService crea el servicio de auth.
func NewService(users repository.UserRepository, issuer *jwtx.Issuer) *Service {
	return &Service{users: users, issuer: issuer}
}

// Signup registra un donante nuevo y abre sesión. ErrConflict si username o
// email ya existen.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	if !password.Acceptable(in.Password) {
		return nil, ErrWeakPassword
	}
	if in.BloodGroup != "" && !repository.ValidBloodGroup(in.BloodGroup) {
		return nil, ErrInvalidBloodGroup
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, repository.CreateUserInput{
		Username:     in.Username,
		Email:        in.Email,
		Phone:        in.Phone,
		BloodGroup:   in.BloodGroup,
		Address:      in.Address,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	logger.From(ctx).Info("donor registered",
		logger.Component("auth"), logger.UserID(u.ID), logger.Handle(u.Username))
	return s.open(u)
}

// Login valida credenciales por username. Colapsa usuario inexistente y
// contraseña incorrecta en ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, plain string) (*Session, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := password.Verify(u.PasswordHash, plain); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	logger.From(ctx).Info("login ok",
		logger.Component("auth"), logger.UserID(u.ID), logger.Handle(u.Username))
	return s.open(u)
}

func (s *Service) open(u *repository.User) (*Session, error) {
	token, exp, err := s.issuer.IssueAccess(jwtx.Claims{UserID: u.ID, Username: u.Username})
	if err != nil {
		return nil, err
	}
	return &Session{User: u, AccessToken: token, ExpiresAt: exp}, nil
}
