// Package recovery implementa la recuperación de cuenta por OTP.
//
// El flujo por identidad (email) avanza en tres pasos:
//
//	Begin    emite un código y deja la sesión esperando verificación.
//	Confirm  consume el código; la sesión queda verificada por una
//	         ventana corta.
//	Complete fija la contraseña nueva y consume la sesión.
//
// La sesión esperando código vale exactamente mientras el código viva:
// reemitir o expirar el código la reinicia o la mata. La sesión verificada
// tiene su propia ventana porque el código ya fue consumido en Confirm.
package recovery

import (
	"context"
	"errors"
	"time"

	"github.com/dropDatabas3/lifeline/internal/cache"
	"github.com/dropDatabas3/lifeline/internal/domain/repository"
	"github.com/dropDatabas3/lifeline/internal/observability/logger"
	"github.com/dropDatabas3/lifeline/internal/otp"
	"github.com/dropDatabas3/lifeline/internal/security/password"
)

// Errores del flujo de recuperación.
var (
	// ErrUnknownIdentity indica que el email no corresponde a ninguna
	// cuenta.
	ErrUnknownIdentity = errors.New("recovery: unknown identity")

	// ErrInvalidCode indica que hay un código vivo y el presentado no
	// coincide. La sesión sigue esperando el código correcto.
	ErrInvalidCode = errors.New("recovery: invalid code")

	// ErrSessionExpired indica que no hay sesión vigente para el paso
	// intentado: nunca se inició, el código expiró o ya se consumió.
	ErrSessionExpired = errors.New("recovery: session expired")

	// ErrWeakPassword indica que la contraseña nueva no cumple la política.
	ErrWeakPassword = errors.New("recovery: password does not meet policy")
)

// Service orquesta el flujo de recuperación sobre el issuer de OTP y el
// repo de usuarios.
type Service struct {
	users       repository.UserRepository
	issuer      *otp.Issuer
	cache       cache.Client
	resetWindow time.Duration
}

// NewService crea el servicio. resetWindow <= 0 usa 5 minutos.
func NewService(users repository.UserRepository, issuer *otp.Issuer, c cache.Client, resetWindow time.Duration) *Service {
	if resetWindow <= 0 {
		resetWindow = 5 * time.Minute
	}
	return &Service{users: users, issuer: issuer, cache: c, resetWindow: resetWindow}
}

func verifiedKey(email string) string { return "recovery:verified:" + email }

// Begin arranca (o reinicia) la recuperación para el email dado. Si había
// un código vivo, el nuevo lo reemplaza. ErrUnknownIdentity si el email no
// existe; el handler HTTP decide si ocultarlo por anti-enumeración.
func (s *Service) Begin(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrUnknownIdentity
		}
		return err
	}

	restarted, err := s.issuer.Active(ctx, u.Email)
	if err != nil {
		return err
	}

	// un Begin nuevo invalida cualquier verificación previa a medio camino
	if err := s.cache.Delete(ctx, verifiedKey(u.Email)); err != nil {
		return err
	}

	if _, err := s.issuer.Issue(ctx, u.Email); err != nil {
		return err
	}

	msg := "recovery started"
	if restarted {
		msg = "recovery restarted, previous code replaced"
	}
	logger.From(ctx).Info(msg,
		logger.Component("recovery"), logger.Address(u.Email))
	return nil
}

// Confirm consume el código. Si coincide, la sesión queda verificada por
// resetWindow. Un código incorrecto no quema el vigente y retorna
// ErrInvalidCode; sin sesión (nunca iniciada, código vencido o ya
// consumido) retorna ErrSessionExpired.
func (s *Service) Confirm(ctx context.Context, email, code string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			// sin cuenta no hay sesión que confirmar
			return ErrSessionExpired
		}
		return err
	}

	if err := s.issuer.Consume(ctx, u.Email, code); err != nil {
		switch {
		case errors.Is(err, otp.ErrNoActiveCode):
			return ErrSessionExpired
		case errors.Is(err, otp.ErrCodeMismatch):
			return ErrInvalidCode
		}
		return err
	}

	if err := s.cache.Set(ctx, verifiedKey(u.Email), "1", s.resetWindow); err != nil {
		return err
	}

	logger.From(ctx).Info("recovery verified",
		logger.Component("recovery"), logger.Address(u.Email))
	return nil
}

// Complete fija la contraseña nueva y consume la sesión verificada. La
// marca se consume con GetDel antes de tocar la credencial: de N Complete
// concurrentes para la misma sesión a lo sumo uno resetea, el resto recibe
// ErrSessionExpired. Una contraseña débil no consume la sesión.
func (s *Service) Complete(ctx context.Context, email, newPassword string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrSessionExpired
		}
		return err
	}

	ok, err := s.cache.Exists(ctx, verifiedKey(u.Email))
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionExpired
	}

	if !password.Acceptable(newPassword) {
		return ErrWeakPassword
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	if _, err := s.cache.GetDel(ctx, verifiedKey(u.Email)); err != nil {
		if cache.IsNotFound(err) {
			// otro Complete ganó la sesión entre el Exists y acá
			return ErrSessionExpired
		}
		return err
	}

	if err := s.users.UpdatePassword(ctx, u.Email, hash); err != nil {
		return err
	}

	logger.From(ctx).Info("password reset completed",
		logger.Component("recovery"), logger.Address(u.Email))
	return nil
}
