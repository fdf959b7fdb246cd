package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/lifeline/internal/domain/repository"
	jwtx "github.com/dropDatabas3/lifeline/internal/jwt"
	"github.com/dropDatabas3/lifeline/internal/store/memory"
)

func newService(t *testing.T) (*Service, *jwtx.Issuer) {
	t.Helper()
	issuer := jwtx.NewIssuer("lifeline", []byte("test-secret"), time.Hour)
	return NewService(memory.New().Users(), issuer), issuer
}

func TestSignup_OpensSession(t *testing.T) {
	svc, issuer := newService(t)

	sess, err := svc.Signup(context.Background(), SignupInput{
		Username: "bob", Email: "bob@example.com", Password: "hunter2hunter2", BloodGroup: "O+",
	})
	require.NoError(t, err)
	require.NotEmpty(t, sess.AccessToken)

	claims, err := issuer.Verify(sess.AccessToken)
	require.NoError(t, err)
	require.Equal(t, sess.User.ID, claims.UserID)
	require.Equal(t, "bob", claims.Username)
}

func TestSignup_Validation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Username: "bob", Email: "b@x.com", Password: "short"})
	require.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.Signup(ctx, SignupInput{Username: "", Email: "b@x.com", Password: "hunter2hunter2"})
	require.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Signup(ctx, SignupInput{Username: "bob", Email: "b@x.com", Password: "hunter2hunter2", BloodGroup: "Z+"})
	require.ErrorIs(t, err, ErrInvalidBloodGroup)
}

func TestSignup_DuplicateConflicts(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Username: "bob", Email: "bob@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, SignupInput{Username: "bob", Email: "other@example.com", Password: "hunter2hunter2"})
	require.ErrorIs(t, err, repository.ErrConflict)
}

func TestLogin(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Username: "bob", Email: "bob@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)

	sess, err := svc.Login(ctx, "bob", "hunter2hunter2")
	require.NoError(t, err)
	require.Equal(t, "bob", sess.User.Username)

	_, err = svc.Login(ctx, "bob", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// usuario inexistente produce el mismo error que contraseña incorrecta
	_, err = svc.Login(ctx, "ghost", "hunter2hunter2")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
