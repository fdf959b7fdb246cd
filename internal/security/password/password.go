// Package password encapsula el hashing de contraseñas con bcrypt.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch indica que la contraseña no corresponde al hash.
var ErrMismatch = errors.New("password: mismatch")

// MinLength es el mínimo aceptado al registrar o resetear.
const MinLength = 8

// Hash genera el hash bcrypt con el costo default.
func Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara plain contra el hash. Retorna ErrMismatch si no coincide.
func Verify(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}
	return nil
}

// Acceptable valida la contraseña contra DefaultPolicy.
func Acceptable(plain string) bool {
	ok, _ := DefaultPolicy.Validate(plain)
	return ok
}
