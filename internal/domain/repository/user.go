package repository

import (
	"context"
	"time"
)

// User representa un donante registrado.
type User struct {
	ID           string
	Username     string
	Email        string
	Phone        string
	BloodGroup   string
	Address      string
	PasswordHash string
	CreatedAt    time.Time
}

// BloodGroups son los grupos sanguíneos válidos para registro.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "O+", "O-", "AB+", "AB-"}

// ValidBloodGroup verifica que el grupo esté en la lista.
func ValidBloodGroup(g string) bool {
	for _, v := range BloodGroups {
		if v == g {
			return true
		}
	}
	return false
}

// CreateUserInput contiene los datos para registrar un usuario.
// PasswordHash llega ya hasheado (bcrypt); los repos nunca ven passwords
// en claro.
type CreateUserInput struct {
	Username     string
	Email        string
	Phone        string
	BloodGroup   string
	Address      string
	PasswordHash string
}

// UserRepository define operaciones sobre usuarios.
type UserRepository interface {
	// Create registra un usuario nuevo.
	// Retorna ErrConflict si username o email ya existen.
	Create(ctx context.Context, input CreateUserInput) (*User, error)

	// GetByID busca por ID. Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByUsername busca por username. Retorna ErrNotFound si no existe.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByEmail busca por email. Retorna ErrNotFound si no existe.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Exists verifica si un usuario existe por ID.
	Exists(ctx context.Context, id string) (bool, error)

	// UpdatePassword reemplaza el hash de password del usuario dueño del
	// email. Retorna ErrNotFound si el email no está registrado.
	UpdatePassword(ctx context.Context, email, passwordHash string) error

	// List retorna todos los usuarios excepto excludeID, en orden de
	// registro. excludeID vacío lista todos.
	List(ctx context.Context, excludeID string) ([]User, error)
}
