package repository

import (
	"context"
	"time"
)

// BloodCamp es una campaña de donación organizada por un usuario.
// Persistencia plana: las únicas reglas son ownership (solo el organizador
// borra) y la purga de campañas pasadas al listar.
type BloodCamp struct {
	ID        string
	Organizer string
	Name      string
	Location  string
	Date      time.Time
	CreatedAt time.Time
}

// CreateCampInput contiene los datos para crear una campaña.
type CreateCampInput struct {
	Organizer string
	Name      string
	Location  string
	Date      time.Time
}

// CampRepository define operaciones sobre campañas de donación.
type CampRepository interface {
	// Create persiste una campaña nueva.
	Create(ctx context.Context, input CreateCampInput) (*BloodCamp, error)

	// Get busca por ID. Retorna ErrNotFound si no existe.
	Get(ctx context.Context, id string) (*BloodCamp, error)

	// ListUpcoming retorna campañas con Date >= from, ascendente por fecha.
	ListUpcoming(ctx context.Context, from time.Time) ([]BloodCamp, error)

	// Delete elimina una campaña. Retorna ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error

	// DeleteOlderThan purga campañas con Date < cutoff y retorna cuántas
	// eliminó. Se invoca de forma lazy al listar, como hacía el sitio.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
