// Package memory implementa los repositorios sobre mapas en memoria.
//
// Pensado para desarrollo y tests: mismo contrato que el driver postgres,
// sin dependencias externas. Todas las operaciones son seguras para uso
// concurrente; cada repo protege su estado con su propio mutex.
package memory

import (
	"context"
	"time"

	"github.com/dropDatabas3/lifeline/internal/domain/repository"
)

// Store implementa store.Store en memoria.
type Store struct {
	users    *userRepo
	follows  *followRepo
	messages *messageRepo
	camps    *campRepo
}

// New crea un Store en memoria vacío.
func New() *Store {
	now := time.Now
	return &Store{
		users:    newUserRepo(now),
		follows:  newFollowRepo(now),
		messages: newMessageRepo(now),
		camps:    newCampRepo(now),
	}
}

func (s *Store) Users() repository.UserRepository       { return s.users }
func (s *Store) Follows() repository.FollowRepository   { return s.follows }
func (s *Store) Messages() repository.MessageRepository { return s.messages }
func (s *Store) Camps() repository.CampRepository       { return s.camps }

func (s *Store) Ping(ctx context.Context) error { return nil }
func (s *Store) Close()                         {}
