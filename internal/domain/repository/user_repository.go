package repository

import (
	"time"

	"github.com/jhoicas/stock-atelier/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// UpdateLastLogin registra la última conexión (informativo, sin más efecto).
	UpdateLastLogin(id string, at time.Time) error
}
