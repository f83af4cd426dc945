package repository

import (
	"context"

	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
)

// LocalRepository define el puerto de persistencia para locales (DIP).
type LocalRepository interface {
	Create(ctx context.Context, local *entity.Local) error
	// GetByID devuelve (nil, nil) si el local no existe.
	GetByID(ctx context.Context, id string) (*entity.Local, error)
	// GetByPropietario devuelve (nil, nil) si el propietario no tiene local.
	GetByPropietario(ctx context.Context, propietarioID string) (*entity.Local, error)
	List(ctx context.Context) ([]*entity.Local, error)
	// Update sobrescribe el registro completo (last-write-wins; el backend es la
	// fuente de verdad ante escrituras concurrentes).
	Update(ctx context.Context, local *entity.Local) error
	Delete(ctx context.Context, id string) error
	// AsignarPropietario fija el propietario del local tras el onboarding.
	AsignarPropietario(ctx context.Context, localID, propietarioID string) error
}
