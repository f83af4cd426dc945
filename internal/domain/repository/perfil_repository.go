package repository

import (
	"context"
	"time"

	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
)

// PerfilRepository define el puerto de persistencia para perfiles de propietario (DIP).
// Los perfiles los crea un trigger del servicio de auth externo; este sistema solo
// los consulta y actualiza.
type PerfilRepository interface {
	// GetByID devuelve (nil, nil) si el perfil no existe todavía.
	GetByID(ctx context.Context, id string) (*entity.Propietario, error)
	// Existe consulta liviana usada por el poll de materialización del perfil.
	Existe(ctx context.Context, id string) (bool, error)
	// AsignarLocal vincula el perfil con su local y fija el nombre mostrado.
	AsignarLocal(ctx context.Context, id, localID, nombreCompleto string) error
	// ActualizarPlan asigna plan y fecha de vencimiento.
	ActualizarPlan(ctx context.Context, id string, plan entity.TipoPlan, venceEn time.Time) error
}
