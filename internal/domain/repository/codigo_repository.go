package repository

import (
	"context"
	"time"

	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
)

// CodigoRepository define el puerto de persistencia para códigos de invitación (DIP).
type CodigoRepository interface {
	Create(ctx context.Context, codigo *entity.CodigoInvitacion) error
	// GetVigente busca un código NO usado por su valor normalizado.
	// Devuelve (nil, nil) si no existe o ya fue consumido.
	GetVigente(ctx context.Context, codigo string) (*entity.CodigoInvitacion, error)
	// MarcarUsado consume el código registrando quién y cuándo.
	MarcarUsado(ctx context.Context, codigo, usadoPor string, fechaUso time.Time) error
}
