package repository

import (
	"context"

	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
)

// SuperAdminRepository define el puerto de lectura de la tabla super_admins (DIP).
type SuperAdminRepository interface {
	// GetByUserID devuelve (nil, nil) si la identidad no es super admin.
	GetByUserID(ctx context.Context, userID string) (*entity.SuperAdmin, error)
}
