package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
	"github.com/nightly-app/nightly-admin-api/internal/domain/repository"
)

var _ repository.SuperAdminRepository = (*SuperAdminRepo)(nil)

// SuperAdminRepo implementación de SuperAdminRepository sobre PostgreSQL.
type SuperAdminRepo struct {
	q Querier
}

// NewSuperAdminRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSuperAdminRepository(q Querier) *SuperAdminRepo {
	return &SuperAdminRepo{q: q}
}

// GetByUserID busca el registro de super admin de una identidad.
// Devuelve (nil, nil) si la identidad no figura en la tabla.
func (r *SuperAdminRepo) GetByUserID(ctx context.Context, userID string) (*entity.SuperAdmin, error) {
	query := `
		SELECT user_id, nombre, email, COALESCE(nivel, ''), created_at
		FROM super_admins WHERE user_id = $1`
	var sa entity.SuperAdmin
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&sa.UserID, &sa.Nombre, &sa.Email, &sa.Nivel, &sa.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get super admin: %w", err)
	}
	return &sa, nil
}
