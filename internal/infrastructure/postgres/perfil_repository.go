package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nightly-app/nightly-admin-api/internal/domain"
	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
	"github.com/nightly-app/nightly-admin-api/internal/domain/repository"
)

var _ repository.PerfilRepository = (*PerfilRepo)(nil)

// PerfilRepo implementación de PerfilRepository sobre PostgreSQL.
// La tabla perfiles la puebla un trigger del servicio de auth; acá solo se
// consulta y se actualizan los campos que gestiona el panel.
type PerfilRepo struct {
	q Querier
}

// NewPerfilRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPerfilRepository(q Querier) *PerfilRepo {
	return &PerfilRepo{q: q}
}

// GetByID busca un perfil. Devuelve (nil, nil) si no existe todavía.
func (r *PerfilRepo) GetByID(ctx context.Context, id string) (*entity.Propietario, error) {
	query := `
		SELECT id, COALESCE(email, ''), COALESCE(nombre_completo, ''), COALESCE(rol, ''),
		       local_asignado_id, COALESCE(plan, 'basico'), plan_vence_en, created_at, updated_at
		FROM perfiles WHERE id = $1`
	var p entity.Propietario
	var plan string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Email, &p.NombreCompleto, &p.Rol,
		&p.LocalAsignadoID, &plan, &p.PlanVenceEn, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get perfil: %w", err)
	}
	p.Plan = entity.TipoPlan(plan)
	return &p, nil
}

// Existe consulta liviana de existencia (la usa el poll del onboarding).
func (r *PerfilRepo) Existe(ctx context.Context, id string) (bool, error) {
	var existe bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM perfiles WHERE id = $1)`, id).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("existe perfil: %w", err)
	}
	return existe, nil
}

// AsignarLocal vincula el perfil con su local y fija el nombre mostrado.
func (r *PerfilRepo) AsignarLocal(ctx context.Context, id, localID, nombreCompleto string) error {
	query := `
		UPDATE perfiles
		SET local_asignado_id = $2, nombre_completo = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, localID, nombreCompleto)
	if err != nil {
		return fmt.Errorf("asignar local a perfil: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ActualizarPlan asigna plan y fecha de vencimiento al perfil.
func (r *PerfilRepo) ActualizarPlan(ctx context.Context, id string, plan entity.TipoPlan, venceEn time.Time) error {
	query := `
		UPDATE perfiles
		SET plan = $2, plan_vence_en = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, string(plan), venceEn)
	if err != nil {
		return fmt.Errorf("actualizar plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
