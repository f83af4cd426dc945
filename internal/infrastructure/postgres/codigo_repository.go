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

var _ repository.CodigoRepository = (*CodigoRepo)(nil)

// CodigoRepo implementación de CodigoRepository sobre PostgreSQL (usable con pool o tx).
// La columna codigo tiene constraint UNIQUE; la colisión se reporta como
// domain.ErrConflicto para que el caso de uso reintente con otro valor.
type CodigoRepo struct {
	q Querier
}

// NewCodigoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCodigoRepository(q Querier) *CodigoRepo {
	return &CodigoRepo{q: q}
}

// Create persiste un código de invitación nuevo.
func (r *CodigoRepo) Create(ctx context.Context, c *entity.CodigoInvitacion) error {
	query := `
		INSERT INTO codigos_invitacion (id, codigo, local_id, usado, created_at)
		VALUES ($1, $2, $3, false, $4)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Codigo, c.LocalID, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflicto
		}
		return fmt.Errorf("create código: %w", err)
	}
	return nil
}

// GetVigente busca un código sin usar. Devuelve (nil, nil) si no existe o ya se usó.
func (r *CodigoRepo) GetVigente(ctx context.Context, codigo string) (*entity.CodigoInvitacion, error) {
	query := `
		SELECT id, codigo, COALESCE(local_id, ''), usado, usado_por, fecha_uso, created_at
		FROM codigos_invitacion
		WHERE codigo = $1 AND usado = false`
	var c entity.CodigoInvitacion
	err := r.q.QueryRow(ctx, query, codigo).Scan(
		&c.ID, &c.Codigo, &c.LocalID, &c.Usado, &c.UsadoPor, &c.FechaUso, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get código vigente: %w", err)
	}
	return &c, nil
}

// MarcarUsado consume el código. El WHERE sobre usado=false hace el consumo
// idempotente: un código ya usado devuelve ErrNotFound.
func (r *CodigoRepo) MarcarUsado(ctx context.Context, codigo, usadoPor string, fechaUso time.Time) error {
	query := `
		UPDATE codigos_invitacion
		SET usado = true, usado_por = $2, fecha_uso = $3
		WHERE codigo = $1 AND usado = false`
	tag, err := r.q.Exec(ctx, query, codigo, usadoPor, fechaUso)
	if err != nil {
		return fmt.Errorf("marcar código usado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
