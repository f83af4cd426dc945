package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nightly-app/nightly-admin-api/internal/domain"
	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
	"github.com/nightly-app/nightly-admin-api/internal/domain/repository"
)

var _ repository.LocalRepository = (*LocalRepo)(nil)

// LocalRepo implementación de LocalRepository sobre PostgreSQL (usable con pool o tx).
type LocalRepo struct {
	q Querier
}

// NewLocalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocalRepository(q Querier) *LocalRepo {
	return &LocalRepo{q: q}
}

const columnasLocal = `
	id, nombre, tipo, direccion, latitud, longitud,
	capacidad_actual, estado, tiempo_espera, tiene_musica_en_vivo, es_zona_segura,
	COALESCE(descripcion, ''), COALESCE(telefono, ''), COALESCE(instagram, ''),
	COALESCE(facebook, ''), COALESCE(rango_precios, ''), COALESCE(fotos, '{}'),
	creado_por_id, propietario_id, activo, verificado, boosts_usados_mes,
	created_at, updated_at`

func escanearLocal(row pgx.Row) (*entity.Local, error) {
	var l entity.Local
	err := row.Scan(
		&l.ID, &l.Nombre, &l.Tipo, &l.Direccion, &l.Latitud, &l.Longitud,
		&l.CapacidadActual, &l.Estado, &l.TiempoEspera, &l.TieneMusicaEnVivo, &l.EsZonaSegura,
		&l.Descripcion, &l.Telefono, &l.Instagram,
		&l.Facebook, &l.RangoPrecios, &l.Fotos,
		&l.CreadoPorID, &l.PropietarioID, &l.Activo, &l.Verificado, &l.BoostsUsadosMes,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste un local nuevo.
func (r *LocalRepo) Create(ctx context.Context, local *entity.Local) error {
	query := `
		INSERT INTO locales (
			id, nombre, tipo, direccion, latitud, longitud,
			capacidad_actual, estado, tiempo_espera, tiene_musica_en_vivo, es_zona_segura,
			descripcion, telefono, instagram, facebook, rango_precios, fotos,
			creado_por_id, propietario_id, activo, verificado, boosts_usados_mes,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22,
			$23, $24
		)`
	_, err := r.q.Exec(ctx, query,
		local.ID, local.Nombre, local.Tipo, local.Direccion, local.Latitud, local.Longitud,
		local.CapacidadActual, local.Estado, local.TiempoEspera, local.TieneMusicaEnVivo, local.EsZonaSegura,
		local.Descripcion, local.Telefono, local.Instagram, local.Facebook, local.RangoPrecios, local.Fotos,
		local.CreadoPorID, local.PropietarioID, local.Activo, local.Verificado, local.BoostsUsadosMes,
		local.CreatedAt, local.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflicto
		}
		return fmt.Errorf("create local: %w", err)
	}
	return nil
}

// GetByID busca un local por id. Devuelve (nil, nil) si no existe.
func (r *LocalRepo) GetByID(ctx context.Context, id string) (*entity.Local, error) {
	query := `SELECT ` + columnasLocal + ` FROM locales WHERE id = $1`
	local, err := escanearLocal(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get local: %w", err)
	}
	return local, nil
}

// GetByPropietario busca el local asignado a un propietario. (nil, nil) si no tiene.
func (r *LocalRepo) GetByPropietario(ctx context.Context, propietarioID string) (*entity.Local, error) {
	query := `SELECT ` + columnasLocal + ` FROM locales WHERE propietario_id = $1`
	local, err := escanearLocal(r.q.QueryRow(ctx, query, propietarioID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get local por propietario: %w", err)
	}
	return local, nil
}

// List devuelve todos los locales ordenados por fecha de alta descendente.
func (r *LocalRepo) List(ctx context.Context) ([]*entity.Local, error) {
	query := `SELECT ` + columnasLocal + ` FROM locales ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	defer rows.Close()

	var locales []*entity.Local
	for rows.Next() {
		local, err := escanearLocal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan local: %w", err)
		}
		locales = append(locales, local)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	return locales, nil
}

// Update sobrescribe el registro completo (last-write-wins).
func (r *LocalRepo) Update(ctx context.Context, local *entity.Local) error {
	query := `
		UPDATE locales SET
			nombre = $2, tipo = $3, direccion = $4, latitud = $5, longitud = $6,
			capacidad_actual = $7, estado = $8, tiempo_espera = $9,
			tiene_musica_en_vivo = $10, es_zona_segura = $11,
			descripcion = $12, telefono = $13, instagram = $14, facebook = $15,
			rango_precios = $16, fotos = $17,
			activo = $18, verificado = $19, boosts_usados_mes = $20,
			updated_at = $21
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		local.ID, local.Nombre, local.Tipo, local.Direccion, local.Latitud, local.Longitud,
		local.CapacidadActual, local.Estado, local.TiempoEspera,
		local.TieneMusicaEnVivo, local.EsZonaSegura,
		local.Descripcion, local.Telefono, local.Instagram, local.Facebook,
		local.RangoPrecios, local.Fotos,
		local.Activo, local.Verificado, local.BoostsUsadosMes,
		local.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update local: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el local.
func (r *LocalRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM locales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete local: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AsignarPropietario fija el propietario del local tras el onboarding.
func (r *LocalRepo) AsignarPropietario(ctx context.Context, localID, propietarioID string) error {
	query := `UPDATE locales SET propietario_id = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, localID, propietarioID)
	if err != nil {
		return fmt.Errorf("asignar propietario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
