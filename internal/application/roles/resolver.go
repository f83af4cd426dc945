package roles

import (
	"context"
	"fmt"

	"github.com/nightly-app/nightly-admin-api/internal/domain"
	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
	"github.com/nightly-app/nightly-admin-api/internal/domain/repository"
)

// Resolver deriva el rol de una identidad autenticada. El rol nunca se persiste:
// se recalcula desde cero en cada cambio de sesión para evitar permisos rancios.
type Resolver struct {
	adminRepo  repository.SuperAdminRepository
	perfilRepo repository.PerfilRepository
}

// NewResolver construye el resolver con los puertos de lectura.
func NewResolver(adminRepo repository.SuperAdminRepository, perfilRepo repository.PerfilRepository) *Resolver {
	return &Resolver{adminRepo: adminRepo, perfilRepo: perfilRepo}
}

// ResolverRol determina exactamente una variante de rol para la identidad.
//
// Orden de precedencia: super_admins primero; si una identidad tuviera registro
// en ambas tablas (no debería ocurrir), gana super_admin de forma determinista.
// Falla con domain.ErrSinRol si no hay registro en ninguna tabla, o con
// domain.ErrConsultaPermisos (envuelto) si la consulta misma falla; son casos
// distintos y el llamador los trata distinto.
func (r *Resolver) ResolverRol(ctx context.Context, userID string) (*entity.Rol, error) {
	admin, err := r.adminRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: super_admins: %v", domain.ErrConsultaPermisos, err)
	}
	if admin != nil {
		// Registros previos a la migración de niveles no traen nivel:
		// se degrada a pasante, nunca se promueve.
		if admin.Nivel == "" {
			admin.Nivel = entity.NivelPasante
		}
		return entity.NuevoRolSuperAdmin(*admin), nil
	}

	perfil, err := r.perfilRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: perfiles: %v", domain.ErrConsultaPermisos, err)
	}
	if perfil != nil && perfil.Rol == "propietario" {
		// LocalAsignadoID puede ser nil: el rol resuelve igual y la UI muestra
		// "sin local asignado" como estado propio, no como fallo de resolución.
		return entity.NuevoRolPropietario(*perfil), nil
	}

	return nil, domain.ErrSinRol
}
