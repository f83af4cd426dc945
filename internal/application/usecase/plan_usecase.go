package usecase

import (
	"context"
	"time"

	"github.com/nightly-app/nightly-admin-api/internal/application/dto"
	"github.com/nightly-app/nightly-admin-api/internal/application/permisos"
	"github.com/nightly-app/nightly-admin-api/internal/domain"
	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
	"github.com/nightly-app/nightly-admin-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// PlanUseCase asignación de planes a propietarios. El vencimiento es
// informativo: nada revoca capacidades cuando llega la fecha.
type PlanUseCase struct {
	perfilRepo repository.PerfilRepository
	Ahora      func() time.Time
}

// NewPlanUseCase construye el caso de uso.
func NewPlanUseCase(perfilRepo repository.PerfilRepository) *PlanUseCase {
	return &PlanUseCase{perfilRepo: perfilRepo, Ahora: time.Now}
}

// Asignar fija plan y vencimiento a N meses calendario de la asignación.
func (uc *PlanUseCase) Asignar(ctx context.Context, rol *entity.Rol, propietarioID string, in dto.AsignarPlanRequest) (*dto.AsignarPlanResponse, error) {
	if !permisos.TienePermiso(rol, entity.PermGestionUsuarios) {
		return nil, domain.ErrProhibido
	}
	plan := entity.TipoPlan(in.Plan)
	if !entity.PlanValido(plan) {
		return nil, domain.ErrPlanDesconocido
	}
	if in.Meses < 1 {
		return nil, domain.ErrEntradaInvalida
	}

	perfil, err := uc.perfilRepo.GetByID(ctx, propietarioID)
	if err != nil {
		return nil, err
	}
	if perfil == nil || perfil.Rol != "propietario" {
		return nil, domain.ErrNotFound
	}

	ahora := uc.Ahora()
	venceEn := entity.VencimientoDesde(ahora, in.Meses)
	if err := uc.perfilRepo.ActualizarPlan(ctx, propietarioID, plan, venceEn); err != nil {
		return nil, err
	}

	dias := entity.DiasRestantes(&venceEn, ahora)
	return &dto.AsignarPlanResponse{
		Success:       true,
		Plan:          string(plan),
		PlanVenceEn:   venceEn,
		DiasRestantes: *dias,
		PrecioTotal:   entity.Planes[plan].Precio.Mul(decimal.NewFromInt(int64(in.Meses))),
	}, nil
}
