package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nightly-app/nightly-admin-api/internal/application/dto"
	"github.com/nightly-app/nightly-admin-api/internal/application/permisos"
	"github.com/nightly-app/nightly-admin-api/internal/domain"
	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
	"github.com/nightly-app/nightly-admin-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repos atados a una transacción (alta rápida:
// local + código salen juntos o no salen).
type TxRunner interface {
	Run(ctx context.Context, fn func(locales repository.LocalRepository, codigos repository.CodigoRepository) error) error
}

// maxIntentosCodigo reintentos ante colisión de código (31^6 combinaciones,
// colisionar dos veces seguidas ya es rarísimo).
const maxIntentosCodigo = 5

// CodigoUseCase emisión de códigos de invitación y alta rápida de locales.
type CodigoUseCase struct {
	codigoRepo repository.CodigoRepository
	localRepo  repository.LocalRepository
	tx         TxRunner
	localUC    *LocalUseCase
	Ahora      func() time.Time
}

// NewCodigoUseCase construye el caso de uso.
func NewCodigoUseCase(codigoRepo repository.CodigoRepository, localRepo repository.LocalRepository, tx TxRunner, localUC *LocalUseCase) *CodigoUseCase {
	return &CodigoUseCase{
		codigoRepo: codigoRepo,
		localRepo:  localRepo,
		tx:         tx,
		localUC:    localUC,
		Ahora:      time.Now,
	}
}

// Generar emite un código de invitación para un local existente.
func (uc *CodigoUseCase) Generar(ctx context.Context, rol *entity.Rol, localID string) (*entity.CodigoInvitacion, error) {
	if !permisos.TienePermiso(rol, entity.PermGenerarCodigos) {
		return nil, domain.ErrProhibido
	}
	local, err := uc.localRepo.GetByID(ctx, localID)
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, domain.ErrNotFound
	}
	return crearCodigoUnico(ctx, uc.codigoRepo, localID, uc.Ahora())
}

// CrearLocalRapido da de alta el local y su código de invitación en una sola
// transacción, para entregar el código al dueño en el mismo paso.
func (uc *CodigoUseCase) CrearLocalRapido(ctx context.Context, rol *entity.Rol, in dto.CrearLocalRequest) (*entity.Local, string, error) {
	if !permisos.PuedeCrearLocal(rol) || !permisos.TienePermiso(rol, entity.PermGenerarCodigos) {
		return nil, "", domain.ErrProhibido
	}
	var (
		local  *entity.Local
		codigo *entity.CodigoInvitacion
	)
	err := uc.tx.Run(ctx, func(locales repository.LocalRepository, codigos repository.CodigoRepository) error {
		txLocalUC := NewLocalUseCase(locales)
		txLocalUC.Ahora = uc.Ahora
		var err error
		local, err = txLocalUC.Crear(ctx, rol, in)
		if err != nil {
			return err
		}
		codigo, err = crearCodigoUnico(ctx, codigos, local.ID, uc.Ahora())
		return err
	})
	if err != nil {
		return nil, "", err
	}
	return local, codigo.Codigo, nil
}

// crearCodigoUnico genera e inserta un código, reintentando ante colisión.
func crearCodigoUnico(ctx context.Context, repo repository.CodigoRepository, localID string, ahora time.Time) (*entity.CodigoInvitacion, error) {
	for i := 0; i < maxIntentosCodigo; i++ {
		valor, err := entity.GenerarCodigo()
		if err != nil {
			return nil, err
		}
		codigo := &entity.CodigoInvitacion{
			ID:        uuid.New().String(),
			Codigo:    valor,
			LocalID:   localID,
			CreatedAt: ahora,
		}
		err = repo.Create(ctx, codigo)
		if err == nil {
			return codigo, nil
		}
		if !errors.Is(err, domain.ErrConflicto) {
			return nil, err
		}
	}
	return nil, domain.ErrConflicto
}
