package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nightly-app/nightly-admin-api/internal/application/dto"
	"github.com/nightly-app/nightly-admin-api/internal/application/permisos"
	"github.com/nightly-app/nightly-admin-api/internal/domain"
	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
	"github.com/nightly-app/nightly-admin-api/internal/domain/repository"
)

// LocalUseCase mutaciones de locales por super admins. Cada método recibe el rol
// recién resuelto y reevalúa el permiso contra el registro persistido antes de
// tocar nada: nunca se confía en una decisión cacheada.
type LocalUseCase struct {
	localRepo repository.LocalRepository
	Ahora     func() time.Time
}

// NewLocalUseCase construye el caso de uso.
func NewLocalUseCase(localRepo repository.LocalRepository) *LocalUseCase {
	return &LocalUseCase{localRepo: localRepo, Ahora: time.Now}
}

// Crear da de alta un local con los valores iniciales del alta rápida:
// vacío, activo, sin verificar.
func (uc *LocalUseCase) Crear(ctx context.Context, rol *entity.Rol, in dto.CrearLocalRequest) (*entity.Local, error) {
	if !permisos.PuedeCrearLocal(rol) {
		return nil, domain.ErrProhibido
	}
	if in.Nombre == "" || in.Tipo == "" {
		return nil, domain.ErrEntradaInvalida
	}
	ahora := uc.Ahora()
	local := &entity.Local{
		ID:              uuid.New().String(),
		Nombre:          in.Nombre,
		Tipo:            in.Tipo,
		Direccion:       in.Direccion,
		Latitud:         in.Latitud,
		Longitud:        in.Longitud,
		Telefono:        in.Telefono,
		CapacidadActual: 0,
		Estado:          entity.EstadoVacio,
		EsZonaSegura:    true,
		CreadoPorID:     rol.UserID(),
		Activo:          true,
		Verificado:      false,
		CreatedAt:       ahora,
		UpdatedAt:       ahora,
	}
	if err := uc.localRepo.Create(ctx, local); err != nil {
		return nil, err
	}
	return local, nil
}

// Listar devuelve los locales con el alcance del rol: el admin principal ve todo
// sin filtro; un pasante recibe la partición mios/otros (los ajenos en solo
// lectura). Un propietario no usa este listado.
func (uc *LocalUseCase) Listar(ctx context.Context, rol *entity.Rol) (todos, mios, otros []*entity.Local, err error) {
	if rol == nil || rol.Tipo != entity.TipoSuperAdmin {
		return nil, nil, nil, domain.ErrProhibido
	}
	locales, err := uc.localRepo.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	if permisos.PuedeVerTodos(rol) {
		return locales, nil, nil, nil
	}
	mios, otros = permisos.SepararPorCreador(locales, rol.UserID())
	return locales, mios, otros, nil
}

// Actualizar aplica un patch parcial. Última escritura gana: no hay detección de
// conflictos entre dos operadores editando el mismo local.
func (uc *LocalUseCase) Actualizar(ctx context.Context, rol *entity.Rol, id string, in dto.ActualizarLocalRequest) (*entity.Local, error) {
	local, err := uc.localRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, domain.ErrNotFound
	}
	if !permisos.PuedeEditarLocal(rol, local) {
		return nil, domain.ErrProhibido
	}
	aplicarPatch(local, in, true)
	local.UpdatedAt = uc.Ahora()
	if err := uc.localRepo.Update(ctx, local); err != nil {
		return nil, err
	}
	return local, nil
}

// Eliminar borra un local. Solo el admin principal; un pasante no elimina nunca.
func (uc *LocalUseCase) Eliminar(ctx context.Context, rol *entity.Rol, id string) error {
	local, err := uc.localRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if local == nil {
		return domain.ErrNotFound
	}
	if !permisos.PuedeEliminarLocal(rol, local) {
		return domain.ErrProhibido
	}
	return uc.localRepo.Delete(ctx, id)
}

// aplicarPatch copia al local los campos presentes del request. La capacidad
// recalcula el estado con los umbrales 20/50/80. Los flags administrativos
// (activo, verificado) solo se aplican cuando esAdmin.
func aplicarPatch(local *entity.Local, in dto.ActualizarLocalRequest, esAdmin bool) {
	if in.Nombre != nil {
		local.Nombre = *in.Nombre
	}
	if in.Tipo != nil {
		local.Tipo = *in.Tipo
	}
	if in.Direccion != nil {
		local.Direccion = *in.Direccion
	}
	if in.Latitud != nil {
		local.Latitud = *in.Latitud
	}
	if in.Longitud != nil {
		local.Longitud = *in.Longitud
	}
	if in.CapacidadActual != nil {
		local.CapacidadActual = *in.CapacidadActual
		local.Estado = entity.CalcularEstado(local.CapacidadActual)
	}
	if in.TiempoEspera != nil {
		local.TiempoEspera = *in.TiempoEspera
	}
	if in.TieneMusicaEnVivo != nil {
		local.TieneMusicaEnVivo = *in.TieneMusicaEnVivo
	}
	if in.EsZonaSegura != nil {
		local.EsZonaSegura = *in.EsZonaSegura
	}
	if in.Descripcion != nil {
		local.Descripcion = *in.Descripcion
	}
	if in.Telefono != nil {
		local.Telefono = *in.Telefono
	}
	if in.Instagram != nil {
		local.Instagram = *in.Instagram
	}
	if in.Facebook != nil {
		local.Facebook = *in.Facebook
	}
	if in.RangoPrecios != nil {
		local.RangoPrecios = *in.RangoPrecios
	}
	if esAdmin {
		if in.Activo != nil {
			local.Activo = *in.Activo
		}
		if in.Verificado != nil {
			local.Verificado = *in.Verificado
		}
	}
}
