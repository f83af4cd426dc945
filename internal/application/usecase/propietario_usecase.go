package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/nightly-app/nightly-admin-api/internal/application/dto"
	"github.com/nightly-app/nightly-admin-api/internal/application/ports"
	"github.com/nightly-app/nightly-admin-api/internal/domain"
	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
	"github.com/nightly-app/nightly-admin-api/internal/domain/repository"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PropietarioUseCase operaciones del dueño sobre su propio local: patch de
// campos, fotos con cuota por plan y boost "llenar rápido".
type PropietarioUseCase struct {
	localRepo   repository.LocalRepository
	storage     ports.ObjectStorage
	notificador ports.Notificador
	Ahora       func() time.Time
}

// NewPropietarioUseCase construye el caso de uso.
func NewPropietarioUseCase(localRepo repository.LocalRepository, storage ports.ObjectStorage, notificador ports.Notificador) *PropietarioUseCase {
	return &PropietarioUseCase{
		localRepo:   localRepo,
		storage:     storage,
		notificador: notificador,
		Ahora:       time.Now,
	}
}

// miLocal carga el local asignado al rol propietario, validando la propiedad
// contra los registros persistidos en cada llamada.
func (uc *PropietarioUseCase) miLocal(ctx context.Context, rol *entity.Rol) (*entity.Local, error) {
	if rol == nil || rol.Tipo != entity.TipoPropietario {
		return nil, domain.ErrProhibido
	}
	if rol.Propietario.LocalAsignadoID == nil {
		return nil, domain.ErrSinLocal
	}
	local, err := uc.localRepo.GetByID(ctx, *rol.Propietario.LocalAsignadoID)
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, domain.ErrSinLocal
	}
	return local, nil
}

// MiLocal devuelve el local asignado.
func (uc *PropietarioUseCase) MiLocal(ctx context.Context, rol *entity.Rol) (*entity.Local, error) {
	return uc.miLocal(ctx, rol)
}

// ActualizarMiLocal aplica un patch parcial al local propio. Los flags
// administrativos (activo, verificado) se ignoran para propietarios.
func (uc *PropietarioUseCase) ActualizarMiLocal(ctx context.Context, rol *entity.Rol, in dto.ActualizarLocalRequest) (*entity.Local, error) {
	local, err := uc.miLocal(ctx, rol)
	if err != nil {
		return nil, err
	}
	aplicarPatch(local, in, false)
	local.UpdatedAt = uc.Ahora()
	if err := uc.localRepo.Update(ctx, local); err != nil {
		return nil, err
	}
	return local, nil
}

// planDelRol plan efectivo del propietario; sin plan asignado opera como básico.
func planDelRol(rol *entity.Rol) entity.Plan {
	p := rol.Propietario.Plan
	if !entity.PlanValido(p) {
		p = entity.PlanBasico
	}
	return entity.Planes[p]
}

// PresignFoto valida la cuota de fotos del plan y emite el destino firmado.
// La foto NO existe para el local hasta ConfirmarFoto.
func (uc *PropietarioUseCase) PresignFoto(ctx context.Context, rol *entity.Rol, extension string) (*dto.PresignFotoResponse, error) {
	local, err := uc.miLocal(ctx, rol)
	if err != nil {
		return nil, err
	}
	ext := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(extension)), ".")
	switch ext {
	case "jpg", "jpeg", "png", "webp":
	default:
		return nil, domain.ErrEntradaInvalida
	}

	plan := planDelRol(rol)
	if len(local.Fotos) >= plan.LimiteFotos {
		return nil, domain.ErrLimiteFotos
	}

	path := fmt.Sprintf("%s/%s.%s", carpetaFotos(local), uuid.New().String(), ext)
	firmada, err := uc.storage.PresignSubida(ctx, path)
	if err != nil {
		return nil, err
	}
	return &dto.PresignFotoResponse{
		Success:       true,
		SignedURL:     firmada.SignedURL,
		Path:          firmada.Path,
		PublicURL:     firmada.PublicURL,
		FotosActuales: len(local.Fotos),
		Limite:        plan.LimiteFotos,
	}, nil
}

// ConfirmarFoto incorpora una subida completada a la lista persistida del local.
// Revalida propiedad y cuota: el path debe pertenecer a la carpeta del local.
func (uc *PropietarioUseCase) ConfirmarFoto(ctx context.Context, rol *entity.Rol, path string) (*dto.ConfirmFotoResponse, error) {
	local, err := uc.miLocal(ctx, rol)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(path, carpetaFotos(local)+"/") {
		return nil, domain.ErrProhibido
	}
	plan := planDelRol(rol)
	if len(local.Fotos) >= plan.LimiteFotos {
		return nil, domain.ErrLimiteFotos
	}

	url := uc.storage.PublicURL(path)
	for _, f := range local.Fotos {
		if f == url {
			return nil, domain.ErrConflicto
		}
	}
	local.Fotos = append(local.Fotos, url)
	local.UpdatedAt = uc.Ahora()
	if err := uc.localRepo.Update(ctx, local); err != nil {
		return nil, err
	}
	return &dto.ConfirmFotoResponse{
		Success: true,
		URL:     url,
		Fotos:   local.Fotos,
		Mensaje: "foto agregada al local",
	}, nil
}

// EliminarFoto quita la foto de la lista y borra el objeto del bucket.
func (uc *PropietarioUseCase) EliminarFoto(ctx context.Context, rol *entity.Rol, url string) (*dto.EliminarFotoResponse, error) {
	local, err := uc.miLocal(ctx, rol)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, f := range local.Fotos {
		if f == url {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	local.Fotos = append(local.Fotos[:idx], local.Fotos[idx+1:]...)
	local.UpdatedAt = uc.Ahora()
	if err := uc.localRepo.Update(ctx, local); err != nil {
		return nil, err
	}
	// Borrado del objeto: mejor esfuerzo tras actualizar la lista.
	if path, err := uc.storage.PathDesdeURL(url); err == nil {
		_ = uc.storage.Eliminar(ctx, path)
	}
	fotos := local.Fotos
	if fotos == nil {
		fotos = []string{}
	}
	return &dto.EliminarFotoResponse{Success: true, Fotos: fotos}, nil
}

// Boost envía la notificación "llenar rápido". Solo plan premium y dentro de la
// cuota mensual.
func (uc *PropietarioUseCase) Boost(ctx context.Context, rol *entity.Rol, in dto.BoostRequest) (*dto.BoostResponse, error) {
	local, err := uc.miLocal(ctx, rol)
	if err != nil {
		return nil, err
	}
	if in.Promocion == "" {
		return nil, domain.ErrEntradaInvalida
	}
	plan := planDelRol(rol)
	restantes := plan.LimiteBoosts - local.BoostsUsadosMes
	if restantes <= 0 {
		return nil, domain.ErrSinBoosts
	}

	duracion := in.DuracionHoras
	if duracion <= 0 {
		duracion = 2
	}
	radio := in.RadioKm
	if radio <= 0 {
		radio = 2.0
	}
	err = uc.notificador.EnviarBoost(ctx, ports.Boost{
		LocalID:       local.ID,
		Titulo:        local.Nombre,
		Mensaje:       in.Promocion,
		Promocion:     in.Promocion,
		RadioKm:       radio,
		DuracionHoras: duracion,
	})
	if err != nil {
		return nil, err
	}

	local.BoostsUsadosMes++
	local.UpdatedAt = uc.Ahora()
	if err := uc.localRepo.Update(ctx, local); err != nil {
		return nil, err
	}
	return &dto.BoostResponse{
		Success:         true,
		Mensaje:         "boost enviado a usuarios cercanos",
		BoostsRestantes: plan.LimiteBoosts - local.BoostsUsadosMes,
	}, nil
}

// carpetaFotos carpeta del local dentro del bucket: slug del nombre + id.
func carpetaFotos(local *entity.Local) string {
	return fmt.Sprintf("locales/%s-%s", slug(local.Nombre), local.ID)
}

var quitarDiacriticos = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// slug normaliza un nombre para usarlo en paths de storage: sin tildes,
// minúsculas, solo [a-z0-9-].
func slug(s string) string {
	plano, _, err := transform.String(quitarDiacriticos, s)
	if err != nil {
		plano = s
	}
	var sb strings.Builder
	ultimoGuion := true
	for _, r := range strings.ToLower(plano) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			ultimoGuion = false
		default:
			if !ultimoGuion {
				sb.WriteByte('-')
				ultimoGuion = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
