// Package onboarding implementa el alta de propietarios por código de invitación
// como una máquina de estados secuencial: cada paso completa (incluidas sus
// esperas) antes de iniciar el siguiente; no hay fan-out ni cancelación a mitad
// de vuelo.
package onboarding

import (
	"context"
	"fmt"
	"time"

	"github.com/nightly-app/nightly-admin-api/internal/application/dto"
	"github.com/nightly-app/nightly-admin-api/internal/application/ports"
	"github.com/nightly-app/nightly-admin-api/internal/domain"
	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
	"github.com/nightly-app/nightly-admin-api/internal/domain/repository"
	"github.com/nightly-app/nightly-admin-api/pkg/logger"
)

// Estado etiqueta el paso alcanzado por una ejecución del flujo.
type Estado string

const (
	EstadoValidandoCodigo   Estado = "validando_codigo"
	EstadoCreandoIdentidad  Estado = "creando_identidad"
	EstadoEsperandoPerfil   Estado = "esperando_perfil"
	EstadoVinculandoLocal   Estado = "vinculando_local"
	EstadoConsumiendoCodigo Estado = "consumiendo_codigo"
	EstadoIniciandoSesion   Estado = "iniciando_sesion"
	EstadoExito             Estado = "exito"
)

// MaxIntentosPerfil intentos del poll de materialización del perfil.
const MaxIntentosPerfil = 5

// backoffPerfil espera antes del intento i: 0, 200, 400, 800, 1600 ms.
func backoffPerfil(intento int) time.Duration {
	if intento == 0 {
		return 0
	}
	return time.Duration(1<<(intento-1)) * 200 * time.Millisecond
}

// Resultado de una ejecución del flujo.
type Resultado struct {
	Estado  Estado
	UserID  string
	LocalID string
	// Sesion de login automático; nil si LoginManualRequerido.
	Sesion *ports.Sesion
	// LoginManualRequerido: la cuenta y la vinculación quedaron bien pero el
	// login automático falló; el usuario debe entrar a mano.
	LoginManualRequerido bool
}

// UseCase máquina de estados del onboarding.
//
// Esperar y Ahora son inyectables para que los tests recorran el presupuesto de
// backoff sin reloj de pared.
type UseCase struct {
	codigoRepo repository.CodigoRepository
	perfilRepo repository.PerfilRepository
	localRepo  repository.LocalRepository
	auth       ports.AuthProvider
	log        *logger.Logger

	Esperar func(ctx context.Context, d time.Duration) error
	Ahora   func() time.Time
}

// NewUseCase construye el flujo con sleep real y reloj de sistema.
func NewUseCase(
	codigoRepo repository.CodigoRepository,
	perfilRepo repository.PerfilRepository,
	localRepo repository.LocalRepository,
	auth ports.AuthProvider,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		codigoRepo: codigoRepo,
		perfilRepo: perfilRepo,
		localRepo:  localRepo,
		auth:       auth,
		log:        log,
		Esperar:    esperarReal,
		Ahora:      time.Now,
	}
}

func esperarReal(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Registrar ejecuta el flujo completo. Los errores de cada paso se devuelven
// envueltos en el sentinel de dominio que corresponde; solo el timeout de perfil
// dispara una acción compensatoria automática (sign-out de la identidad nueva).
func (uc *UseCase) Registrar(ctx context.Context, in dto.RegistroRequest) (*Resultado, error) {
	// ── ValidandoCodigo ──────────────────────────────────────────────────────
	codigo := entity.NormalizarCodigo(in.Codigo)
	cod, err := uc.codigoRepo.GetVigente(ctx, codigo)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCodigoInvalido, err)
	}
	if cod == nil {
		return nil, domain.ErrCodigoInvalido
	}
	if cod.LocalID == "" {
		return nil, domain.ErrCodigoHuerfano
	}

	// ── CreandoIdentidad ─────────────────────────────────────────────────────
	sesion, err := uc.auth.SignUp(ctx, in.Email, in.Password, map[string]string{
		"nombre_completo": in.NombreCompleto,
		"rol":             "propietario",
	})
	if err != nil {
		// El mensaje upstream (p.ej. email duplicado) se pasa tal cual.
		return nil, fmt.Errorf("%w: %v", domain.ErrRegistro, err)
	}
	userID := sesion.Usuario.ID

	// ── EsperandoPerfil ──────────────────────────────────────────────────────
	// El trigger del servicio de auth crea el perfil fuera de nuestro control.
	if err := uc.esperarPerfil(ctx, userID); err != nil {
		// Sin perfil la cuenta es inutilizable: se cierra la sesión recién
		// creada para no dejar una identidad huérfana.
		if soErr := uc.auth.SignOut(ctx, sesion.AccessToken); soErr != nil {
			uc.log.Warn().Err(soErr).Str("user_id", userID).
				Msg("no se pudo cerrar la sesión de la identidad huérfana")
		}
		return nil, err
	}

	// ── VinculandoLocal ──────────────────────────────────────────────────────
	// No se revierte la identidad si esto falla: el soporte asume el estado
	// actual (ver DESIGN.md, pregunta abierta).
	if err := uc.perfilRepo.AsignarLocal(ctx, userID, cod.LocalID, in.NombreCompleto); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrVinculacion, err)
	}
	if err := uc.localRepo.AsignarPropietario(ctx, cod.LocalID, userID); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrVinculacion, err)
	}

	// ── ConsumiendoCodigo ────────────────────────────────────────────────────
	// La cuenta y la vinculación ya existen: un fallo aquí deja el código
	// reutilizable en teoría, pero no bloquea el alta. Solo se registra.
	if err := uc.codigoRepo.MarcarUsado(ctx, codigo, userID, uc.Ahora()); err != nil {
		uc.log.Error().Err(err).Str("codigo", codigo).Str("user_id", userID).
			Msg("no se pudo marcar el código como usado")
	}

	res := &Resultado{
		Estado:  EstadoExito,
		UserID:  userID,
		LocalID: cod.LocalID,
	}

	// ── IniciandoSesion ──────────────────────────────────────────────────────
	// Credenciales ya conocidas: sin backoff. Si falla, el flujo termina en
	// éxito igualmente y se pide login manual.
	login, err := uc.auth.SignInWithPassword(ctx, in.Email, in.Password)
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).
			Msg("login automático falló tras el registro; se requiere login manual")
		res.LoginManualRequerido = true
		return res, nil
	}
	res.Sesion = login
	return res, nil
}

// esperarPerfil sondea la existencia del perfil con backoff exponencial.
// A lo sumo MaxIntentosPerfil consultas con esperas 0/200/400/800/1600 ms.
func (uc *UseCase) esperarPerfil(ctx context.Context, userID string) error {
	for intento := 0; intento < MaxIntentosPerfil; intento++ {
		if err := uc.Esperar(ctx, backoffPerfil(intento)); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrPerfilTimeout, err)
		}
		existe, err := uc.perfilRepo.Existe(ctx, userID)
		if err == nil && existe {
			return nil
		}
	}
	return domain.ErrPerfilTimeout
}
