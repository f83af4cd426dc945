package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrEntradaInvalida  = errors.New("entrada inválida")
	ErrNoAutorizado     = errors.New("no autorizado")
	ErrProhibido        = errors.New("acceso denegado")
	ErrConflicto        = errors.New("conflicto con el estado actual")

	// Resolución de rol.
	ErrSinRol           = errors.New("usuario sin permisos de acceso al panel")
	ErrConsultaPermisos = errors.New("error al verificar permisos")

	// Onboarding por código de invitación.
	ErrCodigoInvalido = errors.New("código de invitación inválido o ya usado")
	ErrCodigoHuerfano = errors.New("código no asociado a ningún local")
	ErrRegistro       = errors.New("error al crear cuenta")
	ErrPerfilTimeout  = errors.New("no se pudo crear el perfil del propietario")
	ErrVinculacion    = errors.New("error asignando local al propietario")

	// Reglas de planes.
	ErrPlanDesconocido = errors.New("plan desconocido")
	ErrLimiteFotos     = errors.New("límite de fotos del plan alcanzado")
	ErrSinBoosts       = errors.New("sin boosts disponibles este mes")
	ErrSinLocal        = errors.New("propietario sin local asignado")
)
