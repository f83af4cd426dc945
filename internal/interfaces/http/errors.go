package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nightly-app/nightly-admin-api/internal/application/dto"
	"github.com/nightly-app/nightly-admin-api/internal/domain"
)

// responderError mapea errores de dominio a status HTTP y cuerpo de error.
// El texto del sentinel viaja como mensaje; lo envuelto se pierde a propósito
// (los detalles internos quedan en los logs, no en la respuesta).
func responderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEntradaInvalida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", domain.ErrEntradaInvalida.Error()))
	case errors.Is(err, domain.ErrNoAutorizado):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("UNAUTHORIZED", domain.ErrNoAutorizado.Error()))
	case errors.Is(err, domain.ErrSinRol):
		return c.Status(fiber.StatusForbidden).JSON(dto.NewError("SIN_ROL", domain.ErrSinRol.Error()))
	case errors.Is(err, domain.ErrProhibido):
		return c.Status(fiber.StatusForbidden).JSON(dto.NewError("FORBIDDEN", domain.ErrProhibido.Error()))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", domain.ErrNotFound.Error()))
	case errors.Is(err, domain.ErrConflicto):
		return c.Status(fiber.StatusConflict).JSON(dto.NewError("CONFLICT", domain.ErrConflicto.Error()))
	case errors.Is(err, domain.ErrCodigoInvalido):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("CODIGO_INVALIDO", domain.ErrCodigoInvalido.Error()))
	case errors.Is(err, domain.ErrCodigoHuerfano):
		return c.Status(fiber.StatusConflict).JSON(dto.NewError("CODIGO_HUERFANO", domain.ErrCodigoHuerfano.Error()))
	case errors.Is(err, domain.ErrRegistro):
		// El mensaje upstream del servicio de auth sí se muestra (p.ej. email duplicado).
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("REGISTRO", err.Error()))
	case errors.Is(err, domain.ErrPerfilTimeout):
		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.NewError("PERFIL_TIMEOUT", domain.ErrPerfilTimeout.Error()))
	case errors.Is(err, domain.ErrVinculacion):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("VINCULACION", domain.ErrVinculacion.Error()))
	case errors.Is(err, domain.ErrConsultaPermisos):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("PERMISOS", domain.ErrConsultaPermisos.Error()))
	case errors.Is(err, domain.ErrPlanDesconocido):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("PLAN_DESCONOCIDO", domain.ErrPlanDesconocido.Error()))
	case errors.Is(err, domain.ErrLimiteFotos):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.NewError("LIMITE_FOTOS", domain.ErrLimiteFotos.Error()))
	case errors.Is(err, domain.ErrSinBoosts):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.NewError("SIN_BOOSTS", domain.ErrSinBoosts.Error()))
	case errors.Is(err, domain.ErrSinLocal):
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("SIN_LOCAL", domain.ErrSinLocal.Error()))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("INTERNAL", "error interno"))
	}
}
