package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nightly-app/nightly-admin-api/internal/application/dto"
	"github.com/nightly-app/nightly-admin-api/internal/application/usecase"
)

// OwnerHandler operaciones del propietario sobre su propio local.
type OwnerHandler struct {
	uc *usecase.PropietarioUseCase
}

// NewOwnerHandler construye el handler de propietario.
func NewOwnerHandler(uc *usecase.PropietarioUseCase) *OwnerHandler {
	return &OwnerHandler{uc: uc}
}

// MiLocal godoc
// @Summary      Local asignado al propietario
// @Tags         propietario
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.LocalMutacionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/owner/local [get]
func (h *OwnerHandler) MiLocal(c *fiber.Ctx) error {
	local, err := h.uc.MiLocal(c.Context(), GetRol(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.LocalMutacionResponse{Success: true, Local: dto.ToLocalResponse(local)})
}

// Actualizar godoc
// @Summary      Actualizar el local propio (patch parcial)
// @Tags         propietario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ActualizarLocalRequest  true  "campos a modificar"
// @Success      200   {object}  dto.LocalMutacionResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/owner/local [patch]
func (h *OwnerHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.ActualizarLocalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	local, err := h.uc.ActualizarMiLocal(c.Context(), GetRol(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.LocalMutacionResponse{Success: true, Local: dto.ToLocalResponse(local)})
}

// PresignFoto godoc
// @Summary      Pedir destino firmado para subir una foto
// @Tags         propietario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.PresignFotoRequest  true  "extension"
// @Success      200   {object}  dto.PresignFotoResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/owner/local/fotos/presign [post]
func (h *OwnerHandler) PresignFoto(c *fiber.Ctx) error {
	var in dto.PresignFotoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	res, err := h.uc.PresignFoto(c.Context(), GetRol(c), in.Extension)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(res)
}

// ConfirmarFoto godoc
// @Summary      Confirmar una subida completada
// @Tags         propietario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ConfirmFotoRequest  true  "path devuelto por presign"
// @Success      200   {object}  dto.ConfirmFotoResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/owner/local/fotos/confirm [post]
func (h *OwnerHandler) ConfirmarFoto(c *fiber.Ctx) error {
	var in dto.ConfirmFotoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	if in.Path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "path es requerido"))
	}
	res, err := h.uc.ConfirmarFoto(c.Context(), GetRol(c), in.Path)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(res)
}

// EliminarFoto godoc
// @Summary      Eliminar una foto del local
// @Tags         propietario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.EliminarFotoRequest  true  "url pública de la foto"
// @Success      200   {object}  dto.EliminarFotoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/owner/local/fotos [delete]
func (h *OwnerHandler) EliminarFoto(c *fiber.Ctx) error {
	var in dto.EliminarFotoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	if in.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "url es requerida"))
	}
	res, err := h.uc.EliminarFoto(c.Context(), GetRol(c), in.URL)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(res)
}

// Boost godoc
// @Summary      Enviar boost "llenar rápido" (plan premium)
// @Tags         propietario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.BoostRequest  true  "promocion, duracion_horas, radio_km"
// @Success      200   {object}  dto.BoostResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/owner/local/boost [post]
func (h *OwnerHandler) Boost(c *fiber.Ctx) error {
	var in dto.BoostRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	res, err := h.uc.Boost(c.Context(), GetRol(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(res)
}
