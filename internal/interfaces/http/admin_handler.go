package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nightly-app/nightly-admin-api/internal/application/dto"
	"github.com/nightly-app/nightly-admin-api/internal/application/usecase"
	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
)

// AdminHandler operaciones del panel para super admins: locales, códigos de
// invitación y planes. Cada caso de uso reevalúa el permiso con el rol resuelto.
type AdminHandler struct {
	localUC  *usecase.LocalUseCase
	codigoUC *usecase.CodigoUseCase
	planUC   *usecase.PlanUseCase
}

// NewAdminHandler construye el handler de administración.
func NewAdminHandler(localUC *usecase.LocalUseCase, codigoUC *usecase.CodigoUseCase, planUC *usecase.PlanUseCase) *AdminHandler {
	return &AdminHandler{localUC: localUC, codigoUC: codigoUC, planUC: planUC}
}

// ListarLocales godoc
// @Summary      Listar locales con el alcance del rol
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ListarLocalesResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/locales [get]
func (h *AdminHandler) ListarLocales(c *fiber.Ctx) error {
	todos, mios, otros, err := h.localUC.Listar(c.Context(), GetRol(c))
	if err != nil {
		return responderError(c, err)
	}
	out := dto.ListarLocalesResponse{Success: true, Locales: proyectarLocales(todos)}
	if mios != nil || otros != nil {
		out.Mios = proyectarLocales(mios)
		out.Otros = proyectarLocales(otros)
	}
	return c.JSON(out)
}

// CrearLocal godoc
// @Summary      Crear local
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CrearLocalRequest  true  "nombre, tipo, dirección, coordenadas"
// @Success      201   {object}  dto.LocalMutacionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/admin/locales [post]
func (h *AdminHandler) CrearLocal(c *fiber.Ctx) error {
	var in dto.CrearLocalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	local, err := h.localUC.Crear(c.Context(), GetRol(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.LocalMutacionResponse{Success: true, Local: dto.ToLocalResponse(local)})
}

// ActualizarLocal godoc
// @Summary      Actualizar local (patch parcial)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "id del local"
// @Param        body  body  dto.ActualizarLocalRequest  true  "campos a modificar"
// @Success      200   {object}  dto.LocalMutacionResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/locales/{id} [patch]
func (h *AdminHandler) ActualizarLocal(c *fiber.Ctx) error {
	var in dto.ActualizarLocalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	local, err := h.localUC.Actualizar(c.Context(), GetRol(c), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.LocalMutacionResponse{Success: true, Local: dto.ToLocalResponse(local)})
}

// EliminarLocal godoc
// @Summary      Eliminar local
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "id del local"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/locales/{id} [delete]
func (h *AdminHandler) EliminarLocal(c *fiber.Ctx) error {
	if err := h.localUC.Eliminar(c.Context(), GetRol(c), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// CrearLocalRapido godoc
// @Summary      Crear local y código de invitación en un paso
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CrearLocalRequest  true  "datos mínimos del local"
// @Success      201   {object}  dto.CrearLocalRapidoResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/admin/locales/rapido [post]
func (h *AdminHandler) CrearLocalRapido(c *fiber.Ctx) error {
	var in dto.CrearLocalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	local, codigo, err := h.codigoUC.CrearLocalRapido(c.Context(), GetRol(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CrearLocalRapidoResponse{
		Success: true,
		Local:   dto.ToLocalResponse(local),
		Codigo:  codigo,
	})
}

// GenerarCodigo godoc
// @Summary      Generar código de invitación para un local
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.GenerarCodigoRequest  true  "local_id"
// @Success      201   {object}  dto.GenerarCodigoResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/codigos [post]
func (h *AdminHandler) GenerarCodigo(c *fiber.Ctx) error {
	var in dto.GenerarCodigoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	if in.LocalID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "local_id es requerido"))
	}
	cod, err := h.codigoUC.Generar(c.Context(), GetRol(c), in.LocalID)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.GenerarCodigoResponse{
		Success: true,
		Codigo:  cod.Codigo,
		LocalID: cod.LocalID,
	})
}

// AsignarPlan godoc
// @Summary      Asignar plan a un propietario
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "id del propietario"
// @Param        body  body  dto.AsignarPlanRequest  true  "plan, meses"
// @Success      200   {object}  dto.AsignarPlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/propietarios/{id}/plan [patch]
func (h *AdminHandler) AsignarPlan(c *fiber.Ctx) error {
	var in dto.AsignarPlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	res, err := h.planUC.Asignar(c.Context(), GetRol(c), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(res)
}

func proyectarLocales(locales []*entity.Local) []dto.LocalResponse {
	out := make([]dto.LocalResponse, 0, len(locales))
	for _, l := range locales {
		out = append(out, dto.ToLocalResponse(l))
	}
	return out
}
