package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nightly-app/nightly-admin-api/internal/application/dto"
	"github.com/nightly-app/nightly-admin-api/internal/application/onboarding"
	"github.com/nightly-app/nightly-admin-api/internal/application/roles"
	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
	"github.com/nightly-app/nightly-admin-api/pkg/config"
	"github.com/nightly-app/nightly-admin-api/pkg/logger"
)

// OnboardingHandler maneja el registro de propietarios por código de invitación.
type OnboardingHandler struct {
	uc       *onboarding.UseCase
	resolver *roles.Resolver
	jwtCfg   config.JWTConfig
	log      *logger.Logger
}

// NewOnboardingHandler construye el handler de onboarding.
func NewOnboardingHandler(uc *onboarding.UseCase, resolver *roles.Resolver, jwtCfg config.JWTConfig, log *logger.Logger) *OnboardingHandler {
	return &OnboardingHandler{uc: uc, resolver: resolver, jwtCfg: jwtCfg, log: log}
}

// Registrar godoc
// @Summary      Registrar propietario con código de invitación
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistroRequest  true  "codigo, nombre_completo, email, password"
// @Success      201   {object}  dto.RegistroResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Router       /api/auth/registro [post]
func (h *OnboardingHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistroRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Codigo == "" || in.NombreCompleto == "" || in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "codigo, nombre_completo, email y password son requeridos"))
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "password debe tener al menos 8 caracteres"))
	}

	res, err := h.uc.Registrar(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}

	out := dto.RegistroResponse{
		Success:              true,
		UserID:               res.UserID,
		LocalID:              res.LocalID,
		LoginManualRequerido: res.LoginManualRequerido,
		Mensaje:              "cuenta creada y local vinculado",
	}
	if res.LoginManualRequerido {
		out.Mensaje = "cuenta creada; inicia sesión manualmente"
		return c.Status(fiber.StatusCreated).JSON(out)
	}

	// Con el login automático hecho se emite de una vez el token del panel.
	// Si algo de esto falla, el alta sigue siendo válida: se degrada a login manual.
	rol, err := h.resolver.ResolverRol(c.Context(), res.UserID)
	if err != nil || rol.Tipo != entity.TipoPropietario {
		h.log.Warn().Err(err).Str("user_id", res.UserID).
			Msg("rol no resuelto tras el registro; se requiere login manual")
		out.LoginManualRequerido = true
		out.Mensaje = "cuenta creada; inicia sesión manualmente"
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	token, err := generarTokenPanel(h.jwtCfg, rol)
	if err != nil {
		h.log.Warn().Err(err).Str("user_id", res.UserID).
			Msg("no se pudo firmar el token tras el registro; se requiere login manual")
		out.LoginManualRequerido = true
		out.Mensaje = "cuenta creada; inicia sesión manualmente"
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	out.Token = token
	return c.Status(fiber.StatusCreated).JSON(out)
}
