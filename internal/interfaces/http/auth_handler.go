package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nightly-app/nightly-admin-api/internal/application/dto"
	"github.com/nightly-app/nightly-admin-api/internal/application/ports"
	"github.com/nightly-app/nightly-admin-api/internal/application/roles"
	"github.com/nightly-app/nightly-admin-api/internal/domain"
	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
	"github.com/nightly-app/nightly-admin-api/pkg/config"
	"github.com/nightly-app/nightly-admin-api/pkg/jwt"
	"github.com/nightly-app/nightly-admin-api/pkg/logger"
)

// AuthHandler maneja login y consulta del rol actual.
type AuthHandler struct {
	auth     ports.AuthProvider
	resolver *roles.Resolver
	jwtCfg   config.JWTConfig
	log      *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(auth ports.AuthProvider, resolver *roles.Resolver, jwtCfg config.JWTConfig, log *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, resolver: resolver, jwtCfg: jwtCfg, log: log}
}

// Login godoc
// @Summary      Iniciar sesión en el panel
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "email y password son requeridos"))
	}

	sesion, err := h.auth.SignInWithPassword(c.Context(), in.Email, in.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("UNAUTHORIZED", "credenciales inválidas"))
	}

	// Identidad válida pero sin registro en super_admins ni perfiles de
	// propietario: la sesión externa no basta para entrar al panel.
	rol, err := h.resolver.ResolverRol(c.Context(), sesion.Usuario.ID)
	if err != nil {
		return responderError(c, err)
	}

	token, err := h.generarToken(rol)
	if err != nil {
		h.log.Error().Err(err).Msg("no se pudo firmar el token del panel")
		return responderError(c, err)
	}
	return c.JSON(dto.LoginResponse{
		Success: true,
		Token:   token,
		Rol:     dto.ToRolResponse(rol),
	})
}

// Rol godoc
// @Summary      Rol resuelto de la sesión actual
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.RolActualResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/auth/rol [get]
func (h *AuthHandler) Rol(c *fiber.Ctx) error {
	rol := GetRol(c)
	if rol == nil {
		return responderError(c, domain.ErrSinRol)
	}
	return c.JSON(dto.RolActualResponse{Success: true, Rol: dto.ToRolResponse(rol)})
}

// generarToken firma el token del panel con los claims de la variante resuelta.
func (h *AuthHandler) generarToken(rol *entity.Rol) (string, error) {
	return generarTokenPanel(h.jwtCfg, rol)
}

// generarTokenPanel firma un token del panel para un rol resuelto.
func generarTokenPanel(cfg config.JWTConfig, rol *entity.Rol) (string, error) {
	nivel := ""
	if rol.SuperAdmin != nil {
		nivel = rol.SuperAdmin.Nivel
	}
	return jwt.Generate(cfg.Secret, rol.UserID(), string(rol.Tipo), nivel, cfg.Issuer, cfg.Expiration)
}
