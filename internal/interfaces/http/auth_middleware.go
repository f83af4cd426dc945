package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nightly-app/nightly-admin-api/internal/application/dto"
	"github.com/nightly-app/nightly-admin-api/internal/application/roles"
	"github.com/nightly-app/nightly-admin-api/internal/domain"
	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
	"github.com/nightly-app/nightly-admin-api/pkg/jwt"
)

// Locals keys para la identidad y el rol resuelto en Fiber.
const (
	LocalUserID  = "user_id"
	LocalTipoRol = "tipo_rol"
	LocalNivel   = "nivel"
	LocalRol     = "rol"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID, TipoRol y Nivel a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("MISSING_TOKEN", "Authorization header requerido"))
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("INVALID_TOKEN", "formato: Bearer <token>"))
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("MISSING_TOKEN", "token vacío"))
		}
		userID, tipoRol, nivel, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("INVALID_TOKEN", "token inválido o expirado"))
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalTipoRol, tipoRol)
		c.Locals(LocalNivel, nivel)
		return c.Next()
	}
}

// RolMiddleware resuelve el rol contra los registros persistidos en cada request.
// Los claims del token solo identifican; las capacidades salen siempre de la DB,
// así una revocación de permisos surte efecto sin esperar a que el token expire.
func RolMiddleware(resolver *roles.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("MISSING_TOKEN", "identidad no establecida"))
		}
		rol, err := resolver.ResolverRol(c.Context(), userID)
		if err != nil {
			return responderError(c, err)
		}
		c.Locals(LocalRol, rol)
		return c.Next()
	}
}

// RequireTipo corta la cadena si el rol resuelto no es del tipo indicado.
func RequireTipo(tipo entity.TipoRol) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol := GetRol(c)
		if rol == nil || rol.Tipo != tipo {
			return responderError(c, domain.ErrProhibido)
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetTipoRol devuelve el tipo de rol del contexto (después del middleware de auth).
func GetTipoRol(c *fiber.Ctx) string {
	v := c.Locals(LocalTipoRol)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetNivel devuelve el nivel del contexto (después del middleware de auth).
func GetNivel(c *fiber.Ctx) string {
	v := c.Locals(LocalNivel)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRol devuelve el rol resuelto del contexto (después de RolMiddleware).
func GetRol(c *fiber.Ctx) *entity.Rol {
	v := c.Locals(LocalRol)
	if v == nil {
		return nil
	}
	rol, _ := v.(*entity.Rol)
	return rol
}
