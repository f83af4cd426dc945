package dto

import (
	"time"

	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
)

// LoginRequest credenciales contra el servicio de auth externo.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token del panel más el rol resuelto.
type LoginResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	Rol     RolResponse `json:"rol"`
}

// SuperAdminResponse datos de la variante super_admin.
type SuperAdminResponse struct {
	UserID    string    `json:"user_id"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Nivel     string    `json:"nivel"`
	CreatedAt time.Time `json:"created_at"`
}

// PropietarioResponse datos de la variante propietario, con estado informativo del plan.
type PropietarioResponse struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	NombreCompleto  string     `json:"nombre_completo"`
	LocalAsignadoID *string    `json:"local_asignado_id"`
	Plan            string     `json:"plan,omitempty"`
	PlanVenceEn     *time.Time `json:"plan_vence_en,omitempty"`
	PlanVigente     bool       `json:"plan_vigente"`
	DiasRestantes   *int       `json:"dias_restantes,omitempty"`
}

// RolResponse unión etiquetada serializada: exactamente uno de SuperAdmin /
// Propietario es no-nil según Tipo.
type RolResponse struct {
	Tipo        string               `json:"tipo"`
	SuperAdmin  *SuperAdminResponse  `json:"super_admin,omitempty"`
	Propietario *PropietarioResponse `json:"propietario,omitempty"`
	Permisos    []string             `json:"permisos"`
}

// ToRolResponse serializa la unión de rol con switch exhaustivo sobre la variante.
func ToRolResponse(rol *entity.Rol) RolResponse {
	permisos := make([]string, 0, len(rol.Permisos))
	for _, p := range rol.Permisos {
		permisos = append(permisos, string(p))
	}
	out := RolResponse{Tipo: string(rol.Tipo), Permisos: permisos}

	switch rol.Tipo {
	case entity.TipoSuperAdmin:
		sa := rol.SuperAdmin
		out.SuperAdmin = &SuperAdminResponse{
			UserID:    sa.UserID,
			Nombre:    sa.Nombre,
			Email:     sa.Email,
			Nivel:     sa.Nivel,
			CreatedAt: sa.CreatedAt,
		}
	case entity.TipoPropietario:
		p := rol.Propietario
		ahora := time.Now()
		out.Propietario = &PropietarioResponse{
			ID:              p.ID,
			Email:           p.Email,
			NombreCompleto:  p.NombreCompleto,
			LocalAsignadoID: p.LocalAsignadoID,
			Plan:            string(p.Plan),
			PlanVenceEn:     p.PlanVenceEn,
			PlanVigente:     entity.PlanVigente(p.PlanVenceEn, ahora),
			DiasRestantes:   entity.DiasRestantes(p.PlanVenceEn, ahora),
		}
	}
	return out
}

// RolActualResponse respuesta de GET /api/auth/rol.
type RolActualResponse struct {
	Success bool        `json:"success"`
	Rol     RolResponse `json:"rol"`
}
