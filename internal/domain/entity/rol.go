package entity

import "time"

// TipoRol discrimina las dos variantes de rol del panel.
type TipoRol string

const (
	TipoSuperAdmin  TipoRol = "super_admin"
	TipoPropietario TipoRol = "propietario"
)

// Niveles de super admin. El nivel viene SIEMPRE del registro persistido,
// nunca de un email hardcodeado ni del estado del cliente.
const (
	NivelAdmin   = "admin"   // admin principal con todos los permisos
	NivelPasante = "pasante" // acceso limitado a sus propios locales
)

// Permiso capacidad estática asociada a un tipo de rol.
type Permiso string

const (
	PermCrearLocal       Permiso = "create_local"
	PermLeerTodosLocales Permiso = "read_all_locales"
	PermEditarTodos      Permiso = "update_all_locales"
	PermEliminarLocal    Permiso = "delete_local"
	PermGestionUsuarios  Permiso = "manage_users"
	PermGenerarCodigos   Permiso = "generate_codes"
	PermLeerMiLocal      Permiso = "read_own_local"
	PermEditarMiLocal    Permiso = "update_own_local"
)

// PermisosPorTipo conjunto estático de permisos por tipo de rol.
// El refinamiento por nivel (admin vs pasante) NO se codifica aquí:
// se evalúa por local en el paquete permisos.
var PermisosPorTipo = map[TipoRol][]Permiso{
	TipoSuperAdmin: {
		PermCrearLocal,
		PermLeerTodosLocales,
		PermEditarTodos,
		PermEliminarLocal,
		PermGestionUsuarios,
		PermGenerarCodigos,
	},
	TipoPropietario: {
		PermLeerMiLocal,
		PermEditarMiLocal,
	},
}

// SuperAdmin registro de la tabla super_admins.
type SuperAdmin struct {
	UserID    string
	Nombre    string
	Email     string
	Nivel     string // admin | pasante; vacío en registros previos a la migración
	CreatedAt time.Time
}

// Propietario registro de la tabla perfiles con rol "propietario".
// LocalAsignadoID puede ser nil: el rol resuelve igual y el consumidor
// debe tratar "sin local asignado" como estado propio, no como fallo.
type Propietario struct {
	ID              string
	Email           string
	NombreCompleto  string
	Rol             string // siempre "propietario" cuando resuelve
	LocalAsignadoID *string
	Plan            TipoPlan
	PlanVenceEn     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Rol unión etiquetada sobre las dos variantes. Exactamente un puntero de datos
// es no-nil según Tipo; los sitios de consumo hacen switch exhaustivo sobre Tipo.
type Rol struct {
	Tipo        TipoRol
	SuperAdmin  *SuperAdmin
	Propietario *Propietario
	Permisos    []Permiso
}

// NuevoRolSuperAdmin construye la variante super_admin con su set estático de permisos.
func NuevoRolSuperAdmin(sa SuperAdmin) *Rol {
	return &Rol{Tipo: TipoSuperAdmin, SuperAdmin: &sa, Permisos: PermisosPorTipo[TipoSuperAdmin]}
}

// NuevoRolPropietario construye la variante propietario con su set estático de permisos.
func NuevoRolPropietario(p Propietario) *Rol {
	return &Rol{Tipo: TipoPropietario, Propietario: &p, Permisos: PermisosPorTipo[TipoPropietario]}
}

// UserID devuelve el id de identidad según la variante.
func (r *Rol) UserID() string {
	switch r.Tipo {
	case TipoSuperAdmin:
		return r.SuperAdmin.UserID
	case TipoPropietario:
		return r.Propietario.ID
	}
	return ""
}

// Tiene indica si el permiso estático pertenece al rol.
func (r *Rol) Tiene(p Permiso) bool {
	for _, perm := range r.Permisos {
		if perm == p {
			return true
		}
	}
	return false
}

// EsAdminPrincipal indica super_admin con nivel "admin".
func (r *Rol) EsAdminPrincipal() bool {
	return r.Tipo == TipoSuperAdmin && r.SuperAdmin.Nivel == NivelAdmin
}

// EsPasante indica super_admin con nivel distinto de "admin".
func (r *Rol) EsPasante() bool {
	return r.Tipo == TipoSuperAdmin && r.SuperAdmin.Nivel != NivelAdmin
}
