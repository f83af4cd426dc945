// Package permisos responde, de forma pura y síncrona, qué puede hacer un rol
// sobre un local. Se reevalúa antes de CADA mutación; nunca se cachea la decisión.
//
// Asimetría editar/eliminar: un pasante puede editar sus propios locales pero no
// eliminar ninguno, tenga o no la autoría. El nivel viene del registro persistido.
package permisos

import "github.com/nightly-app/nightly-admin-api/internal/domain/entity"

// PuedeCrearLocal solo los super admins (cualquier nivel) crean locales.
func PuedeCrearLocal(rol *entity.Rol) bool {
	if rol == nil {
		return false
	}
	return rol.Tipo == entity.TipoSuperAdmin
}

// PuedeEditarLocal el admin principal edita todos; un pasante solo los que creó.
func PuedeEditarLocal(rol *entity.Rol, local *entity.Local) bool {
	if rol == nil || local == nil || rol.Tipo != entity.TipoSuperAdmin {
		return false
	}
	if rol.EsAdminPrincipal() {
		return true
	}
	return local.CreadoPorID == rol.UserID()
}

// PuedeEliminarLocal solo el admin principal. Los pasantes no eliminan nunca,
// ni siquiera sus propios locales.
func PuedeEliminarLocal(rol *entity.Rol, _ *entity.Local) bool {
	if rol == nil {
		return false
	}
	return rol.EsAdminPrincipal()
}

// PuedeVerTodos solo el admin principal ve el listado sin filtro; el pasante ve
// los suyos por defecto y puede revelar el resto en solo-lectura.
func PuedeVerTodos(rol *entity.Rol) bool {
	if rol == nil {
		return false
	}
	return rol.EsAdminPrincipal()
}

// TienePermiso membresía en el set estático de permisos del rol.
func TienePermiso(rol *entity.Rol, p entity.Permiso) bool {
	if rol == nil {
		return false
	}
	return rol.Tiene(p)
}

// SepararPorCreador particiona los locales entre los creados por userID y el resto.
// Alimenta el alcance de vista de los pasantes y la revelación opcional.
func SepararPorCreador(locales []*entity.Local, userID string) (mios, otros []*entity.Local) {
	if userID == "" {
		return nil, locales
	}
	for _, l := range locales {
		if l.CreadoPorID == userID {
			mios = append(mios, l)
		} else {
			otros = append(otros, l)
		}
	}
	return mios, otros
}
