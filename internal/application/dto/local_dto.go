package dto

import (
	"time"

	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
)

// CrearLocalRequest alta de un local por un super admin.
type CrearLocalRequest struct {
	Nombre    string  `json:"nombre"`
	Tipo      string  `json:"tipo"`
	Direccion string  `json:"direccion"`
	Latitud   float64 `json:"latitud"`
	Longitud  float64 `json:"longitud"`
	Telefono  string  `json:"telefono,omitempty"`
}

// ActualizarLocalRequest patch parcial: solo los campos presentes se aplican.
// La capacidad recalcula el estado en el servidor (umbrales 20/50/80).
type ActualizarLocalRequest struct {
	Nombre            *string  `json:"nombre,omitempty"`
	Tipo              *string  `json:"tipo,omitempty"`
	Direccion         *string  `json:"direccion,omitempty"`
	Latitud           *float64 `json:"latitud,omitempty"`
	Longitud          *float64 `json:"longitud,omitempty"`
	CapacidadActual   *int     `json:"capacidad_actual,omitempty"`
	TiempoEspera      *int     `json:"tiempo_espera,omitempty"`
	TieneMusicaEnVivo *bool    `json:"tiene_musica_en_vivo,omitempty"`
	EsZonaSegura      *bool    `json:"es_zona_segura,omitempty"`
	Descripcion       *string  `json:"descripcion,omitempty"`
	Telefono          *string  `json:"telefono,omitempty"`
	Instagram         *string  `json:"instagram,omitempty"`
	Facebook          *string  `json:"facebook,omitempty"`
	RangoPrecios      *string  `json:"rango_precios,omitempty"`
	Activo            *bool    `json:"activo,omitempty"`
	Verificado        *bool    `json:"verificado,omitempty"`
}

// LocalResponse proyección completa de un local.
type LocalResponse struct {
	ID                string    `json:"id"`
	Nombre            string    `json:"nombre"`
	Tipo              string    `json:"tipo"`
	Direccion         string    `json:"direccion"`
	Latitud           float64   `json:"latitud"`
	Longitud          float64   `json:"longitud"`
	CapacidadActual   int       `json:"capacidad_actual"`
	Estado            string    `json:"estado"`
	TiempoEspera      int       `json:"tiempo_espera"`
	TieneMusicaEnVivo bool      `json:"tiene_musica_en_vivo"`
	EsZonaSegura      bool      `json:"es_zona_segura"`
	Descripcion       string    `json:"descripcion,omitempty"`
	Telefono          string    `json:"telefono,omitempty"`
	Instagram         string    `json:"instagram,omitempty"`
	Facebook          string    `json:"facebook,omitempty"`
	RangoPrecios      string    `json:"rango_precios,omitempty"`
	Fotos             []string  `json:"fotos"`
	CreadoPorID       string    `json:"creado_por_id"`
	PropietarioID     *string   `json:"propietario_id,omitempty"`
	Activo            bool      `json:"activo"`
	Verificado        bool      `json:"verificado"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ToLocalResponse proyecta la entidad.
func ToLocalResponse(l *entity.Local) LocalResponse {
	fotos := l.Fotos
	if fotos == nil {
		fotos = []string{}
	}
	return LocalResponse{
		ID:                l.ID,
		Nombre:            l.Nombre,
		Tipo:              l.Tipo,
		Direccion:         l.Direccion,
		Latitud:           l.Latitud,
		Longitud:          l.Longitud,
		CapacidadActual:   l.CapacidadActual,
		Estado:            l.Estado,
		TiempoEspera:      l.TiempoEspera,
		TieneMusicaEnVivo: l.TieneMusicaEnVivo,
		EsZonaSegura:      l.EsZonaSegura,
		Descripcion:       l.Descripcion,
		Telefono:          l.Telefono,
		Instagram:         l.Instagram,
		Facebook:          l.Facebook,
		RangoPrecios:      l.RangoPrecios,
		Fotos:             fotos,
		CreadoPorID:       l.CreadoPorID,
		PropietarioID:     l.PropietarioID,
		Activo:            l.Activo,
		Verificado:        l.Verificado,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

// LocalMutacionResponse envoltorio de mutaciones sobre un local.
type LocalMutacionResponse struct {
	Success bool          `json:"success"`
	Local   LocalResponse `json:"local"`
}

// ListarLocalesResponse listado con alcance según el rol: el admin principal
// recibe todo en Locales; un pasante recibe además la partición mios/otros.
type ListarLocalesResponse struct {
	Success bool            `json:"success"`
	Locales []LocalResponse `json:"locales"`
	Mios    []LocalResponse `json:"mios,omitempty"`
	Otros   []LocalResponse `json:"otros,omitempty"`
}

// CrearLocalRapidoResponse alta de local + código de invitación en un paso.
type CrearLocalRapidoResponse struct {
	Success bool          `json:"success"`
	Local   LocalResponse `json:"local"`
	Codigo  string        `json:"codigo"`
}

// GenerarCodigoRequest solicitud de código para un local existente.
type GenerarCodigoRequest struct {
	LocalID string `json:"local_id"`
}

// GenerarCodigoResponse código emitido.
type GenerarCodigoResponse struct {
	Success bool   `json:"success"`
	Codigo  string `json:"codigo"`
	LocalID string `json:"local_id"`
}
