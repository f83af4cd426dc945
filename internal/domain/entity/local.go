package entity

import "time"

// Estados de concurrencia de un local, derivados de la capacidad actual.
const (
	EstadoVacio    = "vacio"    // < 20%
	EstadoMedio    = "medio"    // >= 20%
	EstadoCaliente = "caliente" // >= 50%
	EstadoFuego    = "fuego"    // >= 80%
)

// Local representa un bar/club gestionado desde el panel.
type Local struct {
	ID               string
	Nombre           string
	Tipo             string // bar, club, discoteca, etc.
	Direccion        string
	Latitud          float64
	Longitud         float64
	CapacidadActual  int    // 0–100 (%)
	Estado           string // derivado de CapacidadActual, ver CalcularEstado
	TiempoEspera     int    // minutos
	TieneMusicaEnVivo bool
	EsZonaSegura     bool

	// Campos de marketing editables por el propietario.
	Descripcion  string
	Telefono     string
	Instagram    string
	Facebook     string
	RangoPrecios string
	Fotos        []string

	CreadoPorID     string // sub-admin que creó el local
	PropietarioID   *string
	Activo          bool
	Verificado      bool
	BoostsUsadosMes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CalcularEstado deriva el estado del local según los umbrales 20/50/80.
func CalcularEstado(capacidad int) string {
	switch {
	case capacidad >= 80:
		return EstadoFuego
	case capacidad >= 50:
		return EstadoCaliente
	case capacidad >= 20:
		return EstadoMedio
	default:
		return EstadoVacio
	}
}
