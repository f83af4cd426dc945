package ports

import "context"

// Boost notificación "llenar rápido" enviada a usuarios cercanos al local.
type Boost struct {
	LocalID       string
	Titulo        string
	Mensaje       string
	Promocion     string
	RadioKm       float64
	DuracionHoras int
}

// Notificador puerto hacia el fan-out de notificaciones push (colaborador externo).
type Notificador interface {
	EnviarBoost(ctx context.Context, boost Boost) error
}
