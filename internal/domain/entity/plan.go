package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// TipoPlan tier de suscripción de un propietario.
type TipoPlan string

const (
	PlanBasico      TipoPlan = "basico"
	PlanProfesional TipoPlan = "profesional"
	PlanPremium     TipoPlan = "premium"
)

// Plan entrada del catálogo estático de planes.
type Plan struct {
	ID           TipoPlan
	Nombre       string
	Precio       decimal.Decimal // Bs. por mes
	Descripcion  string
	Features     []string
	NoIncluidas  []string
	LimiteFotos  int // fotos permitidas en el local
	LimiteBoosts int // boosts "llenar rápido" por mes
}

// Planes catálogo estático. Precios y cuotas son configuración, no comportamiento.
var Planes = map[TipoPlan]Plan{
	PlanBasico: {
		ID:          PlanBasico,
		Nombre:      "Básico",
		Precio:      decimal.NewFromInt(20),
		Descripcion: "Presencia esencial en el mapa",
		Features: []string{
			"Aparecer en el mapa",
			"Actualizar capacidad en tiempo real",
			"Una promoción activa",
		},
		NoIncluidas: []string{
			"Posición destacada",
			"Fotos del local",
			"Estadísticas semanales",
			"Boost al #1",
		},
		LimiteFotos:  0,
		LimiteBoosts: 0,
	},
	PlanProfesional: {
		ID:          PlanProfesional,
		Nombre:      "Profesional",
		Precio:      decimal.NewFromInt(120),
		Descripcion: "Más visibilidad, más clientes",
		Features: []string{
			"Todo lo del plan Básico",
			"Badge Destacado visible",
			"Hasta 3 promociones activas",
			"Hasta 5 fotos del local",
			"Estadísticas semanales básicas",
		},
		NoIncluidas: []string{
			"Posición Top fija",
			"Boost al #1",
			"WhatsApp directo",
		},
		LimiteFotos:  5,
		LimiteBoosts: 0,
	},
	PlanPremium: {
		ID:          PlanPremium,
		Nombre:      "Premium",
		Precio:      decimal.NewFromInt(280),
		Descripcion: "Máxima visibilidad en tu ciudad",
		Features: []string{
			"Todo lo del plan Profesional",
			"Badge Premium visible",
			"Top fijo en tu ciudad",
			"Promociones ilimitadas",
			"Hasta 15 fotos del local",
			"Estadísticas completas",
			"Boost al #1 (4 veces/mes, 2 horas)",
			"Botón WhatsApp directo",
		},
		LimiteFotos:  15,
		LimiteBoosts: 4,
	},
}

// PlanValido indica si el identificador corresponde a un plan del catálogo.
func PlanValido(p TipoPlan) bool {
	_, ok := Planes[p]
	return ok
}

// VencimientoDesde calcula la fecha de vencimiento sumando meses calendario.
func VencimientoDesde(desde time.Time, meses int) time.Time {
	return desde.AddDate(0, meses, 0)
}

// PlanVigente indica si el plan sigue activo. Sin fecha = vigente indefinido.
// El vencimiento es informativo: nada revoca capacidades automáticamente.
func PlanVigente(venceEn *time.Time, ahora time.Time) bool {
	if venceEn == nil {
		return true
	}
	return venceEn.After(ahora)
}

// DiasRestantes días hasta el vencimiento (ceil, nunca negativo).
// Devuelve nil cuando no hay fecha de vencimiento.
func DiasRestantes(venceEn *time.Time, ahora time.Time) *int {
	if venceEn == nil {
		return nil
	}
	diff := venceEn.Sub(ahora).Hours() / 24
	dias := int(math.Ceil(diff))
	if dias < 0 {
		dias = 0
	}
	return &dias
}
