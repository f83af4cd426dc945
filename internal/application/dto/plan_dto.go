package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AsignarPlanRequest asignación de plan a un propietario por N meses.
type AsignarPlanRequest struct {
	Plan  string `json:"plan"`
	Meses int    `json:"meses"`
}

// AsignarPlanResponse plan asignado con su vencimiento calculado.
type AsignarPlanResponse struct {
	Success       bool            `json:"success"`
	Plan          string          `json:"plan"`
	PlanVenceEn   time.Time       `json:"plan_vence_en"`
	DiasRestantes int             `json:"dias_restantes"`
	PrecioTotal   decimal.Decimal `json:"precio_total"`
}
