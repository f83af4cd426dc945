package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vencimiento de planes
// ──────────────────────────────────────────────────────────────────────────────

// Asignar N meses debe producir un vencimiento exactamente N meses calendario después,
// y los días restantes inmediatamente después deben rondar N*30, nunca negativos.
func TestVencimientoDesde_MesesCalendario(t *testing.T) {
	desde := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	casos := []struct {
		meses  int
		espera time.Time
	}{
		{1, time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC)},
		{3, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)},
		{6, time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)},
		{12, time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)},
	}
	for _, c := range casos {
		assert.Equal(t, c.espera, entity.VencimientoDesde(desde, c.meses),
			"vencimiento a %d meses", c.meses)
	}
}

func TestDiasRestantes_AproximaTreintaPorMes(t *testing.T) {
	ahora := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	for _, meses := range []int{1, 3, 6, 12} {
		vence := entity.VencimientoDesde(ahora, meses)
		dias := entity.DiasRestantes(&vence, ahora)
		require.NotNil(t, dias)
		// Variación por longitud de mes: ±3 días por mes acumulado como máximo.
		assert.InDelta(t, meses*30, *dias, float64(meses)*3,
			"días restantes para %d meses", meses)
		assert.GreaterOrEqual(t, *dias, 0)
	}
}

func TestDiasRestantes_NuncaNegativo(t *testing.T) {
	ahora := time.Now()
	vencido := ahora.AddDate(0, -2, 0)
	dias := entity.DiasRestantes(&vencido, ahora)
	require.NotNil(t, dias)
	assert.Equal(t, 0, *dias, "plan vencido debe reportar 0 días, no negativo")
}

func TestDiasRestantes_SinFecha_RetornaNil(t *testing.T) {
	assert.Nil(t, entity.DiasRestantes(nil, time.Now()))
}

func TestPlanVigente(t *testing.T) {
	ahora := time.Now()
	futuro := ahora.Add(24 * time.Hour)
	pasado := ahora.Add(-24 * time.Hour)

	assert.True(t, entity.PlanVigente(nil, ahora), "sin fecha = vigente indefinido")
	assert.True(t, entity.PlanVigente(&futuro, ahora))
	assert.False(t, entity.PlanVigente(&pasado, ahora))
}

func TestPlanes_CatalogoCompleto(t *testing.T) {
	require.Len(t, entity.Planes, 3)
	assert.True(t, entity.PlanValido(entity.PlanBasico))
	assert.True(t, entity.PlanValido(entity.PlanProfesional))
	assert.True(t, entity.PlanValido(entity.PlanPremium))
	assert.False(t, entity.PlanValido("vip"))

	// Cuotas de fotos y boosts por plan.
	assert.Equal(t, 0, entity.Planes[entity.PlanBasico].LimiteFotos)
	assert.Equal(t, 5, entity.Planes[entity.PlanProfesional].LimiteFotos)
	assert.Equal(t, 15, entity.Planes[entity.PlanPremium].LimiteFotos)
	assert.Equal(t, 4, entity.Planes[entity.PlanPremium].LimiteBoosts)
}
