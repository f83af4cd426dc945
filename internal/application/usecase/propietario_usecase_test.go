package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightly-app/nightly-admin-api/internal/application/dto"
	"github.com/nightly-app/nightly-admin-api/internal/application/usecase"
	"github.com/nightly-app/nightly-admin-api/internal/domain"
	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
)

func armarPropietario(plan entity.TipoPlan, local *entity.Local) (*usecase.PropietarioUseCase, *memLocales, *memStorage, *memNotificador, *entity.Rol) {
	locales := nuevosLocales(local)
	storage := &memStorage{base: "https://cdn.nightly.test"}
	notificador := &memNotificador{}
	uc := usecase.NewPropietarioUseCase(locales, storage, notificador)
	rol := entity.NuevoRolPropietario(entity.Propietario{
		ID: "dueno-1", Rol: "propietario", LocalAsignadoID: &local.ID, Plan: plan,
	})
	return uc, locales, storage, notificador, rol
}

func TestMiLocal_SinAsignacion(t *testing.T) {
	uc := usecase.NewPropietarioUseCase(nuevosLocales(), &memStorage{}, &memNotificador{})

	_, err := uc.MiLocal(context.Background(), rolPropietario(nil))
	assert.ErrorIs(t, err, domain.ErrSinLocal)

	_, err = uc.MiLocal(context.Background(), rolAdmin())
	assert.ErrorIs(t, err, domain.ErrProhibido, "la vista de dueño no aplica a super admins")
}

func TestActualizarMiLocal_IgnoraFlagsAdministrativos(t *testing.T) {
	uc, locales, _, _, rol := armarPropietario(entity.PlanBasico, &entity.Local{
		ID: "L1", Nombre: "Bar Uno", Activo: true, Verificado: true,
	})

	desc := "ambiente tranquilo"
	inactivo := false
	local, err := uc.ActualizarMiLocal(context.Background(), rol, dto.ActualizarLocalRequest{
		Descripcion: &desc,
		Activo:      &inactivo,
	})
	require.NoError(t, err)
	assert.Equal(t, "ambiente tranquilo", local.Descripcion)
	assert.True(t, local.Activo, "un dueño no puede desactivar su propio local")

	persistido, _ := locales.GetByID(context.Background(), "L1")
	assert.True(t, persistido.Activo)
}

func TestPresignFoto_CuotaPorPlan(t *testing.T) {
	casos := []struct {
		plan   entity.TipoPlan
		fotos  int
		quiere error
	}{
		{entity.PlanBasico, 0, domain.ErrLimiteFotos},
		{entity.PlanProfesional, 4, nil},
		{entity.PlanProfesional, 5, domain.ErrLimiteFotos},
		{entity.PlanPremium, 14, nil},
		{entity.PlanPremium, 15, domain.ErrLimiteFotos},
	}
	for _, c := range casos {
		local := &entity.Local{ID: "L1", Nombre: "Bar Uno", Fotos: make([]string, c.fotos)}
		uc, _, _, _, rol := armarPropietario(c.plan, local)

		res, err := uc.PresignFoto(context.Background(), rol, "jpg")
		if c.quiere != nil {
			assert.ErrorIs(t, err, c.quiere, "plan %s con %d fotos", c.plan, c.fotos)
			continue
		}
		require.NoError(t, err, "plan %s con %d fotos", c.plan, c.fotos)
		assert.Contains(t, res.SignedURL, "locales/bar-uno-L1/")
		assert.Equal(t, c.fotos, res.FotosActuales)
	}
}

func TestPresignFoto_ExtensionInvalida(t *testing.T) {
	uc, _, _, _, rol := armarPropietario(entity.PlanPremium, &entity.Local{ID: "L1", Nombre: "Bar"})

	for _, ext := range []string{"gif", "svg", "exe", ""} {
		_, err := uc.PresignFoto(context.Background(), rol, ext)
		assert.ErrorIs(t, err, domain.ErrEntradaInvalida, "extensión %q", ext)
	}

	// Las variantes con punto y mayúsculas se normalizan.
	_, err := uc.PresignFoto(context.Background(), rol, ".JPEG")
	assert.NoError(t, err)
}

func TestConfirmarFoto_PropiedadDelPath(t *testing.T) {
	uc, locales, _, _, rol := armarPropietario(entity.PlanProfesional, &entity.Local{ID: "L1", Nombre: "Bar Uno"})

	// Path de otra carpeta: rechazado aunque el rol sea válido.
	_, err := uc.ConfirmarFoto(context.Background(), rol, "locales/otro-bar-L9/x.jpg")
	assert.ErrorIs(t, err, domain.ErrProhibido)

	res, err := uc.ConfirmarFoto(context.Background(), rol, "locales/bar-uno-L1/abc.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.nightly.test/public/locales/bar-uno-L1/abc.jpg", res.URL)

	persistido, _ := locales.GetByID(context.Background(), "L1")
	require.Len(t, persistido.Fotos, 1)

	// Confirmar dos veces el mismo path no duplica la foto.
	_, err = uc.ConfirmarFoto(context.Background(), rol, "locales/bar-uno-L1/abc.jpg")
	assert.ErrorIs(t, err, domain.ErrConflicto)
}

func TestEliminarFoto_QuitaDeListaYBucket(t *testing.T) {
	url := "https://cdn.nightly.test/public/locales/bar-uno-L1/abc.jpg"
	uc, locales, storage, _, rol := armarPropietario(entity.PlanProfesional, &entity.Local{
		ID: "L1", Nombre: "Bar Uno", Fotos: []string{url},
	})

	res, err := uc.EliminarFoto(context.Background(), rol, url)
	require.NoError(t, err)
	assert.Empty(t, res.Fotos)
	assert.Equal(t, []string{"locales/bar-uno-L1/abc.jpg"}, storage.eliminados)

	persistido, _ := locales.GetByID(context.Background(), "L1")
	assert.Empty(t, persistido.Fotos)

	_, err = uc.EliminarFoto(context.Background(), rol, url)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBoost_CuotaMensualPremium(t *testing.T) {
	uc, locales, _, notificador, rol := armarPropietario(entity.PlanPremium, &entity.Local{
		ID: "L1", Nombre: "Bar Uno", BoostsUsadosMes: 3,
	})

	res, err := uc.Boost(context.Background(), rol, dto.BoostRequest{Promocion: "2x1 en tragos"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.BoostsRestantes)
	require.Len(t, notificador.boosts, 1)
	assert.Equal(t, "2x1 en tragos", notificador.boosts[0].Promocion)
	assert.Equal(t, 2, notificador.boosts[0].DuracionHoras)
	assert.InDelta(t, 2.0, notificador.boosts[0].RadioKm, 0.001)

	persistido, _ := locales.GetByID(context.Background(), "L1")
	assert.Equal(t, 4, persistido.BoostsUsadosMes)

	// Cuota agotada: ni se notifica ni se incrementa el contador.
	_, err = uc.Boost(context.Background(), rol, dto.BoostRequest{Promocion: "otra"})
	assert.ErrorIs(t, err, domain.ErrSinBoosts)
	assert.Len(t, notificador.boosts, 1)
}

func TestBoost_PlanesSinCuota(t *testing.T) {
	for _, plan := range []entity.TipoPlan{entity.PlanBasico, entity.PlanProfesional} {
		uc, _, _, notificador, rol := armarPropietario(plan, &entity.Local{ID: "L1", Nombre: "Bar"})
		_, err := uc.Boost(context.Background(), rol, dto.BoostRequest{Promocion: "promo"})
		assert.ErrorIs(t, err, domain.ErrSinBoosts, "plan %s", plan)
		assert.Empty(t, notificador.boosts)
	}
}

func TestBoost_FalloDeEnvioNoConsumeCuota(t *testing.T) {
	uc, locales, _, notificador, rol := armarPropietario(entity.PlanPremium, &entity.Local{ID: "L1", Nombre: "Bar"})
	notificador.err = assert.AnError

	_, err := uc.Boost(context.Background(), rol, dto.BoostRequest{Promocion: "promo"})
	require.Error(t, err)

	persistido, _ := locales.GetByID(context.Background(), "L1")
	assert.Equal(t, 0, persistido.BoostsUsadosMes)
}

func TestSlugEnCarpetaDeFotos(t *testing.T) {
	uc, _, _, _, rol := armarPropietario(entity.PlanPremium, &entity.Local{
		ID: "L1", Nombre: "Café Señorial 2000",
	})

	res, err := uc.PresignFoto(context.Background(), rol, "png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Path, "locales/cafe-senorial-2000-L1/"), "path: %s", res.Path)
}
