package onboarding_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightly-app/nightly-admin-api/internal/application/dto"
	"github.com/nightly-app/nightly-admin-api/internal/application/onboarding"
	"github.com/nightly-app/nightly-admin-api/internal/application/ports"
	"github.com/nightly-app/nightly-admin-api/internal/domain"
	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
	"github.com/nightly-app/nightly-admin-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeCodigos struct {
	codigos     map[string]*entity.CodigoInvitacion
	errConsulta error
	errMarcar   error
	marcados    []string
}

func (f *fakeCodigos) Create(_ context.Context, c *entity.CodigoInvitacion) error {
	f.codigos[c.Codigo] = c
	return nil
}

func (f *fakeCodigos) GetVigente(_ context.Context, codigo string) (*entity.CodigoInvitacion, error) {
	if f.errConsulta != nil {
		return nil, f.errConsulta
	}
	c, ok := f.codigos[codigo]
	if !ok || c.Usado {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCodigos) MarcarUsado(_ context.Context, codigo, usadoPor string, fechaUso time.Time) error {
	if f.errMarcar != nil {
		return f.errMarcar
	}
	c, ok := f.codigos[codigo]
	if !ok {
		return domain.ErrNotFound
	}
	c.Usado = true
	c.UsadoPor = &usadoPor
	c.FechaUso = &fechaUso
	f.marcados = append(f.marcados, codigo)
	return nil
}

type fakePerfiles struct {
	perfiles map[string]*entity.Propietario
	// apareceEnIntento: el perfil "se materializa" recién en el intento N (1-based).
	apareceEnIntento int
	consultas        int
	errAsignar       error
	asignados        map[string]string // userID -> localID
}

func (f *fakePerfiles) GetByID(_ context.Context, id string) (*entity.Propietario, error) {
	return f.perfiles[id], nil
}

func (f *fakePerfiles) Existe(_ context.Context, id string) (bool, error) {
	f.consultas++
	if f.apareceEnIntento > 0 && f.consultas >= f.apareceEnIntento {
		return true, nil
	}
	_, ok := f.perfiles[id]
	return ok, nil
}

func (f *fakePerfiles) AsignarLocal(_ context.Context, id, localID, nombre string) error {
	if f.errAsignar != nil {
		return f.errAsignar
	}
	if f.asignados == nil {
		f.asignados = map[string]string{}
	}
	f.asignados[id] = localID
	return nil
}

func (f *fakePerfiles) ActualizarPlan(_ context.Context, _ string, _ entity.TipoPlan, _ time.Time) error {
	return nil
}

type fakeLocales struct {
	locales      map[string]*entity.Local
	propietarios map[string]string // localID -> propietarioID
}

func (f *fakeLocales) Create(_ context.Context, l *entity.Local) error {
	f.locales[l.ID] = l
	return nil
}
func (f *fakeLocales) GetByID(_ context.Context, id string) (*entity.Local, error) {
	return f.locales[id], nil
}
func (f *fakeLocales) GetByPropietario(_ context.Context, _ string) (*entity.Local, error) {
	return nil, nil
}
func (f *fakeLocales) List(_ context.Context) ([]*entity.Local, error) { return nil, nil }
func (f *fakeLocales) Update(_ context.Context, l *entity.Local) error {
	f.locales[l.ID] = l
	return nil
}
func (f *fakeLocales) Delete(_ context.Context, id string) error {
	delete(f.locales, id)
	return nil
}
func (f *fakeLocales) AsignarPropietario(_ context.Context, localID, propietarioID string) error {
	if f.propietarios == nil {
		f.propietarios = map[string]string{}
	}
	f.propietarios[localID] = propietarioID
	return nil
}

type fakeAuth struct {
	signUpErr    error
	signInErr    error
	userID       string
	signUps      int
	signOuts     []string // tokens cerrados
	ultimaSesion *ports.Sesion
}

func (f *fakeAuth) SignUp(_ context.Context, email, _ string, _ map[string]string) (*ports.Sesion, error) {
	f.signUps++
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	f.ultimaSesion = &ports.Sesion{
		AccessToken: "tok-signup",
		Usuario:     ports.Usuario{ID: f.userID, Email: email},
	}
	return f.ultimaSesion, nil
}

func (f *fakeAuth) SignInWithPassword(_ context.Context, email, _ string) (*ports.Sesion, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &ports.Sesion{AccessToken: "tok-login", Usuario: ports.Usuario{ID: f.userID, Email: email}}, nil
}

func (f *fakeAuth) SignOut(_ context.Context, token string) error {
	f.signOuts = append(f.signOuts, token)
	return nil
}

func (f *fakeAuth) GetUser(_ context.Context, _ string) (*ports.Usuario, error) {
	return &ports.Usuario{ID: f.userID}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

type armado struct {
	uc       *onboarding.UseCase
	codigos  *fakeCodigos
	perfiles *fakePerfiles
	locales  *fakeLocales
	auth     *fakeAuth
	esperas  *[]time.Duration
}

func armar(t *testing.T) *armado {
	t.Helper()
	codigos := &fakeCodigos{codigos: map[string]*entity.CodigoInvitacion{
		"ABC123": {ID: "c1", Codigo: "ABC123", LocalID: "V1"},
	}}
	perfiles := &fakePerfiles{perfiles: map[string]*entity.Propietario{}, apareceEnIntento: 1}
	locales := &fakeLocales{locales: map[string]*entity.Local{
		"V1": {ID: "V1", Nombre: "Bar Uno", CreadoPorID: "admin-1"},
	}}
	auth := &fakeAuth{userID: "nuevo-1"}

	uc := onboarding.NewUseCase(codigos, perfiles, locales, auth, logger.Nop())

	esperas := &[]time.Duration{}
	uc.Esperar = func(_ context.Context, d time.Duration) error {
		*esperas = append(*esperas, d)
		return nil
	}
	uc.Ahora = func() time.Time { return time.Date(2025, 6, 1, 22, 0, 0, 0, time.UTC) }

	return &armado{uc: uc, codigos: codigos, perfiles: perfiles, locales: locales, auth: auth, esperas: esperas}
}

func solicitud() dto.RegistroRequest {
	return dto.RegistroRequest{
		Codigo:         "abc123", // minúsculas a propósito: debe normalizarse
		NombreCompleto: "Juan Pérez",
		Email:          "juan@bar.bo",
		Password:       "secreta123",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios
// ──────────────────────────────────────────────────────────────────────────────

// ABC123 vinculado a V1, sin usar → el registro completa: perfil vinculado,
// creado_por intacto, propietario asignado, código consumido, sesión iniciada.
func TestRegistrar_FlujoCompleto(t *testing.T) {
	a := armar(t)

	res, err := a.uc.Registrar(context.Background(), solicitud())
	require.NoError(t, err)

	assert.Equal(t, onboarding.EstadoExito, res.Estado)
	assert.Equal(t, "nuevo-1", res.UserID)
	assert.Equal(t, "V1", res.LocalID)
	assert.False(t, res.LoginManualRequerido)
	require.NotNil(t, res.Sesion)

	assert.Equal(t, "V1", a.perfiles.asignados["nuevo-1"], "perfil vinculado al local del código")
	assert.Equal(t, "nuevo-1", a.locales.propietarios["V1"], "local vinculado al propietario nuevo")
	assert.Equal(t, "admin-1", a.locales.locales["V1"].CreadoPorID, "creado_por no debe tocarse")

	cod := a.codigos.codigos["ABC123"]
	assert.True(t, cod.Usado)
	require.NotNil(t, cod.UsadoPor)
	assert.Equal(t, "nuevo-1", *cod.UsadoPor)
	assert.NotNil(t, cod.FechaUso)
}

// Un código consumido jamás da de alta a un segundo propietario, y el rechazo
// ocurre ANTES de crear identidad alguna.
func TestRegistrar_CodigoUsado_RechazaSinCrearIdentidad(t *testing.T) {
	a := armar(t)
	a.codigos.codigos["ABC123"].Usado = true

	_, err := a.uc.Registrar(context.Background(), solicitud())
	assert.ErrorIs(t, err, domain.ErrCodigoInvalido)
	assert.Zero(t, a.auth.signUps, "no debe crearse ninguna identidad")
}

func TestRegistrar_CodigoInexistente(t *testing.T) {
	a := armar(t)
	in := solicitud()
	in.Codigo = "ZZZ999"

	_, err := a.uc.Registrar(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrCodigoInvalido)
}

func TestRegistrar_CodigoSinLocal_Huerfano(t *testing.T) {
	a := armar(t)
	a.codigos.codigos["ABC123"].LocalID = ""

	_, err := a.uc.Registrar(context.Background(), solicitud())
	assert.ErrorIs(t, err, domain.ErrCodigoHuerfano)
	assert.Zero(t, a.auth.signUps)
}

// El mensaje upstream del servicio de auth (p.ej. email duplicado) se conserva.
func TestRegistrar_SignUpFalla_ConservaMensaje(t *testing.T) {
	a := armar(t)
	a.auth.signUpErr = errors.New("user already registered")

	_, err := a.uc.Registrar(context.Background(), solicitud())
	assert.ErrorIs(t, err, domain.ErrRegistro)
	assert.Contains(t, err.Error(), "user already registered")

	// El código sigue vigente: reintentar con otro email es seguro.
	cod, _ := a.codigos.GetVigente(context.Background(), "ABC123")
	assert.NotNil(t, cod)
}

// El poll emite a lo sumo 5 consultas con esperas no decrecientes
// 0/200/400/800/1600 ms; al agotarse, la identidad nueva queda deslogueada.
func TestRegistrar_PerfilNuncaAparece_TimeoutYSignOut(t *testing.T) {
	a := armar(t)
	a.perfiles.apareceEnIntento = 0 // nunca

	_, err := a.uc.Registrar(context.Background(), solicitud())
	assert.ErrorIs(t, err, domain.ErrPerfilTimeout)

	assert.Equal(t, onboarding.MaxIntentosPerfil, a.perfiles.consultas)
	assert.Equal(t, []time.Duration{
		0,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		1600 * time.Millisecond,
	}, *a.esperas)

	// Acción compensatoria: la sesión del signUp se cierra.
	assert.Equal(t, []string{"tok-signup"}, a.auth.signOuts)
	// Y el código no se consumió.
	assert.False(t, a.codigos.codigos["ABC123"].Usado)
}

// El perfil aparece en el tercer intento: el flujo continúa sin agotar el presupuesto.
func TestRegistrar_PerfilApareceTarde(t *testing.T) {
	a := armar(t)
	a.perfiles.apareceEnIntento = 3

	res, err := a.uc.Registrar(context.Background(), solicitud())
	require.NoError(t, err)
	assert.Equal(t, onboarding.EstadoExito, res.Estado)
	assert.Equal(t, 3, a.perfiles.consultas)
	assert.Empty(t, a.auth.signOuts)
}

// Fallo al vincular: NO se revierte la identidad (asimetría documentada).
func TestRegistrar_VinculacionFalla_SinRollback(t *testing.T) {
	a := armar(t)
	a.perfiles.errAsignar = errors.New("update rechazado")

	_, err := a.uc.Registrar(context.Background(), solicitud())
	assert.ErrorIs(t, err, domain.ErrVinculacion)
	assert.Empty(t, a.auth.signOuts, "la identidad creada no se revierte en este paso")
	assert.False(t, a.codigos.codigos["ABC123"].Usado)
}

// Fallo al consumir el código: se tolera (solo log) y el flujo termina en éxito.
func TestRegistrar_ConsumoFalla_NoFatal(t *testing.T) {
	a := armar(t)
	a.codigos.errMarcar = errors.New("timeout")

	res, err := a.uc.Registrar(context.Background(), solicitud())
	require.NoError(t, err)
	assert.Equal(t, onboarding.EstadoExito, res.Estado)
	assert.False(t, a.codigos.codigos["ABC123"].Usado, "inconsistencia aceptada: código queda reutilizable")
}

// Login automático falla: el flujo reporta éxito con login manual requerido.
func TestRegistrar_LoginAutomaticoFalla_ManualRequerido(t *testing.T) {
	a := armar(t)
	a.auth.signInErr = errors.New("invalid grant")

	res, err := a.uc.Registrar(context.Background(), solicitud())
	require.NoError(t, err)
	assert.Equal(t, onboarding.EstadoExito, res.Estado)
	assert.True(t, res.LoginManualRequerido)
	assert.Nil(t, res.Sesion)
}
