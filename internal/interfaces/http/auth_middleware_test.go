package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightly-app/nightly-admin-api/internal/application/roles"
	"github.com/nightly-app/nightly-admin-api/internal/domain/entity"
	apphttp "github.com/nightly-app/nightly-admin-api/internal/interfaces/http"
	pkgjwt "github.com/nightly-app/nightly-admin-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testAdminID   = "00000000-0000-0000-0000-000000000001"
	testDuenoID   = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "nightly-admin-test"
	testExpMin    = 60
)

// fakeAdmins y fakePerfiles alimentan el resolver de los tests sin DB.
type fakeAdmins struct{ admins map[string]*entity.SuperAdmin }

func (f *fakeAdmins) GetByUserID(_ context.Context, userID string) (*entity.SuperAdmin, error) {
	return f.admins[userID], nil
}

type fakePerfiles struct{ perfiles map[string]*entity.Propietario }

func (f *fakePerfiles) GetByID(_ context.Context, id string) (*entity.Propietario, error) {
	return f.perfiles[id], nil
}
func (f *fakePerfiles) Existe(_ context.Context, id string) (bool, error) {
	_, ok := f.perfiles[id]
	return ok, nil
}
func (f *fakePerfiles) AsignarLocal(_ context.Context, _, _, _ string) error { return nil }
func (f *fakePerfiles) ActualizarPlan(_ context.Context, _ string, _ entity.TipoPlan, _ time.Time) error {
	return nil
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RolMiddleware para resolver el rol contra los registros fake
//   - RequireTipo para autorizar por variante
func buildTestApp(tipo entity.TipoRol) *fiber.App {
	resolver := roles.NewResolver(
		&fakeAdmins{admins: map[string]*entity.SuperAdmin{
			testAdminID: {UserID: testAdminID, Nivel: entity.NivelAdmin},
		}},
		&fakePerfiles{perfiles: map[string]*entity.Propietario{
			testDuenoID: {ID: testDuenoID, Rol: "propietario"},
		}},
	)
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RolMiddleware(resolver),
		apphttp.RequireTipo(tipo),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"tipo": string(apphttp.GetRol(c).Tipo),
			})
		},
	)
	return app
}

// tokenFor genera un JWT del panel para la identidad indicada.
func tokenFor(t *testing.T, userID, tipoRol, nivel string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, tipoRol, nivel, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireTipo + RolMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: super admin registrado accede a ruta de super admins → HTTP 200.
func TestRequireTipo_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.TipoSuperAdmin)
	resp := doRequest(t, app, tokenFor(t, testAdminID, "super_admin", "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"super admin debe poder acceder a ruta de administración")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "super_admin", body["tipo"])
}

// Caso 2: propietario bloqueado en ruta de super admins → HTTP 403 FORBIDDEN.
func TestRequireTipo_PropietarioBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.TipoSuperAdmin)
	resp := doRequest(t, app, tokenFor(t, testDuenoID, "propietario", ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"propietario no debe poder acceder a rutas de administración")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// Caso 3: identidad con token válido pero sin registro en ninguna tabla → 403 SIN_ROL.
// Los claims del token no bastan: el rol se resuelve contra los registros.
func TestRolMiddleware_IdentidadSinRegistro_Retorna403(t *testing.T) {
	app := buildTestApp(entity.TipoSuperAdmin)
	resp := doRequest(t, app, tokenFor(t, "99999999-9999-9999-9999-999999999999", "super_admin", "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"una identidad revocada no entra aunque su token siga vigente")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "SIN_ROL")
}

// Caso 4: sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(entity.TipoSuperAdmin)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(entity.TipoSuperAdmin)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware: extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"tipo_rol": apphttp.GetTipoRol(c),
			"nivel":    apphttp.GetNivel(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, testAdminID, "super_admin", "pasante"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testAdminID, body["user_id"])
	assert.Equal(t, "super_admin", body["tipo_rol"])
	assert.Equal(t, "pasante", body["nivel"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg: integridad del generate/parse con tipo de rol y nivel
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testAdminID, "super_admin", "pasante", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, tipoRol, nivel, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testAdminID, userID)
	assert.Equal(t, "super_admin", tipoRol)
	assert.Equal(t, "pasante", nivel)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testAdminID, "super_admin", "admin", testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testAdminID, "super_admin", "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
