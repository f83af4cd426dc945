package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OperationError error devuelto por el backend para una operación. Mensaje del
// servidor si lo hubo; si no, "HTTP <status>". Nunca se reintenta.
type OperationError struct {
	Status  int
	Code    string
	Mensaje string
}

func (e *OperationError) Error() string {
	if e.Mensaje != "" {
		return e.Mensaje
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// Client cliente tipado del backend del panel. Cada llamada adjunta el bearer
// token del SessionStore o falla con ErrSinSesion sin emitir el request.
type Client struct {
	baseURL    string
	sesiones   *SessionStore
	httpClient *http.Client
}

// NewClient construye el cliente contra la URL base del backend.
func NewClient(baseURL string, sesiones *SessionStore) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		sesiones: sesiones,
		httpClient: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

// ── Tipos del protocolo ───────────────────────────────────────────────────────

// Local proyección de un local tal como la devuelve el backend.
type Local struct {
	ID              string   `json:"id"`
	Nombre          string   `json:"nombre"`
	Tipo            string   `json:"tipo"`
	Direccion       string   `json:"direccion"`
	Latitud         float64  `json:"latitud"`
	Longitud        float64  `json:"longitud"`
	CapacidadActual int      `json:"capacidad_actual"`
	Estado          string   `json:"estado"`
	Fotos           []string `json:"fotos"`
	Activo          bool     `json:"activo"`
	Verificado      bool     `json:"verificado"`
}

// CrearLocalInput alta de local.
type CrearLocalInput struct {
	Nombre    string  `json:"nombre"`
	Tipo      string  `json:"tipo"`
	Direccion string  `json:"direccion"`
	Latitud   float64 `json:"latitud"`
	Longitud  float64 `json:"longitud"`
	Telefono  string  `json:"telefono,omitempty"`
}

// PatchLocal patch parcial; solo los campos no-nil viajan.
type PatchLocal struct {
	Nombre          *string  `json:"nombre,omitempty"`
	Direccion       *string  `json:"direccion,omitempty"`
	CapacidadActual *int     `json:"capacidad_actual,omitempty"`
	TiempoEspera    *int     `json:"tiempo_espera,omitempty"`
	Descripcion     *string  `json:"descripcion,omitempty"`
	Telefono        *string  `json:"telefono,omitempty"`
	Instagram       *string  `json:"instagram,omitempty"`
	Facebook        *string  `json:"facebook,omitempty"`
	RangoPrecios    *string  `json:"rango_precios,omitempty"`
	Activo          *bool    `json:"activo,omitempty"`
	Verificado      *bool    `json:"verificado,omitempty"`
	Latitud         *float64 `json:"latitud,omitempty"`
	Longitud        *float64 `json:"longitud,omitempty"`
}

// AsignarPlanInput asignación de plan por N meses.
type AsignarPlanInput struct {
	Plan  string `json:"plan"`
	Meses int    `json:"meses"`
}

// PlanAsignado respuesta de la asignación de plan.
type PlanAsignado struct {
	Success       bool   `json:"success"`
	Plan          string `json:"plan"`
	PlanVenceEn   string `json:"plan_vence_en"`
	DiasRestantes int    `json:"dias_restantes"`
	PrecioTotal   string `json:"precio_total"`
}

// DestinoFoto destino de subida pre-firmado.
type DestinoFoto struct {
	Success       bool   `json:"success"`
	SignedURL     string `json:"signedUrl"`
	Path          string `json:"path"`
	PublicURL     string `json:"publicUrl"`
	FotosActuales int    `json:"fotosActuales"`
	Limite        int    `json:"limite"`
}

// FotoConfirmada respuesta de confirmación de subida.
type FotoConfirmada struct {
	Success bool     `json:"success"`
	URL     string   `json:"url"`
	Fotos   []string `json:"fotos"`
}

type localEnvelope struct {
	Success bool  `json:"success"`
	Local   Local `json:"local"`
}

// ── Operaciones ───────────────────────────────────────────────────────────────

// CrearLocal da de alta un local.
func (c *Client) CrearLocal(ctx context.Context, in CrearLocalInput) (*Local, error) {
	var out localEnvelope
	if err := c.llamar(ctx, http.MethodPost, "/api/admin/locales", in, &out); err != nil {
		return nil, err
	}
	return &out.Local, nil
}

// ActualizarLocal aplica un patch parcial a un local (vista de super admin).
func (c *Client) ActualizarLocal(ctx context.Context, id string, patch PatchLocal) (*Local, error) {
	var out localEnvelope
	if err := c.llamar(ctx, http.MethodPatch, "/api/admin/locales/"+id, patch, &out); err != nil {
		return nil, err
	}
	return &out.Local, nil
}

// EliminarLocal borra un local.
func (c *Client) EliminarLocal(ctx context.Context, id string) error {
	return c.llamar(ctx, http.MethodDelete, "/api/admin/locales/"+id, nil, nil)
}

// AsignarPlan asigna plan y meses a un propietario.
func (c *Client) AsignarPlan(ctx context.Context, propietarioID string, in AsignarPlanInput) (*PlanAsignado, error) {
	var out PlanAsignado
	if err := c.llamar(ctx, http.MethodPatch, "/api/admin/propietarios/"+propietarioID+"/plan", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActualizarMiLocal aplica un patch parcial al local propio (vista de dueño).
func (c *Client) ActualizarMiLocal(ctx context.Context, patch PatchLocal) (*Local, error) {
	var out localEnvelope
	if err := c.llamar(ctx, http.MethodPatch, "/api/owner/local/", patch, &out); err != nil {
		return nil, err
	}
	return &out.Local, nil
}

// PresignFoto pide un destino firmado de subida para una foto nueva.
func (c *Client) PresignFoto(ctx context.Context, extension string) (*DestinoFoto, error) {
	var out DestinoFoto
	in := map[string]string{"extension": extension}
	if err := c.llamar(ctx, http.MethodPost, "/api/owner/local/fotos/presign", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubirFoto sube el binario directamente contra la URL firmada. El callback de
// progreso (opcional) recibe bytes enviados y total.
func (c *Client) SubirFoto(ctx context.Context, destino *DestinoFoto, contenido []byte, contentType string, progreso func(enviados, total int64)) error {
	var body io.Reader = bytes.NewReader(contenido)
	total := int64(len(contenido))
	if progreso != nil {
		body = &lectorConProgreso{r: bytes.NewReader(contenido), total: total, fn: progreso}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, destino.SignedURL, body)
	if err != nil {
		return fmt.Errorf("gateway: crear HTTP request: %w", err)
	}
	req.ContentLength = total
	req.Header.Set("content-type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: subir foto: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &OperationError{Status: resp.StatusCode}
	}
	return nil
}

// ConfirmarFoto incorpora la subida completada al local.
func (c *Client) ConfirmarFoto(ctx context.Context, path string) (*FotoConfirmada, error) {
	var out FotoConfirmada
	in := map[string]string{"path": path}
	if err := c.llamar(ctx, http.MethodPost, "/api/owner/local/fotos/confirm", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EliminarFoto borra una foto del local por su URL pública.
func (c *Client) EliminarFoto(ctx context.Context, url string) error {
	in := map[string]string{"url": url}
	return c.llamar(ctx, http.MethodDelete, "/api/owner/local/fotos", in, nil)
}

// ── Transporte ────────────────────────────────────────────────────────────────

// envelope mínimo para leer el discriminador y el mensaje de error.
type respuestaBase struct {
	Success *bool  `json:"success"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}

// llamar emite un request autenticado y decodifica la respuesta en out.
// Una operación nunca se reintenta: el caller decide qué hacer con el error.
func (c *Client) llamar(ctx context.Context, method, path string, payload, out any) error {
	token := c.sesiones.Token()
	if token == "" {
		return ErrSinSesion
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("gateway: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("gateway: crear HTTP request: %w", err)
	}
	req.Header.Set("authorization", "Bearer "+token)
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("gateway: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("gateway: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("gateway: leer respuesta: %w", err)
	}

	var base respuestaBase
	_ = json.Unmarshal(rawBody, &base)

	// El contrato manda por el discriminador, no solo por el status.
	exito := resp.StatusCode >= 200 && resp.StatusCode < 300 &&
		(base.Success == nil || *base.Success)
	if !exito {
		return &OperationError{
			Status:  resp.StatusCode,
			Code:    base.Code,
			Mensaje: base.Error,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rawBody, out); err != nil {
		return fmt.Errorf("gateway: deserializar respuesta: %w", err)
	}
	return nil
}

// lectorConProgreso envuelve un reader reportando bytes leídos al callback.
type lectorConProgreso struct {
	r      io.Reader
	total  int64
	leidos int64
	fn     func(enviados, total int64)
}

func (l *lectorConProgreso) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	if n > 0 {
		l.leidos += int64(n)
		l.fn(l.leidos, l.total)
	}
	return n, err
}
