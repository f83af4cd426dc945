package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nightly-app/nightly-admin-api/internal/application/ports"
	"github.com/nightly-app/nightly-admin-api/pkg/config"
)

// Verificar en tiempo de compilación que AuthClient implementa AuthProvider.
var _ ports.AuthProvider = (*AuthClient)(nil)

// AuthClient adaptador que implementa AuthProvider contra la API REST de
// Supabase Auth (GoTrue). Usa net/http de la librería estándar; no requiere SDK.
type AuthClient struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// NewAuthClient construye el adaptador a partir de la configuración de auth.
func NewAuthClient(cfg config.AuthConfig) *AuthClient {
	return &AuthClient{
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		anonKey: cfg.AnonKey,
		httpClient: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

// ── Estructuras internas del protocolo GoTrue ─────────────────────────────────

type signUpRequest struct {
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Data     map[string]string `json:"data,omitempty"`
}

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *userResponse `json:"user"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type authErrorResponse struct {
	Message          string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        string `json:"error_code"`
}

// mensaje devuelve el texto de error más descriptivo que traiga la respuesta.
func (e authErrorResponse) mensaje() string {
	if e.Message != "" {
		return e.Message
	}
	return e.ErrorDescription
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// SignUp registra la identidad con metadata adjunta. Con confirmación de email
// deshabilitada, GoTrue devuelve la sesión inicial en la misma respuesta.
func (c *AuthClient) SignUp(ctx context.Context, email, password string, metadata map[string]string) (*ports.Sesion, error) {
	var resp sessionResponse
	err := c.post(ctx, "/auth/v1/signup", "", signUpRequest{
		Email:    email,
		Password: password,
		Data:     metadata,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return sesionDesdeRespuesta(&resp)
}

// SignInWithPassword autentica con el grant password de GoTrue.
func (c *AuthClient) SignInWithPassword(ctx context.Context, email, password string) (*ports.Sesion, error) {
	var resp sessionResponse
	err := c.post(ctx, "/auth/v1/token?grant_type=password", "", passwordGrantRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return sesionDesdeRespuesta(&resp)
}

// SignOut invalida la sesión del token indicado.
func (c *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	return c.post(ctx, "/auth/v1/logout", accessToken, nil, nil)
}

// GetUser resuelve la identidad dueña de un access token.
func (c *AuthClient) GetUser(ctx context.Context, accessToken string) (*ports.Usuario, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("auth: crear HTTP request: %w", err)
	}
	c.setHeaders(req, accessToken)

	var resp userResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("auth: respuesta sin identidad")
	}
	return &ports.Usuario{ID: resp.ID, Email: resp.Email}, nil
}

// ── Helpers HTTP ──────────────────────────────────────────────────────────────

func (c *AuthClient) post(ctx context.Context, path, bearer string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("auth: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("auth: crear HTTP request: %w", err)
	}
	c.setHeaders(req, bearer)
	return c.do(req, out)
}

func (c *AuthClient) setHeaders(req *http.Request, bearer string) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("content-type", "application/json")
	if bearer != "" {
		req.Header.Set("authorization", "Bearer "+bearer)
	}
}

func (c *AuthClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return fmt.Errorf("auth: timeout o cancelación: %w", req.Context().Err())
		}
		return fmt.Errorf("auth: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("auth: leer respuesta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// El mensaje upstream (p.ej. "User already registered") viaja intacto:
		// el flujo de registro lo muestra tal cual al usuario.
		var errResp authErrorResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.mensaje() != "" {
			return fmt.Errorf("auth: %s", errResp.mensaje())
		}
		return fmt.Errorf("auth: HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rawBody, out); err != nil {
		return fmt.Errorf("auth: deserializar respuesta: %w", err)
	}
	return nil
}

func sesionDesdeRespuesta(resp *sessionResponse) (*ports.Sesion, error) {
	if resp.AccessToken == "" || resp.User == nil || resp.User.ID == "" {
		return nil, fmt.Errorf("auth: respuesta sin sesión utilizable")
	}
	return &ports.Sesion{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		Usuario:      ports.Usuario{ID: resp.User.ID, Email: resp.User.Email},
	}, nil
}
