// Package gateway es el SDK tipado del panel: un SessionStore de escritor único
// más un cliente HTTP que habla el protocolo del backend (envoltorio success).
package gateway

import (
	"context"
	"errors"
	"sync"
)

// ErrSinSesion operación invocada sin sesión activa. Se falla rápido: el
// request nunca llega a emitirse.
var ErrSinSesion = errors.New("sin sesión activa")

// TipoCambio clase de transición de sesión notificada a los suscriptores.
type TipoCambio string

const (
	CambioInicio  TipoCambio = "inicio"
	CambioCierre  TipoCambio = "cierre"
	CambioRefresh TipoCambio = "refresh"
)

// Cambio notificación de transición de sesión.
type Cambio struct {
	Tipo  TipoCambio
	Token string // vacío en CambioCierre
}

// Proveedor entrega la sesión inicial y revalida tokens. Lo implementa el
// consumidor contra su backend de auth.
type Proveedor interface {
	// SesionInicial devuelve el token vigente o "" si no hay sesión.
	SesionInicial(ctx context.Context) (string, error)
	// Validar responde si el token sigue siendo aceptado.
	Validar(ctx context.Context, token string) (bool, error)
}

// EstadoSesion resultado de Revalidar. Distingue "la sesión expiró" (había una
// y ya no sirve) de "nunca hubo sesión": la UI muestra mensajes distintos.
type EstadoSesion int

const (
	SesionActiva EstadoSesion = iota
	SesionAusente
	SesionExpirada
)

// SessionStore tenedor del token de sesión con escritor único. Todas las
// mutaciones pasan por el mutex; los suscriptores se notifican de forma
// síncrona en el orden de registro.
type SessionStore struct {
	mu           sync.Mutex
	token        string
	huboSesion   bool
	suscriptores []func(Cambio)
	proveedor    Proveedor
}

// NewSessionStore construye el store. El proveedor puede ser nil si el
// consumidor solo usa Establecer/Cerrar.
func NewSessionStore(proveedor Proveedor) *SessionStore {
	return &SessionStore{proveedor: proveedor}
}

// Iniciar carga la sesión inicial desde el proveedor y notifica si existe.
func (s *SessionStore) Iniciar(ctx context.Context) error {
	if s.proveedor == nil {
		return nil
	}
	token, err := s.proveedor.SesionInicial(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		s.Establecer(token)
	}
	return nil
}

// Establecer fija el token y notifica inicio (o refresh si ya había sesión).
func (s *SessionStore) Establecer(token string) {
	s.mu.Lock()
	tipo := CambioInicio
	if s.token != "" {
		tipo = CambioRefresh
	}
	s.token = token
	s.huboSesion = true
	subs := append([]func(Cambio){}, s.suscriptores...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(Cambio{Tipo: tipo, Token: token})
	}
}

// Cerrar limpia el token y notifica cierre. Idempotente.
func (s *SessionStore) Cerrar() {
	s.mu.Lock()
	habia := s.token != ""
	s.token = ""
	subs := append([]func(Cambio){}, s.suscriptores...)
	s.mu.Unlock()

	if !habia {
		return
	}
	for _, fn := range subs {
		fn(Cambio{Tipo: CambioCierre})
	}
}

// Token devuelve el token vigente o "" si no hay sesión.
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Suscribir registra un callback de cambios de sesión.
func (s *SessionStore) Suscribir(fn func(Cambio)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suscriptores = append(s.suscriptores, fn)
}

// Revalidar consulta el proveedor por el token vigente. Si el token dejó de
// ser válido, cierra la sesión y reporta SesionExpirada; sin token reporta
// SesionAusente.
func (s *SessionStore) Revalidar(ctx context.Context) (EstadoSesion, error) {
	s.mu.Lock()
	token := s.token
	hubo := s.huboSesion
	s.mu.Unlock()

	if token == "" {
		if hubo {
			return SesionExpirada, nil
		}
		return SesionAusente, nil
	}
	if s.proveedor == nil {
		return SesionActiva, nil
	}
	valido, err := s.proveedor.Validar(ctx, token)
	if err != nil {
		return SesionActiva, err
	}
	if !valido {
		s.Cerrar()
		return SesionExpirada, nil
	}
	return SesionActiva, nil
}
