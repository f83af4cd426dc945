package ports

import "context"

// Usuario identidad del servicio de auth externo. Solo lectura para este sistema.
type Usuario struct {
	ID    string
	Email string
}

// Sesion sesión emitida por el servicio de auth externo.
type Sesion struct {
	AccessToken  string
	RefreshToken string
	Usuario      Usuario
}

// AuthProvider puerto hacia el servicio de autenticación gestionado (Supabase Auth).
// Las credenciales viven allí; este sistema nunca almacena contraseñas.
type AuthProvider interface {
	// SignUp registra una identidad nueva con metadata adjunta (nombre, rol) y
	// devuelve la sesión inicial. El servicio externo materializa el perfil de
	// forma asíncrona vía trigger.
	SignUp(ctx context.Context, email, password string, metadata map[string]string) (*Sesion, error)
	// SignInWithPassword autentica y devuelve la sesión.
	SignInWithPassword(ctx context.Context, email, password string) (*Sesion, error)
	// SignOut invalida la sesión indicada.
	SignOut(ctx context.Context, accessToken string) error
	// GetUser resuelve la identidad dueña de un access token.
	GetUser(ctx context.Context, accessToken string) (*Usuario, error)
}
