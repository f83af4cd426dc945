package dto

// RegistroRequest alta de propietario por código de invitación.
type RegistroRequest struct {
	Codigo         string `json:"codigo"`
	NombreCompleto string `json:"nombre_completo"`
	Email          string `json:"email"`
	Password       string `json:"password"`
}

// RegistroResponse resultado del onboarding. LoginManualRequerido=true indica
// que la cuenta y la vinculación quedaron bien pero el login automático falló.
type RegistroResponse struct {
	Success              bool   `json:"success"`
	UserID               string `json:"user_id"`
	LocalID              string `json:"local_id"`
	Token                string `json:"token,omitempty"`
	LoginManualRequerido bool   `json:"login_manual_requerido"`
	Mensaje              string `json:"mensaje"`
}
