package dto

// ErrorResponse cuerpo de error HTTP. Todas las respuestas del API llevan el
// discriminador success; el cliente tipado decide por él, no por el status solo.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error"`
}

// NewError construye un ErrorResponse con success=false.
func NewError(code, mensaje string) ErrorResponse {
	return ErrorResponse{Success: false, Code: code, Error: mensaje}
}
