package entity

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

// LargoCodigo longitud fija de los códigos de invitación.
const LargoCodigo = 6

// Alfabeto sin caracteres confundibles (0/O, 1/I/L).
const alfabetoCodigo = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// CodigoInvitacion token de un solo uso que vincula un registro de propietario
// a un local pre-creado.
type CodigoInvitacion struct {
	ID       string
	Codigo   string // 6 caracteres, siempre mayúsculas
	LocalID  string
	Usado    bool
	UsadoPor *string
	FechaUso *time.Time
	CreatedAt time.Time
}

// GenerarCodigo produce un código aleatorio de 6 caracteres del alfabeto sin confundibles.
func GenerarCodigo() (string, error) {
	buf := make([]byte, LargoCodigo)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generar código: %w", err)
	}
	var sb strings.Builder
	for _, b := range buf {
		sb.WriteByte(alfabetoCodigo[int(b)%len(alfabetoCodigo)])
	}
	return sb.String(), nil
}

// NormalizarCodigo lleva la entrada del usuario a la forma canónica (mayúsculas, sin espacios).
func NormalizarCodigo(codigo string) string {
	return strings.ToUpper(strings.TrimSpace(codigo))
}
