package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios del panel.
// TipoRol y Nivel permiten al middleware tomar decisiones gruesas sin consultar la DB;
// las decisiones por local se reevalúan siempre contra los registros persistidos.
type Claims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id"`
	TipoRol string `json:"tipo_rol"` // "super_admin" | "propietario"
	Nivel   string `json:"nivel"`    // "admin" | "pasante" (vacío para propietarios)
}

// Generate genera un token JWT firmado que incluye userID, tipo de rol y nivel.
func Generate(secret, userID, tipoRol, nivel, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:  userID,
		TipoRol: tipoRol,
		Nivel:   nivel,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve userID, tipo de rol y nivel.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (userID, tipoRol, nivel string, err error) {
	if secret == "" {
		return "", "", "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", "", fmt.Errorf("claims inválidos")
	}
	return claims.UserID, claims.TipoRol, claims.Nivel, nil
}
