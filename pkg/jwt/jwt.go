package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Roles viaja en el token para que el middleware RBAC decida sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	VendorID string   `json:"vendor_id"`
	Email    string   `json:"email"`
	Name     string   `json:"name,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"`
}

// HasRole indica si el token incluye el rol dado.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Identity datos del vendedor que se firman en el token.
type Identity struct {
	VendorID string
	Email    string
	Name     string
	Roles    []string
}

// GenerateAccess genera un token de acceso firmado (HS256) con identidad y roles.
func GenerateAccess(secret string, id Identity, issuer string, expMinutes int) (string, error) {
	return generate(secret, Claims{
		VendorID: id.VendorID,
		Email:    id.Email,
		Name:     id.Name,
		Roles:    id.Roles,
	}, id.Email, issuer, expMinutes)
}

// GenerateRefresh genera un refresh token: sin roles y con el claim refresh=true.
// Cada token lleva un jti aleatorio, así dos emisiones seguidas nunca coinciden.
func GenerateRefresh(secret string, id Identity, issuer string, expMinutes int) (string, error) {
	return generate(secret, Claims{
		VendorID: id.VendorID,
		Email:    id.Email,
		Refresh:  true,
	}, id.Email, issuer, expMinutes)
}

func generate(secret string, claims Claims, subject, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve sus claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
