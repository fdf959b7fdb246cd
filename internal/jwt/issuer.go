// Package jwt emite y valida los access tokens de sesión.
//
// Un solo secreto compartido firma con HS256; no hay rotación de claves ni
// refresh tokens en este servicio.
package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Errores de validación de tokens.
var (
	ErrInvalidToken = errors.New("jwt: invalid token")
)

// Claims son los claims de sesión que viajan en el access token.
type Claims struct {
	UserID   string
	Username string
}

// Issuer firma y valida tokens con un secreto HS256.
type Issuer struct {
	iss       string
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time
}

// NewIssuer crea el issuer. ttl <= 0 usa 24 horas.
func NewIssuer(iss string, secret []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{iss: iss, secret: secret, accessTTL: ttl, now: time.Now}
}

// IssueAccess emite un access token para el usuario. Retorna el token
// firmado y su expiración.
func (i *Issuer) IssueAccess(c Claims) (string, time.Time, error) {
	now := i.now().UTC()
	exp := now.Add(i.accessTTL)

	claims := jwtv5.MapClaims{
		"iss":      i.iss,
		"sub":      c.UserID,
		"username": c.Username,
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      exp.Unix(),
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify valida firma, issuer y expiración, y retorna los claims de
// sesión. Cualquier falla se colapsa en ErrInvalidToken.
func (i *Issuer) Verify(token string) (*Claims, error) {
	parsed, err := jwtv5.Parse(token,
		func(t *jwtv5.Token) (any, error) {
			if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return i.secret, nil
		},
		jwtv5.WithIssuer(i.iss),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithTimeFunc(func() time.Time { return i.now() }),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	mc, ok := parsed.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	username, _ := mc["username"].(string)
	return &Claims{UserID: sub, Username: username}, nil
}
