package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTService emite y valida bearer tokens firmados.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// TokenUser es la identidad embebida en el claim "user".
type TokenUser struct {
	ID string `json:"id"`
}

type Claims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
)

func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "tripflux",
	}
}

// Issue firma un token con el id del usuario y expiración fija.
func (s *JWTService) Issue(userID string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrJWTInvalid
	}
	now := time.Now().UTC()
	claims := Claims{
		User: TokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify valida firma y expiración y devuelve el id del usuario.
func (s *JWTService) Verify(tokenString string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrJWTInvalid
	}
	if strings.TrimSpace(tokenString) == "" {
		return "", ErrJWTInvalid
	}

	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrJWTExpired
		}
		return "", ErrJWTInvalid
	}

	if strings.TrimSpace(claims.User.ID) == "" {
		return "", ErrJWTInvalid
	}
	if claims.Subject != "" && claims.Subject != claims.User.ID {
		return "", ErrJWTInvalid
	}
	return claims.User.ID, nil
}
