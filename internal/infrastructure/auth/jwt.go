// Package auth verifies bearer tokens issued by the personnel directory
// and turns their claims into request principals.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vigil/internal/domain/access"
)

// Claims is the token payload. The subject is the person's handle; position
// and team memberships are snapshotted at issue time, so short token
// lifetimes bound how stale they can get.
type Claims struct {
	Positions []string `json:"positions,omitempty"`
	Teams     []string `json:"teams,omitempty"`
	OnSite    bool     `json:"onsite"`
	Admin     bool     `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret []byte
	issuer string
}

func NewJWTService(secret, issuer string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// Generate signs a token for the given person. Used by operational tooling
// and tests; production tokens come from the directory service.
func (s *JWTService) Generate(handle string, positions, teams []string, onSite, admin bool, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		Positions: positions,
		Teams:     teams,
		OnSite:    onSite,
		Admin:     admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   handle,
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return claims, nil
}

// Principal builds the access-control principal from verified claims.
func Principal(claims *Claims) *access.Principal {
	var expiry time.Time
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	return access.NewPrincipal(claims.Subject, claims.Positions, claims.Teams, claims.OnSite, expiry)
}
