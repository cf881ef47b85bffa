package auth

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/cristalhq/jwt/v4"
)

const (
	jwtIssuer = "SMART-COLLEGE"

	JWTExpiry = 24 * time.Hour
	jwtAlg    = jwt.HS256
)

// Role is the resolved role of an authenticated caller. It doubles as the jwt
// audience claim.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// Manager issues and verifies auth tokens carrying the caller's unique ID and
// role.
type Manager struct {
	builder  *jwt.Builder
	verifier jwt.Verifier
}

// NewManager returns a new manager for auth tokens.
func NewManager() (*Manager, error) {
	jwtSecret := make([]byte, 32)
	_, err := rand.Read(jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("rand.Read error: %w", err)
	}

	signer, err := jwt.NewSignerHS(jwtAlg, jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("jwt.NewSignerHS error: %w", err)
	}

	verifier, err := jwt.NewVerifierHS(jwtAlg, jwtSecret[:])
	if err != nil {
		return nil, fmt.Errorf("jwt.NewVerifierHS error: %w", err)
	}

	return &Manager{
		builder:  jwt.NewBuilder(signer),
		verifier: verifier,
	}, nil
}

// GenerateToken generates a new auth token for uniqueID acting as role.
func (m *Manager) GenerateToken(uniqueID string, role Role) (string, error) {
	claims := &jwt.RegisteredClaims{
		ID:        uniqueID,
		Audience:  jwt.Audience{string(role)},
		Issuer:    jwtIssuer,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(JWTExpiry)),
	}

	token, err := m.builder.Build(claims)
	if err != nil {
		return "", fmt.Errorf("m.builder.Build error: %w", err)
	}

	return token.String(), nil
}

// IsValidToken checks that the provided token is valid and returns the unique
// ID and role added to the auth token.
func (m *Manager) IsValidToken(jwtToken string) (string, Role, bool) {
	jwtClaims := new(jwt.RegisteredClaims)
	err := jwt.ParseClaims([]byte(jwtToken), m.verifier, jwtClaims)
	if err != nil || !(jwtClaims.IsIssuer(jwtIssuer) && jwtClaims.IsValidAt(time.Now())) || len(jwtClaims.Audience) != 1 {
		return "", "", false
	}

	role := Role(jwtClaims.Audience[0])
	if !role.Valid() {
		return "", "", false
	}

	return jwtClaims.ID, role, true
}
