package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/valueobject"
	"github.com/ignatzorin/agency-backend/internal/session"
)

// IssuedToken - токен сессии и момент его истечения.
type IssuedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TokenManager отвечает за выпуск и проверку JWT сессии.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager создаёт менеджер токенов.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue выпускает токен для сессии.
func (m *TokenManager) Issue(s session.Session) (*IssuedToken, error) {
	now := time.Now()
	exp := now.Add(m.ttl)

	claims := jwt.MapClaims{
		"sub":  s.UserID.String(),
		"name": s.Name,
		"role": string(s.Role),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, err
	}
	return &IssuedToken{Token: token, ExpiresAt: exp}, nil
}

// Parse проверяет подпись и срок и собирает сессию из клеймов.
// Неизвестная роль понижается до staff.
func (m *TokenManager) Parse(token string) (session.Session, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return session.Session{}, err
	}
	if !parsed.Valid {
		return session.Session{}, jwt.ErrTokenInvalidClaims
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return session.Session{}, jwt.ErrTokenInvalidClaims
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return session.Session{}, jwt.ErrTokenInvalidClaims
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return session.Session{}, errors.Join(jwt.ErrTokenInvalidClaims, err)
	}

	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)

	return session.Session{
		UserID: userID,
		Name:   name,
		Role:   valueobject.ParseRole(role),
	}, nil
}
