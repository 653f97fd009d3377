package services

import (
	"fmt"
	"time"

	"eduplatform/constants"
	apperrors "eduplatform/errors"
	"eduplatform/models"

	"github.com/dgrijalva/jwt-go"
)

type UserInfo struct {
	UserId uint        `json:"userid"`
	Role   models.Role `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// TokenManager signs and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = constants.AccessTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

func (m *TokenManager) GenerateToken(info UserInfo) (string, error) {
	now := m.now()
	claims := &Claims{
		UserInfo: info,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseToken verifies the signature and expiry and returns the user info.
func (m *TokenManager) ParseToken(tokenString string) (*UserInfo, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, &apperrors.AppError{
			Code:    apperrors.ErrCodeInvalidToken,
			Kind:    apperrors.KindUnauthorized,
			Message: "Invalid or expired token",
			Err:     err,
		}
	}
	if claims.UserInfo.UserId == 0 {
		return nil, apperrors.Unauthorized(apperrors.ErrCodeInvalidToken, "Token is missing user information")
	}
	if !claims.UserInfo.Role.Valid() {
		return nil, apperrors.Unauthorized(apperrors.ErrCodeInvalidRole, "Token carries an unknown role")
	}
	return &claims.UserInfo, nil
}
