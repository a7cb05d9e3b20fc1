package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vlogify/internal/models"
)

// GenerateAccessToken signs a short-lived JWT carrying the user identity.
func (m *Manager) GenerateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"role":   user.Role,
		"exp":    time.Now().Add(m.cfg.AccessTokenDuration).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(m.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (m *Manager) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.cfg.JWTSecretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return token, nil
}

// UserFromToken resolves the token claims against the users collection so
// the caller sees the live record, not a stale snapshot.
func (m *Manager) UserFromToken(tokenString string) (*models.User, error) {
	token, err := m.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims format")
	}

	userID, ok := claims["userId"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid claims format")
	}

	for _, u := range m.store.Users() {
		if u.ID == userID {
			user := u
			return &user, nil
		}
	}

	return nil, fmt.Errorf("user %s no longer exists", userID)
}
