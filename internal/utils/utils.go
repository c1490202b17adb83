package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// context key
type ctxKey string

const CtxUserIDKey ctxKey = "user_id"

// CustomClaims wraps jwt.RegisteredClaims with Email for convenience
type CustomClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID parses the subject; uuid.Nil on any defect.
func (c *CustomClaims) UserID() uuid.UUID {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func GenerateToken(userID uuid.UUID, email, secret string, ttl time.Duration) (string, int64, error) {
	if secret == "" {
		return "", 0, errors.New("secret not configured")
	}

	now := time.Now()
	expTime := now.Add(ttl)

	claims := CustomClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expTime),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expTime.Unix(), nil
}

func VerifyToken(tokenStr, secret string) (*CustomClaims, error) {
	if secret == "" {
		return nil, errors.New("secret not configured")
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))

	var claims CustomClaims

	_, err := parser.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		return nil, errors.New("token expired")
	}

	return &claims, nil
}
