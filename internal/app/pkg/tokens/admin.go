// Package tokens contains the tokens that are used to authorize operators
package tokens

import (
	"fmt"
	"time"

	"github.com/flitlabs/dispatch_tracker/internal/pkg/env"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AdminToken is a struct that is used to perform actions that are related to the admin token
type AdminToken struct {
	E *env.Env
}

// Create is a function that is used to issue an admin token for the given operator
func (at *AdminToken) Create(operator uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   operator.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return token.SignedString([]byte(at.E.AdminTokenSecret))
}

// Validate is a function that is used to validate the admin token
func (at *AdminToken) Validate(str string) (isValid bool, token *jwt.Token) {
	token, err := jwt.Parse(str, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing algorithm was used")
		}

		return []byte(at.E.AdminTokenSecret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return false, nil
	}

	_, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false, nil
	}

	return true, token
}

// Get is a function that is used to get the operator of the given JWT token
func (at *AdminToken) Get(token *jwt.Token) (operator uuid.UUID, err error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("failed to map the claims of the jwt")
	}

	val, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("cannot parse the operator id")
	}

	return uuid.Parse(val)
}
