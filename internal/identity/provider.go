package identity

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// User is what the rest of the system knows about the current visitor.
// Authentication itself lives outside this module; we only read the result.
type User struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	IsAdmin bool   `json:"isAdmin"`
}

// Provider exposes the current user for a request, if any. Checkout uses it
// to decide whether guest contact fields are required; the admin stock
// editor uses IsAdmin as its gate.
type Provider interface {
	CurrentUser(ctx context.Context) (*User, bool)
}

type contextKey string

const userKey contextKey = "currentUser"

// WithUser stores the authenticated user in the request context.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// ContextProvider reads the user previously stored in the context by the
// auth middleware. It is the default Provider wiring.
type ContextProvider struct{}

func (ContextProvider) CurrentUser(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(userKey).(*User)
	return u, ok && u != nil
}

type claims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// VerifyToken parses an HS256 session token minted by the identity service
// and maps its claims to a User.
func VerifyToken(tokenStr, secret string) (*User, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	c, ok := token.Claims.(*claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &User{
		Email:   c.Email,
		Name:    c.Name,
		Phone:   c.Phone,
		IsAdmin: c.IsAdmin,
	}, nil
}
