// Package auth is the session boundary: it turns bearer tokens into an
// owner ID in the request context. Registry operations never see tokens,
// only the resolved owner ID.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned when a token fails signature or claim checks.
var ErrInvalidToken = errors.New("invalid token")

const tokenTTL = 24 * time.Hour

// Claims are the JWT claims carried by a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// Verifier signs and verifies session tokens with an HMAC secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier for the given shared secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Issue creates a signed token for the given user. Used by tests and
// local tooling; production tokens come from the identity provider sharing
// the same secret.
func (v *Verifier) Issue(userID string) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
		UserID: userID,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Verify parses the token and returns the user ID it was issued for.
func (v *Verifier) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return v.secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}

type ownerKey struct{}

// ContextWithOwner adds the resolved owner ID to the context.
func ContextWithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerKey{}, ownerID)
}

// OwnerFromContext extracts the owner ID set by the middleware. The second
// return is false when the request carried no valid session.
func OwnerFromContext(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(ownerKey{}).(string)

	return ownerID, ok && ownerID != ""
}

// Middleware resolves the Authorization bearer token, if any, and stores the
// owner ID in the request context. It never rejects requests itself: public
// routes stay public, and handlers that need an owner check the context.
func Middleware(verifier *Verifier) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")

		token, ok := strings.CutPrefix(header, "Bearer ")
		if ok {
			if ownerID, err := verifier.Verify(strings.TrimSpace(token)); err == nil {
				ctx = huma.WithContext(ctx, ContextWithOwner(ctx.Context(), ownerID))
			}
		}

		next(ctx)
	}
}
