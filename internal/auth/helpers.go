package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ExtractAccessKey extracts the access key from the Authorization header.
// Returns the key or an error if missing/invalid format.
func ExtractAccessKey(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("missing Authorization header")
	}

	// Expect "Bearer <access_key>" format
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("invalid Authorization header format, expected 'Bearer <access_key>'")
	}

	return parts[1], nil
}

type actorContextKey struct{}

// WithActor returns a context carrying the authenticated actor.
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFrom returns the actor stored by the auth middleware, if any.
func ActorFrom(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(*Actor)
	return actor, ok
}
