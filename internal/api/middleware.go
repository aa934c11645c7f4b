package api

import (
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/bloomworks/bloom-practice/internal/api/respond"
	"github.com/bloomworks/bloom-practice/internal/auth"
)

// RequireAuth resolves the Bearer access key to an admin actor and stores it
// on the request context. Requests without a valid key get 401.
func RequireAuth(authorizer auth.Authorizer) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, err := auth.ExtractAccessKey(r)
			if err != nil {
				respond.WriteUnauthorized(w, err.Error())
				return
			}
			actor, err := authorizer.Authorize(r.Context(), key)
			if err != nil {
				respond.WriteUnauthorized(w, "invalid access key")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
		})
	}
}

// actorOr401 fetches the authenticated actor, writing 401 when absent.
func actorOr401(w http.ResponseWriter, r *http.Request) (*auth.Actor, bool) {
	actor, ok := auth.ActorFrom(r.Context())
	if !ok {
		respond.WriteUnauthorized(w, "authentication required")
		return nil, false
	}
	return actor, true
}
