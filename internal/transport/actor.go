package transport

import (
	"net/http"

	"github.com/rpggio/academe/internal/domain/role"
	"github.com/rpggio/academe/internal/mcp"
)

// ActorMiddleware attaches the identity declared in the X-User-* headers to
// the request context. A request without X-User-Id is handled as an
// anonymous actor whose role is still taken from X-User-Role, defaulting to
// student.
func ActorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := mcp.ActorFromHeader(r.Header)
		if !ok {
			actor = role.Actor{Role: role.Parse(r.Header.Get(mcp.HeaderUserRole))}
		}
		next.ServeHTTP(w, r.WithContext(role.WithActor(r.Context(), actor)))
	})
}
