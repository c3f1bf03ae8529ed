package mcp

import (
	"context"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/academe/internal/domain/role"
)

// Identity headers, shared with the JSON-RPC transport.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserName = "X-User-Name"
	HeaderUserRole = "X-User-Role"
)

// ActorFromHeader reads a declared identity from request headers. ok is false
// when no user ID is present.
func ActorFromHeader(h http.Header) (role.Actor, bool) {
	id := h.Get(HeaderUserID)
	if id == "" {
		return role.Actor{}, false
	}
	return role.Actor{
		ID:   id,
		Name: h.Get(HeaderUserName),
		Role: role.Parse(h.Get(HeaderUserRole)),
	}, true
}

// actorMiddleware attaches the acting user to the context. HTTP headers win,
// then _meta (user_id, user_name, role), then the configured default.
func actorMiddleware(fallback role.Actor) sdkmcp.Middleware {
	fallback.Role = role.Parse(string(fallback.Role))
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			actor, ok := actorFromHeaders(req)
			if !ok {
				actor, ok = actorFromMeta(req)
			}
			if !ok {
				actor = fallback
			}
			return next(role.WithActor(ctx, actor), method, req)
		}
	}
}

func actorFromHeaders(req sdkmcp.Request) (actor role.Actor, ok bool) {
	if req == nil {
		return role.Actor{}, false
	}
	defer func() {
		if recover() != nil {
			actor, ok = role.Actor{}, false
		}
	}()
	extra := req.GetExtra()
	if extra == nil || extra.Header == nil {
		return role.Actor{}, false
	}
	return ActorFromHeader(extra.Header)
}

func actorFromMeta(req sdkmcp.Request) (actor role.Actor, ok bool) {
	if req == nil {
		return role.Actor{}, false
	}
	// Some notifications have nil params and GetMeta panics on them.
	defer func() {
		if recover() != nil {
			actor, ok = role.Actor{}, false
		}
	}()
	params := req.GetParams()
	if params == nil {
		return role.Actor{}, false
	}
	meta := params.GetMeta()
	if meta == nil {
		return role.Actor{}, false
	}
	id, _ := meta["user_id"].(string)
	if id == "" {
		return role.Actor{}, false
	}
	name, _ := meta["user_name"].(string)
	r, _ := meta["role"].(string)
	return role.Actor{ID: id, Name: name, Role: role.Parse(r)}, true
}
