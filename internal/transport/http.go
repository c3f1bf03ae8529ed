package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rpggio/academe/internal/domain/role"
	"github.com/rpggio/academe/internal/mcp"
)

const maxBodyBytes = 1 << 20

// Handler dispatches a named method on behalf of an actor.
type Handler interface {
	Handle(ctx context.Context, actor role.Actor, method string, params json.RawMessage) (any, error)
}

// Server wires HTTP handlers.
type Server struct {
	handler Handler
	logger  *slog.Logger
}

// NewServer creates the router: JSON-RPC at /rpc, health at /health and,
// when mcpHandler is non-nil, the MCP streamable endpoint at /mcp.
func NewServer(handler Handler, mcpHandler http.Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(ActorMiddleware)

	srv := &Server{handler: handler, logger: logger}

	r.Post("/rpc", srv.handleRPC)
	r.Get("/health", srv.handleHealth)
	if mcpHandler != nil {
		r.Handle("/mcp", mcpHandler)
		r.Handle("/mcp/*", mcpHandler)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		if errors.Is(err, errParse) {
			WriteError(w, nil, ErrParseCode, "parse error", nil)
			return
		}
		WriteError(w, nil, ErrInvalidReq, "invalid request", nil)
		return
	}

	actor, _ := role.ActorFromContext(r.Context())
	result, err := s.handler.Handle(r.Context(), actor, req.Method, req.Params)
	if err != nil {
		code, message, data := s.rpcError(r, req.Method, err)
		WriteError(w, req.ID, code, message, data)
		return
	}

	WriteResult(w, req.ID, result)
}

// rpcError maps a handler error onto a JSON-RPC error object.
func (s *Server) rpcError(r *http.Request, method string, err error) (int, string, any) {
	if errors.Is(err, mcp.ErrUnknownMethod) {
		return ErrMethodNotFound, "method not found", nil
	}
	if apiErr := mcp.MapError(err); apiErr != nil {
		return ErrDomain, apiErr.Message, apiErr
	}
	if s.logger != nil {
		s.logger.Error("rpc failed", "method", method, "request_id", middleware.GetReqID(r.Context()), "error", err)
	}
	return ErrInternal, "internal error", nil
}
