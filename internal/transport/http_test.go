package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/academe/internal/app"
	"github.com/rpggio/academe/internal/domain/report"
	"github.com/rpggio/academe/internal/domain/role"
	"github.com/rpggio/academe/internal/mcp"
	"github.com/rpggio/academe/internal/memstore"
	"github.com/rpggio/academe/internal/seed"
)

type recordingHandler struct {
	actor  role.Actor
	method string
	err    error
}

func (h *recordingHandler) Handle(_ context.Context, actor role.Actor, method string, _ json.RawMessage) (any, error) {
	h.actor = actor
	h.method = method
	if h.err != nil {
		return nil, h.err
	}
	return map[string]string{"ok": "yes"}, nil
}

func post(t *testing.T, url, body string, headers map[string]string) Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url+"/rpc", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHTTPServer_RPC(t *testing.T) {
	handler := &recordingHandler{}
	server := httptest.NewServer(NewServer(handler, nil, nil))
	t.Cleanup(server.Close)

	resp := post(t, server.URL, `{"jsonrpc":"2.0","method":"list_projects","id":1}`, map[string]string{
		"X-User-Id":   "mentor-1",
		"X-User-Name": "Dr. Alan Smith",
		"X-User-Role": "mentor",
	})
	require.Nil(t, resp.Error)
	require.Equal(t, float64(1), resp.ID)
	require.Equal(t, "list_projects", handler.method)
	require.Equal(t, role.Actor{ID: "mentor-1", Name: "Dr. Alan Smith", Role: role.Mentor}, handler.actor)
}

func TestHTTPServer_AnonymousIsStudent(t *testing.T) {
	handler := &recordingHandler{}
	server := httptest.NewServer(NewServer(handler, nil, nil))
	t.Cleanup(server.Close)

	post(t, server.URL, `{"jsonrpc":"2.0","method":"permissions","id":"a"}`, nil)
	require.Equal(t, role.Actor{Role: role.Student}, handler.actor)
}

func TestHTTPServer_ProtocolErrors(t *testing.T) {
	server := httptest.NewServer(NewServer(&recordingHandler{}, nil, nil))
	t.Cleanup(server.Close)

	resp := post(t, server.URL, `not json`, nil)
	require.Equal(t, ErrParseCode, resp.Error.Code)

	resp = post(t, server.URL, `{"jsonrpc":"2.0","id":1}`, nil)
	require.Equal(t, ErrInvalidReq, resp.Error.Code)
}

func TestHTTPServer_InternalError(t *testing.T) {
	server := httptest.NewServer(NewServer(&recordingHandler{err: errors.New("disk on fire")}, nil, nil))
	t.Cleanup(server.Close)

	resp := post(t, server.URL, `{"jsonrpc":"2.0","method":"list_tasks","id":1}`, nil)
	require.Equal(t, ErrInternal, resp.Error.Code)
	require.Equal(t, "internal error", resp.Error.Message)
}

func TestHTTPServer_Health(t *testing.T) {
	server := httptest.NewServer(NewServer(&recordingHandler{}, nil, nil))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPServer_DomainErrors(t *testing.T) {
	repos := app.Memory(memstore.Open(0))
	require.NoError(t, seed.Load(context.Background(), seed.Repositories{
		Projects: repos.Projects,
		Groups:   repos.Groups,
		Tasks:    repos.Tasks,
		Students: repos.Students,
	}))
	handler := mcp.NewHandler(app.Wire(repos, report.ModeLive, nil), nil)
	server := httptest.NewServer(NewServer(handler, nil, nil))
	t.Cleanup(server.Close)

	leader := map[string]string{"X-User-Id": "student-1", "X-User-Role": "leader"}

	resp := post(t, server.URL, `{"jsonrpc":"2.0","method":"create_project","params":{"title":"X"},"id":1}`, leader)
	require.Equal(t, ErrDomain, resp.Error.Code)
	require.Equal(t, "FORBIDDEN", resp.Error.Data.(map[string]any)["code"])

	resp = post(t, server.URL, `{"jsonrpc":"2.0","method":"remove_group_member","params":{"group_id":"group-1","student_id":"student-1"},"id":2}`, leader)
	require.Equal(t, ErrDomain, resp.Error.Code)
	require.Equal(t, "INVALID_OPERATION", resp.Error.Data.(map[string]any)["code"])

	resp = post(t, server.URL, `{"jsonrpc":"2.0","method":"get_group","params":{"id":"group-9"},"id":3}`, leader)
	require.Equal(t, "NOT_FOUND", resp.Error.Data.(map[string]any)["code"])

	resp = post(t, server.URL, `{"jsonrpc":"2.0","method":"teleport","id":4}`, leader)
	require.Equal(t, ErrMethodNotFound, resp.Error.Code)

	resp = post(t, server.URL, `{"jsonrpc":"2.0","method":"change_group_leader","params":{"group_id":"group-1","new_leader_id":"student-2"},"id":5}`, leader)
	require.Nil(t, resp.Error)
	members := resp.Result.(map[string]any)["members"].([]any)
	require.Equal(t, "member", members[0].(map[string]any)["role"])
	require.Equal(t, "leader", members[1].(map[string]any)["role"])
}
