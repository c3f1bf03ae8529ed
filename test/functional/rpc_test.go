package functional_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/academe/internal/config"
	"github.com/rpggio/academe/internal/testserver"
)

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
	ID      any             `json:"id,omitempty"`
}

type rpcError struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

type user struct {
	id, name, role string
}

var (
	mentor = user{"mentor-1", "Dr. Alan Smith", "mentor"}
	leader = user{"student-4", "Michael Brown", "leader"}
	reader = user{"student-2", "Emily Wilson", "student"}
)

func rpcCall(t *testing.T, ts *testserver.TestServer, as user, method string, params any) rpcResponse {
	t.Helper()

	payload := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"id":      1,
	}
	if params != nil {
		payload["params"] = params
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/rpc", bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", as.id)
	req.Header.Set("X-User-Name", as.name)
	req.Header.Set("X-User-Role", as.role)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status 200, got %d. Body: %s", resp.StatusCode, string(bodyBytes))
	}

	var result rpcResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

// mustCall fails the test on an error response and decodes the result into out.
func mustCall(t *testing.T, ts *testserver.TestServer, as user, method string, params, out any) {
	t.Helper()
	resp := rpcCall(t, ts, as, method, params)
	require.Nil(t, resp.Error, "%s failed: %+v", method, resp.Error)
	if out != nil {
		require.NoError(t, json.Unmarshal(resp.Result, out))
	}
}

func errorCode(t *testing.T, resp rpcResponse) string {
	t.Helper()
	require.NotNil(t, resp.Error)
	code, _ := resp.Error.Data["code"].(string)
	return code
}

func TestProjectLifecycle(t *testing.T) {
	ts := testserver.New(t)

	var proj struct {
		ID       string `json:"id"`
		MentorID string `json:"mentor_id"`
		Members  int    `json:"members"`
		Status   string `json:"status"`
	}
	mustCall(t, ts, mentor, "create_project", map[string]any{
		"title":       "Campus Robotics",
		"description": "Autonomous delivery robots",
		"tags":        []string{"Robotics"},
	}, &proj)
	require.Equal(t, mentor.id, proj.MentorID)
	require.Equal(t, "open", proj.Status)
	require.Zero(t, proj.Members)

	var grp struct {
		ID      string `json:"id"`
		Members []struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"members"`
	}
	mustCall(t, ts, leader, "create_group", map[string]any{
		"name":       "Rovers",
		"project_id": proj.ID,
		"leader_id":  "student-4",
	}, &grp)
	require.Len(t, grp.Members, 1)
	require.Equal(t, "leader", grp.Members[0].Role)

	mustCall(t, ts, leader, "add_group_member", map[string]any{"group_id": grp.ID, "student_id": "student-5"}, &grp)
	require.Len(t, grp.Members, 2)

	resp := rpcCall(t, ts, leader, "add_group_member", map[string]any{"group_id": grp.ID, "student_id": "student-5"})
	require.Equal(t, "INVALID_OPERATION", errorCode(t, resp))

	mustCall(t, ts, reader, "get_project", map[string]any{"id": proj.ID}, &proj)
	require.Equal(t, 2, proj.Members)

	mustCall(t, ts, leader, "change_group_leader", map[string]any{"group_id": grp.ID, "new_leader_id": "student-5"}, &grp)
	require.Equal(t, "member", grp.Members[0].Role)
	require.Equal(t, "leader", grp.Members[1].Role)

	var tk struct {
		ID          string `json:"id"`
		Status      string `json:"status"`
		GroupName   string `json:"group_name"`
		CompletedAt string `json:"completed_at"`
	}
	today := time.Now().UTC().Format(time.DateOnly)
	mustCall(t, ts, leader, "create_task", map[string]any{
		"title":        "Chassis",
		"due_date":     today,
		"project_id":   proj.ID,
		"group_id":     grp.ID,
		"assignee_ids": []string{"student-4"},
	}, &tk)
	require.Equal(t, "todo", tk.Status)
	require.Equal(t, "Rovers", tk.GroupName)

	resp = rpcCall(t, ts, reader, "move_task", map[string]any{"id": tk.ID, "status": "completed"})
	require.Equal(t, "FORBIDDEN", errorCode(t, resp))

	mustCall(t, ts, leader, "move_task", map[string]any{"id": tk.ID, "status": "completed"}, &tk)
	require.NotEmpty(t, tk.CompletedAt)

	var rep struct {
		Total      int `json:"total"`
		Completion int `json:"completion"`
		Weeks      []struct {
			Planned int `json:"planned"`
			Actual  int `json:"actual"`
		} `json:"weeks"`
	}
	mustCall(t, ts, reader, "progress_report", map[string]any{"project_id": proj.ID}, &rep)
	require.Equal(t, 1, rep.Total)
	require.Equal(t, 100, rep.Completion)
	require.Len(t, rep.Weeks, 4)
	require.Equal(t, 1, rep.Weeks[3].Planned)
	require.Equal(t, 1, rep.Weeks[3].Actual)

	var entries []struct {
		Type    string `json:"type"`
		ActorID string `json:"actor_id"`
	}
	mustCall(t, ts, reader, "recent_activity", map[string]any{"project_id": proj.ID}, &entries)
	require.Len(t, entries, 6)
	require.Equal(t, "task_moved", entries[0].Type)
	require.Equal(t, leader.id, entries[0].ActorID)
	require.Equal(t, "project_created", entries[5].Type)
	require.Equal(t, mentor.id, entries[5].ActorID)

	resp = rpcCall(t, ts, user{"mentor-2", "Dr. Maria Johnson", "mentor"}, "delete_project", map[string]any{"id": proj.ID})
	require.Equal(t, "FORBIDDEN", errorCode(t, resp))

	mustCall(t, ts, mentor, "delete_project", map[string]any{"id": proj.ID}, nil)

	// Groups and tasks outlive their project.
	mustCall(t, ts, reader, "get_group", map[string]any{"id": grp.ID}, &grp)
	mustCall(t, ts, reader, "get_task", map[string]any{"id": tk.ID}, &tk)
}

func TestValidationErrors(t *testing.T) {
	ts := testserver.New(t)

	resp := rpcCall(t, ts, leader, "create_task", map[string]any{"title": "", "due_date": "someday"})
	require.Equal(t, "INVALID_INPUT", errorCode(t, resp))

	resp = rpcCall(t, ts, mentor, "update_project", map[string]any{"id": "project-1", "progress": 140})
	require.Equal(t, "INVALID_INPUT", errorCode(t, resp))
	details, ok := resp.Error.Data["details"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, details, "progress")

	resp = rpcCall(t, ts, mentor, "update_project", map[string]any{"id": "project-1", "title": "<b></b>"})
	require.Equal(t, "INVALID_INPUT", errorCode(t, resp))
	details, ok = resp.Error.Data["details"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "title must not contain markup", details["title"])
}

func TestStaticReportMode(t *testing.T) {
	ts := testserver.New(t, func(cfg *config.Config) { cfg.Report.Mode = "static" })

	var rep struct {
		Mode       string `json:"mode"`
		Total      int    `json:"total"`
		Completion int    `json:"completion"`
	}
	mustCall(t, ts, reader, "progress_report", nil, &rep)
	require.Equal(t, "static", rep.Mode)
	require.Equal(t, 27, rep.Total)
	require.Equal(t, 44, rep.Completion)
}
