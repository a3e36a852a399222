package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/gitviz/internal/config"
	"github.com/kurobon/gitviz/internal/git"
	_ "github.com/kurobon/gitviz/internal/git/commands" // Register commands
	"github.com/kurobon/gitviz/internal/state"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := config.DefaultConfig()
	srv := NewServer(git.NewSessionManager(cfg.SessionOptions()), cfg)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, ts
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := ts.Client().Post(ts.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := ts.Client().Get(ts.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func initSession(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp := postJSON(t, ts, "/api/session/init", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[map[string]string](t, resp)
	require.NotEmpty(t, res["sessionId"])
	return res["sessionId"]
}

func TestServerEndpoints(t *testing.T) {
	_, ts := newTestServer(t)

	t.Run("Ping", func(t *testing.T) {
		resp := get(t, ts, "/ping")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	sessionID := initSession(t, ts)
	assert.True(t, strings.HasPrefix(sessionID, "session-"))

	t.Run("Command", func(t *testing.T) {
		resp := postJSON(t, ts, "/api/command", CommandRequest{SessionID: sessionID, Command: "git commit -m 'first'"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		res := decode[map[string]string](t, resp)
		assert.Equal(t, "[master c2] first", res["output"])
		assert.Empty(t, res["error"])
	})

	t.Run("Command error", func(t *testing.T) {
		resp := postJSON(t, ts, "/api/command", CommandRequest{SessionID: sessionID, Command: "git rebase master"})
		res := decode[map[string]string](t, resp)
		assert.Contains(t, res["error"], "not a recognized command")
	})

	t.Run("Graph state", func(t *testing.T) {
		resp := get(t, ts, "/api/state?sessionId="+sessionID)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		gs := decode[git.GraphState](t, resp)
		assert.Equal(t, "master", gs.HEAD.Branch)
		assert.Len(t, gs.Commits, 2)
		assert.Len(t, gs.History, 1)
		assert.NotEmpty(t, gs.Fingerprint)
	})

	t.Run("Invalid Method", func(t *testing.T) {
		resp := get(t, ts, "/api/command")
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("Unknown session", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get(t, ts, "/api/state?sessionId=ghost").StatusCode)
		assert.Equal(t, http.StatusBadRequest, get(t, ts, "/api/state").StatusCode)
	})
}

func TestCommand_RestoresMissingSession(t *testing.T) {
	srv, ts := newTestServer(t)

	resp := postJSON(t, ts, "/api/command", CommandRequest{SessionID: "after-restart", Command: "git status"})
	res := decode[map[string]string](t, resp)
	assert.Contains(t, res["output"], "On branch master")

	_, ok := srv.SessionManager.GetSession("after-restart")
	assert.True(t, ok)
}

func TestApply(t *testing.T) {
	_, ts := newTestServer(t)
	sessionID := initSession(t, ts)

	apply := func(op state.Operation) *http.Response {
		return postJSON(t, ts, "/api/apply", ApplyRequest{SessionID: sessionID, Op: op})
	}

	resp := apply(state.BranchOp("feature"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[ApplyResponse](t, resp)
	assert.False(t, res.Result.Ignored)
	assert.Len(t, res.State.Branches, 2)

	tests := []struct {
		name   string
		op     state.Operation
		status int
	}{
		{"duplicate branch", state.BranchOp("feature"), http.StatusConflict},
		{"empty message", state.CommitOp("  "), http.StatusBadRequest},
		{"empty branch", state.BranchOp(""), http.StatusBadRequest},
		{"unknown kind", state.Operation{Kind: "rebase"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, apply(tt.op).StatusCode)
		})
	}

	resp = apply(state.MergeOp("master"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res = decode[ApplyResponse](t, resp)
	assert.True(t, res.Result.Ignored)
	assert.Equal(t, state.ReasonMergeIntoSelf, res.Result.Reason)
	assert.Len(t, res.State.History, 1, "rejected and ignored operations are not recorded")

	resp = postJSON(t, ts, "/api/apply", ApplyRequest{SessionID: "ghost", Op: state.CommitOp("x")})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUndo(t *testing.T) {
	_, ts := newTestServer(t)
	sessionID := initSession(t, ts)

	before := decode[git.GraphState](t, get(t, ts, "/api/state?sessionId="+sessionID))
	postJSON(t, ts, "/api/apply", ApplyRequest{SessionID: sessionID, Op: state.CommitOp("x")})

	resp := postJSON(t, ts, "/api/undo", map[string]string{"sessionId": sessionID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[ApplyResponse](t, resp)
	assert.Equal(t, "git commit -m 'x'", res.Result.Undone)
	assert.Equal(t, before.Fingerprint, res.State.Fingerprint)

	res = decode[ApplyResponse](t, postJSON(t, ts, "/api/undo", map[string]string{"sessionId": sessionID}))
	assert.True(t, res.Result.Ignored)
	assert.Equal(t, state.ReasonNothingToUndo, res.Result.Reason)
}

func TestGraphState_ETag(t *testing.T) {
	_, ts := newTestServer(t)
	sessionID := initSession(t, ts)
	url := ts.URL + "/api/state?sessionId=" + sessionID

	resp := get(t, ts, "/api/state?sessionId="+sessionID)
	tag := resp.Header.Get("ETag")
	require.NotEmpty(t, tag)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	req.Header.Set("If-None-Match", tag)
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)

	// Checking out the current branch changes only the undo log.
	postJSON(t, ts, "/api/apply", ApplyRequest{SessionID: sessionID, Op: state.CheckoutOp("master")})
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEqual(t, tag, resp.Header.Get("ETag"))
}

func TestRenderEndpoints(t *testing.T) {
	srv, ts := newTestServer(t)
	sessionID := initSession(t, ts)
	session, _ := srv.SessionManager.GetSession(sessionID)
	_, err := session.Play([]state.Operation{
		state.CommitOp("a"),
		state.BranchOp("feature"),
		state.CheckoutOp("feature"),
		state.CommitOp("b"),
		state.CheckoutOp("master"),
		state.MergeOp("feature"),
	})
	require.NoError(t, err)

	t.Run("Layout", func(t *testing.T) {
		resp := get(t, ts, "/api/layout?sessionId="+sessionID)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		l := decode[map[string]any](t, resp)
		assert.Len(t, l["nodes"], 4)
		assert.Len(t, l["edges"], 4)
		assert.EqualValues(t, 800, l["width"])
	})

	t.Run("SVG", func(t *testing.T) {
		resp := get(t, ts, "/api/graph.svg?sessionId="+sessionID)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(body), "<svg"))
	})

	t.Run("History", func(t *testing.T) {
		items := decode[[]state.HistoryItem](t, get(t, ts, "/api/history?sessionId="+sessionID))
		require.Len(t, items, 6)
		assert.Equal(t, "git merge feature", items[5].Command)
	})

	t.Run("Log", func(t *testing.T) {
		res := decode[map[string]string](t, get(t, ts, "/api/log?sessionId="+sessionID+"&oneline=true&limit=2"))
		lines := strings.Split(res["output"], "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "c4 (HEAD -> master)")

		assert.Equal(t, http.StatusBadRequest, get(t, ts, "/api/log?sessionId="+sessionID+"&limit=x").StatusCode)
		assert.Equal(t, http.StatusNotFound, get(t, ts, "/api/log?sessionId="+sessionID+"&branch=nope").StatusCode)
	})

	t.Run("Strategies", func(t *testing.T) {
		list := decode[[]state.BranchingStrategy](t, get(t, ts, "/api/strategies"))
		require.Len(t, list, 3)
		assert.Equal(t, "github-flow", list[0].ID)
	})
}

func TestMissionEndpoints(t *testing.T) {
	_, ts := newTestServer(t)

	list := decode[[]map[string]any](t, get(t, ts, "/api/missions"))
	require.Len(t, list, 3)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/missions", nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Language", "ja-JP,ja;q=0.9")
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	ja := decode[[]map[string]any](t, resp)
	assert.Equal(t, "はじめてのブランチ", ja[0]["title"])

	start := decode[StartMissionResponse](t, postJSON(t, ts, "/api/missions/start", StartMissionRequest{MissionID: "merge-feature"}))
	require.NotEmpty(t, start.SessionID)

	postJSON(t, ts, "/api/command", CommandRequest{SessionID: start.SessionID, Command: "git merge feature"})

	verify := postJSON(t, ts, "/api/missions/verify", VerifyMissionRequest{SessionID: start.SessionID, MissionID: "merge-feature"})
	require.Equal(t, http.StatusOK, verify.StatusCode)
	result := decode[map[string]any](t, verify)
	assert.Equal(t, true, result["success"])

	bad := postJSON(t, ts, "/api/missions/start", StartMissionRequest{MissionID: "nope"})
	assert.Equal(t, http.StatusInternalServerError, bad.StatusCode)
}
