package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/gitviz/internal/config"
	"github.com/kurobon/gitviz/internal/git"
)

func dial(t *testing.T, ts *httptest.Server, query string, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	return websocket.DefaultDialer.Dial(url, header)
}

func TestWebSocket_CommandLoop(t *testing.T) {
	_, ts := newTestServer(t)
	sessionID := initSession(t, ts)

	conn, _, err := dial(t, ts, "?sessionId="+sessionID, nil)
	require.NoError(t, err)
	defer conn.Close()

	var hello WSReply
	require.NoError(t, conn.ReadJSON(&hello))
	require.NotNil(t, hello.State)
	assert.Len(t, hello.State.Commits, 1)

	steps := []struct {
		command string
		output  string
		errMsg  string
		commits int
	}{
		{"git commit -m a", "[master c2] a", "", 2},
		{"git branch feature", "", "", 2},
		{"git branch feature", "", "already exists", 2},
		{"undo", "Undid: git branch feature", "", 2},
		{"", "", "", 2},
	}
	for _, st := range steps {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(st.command)))
		var reply WSReply
		require.NoError(t, conn.ReadJSON(&reply))
		assert.Equal(t, st.output, reply.Output, st.command)
		if st.errMsg == "" {
			assert.Empty(t, reply.Error, st.command)
		} else {
			assert.Contains(t, reply.Error, st.errMsg, st.command)
		}
		assert.Len(t, reply.State.Commits, st.commits, st.command)
	}
}

func TestWebSocket_Origin(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.AllowedOrigins = []string{"http://localhost:5173"}
	srv := NewServer(git.NewSessionManager(cfg.SessionOptions()), cfg)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	tests := []struct {
		origin string
		ok     bool
	}{
		{"", true},
		{ts.URL, true},
		{"http://localhost:5173", true},
		{"http://evil.example", false},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			header := http.Header{}
			if tt.origin != "" {
				header.Set("Origin", tt.origin)
			}
			conn, resp, err := dial(t, ts, "?sessionId=ws-origin", header)
			if tt.ok {
				require.NoError(t, err)
				conn.Close()
				return
			}
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		})
	}
}

func TestWebSocket_RequiresSessionID(t *testing.T) {
	_, ts := newTestServer(t)
	_, resp, err := dial(t, ts, "", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebSocket_OversizedFrame(t *testing.T) {
	srv, ts := newTestServer(t)
	sessionID := initSession(t, ts)

	conn, _, err := dial(t, ts, "?sessionId="+sessionID, nil)
	require.NoError(t, err)
	defer conn.Close()

	var hello WSReply
	require.NoError(t, conn.ReadJSON(&hello))

	big := "git commit -m " + strings.Repeat("x", maxCommandSize)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(big)))

	var reply WSReply
	err = conn.ReadJSON(&reply)
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseMessageTooBig), "got %v", err)

	s, ok := srv.SessionManager.GetSession(sessionID)
	require.True(t, ok)
	assert.Len(t, s.Repository().Commits, 1, "oversized command never ran")
}
