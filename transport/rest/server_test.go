package rest

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-session/internal/repository"
	"github.com/rocketscienceinc/tictactoe-session/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-session/testing/suite"
	"github.com/rocketscienceinc/tictactoe-session/transport/view"
)

type apiClient struct {
	t      *testing.T
	base   string
	client *http.Client
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()

	_, st := suite.New(t)
	manager := usecase.NewSessionManager(st.Logger, repository.NewMemorySessionRepository(time.Hour))

	srv := httptest.NewServer(New(st.Logger, manager, time.Hour).Handler())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &apiClient{t: t, base: srv.URL, client: &http.Client{Jar: jar}}
}

func (that *apiClient) do(method, path, body string) (int, *view.Session) {
	that.t.Helper()

	req, err := http.NewRequest(method, that.base+path, strings.NewReader(body))
	require.NoError(that.t, err)

	resp, err := that.client.Do(req)
	require.NoError(that.t, err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}

	var session view.Session
	require.NoError(that.t, json.NewDecoder(resp.Body).Decode(&session))

	return resp.StatusCode, &session
}

func TestServer_Ping(t *testing.T) {
	api := newAPI(t)

	resp, err := api.client.Get(api.base + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Session(t *testing.T) {
	t.Run("New visitor gets a fresh session and a cookie", func(t *testing.T) {
		api := newAPI(t)

		// When: the session is requested without a cookie
		status, session := api.do(http.MethodGet, "/api/session", "")

		// Then: an empty board with X to move is returned
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, []string{"", "", "", "", "", "", "", "", ""}, session.Board)
		assert.Equal(t, "X", session.Turn)
		assert.Equal(t, "spatial", session.RenderMode)
		assert.Empty(t, session.History)

		// And: the next request reuses the same session
		_, again := api.do(http.MethodGet, "/api/session", "")
		assert.Equal(t, session.ID, again.ID)
	})

	t.Run("Winning game is highlighted and recorded", func(t *testing.T) {
		api := newAPI(t)

		// When: X:0, O:3, X:1, O:4, X:2
		var session *view.Session
		for _, cell := range []string{"0", "3", "1", "4", "2"} {
			var status int
			status, session = api.do(http.MethodPost, "/api/cells/"+cell, "")
			require.Equal(t, http.StatusOK, status)
			require.Empty(t, session.Rejected)
		}

		// Then: X won along the top row
		assert.Equal(t, "won", session.Status)
		assert.Equal(t, "X", session.Winner)
		assert.Equal(t, []int{0, 1, 2}, session.WinningLine)
		assert.Len(t, session.History, 1)
		assert.Equal(t, 1, session.Tally.X)

		// When: another cell is clicked
		_, rejected := api.do(http.MethodPost, "/api/cells/8", "")

		// Then: the move is rejected without changing the board
		assert.Equal(t, "game is already finished", rejected.Rejected)
		assert.Equal(t, session.Board, rejected.Board)
		assert.Len(t, rejected.History, 1)
	})

	t.Run("Occupied cell is rejected", func(t *testing.T) {
		api := newAPI(t)

		_, first := api.do(http.MethodPost, "/api/cells/4", "")
		_, second := api.do(http.MethodPost, "/api/cells/4", "")

		assert.Equal(t, "cell is already occupied", second.Rejected)
		assert.Equal(t, first.Board, second.Board)
		assert.Equal(t, "O", second.Turn)
	})

	t.Run("Bad cell index", func(t *testing.T) {
		api := newAPI(t)

		status, _ := api.do(http.MethodPost, "/api/cells/abc", "")
		assert.Equal(t, http.StatusBadRequest, status)

		_, session := api.do(http.MethodPost, "/api/cells/9", "")
		assert.Equal(t, "invalid cell index", session.Rejected)
	})

	t.Run("Restart and clear history", func(t *testing.T) {
		api := newAPI(t)
		for _, cell := range []string{"0", "3", "1", "4", "2"} {
			api.do(http.MethodPost, "/api/cells/"+cell, "")
		}

		// When: restarting
		_, restarted := api.do(http.MethodPost, "/api/restart", "")

		// Then: board is empty and the history kept
		assert.Equal(t, "in_progress", restarted.Status)
		assert.Equal(t, "X", restarted.Turn)
		assert.Len(t, restarted.History, 1)

		// When: clearing the history
		_, cleared := api.do(http.MethodPost, "/api/history/clear", "")

		// Then: history is empty
		assert.Empty(t, cleared.History)
		assert.Equal(t, restarted.Board, cleared.Board)
	})

	t.Run("Render mode", func(t *testing.T) {
		api := newAPI(t)

		_, session := api.do(http.MethodPut, "/api/mode", `{"mode":"flat"}`)
		assert.Equal(t, "flat", session.RenderMode)

		status, _ := api.do(http.MethodPut, "/api/mode", `{"mode":"hologram"}`)
		assert.Equal(t, http.StatusBadRequest, status)

		status, _ = api.do(http.MethodPut, "/api/mode", `not json`)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Close session", func(t *testing.T) {
		api := newAPI(t)
		_, session := api.do(http.MethodPost, "/api/cells/4", "")

		status, _ := api.do(http.MethodDelete, "/api/session", "")
		require.Equal(t, http.StatusNoContent, status)

		_, fresh := api.do(http.MethodGet, "/api/session", "")
		assert.NotEqual(t, session.ID, fresh.ID)
		assert.Equal(t, "", fresh.Board[4])
	})
}

func TestServer_SessionCookie(t *testing.T) {
	// Given: sessions stored for 30 minutes
	_, st := suite.New(t)
	manager := usecase.NewSessionManager(st.Logger, repository.NewMemorySessionRepository(30*time.Minute))
	srv := httptest.NewServer(New(st.Logger, manager, 30*time.Minute).Handler())
	t.Cleanup(srv.Close)

	// When: a new visitor opens the session
	resp, err := http.Get(srv.URL + "/api/session")
	require.NoError(t, err)
	defer resp.Body.Close()

	// Then: the cookie expires together with the stored session
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == view.SessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, 1800, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
}
