package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-planner/coverage"
	"team-planner/data"
	"team-planner/parser"
	"team-planner/store"
	"team-planner/types"
)

const pikachuExport = `{"team":[{"pokemon":{"id":25,"name":"pikachu","types":["electric"]},"moves":[{"name":"surf","type":"water","power":90}],"nature":"timid"}],"exportedAt":"2024-05-01T12:00:00Z"}`

func testServer(t *testing.T, withStore bool) *httptest.Server {
	t.Helper()

	dex, err := data.Load(filepath.Join("..", "data", "testdata", "dex.json"))
	require.NoError(t, err)

	opts := Options{Dex: dex, Logger: log.New(io.Discard, "", 0)}
	if withStore {
		st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "teams.db"))
		require.NoError(t, err)
		t.Cleanup(func() { st.Close() })
		opts.Store = st
	}

	h, err := NewHandler(opts)
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func TestNewHandler_RequiresDex(t *testing.T) {
	t.Parallel()

	_, err := NewHandler(Options{})
	assert.Error(t, err)
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	srv := testServer(t, false)
	resp, body := do(t, http.MethodGet, srv.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
	assert.Contains(t, string(body), `"ok":true`)
}

func TestCoverage(t *testing.T) {
	t.Parallel()

	srv := testServer(t, false)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/coverage", pikachuExport)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var res coverage.Result
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, 1, res.Members)
	assert.Equal(t, 1, res.Offensive[types.Fire])
	assert.Equal(t, []string{"pikachu"}, res.Defensive[types.Ground].Weaknesses)

	for _, bad := range []string{
		`nope`,
		`{"team":{}}`,
		`{}`,
		`{"team":[{"pokemon":{"name":"x","types":["fire","fire","fire"]}}]}`,
		`{"team":[{"pokemon":{"name":"y","types":[]}}]}`,
	} {
		resp, _ := do(t, http.MethodPost, srv.URL+"/api/coverage", bad)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, bad)
	}

	resp, _ = do(t, http.MethodGet, srv.URL+"/api/coverage", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestMatchups(t *testing.T) {
	t.Parallel()

	srv := testServer(t, false)

	resp, body := do(t, http.MethodGet, srv.URL+"/api/matchups?types=grass,Flying", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var m struct {
		Types  []string `json:"types"`
		WeakTo []struct {
			Type       string  `json:"type"`
			Multiplier float64 `json:"multiplier"`
		} `json:"weakTo"`
	}
	require.NoError(t, json.Unmarshal(body, &m))
	assert.Equal(t, []string{"grass", "flying"}, m.Types)
	require.NotEmpty(t, m.WeakTo)
	assert.Equal(t, "fire", m.WeakTo[0].Type)

	for _, q := range []string{"", "?types=", "?types=bird", "?types=fire,water,grass", "?types=fire,fire"} {
		resp, _ := do(t, http.MethodGet, srv.URL+"/api/matchups"+q, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestSpecies(t *testing.T) {
	t.Parallel()

	srv := testServer(t, false)

	resp, body := do(t, http.MethodGet, srv.URL+"/api/species/pikachu", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		Pokemon   struct{ Name string } `json:"pokemon"`
		Learnset  data.Learnset         `json:"learnset"`
		Evolution []data.EvolutionStage `json:"evolution"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "pikachu", got.Pokemon.Name)
	assert.Len(t, got.Learnset.LevelUp, 3)
	require.Len(t, got.Evolution, 2)
	assert.Equal(t, "raichu", got.Evolution[1].Name)
	assert.Equal(t, "Use thunder stone, Use item", got.Evolution[1].Requirement)

	resp, _ = do(t, http.MethodGet, srv.URL+"/api/species/mew", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = do(t, http.MethodGet, srv.URL+"/api/species", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "gyarados")

	resp, body = do(t, http.MethodGet, srv.URL+"/api/items", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "leftovers")
	assert.NotContains(t, string(body), "poke-ball")

	resp, body = do(t, http.MethodGet, srv.URL+"/api/natures", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `{"name":"adamant","up":"attack","down":"special-attack"}`)
}

func TestTeams(t *testing.T) {
	t.Parallel()

	srv := testServer(t, true)

	resp, _ := do(t, http.MethodPut, srv.URL+"/api/teams/rain", pikachuExport)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := do(t, http.MethodGet, srv.URL+"/api/teams/rain", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, pikachuExport, string(body))

	resp, body = do(t, http.MethodGet, srv.URL+"/api/teams/rain/coverage", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"members":1`)

	resp, body = do(t, http.MethodGet, srv.URL+"/api/teams", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"name":"rain"`)

	resp, _ = do(t, http.MethodPut, srv.URL+"/api/teams/bad", `{"team":"x"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, http.MethodDelete, srv.URL+"/api/teams/rain", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = do(t, http.MethodDelete, srv.URL+"/api/teams/rain", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = do(t, http.MethodGet, srv.URL+"/api/teams/rain", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTeams_NoStore(t *testing.T) {
	t.Parallel()

	srv := testServer(t, false)
	resp, _ := do(t, http.MethodGet, srv.URL+"/api/teams", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCoverage_TooLarge(t *testing.T) {
	t.Parallel()

	srv := testServer(t, false)
	big := bytes.Repeat([]byte(" "), maxBodyBytes+1)
	resp, _ := do(t, http.MethodPost, srv.URL+"/api/coverage", string(big))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func dialSession(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, line string) parser.Reply {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(line)))
	var rep parser.Reply
	require.NoError(t, conn.ReadJSON(&rep))
	return rep
}

func TestSession(t *testing.T) {
	t.Parallel()

	srv := testServer(t, true)
	conn := dialSession(t, srv)

	rep := send(t, conn, "|assign|2|pikachu")
	require.True(t, rep.OK, rep.Error)
	require.Len(t, rep.Roster, 6)
	assert.Nil(t, rep.Roster[0])
	require.NotNil(t, rep.Roster[2])
	assert.Equal(t, "pikachu", rep.Roster[2].Pokemon.Name)
	assert.Equal(t, []string{"pikachu"}, rep.Coverage.Defensive[types.Ground].Weaknesses)

	rep = send(t, conn, "|move|2|surf")
	require.True(t, rep.OK)
	assert.Equal(t, 1, rep.Coverage.Offensive[types.Fire])

	rep = send(t, conn, "|assign|0|missingno")
	assert.False(t, rep.OK)
	assert.Contains(t, rep.Error, "not found")
	assert.NotNil(t, rep.Roster[2], "state is kept after a failed line")

	rep = send(t, conn, "|save|session-team")
	require.True(t, rep.OK, rep.Error)

	rep = send(t, conn, "|clear")
	require.True(t, rep.OK)
	assert.Zero(t, rep.Coverage.Members)

	rep = send(t, conn, "|load|session-team")
	require.True(t, rep.OK, rep.Error)
	require.NotNil(t, rep.Roster[0], "loaded teams are compacted")
	assert.Equal(t, "pikachu", rep.Roster[0].Pokemon.Name)

	rep = send(t, conn, "|load|nope")
	assert.False(t, rep.OK)

	rep = send(t, conn, "|save|")
	assert.False(t, rep.OK)
}

func TestSession_NoStore(t *testing.T) {
	t.Parallel()

	srv := testServer(t, false)
	conn := dialSession(t, srv)

	rep := send(t, conn, "|save|x")
	assert.False(t, rep.OK)
	assert.Contains(t, rep.Error, "not configured")
}

func TestHTMLFormat(t *testing.T) {
	t.Parallel()

	srv := testServer(t, false)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/coverage?format=html", pikachuExport)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), "<div class='coverage-summary'>")

	resp, body = do(t, http.MethodGet, srv.URL+"/api/matchups?types=water&format=HTML", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "<div class='matchup'>")
}
