package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/jchess-go/internal/config"
	"github.com/lgbarn/jchess-go/internal/engine"
	"github.com/lgbarn/jchess-go/internal/errors"
	"github.com/lgbarn/jchess-go/internal/output"
	"github.com/lgbarn/jchess-go/internal/testutil"
)

const castleFEN = "4k3/8/8/8/8/8/8/4K2R w K - 0 1"

func newTestApp(t *testing.T, maxGames int) (*fiber.App, *SessionStore) {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Verbosity = 0
	cfg.Server.MaxGames = maxGames
	store := NewSessionStore(maxGames)
	return New(cfg, store), store
}

// do sends a request and decodes a JSON response into out (if non-nil).
func do(t *testing.T, app *fiber.App, method, path string, body interface{}, out interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func createGame(t *testing.T, app *fiber.App, fen string) createResponse {
	t.Helper()
	var body interface{}
	if fen != "" {
		body = createRequest{FEN: fen}
	}
	var created createResponse
	resp := do(t, app, http.MethodPost, "/api/games", body, &created)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return created
}

func TestCreateGame(t *testing.T) {
	app, store := newTestApp(t, 0)

	created := createGame(t, app, "")
	_, err := uuid.Parse(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, engine.InitialFEN, created.Board.FEN)
	assert.Len(t, created.Board.Position.Pieces, 32)

	fromFEN := createGame(t, app, castleFEN)
	assert.Equal(t, castleFEN, fromFEN.Board.FEN)
	assert.NotEqual(t, created.ID, fromFEN.ID)
	assert.Equal(t, 2, store.Len())
}

func TestCreateGame_Errors(t *testing.T) {
	app, _ := newTestApp(t, 1)

	resp := do(t, app, http.MethodPost, "/api/games", createRequest{FEN: "8/8/8 w"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	createGame(t, app, "")
	resp = do(t, app, http.MethodPost, "/api/games", nil, nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestGetGame(t *testing.T) {
	app, _ := newTestApp(t, 0)
	created := createGame(t, app, "")

	var got gameResponse
	resp := do(t, app, http.MethodGet, "/api/games/"+created.ID, nil, &got)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, engine.InitialFEN, got.StartFEN)
	assert.Zero(t, got.PlyCount)
	assert.Equal(t, "White", got.Board.Position.ToMove)

	resp = do(t, app, http.MethodGet, "/api/games/"+uuid.New().String(), nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMakeMove(t *testing.T) {
	app, _ := newTestApp(t, 0)
	created := createGame(t, app, "")
	path := "/api/games/" + created.ID + "/moves"

	var first moveResponse
	resp := do(t, app, http.MethodPost, path, MoveRequest{Move: "e4"}, &first)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, first.Applied)
	require.NotNil(t, first.Move)
	assert.Equal(t, "e2e4", first.Move.UCI)
	assert.Equal(t, 1, first.Move.Ply)

	var second moveResponse
	resp = do(t, app, http.MethodPost, path, MoveRequest{From: "e7", To: "e5"}, &second)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, second.Move.Ply)

	g := testutil.MustGame(t, "")
	testutil.MustPlay(t, g, "e4", "e5")
	assert.Equal(t, g.FEN(), second.Board.FEN)

	var history gameResponse
	do(t, app, http.MethodGet, "/api/games/"+created.ID, nil, &history)
	assert.Equal(t, 2, history.PlyCount)
	assert.Equal(t, "e4", history.Moves[0].Text)
}

func TestMakeMove_Failures(t *testing.T) {
	tests := []struct {
		name       string
		req        interface{}
		wantStatus int
		wantReason string
	}{
		{"wrong side", MoveRequest{From: "e7", To: "e5"}, fiber.StatusUnprocessableEntity, "piece does not belong to the side to move"},
		{"unreachable", MoveRequest{From: "e2", To: "e5"}, fiber.StatusUnprocessableEntity, "destination is not reachable"},
		{"friendly square", MoveRequest{From: "d1", To: "d2"}, fiber.StatusUnprocessableEntity, "destination holds a friendly piece"},
		{"unresolved notation", MoveRequest{Move: "Nf5"}, fiber.StatusBadRequest, ""},
		{"empty origin", MoveRequest{From: "e4", To: "e5"}, fiber.StatusBadRequest, ""},
		{"bad square", MoveRequest{From: "e2", To: "e9"}, fiber.StatusBadRequest, ""},
		{"bad promotion letter", MoveRequest{From: "e2", To: "e4", Promotion: "K"}, fiber.StatusBadRequest, ""},
		{"empty request", MoveRequest{}, fiber.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, 0)
			created := createGame(t, app, "")

			var got map[string]interface{}
			resp := do(t, app, http.MethodPost, "/api/games/"+created.ID+"/moves", tt.req, &got)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantReason != "" {
				assert.Equal(t, false, got["applied"])
				assert.Equal(t, tt.wantReason, got["reason"])
			} else {
				assert.NotEmpty(t, got["error"])
			}

			// The board is untouched.
			var after gameResponse
			do(t, app, http.MethodGet, "/api/games/"+created.ID, nil, &after)
			assert.Equal(t, engine.InitialFEN, after.Board.FEN)
		})
	}
}

func TestMakeMove_UnknownGame(t *testing.T) {
	app, _ := newTestApp(t, 0)
	resp := do(t, app, http.MethodPost, "/api/games/nope/moves", MoveRequest{Move: "e4"}, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDestinations(t *testing.T) {
	app, _ := newTestApp(t, 0)
	created := createGame(t, app, "")
	base := "/api/games/" + created.ID + "/destinations/"

	var got destinationsResponse
	resp := do(t, app, http.MethodGet, base+"e2", nil, &got)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "e2", got.Square)
	assert.ElementsMatch(t, []string{"e3", "e4"}, got.Destinations)

	resp = do(t, app, http.MethodGet, base+"e4", nil, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodGet, base+"z9", nil, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestBoardSVG(t *testing.T) {
	app, _ := newTestApp(t, 0)
	created := createGame(t, app, "")
	path := "/api/games/" + created.ID + "/board.svg"

	resp := do(t, app, http.MethodGet, path, nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<svg")
	assert.NotContains(t, string(body), "<circle")

	resp = do(t, app, http.MethodGet, path+"?highlight=g1", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(body), "<circle"))

	resp = do(t, app, http.MethodGet, path+"?highlight=e4", nil, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteGame(t *testing.T) {
	app, store := newTestApp(t, 0)
	created := createGame(t, app, "")

	resp := do(t, app, http.MethodDelete, "/api/games/"+created.ID, nil, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Zero(t, store.Len())

	resp = do(t, app, http.MethodGet, "/api/games/"+created.ID, nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = do(t, app, http.MethodDelete, "/api/games/"+created.ID, nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListGames(t *testing.T) {
	app, store := newTestApp(t, 0)
	for i := 0; i < 3; i++ {
		createGame(t, app, "")
	}

	var got struct {
		Games []string `json:"games"`
	}
	resp := do(t, app, http.MethodGet, "/api/games", nil, &got)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, got.Games, 3)
	assert.IsNonDecreasing(t, got.Games)
	assert.Equal(t, store.IDs(), got.Games)
}

func TestWebSocketRouteRequiresUpgrade(t *testing.T) {
	app, _ := newTestApp(t, 0)
	created := createGame(t, app, "")

	resp := do(t, app, http.MethodGet, "/ws/games/"+created.ID, nil, nil)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestHandleMessage(t *testing.T) {
	store := NewSessionStore(0)
	s, err := store.Create("")
	require.NoError(t, err)

	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "move", raw: `{"type":"move","payload":{"move":"Nf3"}}`},
		{name: "rejected", raw: `{"type":"move","payload":{"from":"b8","to":"b6"}}`, wantErr: errors.ErrIllegalMove},
		{name: "unresolved", raw: `{"type":"move","payload":{"move":"Qh5"}}`, wantErr: errors.ErrUnresolvedNotation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := handleMessage(s, []byte(tt.raw), config.NotationAuto)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "error = %v, want %v", err, tt.wantErr)
		})
	}

	assert.Error(t, handleMessage(s, []byte(`not json`), config.NotationAuto))
	assert.Error(t, handleMessage(s, []byte(`{"type":"resign","payload":{}}`), config.NotationAuto))
	assert.Equal(t, 1, s.Game().PlyCount)
}

func TestMessages(t *testing.T) {
	state, err := stateMessage(output.BoardToJSON(engine.NewInitialBoard(), nil))
	require.NoError(t, err)
	assert.Equal(t, MessageTypeGameState, state.Type)
	assert.Contains(t, string(state.Payload), engine.InitialFEN)

	msg, err := errorMessage(`bad "move"`)
	require.NoError(t, err)
	var text string
	require.NoError(t, json.Unmarshal(msg.Payload, &text))
	assert.Equal(t, `bad "move"`, text)
}

// TestSessionMoveConcurrent races several goroutines to make the same
// move; the session lock lets exactly one of them apply it.
func TestSessionMoveConcurrent(t *testing.T) {
	store := NewSessionStore(0)
	s, err := store.Create("")
	require.NoError(t, err)

	const n = 8
	var wg sync.WaitGroup
	applied := make(chan bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := s.Move(MoveRequest{From: "e2", To: "e4"}, config.NotationAuto)
			applied <- err == nil && result.Applied
		}()
	}
	wg.Wait()
	close(applied)

	count := 0
	for ok := range applied {
		if ok {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, s.Game().PlyCount)
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore(0)
	_, err := store.Get("missing")
	assert.True(t, errors.Is(err, errors.ErrGameNotFound))

	_, err = store.Create("garbage")
	assert.True(t, errors.Is(err, errors.ErrInvalidFEN))
	assert.Zero(t, store.Len())

	s, err := store.Create(castleFEN)
	require.NoError(t, err)
	got, err := store.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Zero(t, s.Watchers())
}
