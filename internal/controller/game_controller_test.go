package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benbeisheim/chessgame-backend/internal/middleware"
	"github.com/benbeisheim/chessgame-backend/internal/model"
	"github.com/benbeisheim/chessgame-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	gc := NewGameController(service.NewGameService(service.NewGameManager()))
	api := app.Group("/api", middleware.EnsurePlayerID())
	gc.Register(api.Group("/game"))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, player, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if player != "" {
		req.Header.Set("X-Player-ID", player)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func decodeSnapshot(t *testing.T, body map[string]interface{}) service.Snapshot {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	var snap service.Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	return snap
}

func createGame(t *testing.T, app *fiber.App) string {
	t.Helper()
	code, body := do(t, app, http.MethodPost, "/api/game/create", "alice", "")
	require.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, "white", body["color"])
	gameID, ok := body["game_id"].(string)
	require.True(t, ok)
	return gameID
}

func TestPlayerIDRequired(t *testing.T) {
	app := newTestApp()
	code, body := do(t, app, http.MethodPost, "/api/game/create", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Contains(t, body["error"], "Player ID is required")

	code, _ = do(t, app, http.MethodPost, "/api/game/create?playerId=alice", "", "")
	assert.Equal(t, fiber.StatusCreated, code)
}

func TestGameFlow(t *testing.T) {
	app := newTestApp()
	gameID := createGame(t, app)
	base := "/api/game/" + gameID

	code, body := do(t, app, http.MethodPost, "/api/game/join/"+gameID, "bob", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "black", body["color"])

	code, body = do(t, app, http.MethodPost, "/api/game/join/"+gameID, "carol", "")
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, service.ErrGameFull.Error(), body["error"])

	code, body = do(t, app, http.MethodPost, base+"/select", "alice", `{"row":6,"col":4}`)
	require.Equal(t, fiber.StatusOK, code)
	assert.Len(t, body["legalMoves"], 2)

	code, body = do(t, app, http.MethodGet, base+"/moves", "alice", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, []interface{}{"e2 → e3", "e2 → e4"}, body["possibleMoves"])

	code, _ = do(t, app, http.MethodPost, base+"/move", "alice", `{"from":{"row":6,"col":4},"to":{"row":3,"col":4}}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	code, _ = do(t, app, http.MethodPost, base+"/move", "bob", `{"from":{"row":1,"col":4},"to":{"row":3,"col":4}}`)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = do(t, app, http.MethodPost, base+"/select", "alice", `{"row":8,"col":4}`)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, body = do(t, app, http.MethodPost, base+"/move", "alice", `{"from":{"row":6,"col":4},"to":{"row":4,"col":4}}`)
	require.Equal(t, fiber.StatusOK, code)
	snap := decodeSnapshot(t, body)
	assert.Equal(t, model.Black, snap.State.ToMove)
	assert.Equal(t, []string{"1. e2-e4"}, snap.MoveList)

	code, body = do(t, app, http.MethodPost, base+"/click", "bob", `{"row":1,"col":4}`)
	require.Equal(t, fiber.StatusOK, code)
	require.NotNil(t, decodeSnapshot(t, body).State.SelectedSquare)
	code, body = do(t, app, http.MethodPost, base+"/click", "bob", `{"row":3,"col":4}`)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, model.White, decodeSnapshot(t, body).State.ToMove)

	code, body = do(t, app, http.MethodGet, base, "carol", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Len(t, decodeSnapshot(t, body).State.MoveHistory, 2)

	code, _ = do(t, app, http.MethodPost, base+"/undo", "carol", "")
	assert.Equal(t, fiber.StatusForbidden, code)

	code, body = do(t, app, http.MethodPost, base+"/undo", "bob", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Empty(t, decodeSnapshot(t, body).State.MoveHistory)

	for _, path := range []string{"/new", "/reset"} {
		code, body = do(t, app, http.MethodPost, base+path, "alice", "")
		require.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, model.NewGame().State(), decodeSnapshot(t, body).State)
	}
}

func TestCheckmateOverHTTP(t *testing.T) {
	app := newTestApp()
	gameID := createGame(t, app)
	base := "/api/game/" + gameID

	for _, m := range []string{
		`{"from":{"row":6,"col":5},"to":{"row":5,"col":5}}`,
		`{"from":{"row":1,"col":4},"to":{"row":3,"col":4}}`,
		`{"from":{"row":6,"col":6},"to":{"row":4,"col":6}}`,
		`{"from":{"row":0,"col":3},"to":{"row":4,"col":7}}`,
	} {
		code, _ := do(t, app, http.MethodPost, base+"/move", "alice", m)
		require.Equal(t, fiber.StatusOK, code, m)
	}

	code, body := do(t, app, http.MethodGet, base, "alice", "")
	require.Equal(t, fiber.StatusOK, code)
	snap := decodeSnapshot(t, body)
	assert.Equal(t, model.StatusCheckmate, snap.State.Status)
	assert.Equal(t, model.Black, snap.State.Winner)

	code, _ = do(t, app, http.MethodPost, base+"/move", "alice", `{"from":{"row":7,"col":4},"to":{"row":6,"col":5}}`)
	assert.Equal(t, fiber.StatusConflict, code)
}

func TestUnknownGameAndBadBody(t *testing.T) {
	app := newTestApp()
	code, body := do(t, app, http.MethodGet, "/api/game/nope", "alice", "")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, service.ErrGameNotFound.Error(), body["error"])

	gameID := createGame(t, app)
	code, _ = do(t, app, http.MethodPost, "/api/game/"+gameID+"/move", "alice", `{"from":`)
	assert.Equal(t, fiber.StatusBadRequest, code)

	for path, body := range map[string]string{
		"/select": `{"row":6}`,
		"/click":  `{"col":4}`,
		"/move":   `{"from":{"row":6,"col":4},"to":{"row":4}}`,
	} {
		code, _ = do(t, app, http.MethodPost, "/api/game/"+gameID+path, "alice", body)
		assert.Equal(t, fiber.StatusBadRequest, code, path)
	}
	code, body = do(t, app, http.MethodGet, "/api/game/"+gameID, "alice", "")
	require.Equal(t, fiber.StatusOK, code)
	snap := decodeSnapshot(t, body)
	assert.Nil(t, snap.State.SelectedSquare, "partial squares are not read as a8")
	assert.Empty(t, snap.State.MoveHistory)
}
