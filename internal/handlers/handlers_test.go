// internal/handlers/handlers_test.go
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eranhirsch/nothanks/internal/auth"
	"github.com/eranhirsch/nothanks/internal/database"
	"github.com/eranhirsch/nothanks/internal/game"
	"github.com/eranhirsch/nothanks/internal/store"
)

func newTestServer(t *testing.T) *TableServer {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewTableServer(store.NewMemoryStore(), logger)
}

func TestCreateAndListTables(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/table/create", strings.NewReader(`{"name":"friday night"}`))
	rec := httptest.NewRecorder()
	CreateTableHandler(ts)(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		TableID string `json:"table_id"`
		Name    string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "friday night", created.Name)
	assert.NotEmpty(t, created.TableID)

	req = httptest.NewRequest(http.MethodGet, "/table/list", nil)
	rec = httptest.NewRecorder()
	ListTablesHandler(ts)(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var tables []struct {
		TableID string `json:"table_id"`
		Name    string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tables))
	require.Len(t, tables, 1)
	assert.Equal(t, created.TableID, tables[0].TableID)
}

func TestCreateTableRejectsBadInput(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/table/create", nil)
	rec := httptest.NewRecorder()
	CreateTableHandler(ts)(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/table/create", strings.NewReader("{"))
	rec = httptest.NewRecorder()
	CreateTableHandler(ts)(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTableStateHandler(t *testing.T) {
	ts := newTestServer(t)
	tb := ts.CreateTable("state test")

	// No game yet: 404 with a machine-readable code.
	req := httptest.NewRequest(http.MethodGet, "/table/state/"+tb.ID.String(), nil)
	rec := httptest.NewRecorder()
	TableStateHandler(ts)(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, err := tb.NewGame(context.Background(), []string{"alice", "bob", "carol"}, game.Options{})
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	TableStateHandler(ts)(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var view game.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 24, view.DeckSize)
	assert.Len(t, view.Players, 3)

	// Unknown table id.
	req = httptest.NewRequest(http.MethodGet, "/table/state/00000000-0000-0000-0000-000000000000", nil)
	rec = httptest.NewRecorder()
	TableStateHandler(ts)(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDispatchCommand(t *testing.T) {
	ts := newTestServer(t)
	tb := ts.CreateTable("dispatch test")
	ctx := context.Background()

	err := dispatchCommand(ctx, tb, TableCommand{Type: "reveal"})
	assert.ErrorIs(t, err, game.ErrNoGame)

	err = dispatchCommand(ctx, tb, TableCommand{
		Type:    "new_game",
		Players: []string{"alice", "bob", "carol", "dave"},
	})
	require.NoError(t, err)

	require.NoError(t, dispatchCommand(ctx, tb, TableCommand{Type: "reveal"}))
	require.NoError(t, dispatchCommand(ctx, tb, TableCommand{Type: "no_thanks"}))
	require.NoError(t, dispatchCommand(ctx, tb, TableCommand{Type: "take"}))

	err = dispatchCommand(ctx, tb, TableCommand{Type: "take"})
	assert.ErrorIs(t, err, game.ErrNoCardRevealed)

	err = dispatchCommand(ctx, tb, TableCommand{Type: "reveal_scores"})
	assert.ErrorIs(t, err, game.ErrGameNotOver)

	err = dispatchCommand(ctx, tb, TableCommand{Type: "flip"})
	assert.Error(t, err)

	err = dispatchCommand(ctx, tb, TableCommand{Type: "new_game", Players: []string{"alice", "", "carol"}})
	assert.Error(t, err)
}

func TestUserHandlersWithoutDatabase(t *testing.T) {
	require.Nil(t, database.DB, "test assumes no postgres connection")

	req := httptest.NewRequest(http.MethodPost, "/user/create",
		strings.NewReader(`{"email":"a@example.com","password":"pw","username":"a"}`))
	rec := httptest.NewRecorder()
	CreateUserHandler(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/user/login",
		strings.NewReader(`{"email":"a@example.com","password":"pw"}`))
	rec = httptest.NewRecorder()
	LoginHandler(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestTableWSSyncRepliesToRequester(t *testing.T) {
	require.NoError(t, auth.Init())

	ts := newTestServer(t)
	tb := ts.CreateTable("ws sync test")
	_, err := tb.NewGame(context.Background(), []string{"alice", "bob", "carol"}, game.Options{})
	require.NoError(t, err)

	srv := httptest.NewServer(TableWSHandler(ts.Logger, ts))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, _, err := websocket.Dial(ctx, srv.URL+"/table/ws/"+tb.ID.String(), &websocket.DialOptions{
		Subprotocols: []string{"nothanks"},
	})
	require.NoError(t, err)
	defer c.Close(websocket.StatusNormalClosure, "")

	readEvent := func() game.Event {
		_, data, err := c.Read(ctx)
		require.NoError(t, err)
		var ev game.Event
		require.NoError(t, json.Unmarshal(data, &ev))
		return ev
	}

	// Connecting yields an initial state sync.
	ev := readEvent()
	require.Equal(t, game.EventSyncState, ev.Type)
	require.NotNil(t, ev.State)

	// An explicit sync request is answered on this connection, not
	// broadcast through the table.
	require.NoError(t, c.Write(ctx, websocket.MessageText, []byte(`{"type":"sync"}`)))
	ev = readEvent()
	assert.Equal(t, game.EventSyncState, ev.Type)
	require.NotNil(t, ev.State)
	assert.Equal(t, 24, ev.State.DeckSize)
}

func TestErrorMapping(t *testing.T) {
	assert.Equal(t, "busy", errorCode(game.ErrBusy))
	assert.Equal(t, http.StatusServiceUnavailable, errorStatus(game.ErrBusy))

	assert.Equal(t, "insufficient_tokens", errorCode(game.ErrInsufficientTokens))
	assert.Equal(t, http.StatusConflict, errorStatus(game.ErrInsufficientTokens))

	assert.Equal(t, "player_count", errorCode(game.ErrPlayerCount))
	assert.Equal(t, http.StatusBadRequest, errorStatus(game.ErrPlayerCount))

	assert.Equal(t, "no_game", errorCode(game.ErrNoGame))
	assert.Equal(t, http.StatusNotFound, errorStatus(game.ErrNoGame))

	assert.Equal(t, "", errorCode(assert.AnError))
	assert.Equal(t, http.StatusInternalServerError, errorStatus(assert.AnError))
}
