// internal/handlers/game_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/eranhirsch/nothanks/internal/game"
)

// TableCommand is an incoming websocket message. The four game actions map
// 1:1 onto the state machine; "sync" re-sends the current view.
type TableCommand struct {
	Type string `json:"type"` // new_game | reveal | take | no_thanks | reveal_scores | sync

	// new_game fields, validated here before they reach the engine.
	Players      []string `json:"players,omitempty"`
	ShuffleSeats bool     `json:"shuffle_seats,omitempty"`
	StartingSeat *int     `json:"starting_seat,omitempty"`
}

// wsError is the per-connection error reply; rule rejections go only to
// the caller, never to the whole table.
type wsError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// TableWSHandler upgrades the connection for /table/ws/{table_id},
// authenticates the visitor (minting a guest session when needed),
// registers the watcher and runs the command loop.
func TableWSHandler(logger *logrus.Logger, ts *TableServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Auth runs before the upgrade so a freshly minted guest session
		// cookie still rides out on the handshake response.
		userID, err := EnsureEphemeralUser(w, r)
		if err != nil {
			logger.Warnf("authentication failed: %v", err)
			http.Error(w, "authentication failed", http.StatusInternalServerError)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"nothanks"},
			OriginPatterns: []string{"*"}, // Adjust for production security.
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler exit")

		if c.Subprotocol() != "nothanks" {
			c.Close(websocket.StatusCode(BadSubprotocolError), "client must use the 'nothanks' subprotocol")
			return
		}

		t, ok := tableFromPath(ts, r.URL.Path, "/table/ws/")
		if !ok {
			c.Close(websocket.StatusCode(InvalidTableIDError), "unknown table")
			return
		}
		logger.WithFields(logrus.Fields{
			"table":  t.ID,
			"user":   userID,
			"remote": r.RemoteAddr,
		}).Info("table watcher connected")

		ts.addWatcher(t.ID, c)
		defer ts.removeWatcher(t.ID, c)

		ctx := r.Context()

		// Initial sync so a (re)connecting client sees the table as-is. A
		// table with no game yet simply sends nothing.
		if view, err := t.State(ctx); err == nil {
			sendEvent(ctx, c, game.Event{Type: game.EventSyncState, State: view})
		} else if !errors.Is(err, game.ErrNoGame) {
			logger.WithError(err).Warn("initial state sync failed")
		}

		for {
			_, data, err := c.Read(ctx)
			if err != nil {
				logger.WithFields(logrus.Fields{"table": t.ID, "user": userID}).
					Debugf("read loop ended: %v", err)
				return
			}

			var cmd TableCommand
			if err := json.Unmarshal(data, &cmd); err != nil {
				sendError(ctx, c, fmt.Errorf("invalid command: %w", err))
				continue
			}

			// sync answers only the requesting connection; everything else
			// broadcasts through the table on success.
			if cmd.Type == "sync" {
				view, err := t.State(ctx)
				if err != nil {
					sendError(ctx, c, err)
					continue
				}
				sendEvent(ctx, c, game.Event{Type: game.EventSyncState, State: view})
				continue
			}

			if err := dispatchCommand(ctx, t, cmd); err != nil {
				sendError(ctx, c, err)
			}
		}
	}
}

// dispatchCommand validates and applies one command. Successful actions
// broadcast their events through the table; only failures are answered
// here.
func dispatchCommand(ctx context.Context, t *game.Table, cmd TableCommand) error {
	switch cmd.Type {
	case "new_game":
		names := make([]string, 0, len(cmd.Players))
		for _, n := range cmd.Players {
			if n == "" {
				return fmt.Errorf("player names must be non-empty")
			}
			names = append(names, n)
		}
		_, err := t.NewGame(ctx, names, game.Options{
			ShuffleSeats: cmd.ShuffleSeats,
			StartingSeat: cmd.StartingSeat,
		})
		return err
	case "reveal":
		_, err := t.Reveal(ctx)
		return err
	case "take":
		_, err := t.Take(ctx)
		return err
	case "no_thanks":
		_, err := t.Decline(ctx)
		return err
	case "reveal_scores":
		_, err := t.RevealScores(ctx)
		return err
	default:
		return fmt.Errorf("unknown command type %q", cmd.Type)
	}
}

func sendEvent(ctx context.Context, c *websocket.Conn, ev game.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_ = c.Write(ctx, websocket.MessageText, data)
}

func sendError(ctx context.Context, c *websocket.Conn, err error) {
	data, _ := json.Marshal(wsError{Type: "error", Error: err.Error(), Code: errorCode(err)})
	_ = c.Write(ctx, websocket.MessageText, data)
}
