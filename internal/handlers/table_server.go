// internal/handlers/table_server.go
package handlers

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eranhirsch/nothanks/internal/database"
	"github.com/eranhirsch/nothanks/internal/game"
)

// TableServer owns the live tables and the websocket watchers attached to
// each. It wires every new table's broadcast to the watcher set and its
// game-end hook to the results archive.
type TableServer struct {
	Tables    *game.TableStore
	Snapshots game.SnapshotStore
	Logger    *logrus.Logger

	// GateTimeout bounds how long an action waits for a table's gate.
	GateTimeout time.Duration

	// ArchiveResults enables writing finished scorecards to postgres.
	ArchiveResults bool

	mu       sync.Mutex
	watchers map[uuid.UUID]map[*websocket.Conn]struct{}
}

func NewTableServer(snapshots game.SnapshotStore, logger *logrus.Logger) *TableServer {
	if logger == nil {
		logger = logrus.New()
	}
	return &TableServer{
		Tables:      game.NewTableStore(),
		Snapshots:   snapshots,
		Logger:      logger,
		GateTimeout: game.DefaultGateTimeout,
		watchers:    make(map[uuid.UUID]map[*websocket.Conn]struct{}),
	}
}

// CreateTable registers a new empty table and hooks up broadcasting and
// result archiving.
func (ts *TableServer) CreateTable(name string) *game.Table {
	t := game.NewTable(name, ts.Snapshots, ts.GateTimeout, ts.Logger)
	t.BroadcastFn = ts.broadcastFunc(t.ID)
	if ts.ArchiveResults {
		t.OnGameEnd = ts.archiveResults
	}
	ts.Tables.Add(t)
	ts.Logger.WithFields(logrus.Fields{"table": t.ID, "name": name}).Info("table created")
	return t
}

// addWatcher registers a websocket connection for a table's broadcasts.
func (ts *TableServer) addWatcher(tableID uuid.UUID, c *websocket.Conn) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.watchers[tableID] == nil {
		ts.watchers[tableID] = make(map[*websocket.Conn]struct{})
	}
	ts.watchers[tableID][c] = struct{}{}
}

func (ts *TableServer) removeWatcher(tableID uuid.UUID, c *websocket.Conn) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	delete(ts.watchers[tableID], c)
}

// broadcastFunc fans one event out to every watcher. Writes run in their
// own goroutine with a deadline so a stalled client cannot hold up the
// action path; the table gate is already released by the time the writes
// land.
func (ts *TableServer) broadcastFunc(tableID uuid.UUID) func(ev game.Event) {
	return func(ev game.Event) {
		data, err := json.Marshal(ev)
		if err != nil {
			ts.Logger.WithError(err).Warnf("failed to marshal event %s", ev.Type)
			return
		}

		ts.mu.Lock()
		conns := make([]*websocket.Conn, 0, len(ts.watchers[tableID]))
		for c := range ts.watchers[tableID] {
			conns = append(conns, c)
		}
		ts.mu.Unlock()

		for _, c := range conns {
			go func(c *websocket.Conn) {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := c.Write(ctx, websocket.MessageText, data); err != nil {
					ts.Logger.WithError(err).Debug("watcher write failed")
				}
			}(c)
		}
	}
}

// archiveResults persists a finished scorecard. Fire-and-forget from the
// action path; a failed archive never fails the game action.
func (ts *TableServer) archiveResults(tableID, gameID uuid.UUID, scores []game.ScoreEntry) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := database.RecordGameResults(ctx, tableID, gameID, scores); err != nil {
			ts.Logger.WithError(err).WithField("game", gameID).Warn("failed to archive results")
		}
	}()
}
