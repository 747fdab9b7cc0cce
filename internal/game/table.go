// internal/game/table.go
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eranhirsch/nothanks/internal/models"
)

// SnapshotStore is the persistence adapter contract the table consumes.
// Load returns (nil, nil) when no game is stored. Implementations must be
// read-after-write consistent within one gated action, which holds
// trivially because the gate serializes the actions themselves.
type SnapshotStore interface {
	Load(ctx context.Context, tableID uuid.UUID) (*models.GameSnapshot, error)
	Save(ctx context.Context, tableID uuid.UUID, snap *models.GameSnapshot) error
	Clear(ctx context.Context, tableID uuid.UUID) error
}

// OnGameEndFunc receives the final scorecard once per finished game, e.g.
// to archive results. Invoked under the table gate after the scorecard is
// persisted; implementations hand long work off to a goroutine.
type OnGameEndFunc func(tableID, gameID uuid.UUID, scores []ScoreEntry)

// Table hosts exactly one live game and serializes every user action
// through its gate. All four actions follow the same shape: admit one
// caller, check preconditions, mutate, persist, broadcast. Failures leave
// no observable state change behind.
type Table struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time

	gate  *Gate
	store SnapshotStore
	log   *logrus.Logger

	game           *Game
	scoresArchived bool

	// BroadcastFn sends events to all watchers of the table. Nil means no
	// broadcast, which tests rely on.
	BroadcastFn func(ev Event)

	// OnGameEnd is invoked once per game when the scores are revealed.
	OnGameEnd OnGameEndFunc
}

// NewTable creates an empty table. The first NewGame call brings it to
// life; until then every other action returns ErrNoGame.
func NewTable(name string, st SnapshotStore, gateTimeout time.Duration, log *logrus.Logger) *Table {
	id, _ := uuid.NewRandom()
	if log == nil {
		log = logrus.New()
	}
	return &Table{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now(),
		gate:      NewGate(gateTimeout),
		store:     st,
		log:       log,
	}
}

func (t *Table) broadcast(ev Event) {
	if t.BroadcastFn != nil {
		t.BroadcastFn(ev)
	}
}

// ensureGameLocked restores the game from the store after a restart.
// Callers hold the gate.
func (t *Table) ensureGameLocked(ctx context.Context) error {
	if t.game != nil {
		return nil
	}
	snap, err := t.store.Load(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("load game state: %w", err)
	}
	if snap == nil {
		return ErrNoGame
	}
	g, err := FromSnapshot(snap)
	if err != nil {
		return err
	}
	t.game = g
	t.log.WithFields(logrus.Fields{
		"table": t.ID,
		"game":  g.ID,
		"phase": g.Phase,
	}).Info("restored game from store")
	return nil
}

// run is the common action path: gate, load, apply, persist, broadcast.
// When persistence fails the in-memory game is rolled back to the
// pre-action snapshot so memory and store never diverge.
func (t *Table) run(ctx context.Context, fn func(g *Game) (Event, error)) error {
	release, err := t.gate.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := t.ensureGameLocked(ctx); err != nil {
		return err
	}

	backup := t.game.Snapshot()
	ev, err := fn(t.game)
	if err != nil {
		return err
	}
	if err := t.store.Save(ctx, t.ID, t.game.Snapshot()); err != nil {
		t.game.restore(backup)
		return fmt.Errorf("persist game state: %w", err)
	}
	t.broadcast(ev)
	return nil
}

// NewGame replaces the table's game wholesale with a fresh one. The old
// game, if any, is simply forgotten.
func (t *Table) NewGame(ctx context.Context, names []string, opts Options) (*View, error) {
	release, err := t.gate.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	g, err := NewGame(names, opts)
	if err != nil {
		return nil, err
	}
	if err := t.store.Save(ctx, t.ID, g.Snapshot()); err != nil {
		return nil, fmt.Errorf("persist game state: %w", err)
	}
	t.game = g
	t.scoresArchived = false

	t.log.WithFields(logrus.Fields{
		"table":   t.ID,
		"game":    g.ID,
		"players": len(g.Players),
		"start":   g.Active,
	}).Info("new game")

	view := g.View()
	t.broadcast(Event{Type: EventNewGame, State: view})
	return view, nil
}

// Reveal draws the next card onto the table.
func (t *Table) Reveal(ctx context.Context) (card int, err error) {
	err = t.run(ctx, func(g *Game) (Event, error) {
		c, err := g.Reveal()
		if err != nil {
			return Event{}, err
		}
		card = c
		return Event{
			Type:     EventCardRevealed,
			Card:     intp(c),
			Pool:     intp(g.Pool),
			Seat:     intp(g.Active),
			DeckSize: intp(g.Deck.Size()),
		}, nil
	})
	return card, err
}

// Take gives the revealed card and pool to the active player. When the
// deck empties the game-over event follows immediately.
func (t *Table) Take(ctx context.Context) (res TakeResult, err error) {
	var over bool
	err = t.run(ctx, func(g *Game) (Event, error) {
		r, err := g.Take()
		if err != nil {
			return Event{}, err
		}
		res = r
		over = r.GameOver
		var runs [][]int
		for run := range Runs(g.Players[r.Seat].Hand) {
			runs = append(runs, append([]int(nil), run...))
		}
		return Event{
			Type:          EventCardTaken,
			Seat:          intp(r.Seat),
			Card:          intp(r.Card),
			PoolCollected: intp(r.PoolCollected),
			DeckSize:      intp(g.Deck.Size()),
			Runs:          runs,
		}, nil
	})
	if err == nil && over {
		t.broadcast(Event{Type: EventGameOver})
	}
	return res, err
}

// Decline pays one token and passes the turn.
func (t *Table) Decline(ctx context.Context) (nextSeat int, err error) {
	err = t.run(ctx, func(g *Game) (Event, error) {
		seat := g.Active
		if err := g.Decline(); err != nil {
			return Event{}, err
		}
		nextSeat = g.Active
		return Event{
			Type:     EventDeclined,
			Seat:     intp(seat),
			Pool:     intp(g.Pool),
			NextSeat: intp(g.Active),
		}, nil
	})
	return nextSeat, err
}

// RevealScores publishes the final scorecard and archives it once. The
// archive check-and-set happens under the gate so concurrent reveals
// cannot fire OnGameEnd twice for the same game.
func (t *Table) RevealScores(ctx context.Context) ([]ScoreEntry, error) {
	release, err := t.gate.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := t.ensureGameLocked(ctx); err != nil {
		return nil, err
	}

	backup := t.game.Snapshot()
	scores, err := t.game.RevealScores()
	if err != nil {
		return nil, err
	}
	if err := t.store.Save(ctx, t.ID, t.game.Snapshot()); err != nil {
		t.game.restore(backup)
		return nil, fmt.Errorf("persist game state: %w", err)
	}
	t.broadcast(Event{Type: EventScoresRevealed, Scores: scores})

	if !t.scoresArchived && t.OnGameEnd != nil {
		t.scoresArchived = true
		t.OnGameEnd(t.ID, t.game.ID, scores)
	}
	return scores, nil
}

// State returns the client projection of the current game, read under the
// gate so it never observes a half-applied action.
func (t *Table) State(ctx context.Context) (*View, error) {
	release, err := t.gate.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	if err := t.ensureGameLocked(ctx); err != nil {
		return nil, err
	}
	return t.game.View(), nil
}

// Clear forgets the table's game and removes it from the store.
func (t *Table) Clear(ctx context.Context) error {
	release, err := t.gate.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	if err := t.store.Clear(ctx, t.ID); err != nil {
		return fmt.Errorf("clear game state: %w", err)
	}
	t.game = nil
	t.scoresArchived = false
	return nil
}
