// internal/database/results.go
package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/eranhirsch/nothanks/internal/game"
)

// RecordGameResults archives a finished game's scorecard in one
// transaction: the game row is upserted as completed and every seat's
// final score, rank and win flag is written.
func RecordGameResults(ctx context.Context, tableID, gameID uuid.UUID, scores []game.ScoreEntry) error {
	if DB == nil {
		return fmt.Errorf("database not connected")
	}

	err := pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		upsertGame := `
			INSERT INTO games (id, table_id, status, finished_at)
			VALUES ($1, $2, 'completed', now())
			ON CONFLICT (id) DO UPDATE SET status = 'completed', finished_at = now()
		`
		if _, err := tx.Exec(ctx, upsertGame, gameID, tableID); err != nil {
			return err
		}

		insertResult := `
			INSERT INTO game_results (game_id, seat, player_name, score, rank, did_win)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (game_id, seat)
			DO UPDATE SET player_name=$3, score=$4, rank=$5, did_win=$6
		`
		for _, entry := range scores {
			if _, err := tx.Exec(ctx, insertResult,
				gameID, entry.Seat, entry.Name, entry.Score, entry.Rank, entry.DidWin); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record game results: %w", err)
	}
	return nil
}
