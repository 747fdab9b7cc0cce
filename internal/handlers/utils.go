// internal/handlers/utils.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eranhirsch/nothanks/internal/game"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// errorCode maps engine errors onto stable machine-readable codes for
// clients. Unknown errors get no code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrBusy):
		return "busy"
	case errors.Is(err, game.ErrNoGame):
		return "no_game"
	case errors.Is(err, game.ErrCardStillOut):
		return "card_still_out"
	case errors.Is(err, game.ErrNoCardRevealed):
		return "no_card_revealed"
	case errors.Is(err, game.ErrInsufficientTokens):
		return "insufficient_tokens"
	case errors.Is(err, game.ErrDeckEmpty):
		return "deck_empty"
	case errors.Is(err, game.ErrPlayerCount):
		return "player_count"
	case errors.Is(err, game.ErrInvalidSeat):
		return "invalid_seat"
	case errors.Is(err, game.ErrGameNotOver):
		return "game_not_over"
	case errors.Is(err, game.ErrGameOverAlready):
		return "game_over"
	default:
		return ""
	}
}

// errorStatus maps engine errors onto HTTP statuses: contention is 503,
// rule precondition failures are 409, bad input is 400.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, game.ErrPlayerCount), errors.Is(err, game.ErrInvalidSeat):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrNoGame):
		return http.StatusNotFound
	case errorCode(err) != "":
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errorStatus(err), errorResponse{Error: err.Error(), Code: errorCode(err)})
}
