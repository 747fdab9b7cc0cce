// internal/game/view.go
package game

import "github.com/google/uuid"

// View is the client-visible projection of a game. The deck collapses to a
// count so the remaining card values never reach a client, and hands are
// pre-grouped into runs for compact rendering.
type View struct {
	GameID      uuid.UUID    `json:"game_id"`
	Phase       Phase        `json:"phase"`
	DeckSize    int          `json:"deck_size"`
	CurrentCard *int         `json:"current_card,omitempty"`
	Pool        int          `json:"pool"`
	Active      int          `json:"active"`
	Players     []PlayerView `json:"players"`
}

// PlayerView is one seat as clients see it.
type PlayerView struct {
	Seat   int     `json:"seat"`
	Name   string  `json:"name"`
	Tokens int     `json:"tokens"`
	Hand   [][]int `json:"hand"`
}

// View builds the client projection of the current state.
func (g *Game) View() *View {
	v := &View{
		GameID:   g.ID,
		Phase:    g.Phase,
		DeckSize: g.Deck.Size(),
		Pool:     g.Pool,
		Active:   g.Active,
		Players:  make([]PlayerView, len(g.Players)),
	}
	if g.CurrentCard != nil {
		card := *g.CurrentCard
		v.CurrentCard = &card
	}
	for i, p := range g.Players {
		pv := PlayerView{
			Seat:   p.Seat,
			Name:   p.Name,
			Tokens: p.Tokens,
		}
		for run := range Runs(p.Hand) {
			pv.Hand = append(pv.Hand, append([]int(nil), run...))
		}
		v.Players[i] = pv
	}
	return v
}
