// internal/game/hand.go
package game

import (
	"iter"
	"sort"
)

// Hand is a player's owned card values, kept unique and ascending. A card
// belongs to at most one hand for the lifetime of a game.
type Hand []int

// Add inserts card at its sorted position. Duplicates are impossible by
// card conservation, so an existing value is returned unchanged.
func (h Hand) Add(card int) Hand {
	i := sort.SearchInts(h, card)
	if i < len(h) && h[i] == card {
		return h
	}
	out := make(Hand, 0, len(h)+1)
	out = append(out, h[:i]...)
	out = append(out, card)
	out = append(out, h[i:]...)
	return out
}

// Contains reports whether the hand owns the given card value.
func (h Hand) Contains(card int) bool {
	i := sort.SearchInts(h, card)
	return i < len(h) && h[i] == card
}

// Runs partitions a sorted slice of unique values into maximal runs of
// consecutive integers. The sequence is lazy and restartable; flattening
// it reproduces the input exactly. Used for compact hand display and for
// scoring, where only the lowest card of a run counts.
func Runs(sorted []int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		start := 0
		for i := 1; i <= len(sorted); i++ {
			if i == len(sorted) || sorted[i] != sorted[i-1]+1 {
				if !yield(sorted[start:i]) {
					return
				}
				start = i
			}
		}
	}
}

// Score computes the hand penalty minus tokens held. Each run contributes
// only its minimum value. Lower is better.
func Score(h Hand, tokens int) int {
	total := 0
	for run := range Runs(h) {
		total += run[0]
	}
	return total - tokens
}

// ScoreEntry is one row of the final scorecard.
type ScoreEntry struct {
	Seat   int    `json:"seat"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Rank   int    `json:"rank"`
	DidWin bool   `json:"did_win"`
}

// Scorecard ranks all players by ascending score. Ties share a rank and
// equal scores keep seat order (stable sort).
func Scorecard(players []*Player) []ScoreEntry {
	entries := make([]ScoreEntry, len(players))
	for i, p := range players {
		entries[i] = ScoreEntry{
			Seat:  p.Seat,
			Name:  p.Name,
			Score: Score(p.Hand, p.Tokens),
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score < entries[j].Score
	})
	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
		entries[i].DidWin = entries[i].Rank == 1
	}
	return entries
}
