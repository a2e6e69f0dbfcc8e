package game

import (
	"fmt"
	"strings"
)

// Ruleset is an immutable move set plus a beats-table. For any two distinct
// moves exactly one direction wins; equal moves always draw.
type Ruleset struct {
	key   string
	moves []Move
	beats map[Move]map[Move]bool
}

const (
	KeyRPS   = "RPS"
	KeyRPSLS = "RPSLS"
)

var rulesets = map[string]*Ruleset{
	KeyRPS: newRuleset(KeyRPS,
		[]Move{MoveRock, MovePaper, MoveScissors},
		map[Move][]Move{
			MoveRock:     {MoveScissors},
			MovePaper:    {MoveRock},
			MoveScissors: {MovePaper},
		}),
	KeyRPSLS: newRuleset(KeyRPSLS,
		[]Move{MoveRock, MovePaper, MoveScissors, MoveLizard, MoveSpock},
		map[Move][]Move{
			MoveRock:     {MoveScissors, MoveLizard},
			MovePaper:    {MoveRock, MoveSpock},
			MoveScissors: {MovePaper, MoveLizard},
			MoveLizard:   {MoveSpock, MovePaper},
			MoveSpock:    {MoveScissors, MoveRock},
		}),
}

func newRuleset(key string, moves []Move, wins map[Move][]Move) *Ruleset {
	beats := make(map[Move]map[Move]bool, len(moves))
	for attacker, losers := range wins {
		row := make(map[Move]bool, len(losers))
		for _, loser := range losers {
			row[loser] = true
		}
		beats[attacker] = row
	}
	return &Ruleset{key: key, moves: moves, beats: beats}
}

// ByKey returns the ruleset for the given key ("RPS" or "RPSLS").
func ByKey(key string) (*Ruleset, error) {
	rs, ok := rulesets[strings.ToUpper(key)]
	if !ok {
		return nil, fmt.Errorf("unknown ruleset: %s", key)
	}
	return rs, nil
}

// Keys lists the available ruleset keys.
func Keys() []string {
	return []string{KeyRPS, KeyRPSLS}
}

func (r *Ruleset) Key() string { return r.key }

// Moves returns the move set in display order.
func (r *Ruleset) Moves() []Move {
	out := make([]Move, len(r.moves))
	copy(out, r.moves)
	return out
}

// Contains reports whether m is part of this ruleset's move set.
func (r *Ruleset) Contains(m Move) bool {
	_, ok := r.beats[m]
	return ok
}

// ParseMove normalizes raw input and validates it against the move set.
func (r *Ruleset) ParseMove(raw string) (Move, error) {
	m := Move(strings.ToLower(strings.TrimSpace(raw)))
	if !r.Contains(m) {
		return "", fmt.Errorf("%w: %q not in ruleset %s", ErrInvalidMove, raw, r.key)
	}
	return m, nil
}

// Decide looks up the verdict for player move a against opponent move b.
// Both moves must belong to the ruleset; the table is total over all pairs.
func (r *Ruleset) Decide(a, b Move) Verdict {
	if a == b {
		return VerdictDraw
	}
	if r.beats[a][b] {
		return VerdictWin
	}
	return VerdictLose
}

// Beats returns the moves each move defeats, for clients rendering the rules.
func (r *Ruleset) Beats() map[Move][]Move {
	out := make(map[Move][]Move, len(r.moves))
	for _, m := range r.moves {
		var losers []Move
		for _, o := range r.moves {
			if r.beats[m][o] {
				losers = append(losers, o)
			}
		}
		out[m] = losers
	}
	return out
}
