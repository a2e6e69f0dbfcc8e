package game

import "errors"

// Move is one playable choice.
type Move string

const (
	MoveRock     Move = "rock"
	MovePaper    Move = "paper"
	MoveScissors Move = "scissors"
	MoveLizard   Move = "lizard"
	MoveSpock    Move = "spock"
)

// ErrInvalidMove is returned when a submitted move is not part of the
// active ruleset's move set. The ScoreBoard is never touched in that case.
var ErrInvalidMove = errors.New("invalid move")

// Verdict is the result of one round from the player's perspective.
type Verdict int

const (
	VerdictLose Verdict = -1
	VerdictDraw Verdict = 0
	VerdictWin  Verdict = 1
)

func (v Verdict) String() string {
	switch v {
	case VerdictWin:
		return "win"
	case VerdictLose:
		return "lose"
	default:
		return "draw"
	}
}

// MarshalJSON encodes the verdict as "win", "lose" or "draw".
func (v Verdict) MarshalJSON() ([]byte, error) {
	return []byte(`"` + v.String() + `"`), nil
}

// UnmarshalJSON decodes "win", "lose" or "draw".
func (v *Verdict) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"win"`:
		*v = VerdictWin
	case `"lose"`:
		*v = VerdictLose
	case `"draw"`:
		*v = VerdictDraw
	default:
		return errors.New("unknown verdict: " + string(data))
	}
	return nil
}

// Outcome is the result of a single resolved round. Immutable, one per round.
type Outcome struct {
	PlayerMove   Move    `json:"player_move"`
	OpponentMove Move    `json:"opponent_move"`
	Verdict      Verdict `json:"verdict"`
}
