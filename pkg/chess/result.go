package chess

// Outcome is the terminal-status classification the search core consumes at every
// node: Ongoing (keep searching), Won (side to move is checkmated -- a loss from
// its own perspective) or Drawn (stalemate, insufficient material or the 50-move
// rule). Threefold repetition is deliberately not classified here: it crosses ply
// boundaries the position itself does not track, and is instead the board stack's
// responsibility (see pkg/search.BoardStack.Repetitions).
type Outcome uint8

const (
	Ongoing Outcome = iota
	Won
	Drawn
)

func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	default:
		return "unknown"
	}
}

// DrawReason further classifies a Drawn outcome, for diagnostics only.
type DrawReason uint8

const (
	NoDrawReason DrawReason = iota
	Stalemate
	InsufficientMaterial
	FiftyMoveRule
)

// Status is the terminal-status classifier result for a position.
type Status struct {
	Outcome Outcome
	Reason  DrawReason
}
