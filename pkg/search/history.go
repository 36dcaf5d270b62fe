package search

import "github.com/kestrelchess/kestrel/pkg/chess"

// MaxHistory bounds every history table cell to [-MaxHistory, +MaxHistory].
const MaxHistory int32 = 512

// History is a per (side-to-move, piece, destination-square) quiet-move
// reputation table, used only for ordering quiet moves -- captures are ordered by
// MVV/LVA instead. Updates are gravity-damped so that repeated reinforcement
// saturates smoothly instead of overflowing.
type History struct {
	scores [chess.NumColors][chess.NumPieces + 1][chess.NumSquares]int32
}

// NewHistory returns a zero-initialized history table.
func NewHistory() *History {
	return &History{}
}

// GetQuietScore reads the reputation of a quiet move, by the moving side, the
// piece on its origin square and its destination square.
func (h *History) GetQuietScore(turn chess.Color, piece chess.Piece, to chess.Square) int32 {
	return h.scores[turn][piece][to]
}

// UpdateMove applies a gravity-damped update to a quiet move's reputation:
//
//	score <- clamp(score + d - |d|*score/MaxHistory, -MaxHistory, +MaxHistory)
//
// which saturates smoothly: updates in the direction of the current sign shrink;
// opposite-sign updates pull the score back toward zero faster.
func (h *History) UpdateMove(turn chess.Color, piece chess.Piece, to chess.Square, delta int32) {
	cur := &h.scores[turn][piece][to]

	d := delta
	if d < 0 {
		d = -d
	}
	updated := *cur + delta - d*(*cur)/MaxHistory

	switch {
	case updated > MaxHistory:
		updated = MaxHistory
	case updated < -MaxHistory:
		updated = -MaxHistory
	}
	*cur = updated
}

// Clear resets every cell to zero, on ucinewgame or explicit reset.
func (h *History) Clear() {
	*h = History{}
}
