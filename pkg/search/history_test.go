package search_test

import (
	"testing"

	"github.com/kestrelchess/kestrel/pkg/chess"
	"github.com/kestrelchess/kestrel/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestHistoryUpdateSaturatesAtMax(t *testing.T) {
	h := search.NewHistory()
	for i := 0; i < 1000; i++ {
		h.UpdateMove(chess.White, chess.Knight, chess.MakeSquare(2, 2), 400)
	}
	got := h.GetQuietScore(chess.White, chess.Knight, chess.MakeSquare(2, 2))
	assert.LessOrEqual(t, got, search.MaxHistory)
	assert.GreaterOrEqual(t, got, -search.MaxHistory)
}

func TestHistoryUpdateSaturatesAtMin(t *testing.T) {
	h := search.NewHistory()
	for i := 0; i < 1000; i++ {
		h.UpdateMove(chess.Black, chess.Rook, chess.MakeSquare(5, 5), -400)
	}
	got := h.GetQuietScore(chess.Black, chess.Rook, chess.MakeSquare(5, 5))
	assert.Equal(t, -search.MaxHistory, got)
}

func TestHistoryOppositeSignPullsTowardZero(t *testing.T) {
	h := search.NewHistory()
	sq := chess.MakeSquare(3, 3)
	h.UpdateMove(chess.White, chess.Pawn, sq, 400)
	before := h.GetQuietScore(chess.White, chess.Pawn, sq)

	h.UpdateMove(chess.White, chess.Pawn, sq, -400)
	after := h.GetQuietScore(chess.White, chess.Pawn, sq)

	assert.Less(t, after, before)
}

func TestHistoryIsolatedByColorPieceAndSquare(t *testing.T) {
	h := search.NewHistory()
	h.UpdateMove(chess.White, chess.Queen, chess.MakeSquare(0, 0), 300)

	assert.Zero(t, h.GetQuietScore(chess.Black, chess.Queen, chess.MakeSquare(0, 0)))
	assert.Zero(t, h.GetQuietScore(chess.White, chess.Rook, chess.MakeSquare(0, 0)))
	assert.Zero(t, h.GetQuietScore(chess.White, chess.Queen, chess.MakeSquare(1, 0)))
}

func TestHistoryClear(t *testing.T) {
	h := search.NewHistory()
	h.UpdateMove(chess.White, chess.Pawn, chess.MakeSquare(4, 4), 200)
	h.Clear()

	assert.Zero(t, h.GetQuietScore(chess.White, chess.Pawn, chess.MakeSquare(4, 4)))
}
