package search_test

import (
	"testing"

	"github.com/kestrelchess/kestrel/pkg/chess"
	"github.com/kestrelchess/kestrel/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardStackReplaysGamePrefix(t *testing.T) {
	zt := chess.NewZobristTable(0)
	start := chess.NewStartingPosition()

	e2e4, err := chess.ParseMove("e2e4")
	require.NoError(t, err)
	e7e5, err := chess.ParseMove("e7e5")
	require.NoError(t, err)

	s := search.NewBoardStack(zt, start, []chess.Move{e2e4, e7e5})
	assert.Equal(t, chess.White, s.Get().Turn())
}

func TestBoardStackRepetitionCountsGamePrefix(t *testing.T) {
	zt := chess.NewZobristTable(0)
	start := chess.NewStartingPosition()

	knightShuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	var moves []chess.Move
	for _, s := range knightShuffle {
		mv, err := chess.ParseMove(s)
		require.NoError(t, err)
		moves = append(moves, mv)
	}

	s := search.NewBoardStack(zt, start, moves)
	assert.Equal(t, 2, s.Repetitions(), "back to the starting position once already")
}

func TestBoardStackPlayAndUndo(t *testing.T) {
	zt := chess.NewZobristTable(0)
	start := chess.NewStartingPosition()
	s := search.NewBoardStack(zt, start, nil)

	mv, err := chess.ParseMove("e2e4")
	require.NoError(t, err)
	var legal chess.Move
	for _, m := range s.Get().LegalMoves() {
		if m.Equals(mv) {
			legal = m
			break
		}
	}

	beforeHash := s.Hash()
	s.PlayUnchecked(legal)
	assert.NotEqual(t, beforeHash, s.Hash())
	assert.True(t, s.CanUndo())

	s.Undo()
	assert.Equal(t, beforeHash, s.Hash())
	assert.False(t, s.CanUndo())
}

func TestBoardStackForkIsIndependent(t *testing.T) {
	zt := chess.NewZobristTable(0)
	s := search.NewBoardStack(zt, chess.NewStartingPosition(), nil)
	fork := s.Fork()

	mv, err := chess.ParseMove("e2e4")
	require.NoError(t, err)
	var legal chess.Move
	for _, m := range s.Get().LegalMoves() {
		if m.Equals(mv) {
			legal = m
			break
		}
	}
	s.PlayUnchecked(legal)

	assert.NotEqual(t, s.Hash(), fork.Hash(), "mutating the original must not affect the fork")
	assert.False(t, fork.CanUndo())
}

func TestBoardStackUndoPastRootPanics(t *testing.T) {
	zt := chess.NewZobristTable(0)
	s := search.NewBoardStack(zt, chess.NewStartingPosition(), nil)
	assert.Panics(t, func() { s.Undo() })
}

func TestBoardStackNullMoveTogglesTurnOnly(t *testing.T) {
	zt := chess.NewZobristTable(0)
	s := search.NewBoardStack(zt, chess.NewStartingPosition(), nil)

	before := s.Get()
	s.PlayNullMove()
	after := s.Get()

	assert.Equal(t, before.Turn().Opponent(), after.Turn())
	assert.Equal(t, before.PieceOn(chess.MakeSquare(4, 1)), after.PieceOn(chess.MakeSquare(4, 1)))
	s.Undo()
}
