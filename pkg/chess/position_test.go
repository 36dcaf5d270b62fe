package chess_test

import (
	"testing"

	"github.com/kestrelchess/kestrel/pkg/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perft(p *chess.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range p.LegalMoves() {
		n, ok := p.Move(m)
		if !ok {
			continue
		}
		nodes += perft(n, depth-1)
	}
	return nodes
}

func TestPerftStartingPosition(t *testing.T) {
	p := chess.NewStartingPosition()

	// Standard perft node counts for the starting position.
	assert.EqualValues(t, 20, perft(p, 1))
	assert.EqualValues(t, 400, perft(p, 2))
	assert.EqualValues(t, 8902, perft(p, 3))
}

func TestParseFENRoundTrip(t *testing.T) {
	p, err := chess.ParseFEN(chess.InitialFEN)
	require.NoError(t, err)
	assert.Equal(t, chess.InitialFEN, chess.Encode(p))
}

func TestCheckmateStatus(t *testing.T) {
	// Fool's mate: black delivers checkmate.
	p := chess.NewStartingPosition()
	for _, s := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		mv, err := chess.ParseMove(s)
		require.NoError(t, err)

		var applied bool
		for _, legal := range p.LegalMoves() {
			if legal.Equals(mv) {
				n, ok := p.Move(legal)
				require.True(t, ok)
				p = n
				applied = true
				break
			}
		}
		require.True(t, applied, "move %v not legal in %v", s, chess.Encode(p))
	}

	assert.Equal(t, chess.Won, p.Status().Outcome)
}

func TestStalemateStatus(t *testing.T) {
	p, err := chess.ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	// Black to move, no legal moves, not in check: stalemate.
	assert.Empty(t, p.LegalMoves())
	assert.Equal(t, chess.Drawn, p.Status().Outcome)
	assert.Equal(t, chess.Stalemate, p.Status().Reason)
}

func TestInsufficientMaterial(t *testing.T) {
	p, err := chess.ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, chess.Drawn, p.Status().Outcome)
	assert.Equal(t, chess.InsufficientMaterial, p.Status().Reason)
}

func TestEnPassantCapture(t *testing.T) {
	p, err := chess.ParseFEN("4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1")
	require.NoError(t, err)

	mv, err := chess.ParseMove("d4e3")
	require.NoError(t, err)

	var found chess.Move
	var ok bool
	for _, legal := range p.LegalMoves() {
		if legal.Equals(mv) {
			found, ok = legal, true
		}
	}
	require.True(t, ok)
	assert.Equal(t, chess.EnPassant, found.Type)

	n, legal := p.Move(found)
	require.True(t, legal)
	assert.False(t, n.PieceOn(chess.MakeSquare(4, 3)).Present) // captured pawn removed
}
