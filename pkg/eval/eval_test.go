package eval_test

import (
	"testing"

	"github.com/kestrelchess/kestrel/pkg/chess"
	"github.com/kestrelchess/kestrel/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialStartingPositionIsLevel(t *testing.T) {
	p := chess.NewStartingPosition()
	assert.EqualValues(t, 0, eval.Material{}.Evaluate(p))
}

func TestMaterialFavorsSideUpAQueen(t *testing.T) {
	p, err := chess.ParseFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)
	assert.Greater(t, eval.Material{}.Evaluate(p), int16(800))
}

func TestMaterialIsSymmetricAcrossSideToMove(t *testing.T) {
	white, err := chess.ParseFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)
	black, err := chess.ParseFEN("4k3/8/8/8/8/8/8/3QK3 b - - 0 1")
	require.NoError(t, err)

	assert.Equal(t, eval.Material{}.Evaluate(white), -eval.Material{}.Evaluate(black))
}

func TestRandomDisabledByDefault(t *testing.T) {
	var noise eval.Random
	assert.EqualValues(t, 0, noise.Noise())
}

func TestPieceSquareAgreesWithMaterialSign(t *testing.T) {
	p, err := chess.ParseFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)
	assert.Greater(t, eval.PieceSquare{}.Evaluate(p), int16(0))
}
