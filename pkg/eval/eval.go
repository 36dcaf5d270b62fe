// Package eval contains static position evaluation: pluggable functions from a
// position to a signed centipawn score from the side-to-move's perspective.
// Only the signature and monotonicity (material up is never worse, all else
// equal) are contractually required by the search core; the heuristics below
// are reference implementations the engine wires in by default.
package eval

import "github.com/kestrelchess/kestrel/pkg/chess"

// Evaluator is a static position evaluator, from the side-to-move's perspective.
type Evaluator interface {
	Evaluate(p *chess.Position) int16
}

// NominalValue is the material value of a piece kind, in centipawns.
func NominalValue(p chess.Piece) int16 {
	switch p {
	case chess.Pawn:
		return 100
	case chess.Knight, chess.Bishop:
		return 300
	case chess.Rook:
		return 500
	case chess.Queen:
		return 900
	default:
		return 0
	}
}

// Material is the reference evaluator: (white material - black material), negated
// for black to move, per spec.md's reference implementation.
type Material struct{}

func (Material) Evaluate(p *chess.Position) int16 {
	var score int16
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		o := p.PieceOn(sq)
		if !o.Present {
			continue
		}
		v := NominalValue(o.Piece)
		if o.Color == chess.Black {
			v = -v
		}
		score += v
	}
	if p.Turn() == chess.Black {
		score = -score
	}
	return score
}
