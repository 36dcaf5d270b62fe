package eval

import "github.com/kestrelchess/kestrel/pkg/chess"

// PieceSquare supplements Material with small positional terms, by rank only:
// advanced pawns and knights on the middle ranks score a bonus, and a king on a
// file with no own pawn anywhere on it is penalized. Kept pluggable behind Evaluator so it can be swapped
// for Material without touching the search core.
type PieceSquare struct{}

// pawnTable and knightTable are centipawn bonuses indexed by rank (0=own back rank,
// 7=promotion rank), mirrored for Black by the caller.
var pawnTable = [8]int16{0, 0, 5, 10, 20, 35, 50, 0}
var knightTable = [8]int16{-20, -10, 0, 5, 5, 0, -10, -20}

func (PieceSquare) Evaluate(p *chess.Position) int16 {
	score := Material{}.Evaluate(p)

	turn := p.Turn()
	var positional int16
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		o := p.PieceOn(sq)
		if !o.Present {
			continue
		}

		rank := sq.Rank()
		if o.Color == chess.Black {
			rank = 7 - rank
		}

		var bonus int16
		switch o.Piece {
		case chess.Pawn:
			bonus = pawnTable[rank]
		case chess.Knight:
			bonus = knightTable[rank]
		case chess.King:
			bonus = kingSafetyBonus(p, sq, o.Color)
		}

		if o.Color == turn {
			positional += bonus
		} else {
			positional -= bonus
		}
	}

	return score + positional
}

// kingSafetyBonus penalizes a king whose file has no own pawn on it, in front
// or behind.
func kingSafetyBonus(p *chess.Position, sq chess.Square, c chess.Color) int16 {
	file := sq.File()
	for r := 0; r < 8; r++ {
		o := p.PieceOn(chess.MakeSquare(file, r))
		if o.Present && o.Color == c && o.Piece == chess.Pawn {
			return 0
		}
	}
	return -15
}
