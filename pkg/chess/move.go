package chess

import "fmt"

// MoveType indicates the type of move. The halfmove (no-progress) clock resets on any
// pawn move or capture, whatever its type.
type MoveType uint8

const (
	Quiet MoveType = iota
	DoublePawnPush
	Capture
	EnPassant
	CastleKingside
	CastleQueenside
	Promotion
	CapturePromotion
)

// Move represents a not-necessarily-legal move plus the contextual metadata needed to
// make/unmake it without re-probing the board it was generated from.
type Move struct {
	Type      MoveType
	From, To  Square
	Piece     Piece // piece moved
	Promotion Piece // desired piece for promotion, if any
	Captured  Piece // captured piece kind, if any (Pawn for en passant)
}

func (m Move) IsCapture() bool {
	return m.Type == Capture || m.Type == CapturePromotion || m.Type == EnPassant
}

func (m Move) IsPromotion() bool {
	return m.Type == Promotion || m.Type == CapturePromotion
}

func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

func (m Move) String() string {
	if m.IsPromotion() {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}

// ParseMove parses pure algebraic coordinate notation, e.g. "e2e4" or "a7a8q". The
// parsed move carries no contextual metadata (Piece/Captured); callers must match it
// against a generated pseudo-legal move to recover that, e.g. via PieceOn + LegalMoves.
func ParseMove(str string) (Move, error) {
	r := []rune(str)
	if len(r) < 4 || len(r) > 5 {
		return Move{}, fmt.Errorf("invalid move: %q", str)
	}
	from, err := ParseSquare(r[0], r[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", str, err)
	}
	to, err := ParseSquare(r[2], r[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", str, err)
	}
	mv := Move{From: from, To: to}
	if len(r) == 5 {
		promo, ok := ParsePiece(r[4])
		if !ok || promo == Pawn || promo == King {
			return Move{}, fmt.Errorf("invalid promotion in move %q", str)
		}
		mv.Promotion = promo
	}
	return mv, nil
}

// FormatMoves renders a move sequence space-separated, for logging and PV display.
func FormatMoves(moves []Move) string {
	s := ""
	for i, m := range moves {
		if i > 0 {
			s += " "
		}
		s += m.String()
	}
	return s
}
