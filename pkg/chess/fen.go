package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// InitialFEN is the FEN of the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses Forsyth-Edwards Notation into a Position.
func ParseFEN(s string) (*Position, error) {
	fields := strings.Fields(s)
	if len(fields) < 4 {
		return nil, fmt.Errorf("invalid fen %q: need at least 4 fields", s)
	}

	p := &Position{fullmove: 1}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("invalid fen %q: need 8 ranks", s)
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for _, r := range row {
			if r >= '1' && r <= '8' {
				file += int(r - '0')
				continue
			}
			piece, ok := ParsePiece(r)
			if !ok {
				return nil, fmt.Errorf("invalid fen %q: bad piece %q", s, r)
			}
			if file > 7 {
				return nil, fmt.Errorf("invalid fen %q: rank overflow", s)
			}
			color := White
			if r >= 'a' && r <= 'z' {
				color = Black
			}
			p.set(MakeSquare(file, rank), Occupant{Present: true, Color: color, Piece: piece})
			file++
		}
	}

	switch fields[1] {
	case "w":
		p.turn = White
	case "b":
		p.turn = Black
	default:
		return nil, fmt.Errorf("invalid fen %q: bad side to move %q", s, fields[1])
	}

	if fields[2] != "-" {
		for _, r := range fields[2] {
			switch r {
			case 'K':
				p.castle |= WhiteKingside
			case 'Q':
				p.castle |= WhiteQueenside
			case 'k':
				p.castle |= BlackKingside
			case 'q':
				p.castle |= BlackQueenside
			default:
				return nil, fmt.Errorf("invalid fen %q: bad castling %q", s, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		r := []rune(fields[3])
		if len(r) != 2 {
			return nil, fmt.Errorf("invalid fen %q: bad en passant %q", s, fields[3])
		}
		sq, err := ParseSquare(r[0], r[1])
		if err != nil {
			return nil, fmt.Errorf("invalid fen %q: %w", s, err)
		}
		p.epSquare = sq
		p.epValid = true
	}

	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("invalid fen %q: bad halfmove %q", s, fields[4])
		}
		p.halfmove = n
	}
	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("invalid fen %q: bad fullmove %q", s, fields[5])
		}
		p.fullmove = n
	}

	return p, nil
}

// Encode renders the position as a FEN string.
func Encode(p *Position) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			o := p.board[MakeSquare(file, rank)]
			if !o.Present {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			letter := o.Piece.String()
			if o.Color == White {
				letter = strings.ToUpper(letter)
			}
			sb.WriteString(letter)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(p.turn.String())

	sb.WriteByte(' ')
	if p.castle == 0 {
		sb.WriteByte('-')
	} else {
		if p.castle.Has(WhiteKingside) {
			sb.WriteByte('K')
		}
		if p.castle.Has(WhiteQueenside) {
			sb.WriteByte('Q')
		}
		if p.castle.Has(BlackKingside) {
			sb.WriteByte('k')
		}
		if p.castle.Has(BlackQueenside) {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	if ep, ok := p.EnPassant(); ok {
		sb.WriteString(ep.String())
	} else {
		sb.WriteByte('-')
	}

	fmt.Fprintf(&sb, " %v %v", p.halfmove, p.fullmove)
	return sb.String()
}
