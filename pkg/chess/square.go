package chess

import "fmt"

// Square is a board square, A1=0 .. H8=63, file-major: square = rank*8 + file.
type Square uint8

const NumSquares = 64

const (
	InvalidSquare Square = 255
)

func MakeSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

func (s Square) File() int {
	return int(s) % 8
}

func (s Square) Rank() int {
	return int(s) / 8
}

func ParseSquare(file, rank rune) (Square, error) {
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, fmt.Errorf("invalid square: %c%c", file, rank)
	}
	return MakeSquare(int(file-'a'), int(rank-'1')), nil
}

func (s Square) String() string {
	return fmt.Sprintf("%c%c", 'a'+rune(s.File()), '1'+rune(s.Rank()))
}

func onBoard(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}
