package search

import (
	"fmt"

	"github.com/kestrelchess/kestrel/pkg/chess"
)

// BoardStack maintains the current search position and the Zobrist hash history
// of every position visited -- including the game prefix played before search
// started -- so that repetition detection can see across the root. Not
// thread-safe; owned exclusively by one Think call at a time.
type BoardStack struct {
	zt *chess.ZobristTable

	positions []*chess.Position  // stack; top = current search position
	hashes    []chess.ZobristHash // parallel history, game prefix + current search
}

// NewBoardStack replays movesPlayed from initPos to build the game prefix, pushing
// an intermediate hash for every position along the way. The moves are assumed
// pre-validated (legal) by the caller; an illegal move panics, a programming error
// per the position-library contract.
func NewBoardStack(zt *chess.ZobristTable, initPos *chess.Position, movesPlayed []chess.Move) *BoardStack {
	s := &BoardStack{zt: zt}

	cur := initPos
	s.hashes = append(s.hashes, zt.Hash(cur))

	for _, mv := range movesPlayed {
		next, legal := matchAndApply(cur, mv)
		if !legal {
			panic(fmt.Sprintf("illegal move in game prefix: %v", mv))
		}
		cur = next
		s.hashes = append(s.hashes, zt.Hash(cur))
	}
	s.positions = []*chess.Position{cur}
	return s
}

// matchAndApply resolves mv (which may carry no contextual metadata, e.g. if it
// came from UCI coordinate notation) against the legal moves of p and applies it.
func matchAndApply(p *chess.Position, mv chess.Move) (*chess.Position, bool) {
	for _, legal := range p.LegalMoves() {
		if legal.Equals(mv) {
			return p.Move(legal)
		}
	}
	return nil, false
}

// Fork returns an independent copy of the stack, safe to hand to a search
// goroutine while the original continues to be mutated by the caller (e.g. via
// further Move/TakeBack calls) -- positions themselves are immutable (Move
// always returns a new *Position), so only the slice headers need copying.
func (s *BoardStack) Fork() *BoardStack {
	positions := append([]*chess.Position(nil), s.positions...)
	hashes := append([]chess.ZobristHash(nil), s.hashes...)
	return &BoardStack{zt: s.zt, positions: positions, hashes: hashes}
}

// Get returns the current top position.
func (s *BoardStack) Get() *chess.Position {
	return s.positions[len(s.positions)-1]
}

// Hash returns the current top position's Zobrist hash.
func (s *BoardStack) Hash() chess.ZobristHash {
	return s.hashes[len(s.hashes)-1]
}

// PlayUnchecked clones the current top, applies mv without a legality check (the
// caller guarantees legality via prior move generation) and pushes the result.
func (s *BoardStack) PlayUnchecked(mv chess.Move) {
	next, _ := s.Get().Move(mv)
	s.positions = append(s.positions, next)
	s.hashes = append(s.hashes, s.zt.Hash(next))
}

// PlayNullMove pushes a null-moved position (side to move toggled, en passant
// cleared), used only by null-move pruning.
func (s *BoardStack) PlayNullMove() {
	next := s.Get().NullMove()
	s.positions = append(s.positions, next)
	s.hashes = append(s.hashes, s.zt.Hash(next))
}

// CanUndo reports whether Undo is legal, i.e. more than one entry remains.
func (s *BoardStack) CanUndo() bool {
	return len(s.positions) > 1
}

// Undo pops the top position and its hash. Only legal when more than one entry
// remains on the stack.
func (s *BoardStack) Undo() {
	if len(s.positions) <= 1 {
		panic("cannot undo past the root of the search stack")
	}
	s.positions = s.positions[:len(s.positions)-1]
	s.hashes = s.hashes[:len(s.hashes)-1]
}

// Repetitions counts entries in the hash history equal to the current top hash,
// including itself -- a never-repeated position returns 1.
func (s *BoardStack) Repetitions() int {
	h := s.Hash()
	n := 0
	for _, x := range s.hashes {
		if x == h {
			n++
		}
	}
	return n
}
