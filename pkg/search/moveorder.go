package search

import (
	"container/heap"

	"github.com/kestrelchess/kestrel/pkg/chess"
)

// priority is the move order key: a three-constructor ordinal (PV move highest,
// then captures by MVV/LVA, then quiets by history score lowest), packed into a
// single comparable int32 so ordering is a single sort/heap key.
type priority int32

const (
	pvBand      priority = 2_000_000
	captureBand priority = 1_000_000
	// quiet band is just the (signed) history score, always below captureBand
	// since MaxHistory << captureBand.
)

// GetOrderedMoves returns the legal moves of p ranked: the TT entry's best move
// first, then captures by MVV/LVA, then quiets by history score. If qsearch is
// true, only captures (including en passant) are retained.
func GetOrderedMoves(p *chess.Position, ttMove chess.Move, h *History, qsearch bool) *MoveList {
	legal := p.LegalMoves()

	var candidates []chess.Move
	if qsearch {
		for _, m := range legal {
			if isCapture(m) {
				candidates = append(candidates, m)
			}
		}
	} else {
		candidates = legal
	}

	turn := p.Turn()
	items := make([]item, len(candidates))
	for i, m := range candidates {
		items[i] = item{m: m, p: moveClassPriority(m, ttMove, turn, h)}
	}
	return newMoveList(items)
}

// isCapture classifies a move as a capture: the destination holds an enemy piece,
// or it is an en-passant pawn advance (victim is implicitly a pawn).
func isCapture(m chess.Move) bool {
	return m.IsCapture()
}

func moveClassPriority(m chess.Move, ttMove chess.Move, turn chess.Color, h *History) priority {
	if ttMove != (chess.Move{}) && m.Equals(ttMove) {
		return pvBand
	}
	if isCapture(m) {
		victim, attacker := pieceOrdinal(m.Captured), pieceOrdinal(m.Piece)
		return captureBand + priority(victim)*8 - priority(attacker)
	}
	return priority(h.GetQuietScore(turn, m.Piece, m.To))
}

// pieceOrdinal maps a piece kind to the P<N<B<R<Q<K ordinal MVV/LVA needs.
func pieceOrdinal(p chess.Piece) int {
	switch p {
	case chess.Pawn:
		return 0
	case chess.Knight:
		return 1
	case chess.Bishop:
		return 2
	case chess.Rook:
		return 3
	case chess.Queen:
		return 4
	case chess.King:
		return 5
	default:
		return 0
	}
}

// MoveList is a move priority queue: Next returns the highest-priority move
// remaining, with ties broken by the underlying move generator's iteration order
// (a stable max-heap: equal-priority items compare by insertion index).
type MoveList struct {
	h itemHeap
}

type item struct {
	m   chess.Move
	p   priority
	seq int
}

func newMoveList(items []item) *MoveList {
	h := make(itemHeap, len(items))
	for i, it := range items {
		it.seq = i
		h[i] = it
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

// Next returns the next move in priority order, or ok=false when exhausted.
func (ml *MoveList) Next() (chess.Move, bool) {
	if len(ml.h) == 0 {
		return chess.Move{}, false
	}
	it := heap.Pop(&ml.h).(item)
	return it.m, true
}

// Len returns the number of moves remaining.
func (ml *MoveList) Len() int {
	return len(ml.h)
}

type itemHeap []item

func (h itemHeap) Len() int { return len(h) }
func (h itemHeap) Less(i, j int) bool {
	if h[i].p != h[j].p {
		return h[i].p > h[j].p
	}
	return h[i].seq < h[j].seq // stable: earlier generator order first
}
func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *itemHeap) Push(x interface{}) {
	panic("fixed size heap") // MoveList is built once via newMoveList
}

func (h *itemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}
