package search

import (
	"math/bits"
	"sync/atomic"
	"unsafe"

	"github.com/kestrelchess/kestrel/pkg/chess"
)

// Entry is a stored search result: the best move found (if any), the depth it was
// searched to, its score and the score's bound relative to the window searched.
type Entry struct {
	Move  chess.Move
	Depth uint8
	Score Score
	Bound Bound
}

// packedMove packs a move's From/To/Promotion into 16 bits. The zero value (From
// and To both the zero square) is reserved to mean "no move": a legal move never
// has From == To.
type packedMove uint16

func packMove(m chess.Move) packedMove {
	if m == (chess.Move{}) {
		return 0
	}
	return packedMove(m.From) | packedMove(m.To)<<6 | packedMove(m.Promotion)<<12
}

func (pm packedMove) unpack() chess.Move {
	if pm == 0 {
		return chess.Move{}
	}
	return chess.Move{
		From:      chess.Square(pm & 0x3f),
		To:        chess.Square((pm >> 6) & 0x3f),
		Promotion: chess.Piece((pm >> 12) & 0x7),
	}
}

// entry is the packed in-memory representation of Entry. Deliberately padded to 8
// bytes so that, paired with the 8-byte key, a slot is exactly 16 bytes.
type entry struct {
	move  packedMove
	depth uint8
	bound Bound
	score Score
	_     uint16 // padding
}

// slot is an optional (key, entry) pair. A load returns the stored entry iff the
// slot is occupied and its key matches the query -- never a false positive.
type slot struct {
	key uint64
	e   entry
}

// static assert: a slot must be exactly 16 bytes.
var _ [16]byte = [unsafe.Sizeof(slot{})]byte{}

// Table is a fixed-capacity, hash-indexed transposition table with an
// always-replace policy: the newest write to an index always wins, with no
// depth- or age-based preference. Safe for concurrent Store calls (not required
// by the single-writer search, but cheap to provide via atomic pointers).
type Table struct {
	slots []atomic.Pointer[slot]
}

// NewTable allocates a table sized to fit bytes worth of 16-byte slots (truncating
// division). Zero slots is legal if the table is never queried.
func NewTable(bytes uint64) *Table {
	n := bytes / uint64(unsafe.Sizeof(slot{}))
	return &Table{slots: make([]atomic.Pointer[slot], n)}
}

// index maps a 64-bit key into [0, n) via a uniform fastrange: (key * n) >> 64,
// computed with 128-bit multiplication instead of a modulus.
func index(key uint64, n uint64) uint64 {
	hi, _ := bits.Mul64(key, n)
	return hi
}

// Load returns the stored entry for key, if present.
func (t *Table) Load(key chess.ZobristHash) (Entry, bool) {
	if len(t.slots) == 0 {
		return Entry{}, false
	}
	i := index(uint64(key), uint64(len(t.slots)))
	s := t.slots[i].Load()
	if s == nil || s.key != uint64(key) {
		return Entry{}, false
	}
	return Entry{Move: s.e.move.unpack(), Depth: s.e.depth, Score: s.e.score, Bound: s.e.bound}, true
}

// Store overwrites the slot at key's index. Always-replace: no depth/age check.
func (t *Table) Store(key chess.ZobristHash, e Entry) {
	if len(t.slots) == 0 {
		return
	}
	i := index(uint64(key), uint64(len(t.slots)))
	t.slots[i].Store(&slot{
		key: uint64(key),
		e:   entry{move: packMove(e.Move), depth: e.Depth, bound: e.Bound, score: e.Score},
	})
}

// Clear empties every slot.
func (t *Table) Clear() {
	for i := range t.slots {
		t.slots[i].Store(nil)
	}
}

// Len returns the number of slots in the table.
func (t *Table) Len() int {
	return len(t.slots)
}
