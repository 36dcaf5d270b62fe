package chess

import "math/rand"

// ZobristHash identifies a position up to hash collisions, by XORing per
// piece-square-color, castling, en-passant and side-to-move features.
//
// See also: https://research.cs.wisc.edu/techreports/1970/TR88.pdf.
type ZobristHash uint64

// ZobristTable is a pseudo-randomized feature table for computing position hashes.
type ZobristTable struct {
	pieces   [NumColors][NumPieces + 1][NumSquares]ZobristHash
	castling [16]ZobristHash
	enfile   [8]ZobristHash
	turn     ZobristHash
}

func NewZobristTable(seed int64) *ZobristTable {
	r := rand.New(rand.NewSource(seed))
	zt := &ZobristTable{}
	for c := Color(0); c < NumColors; c++ {
		for piece := Pawn; piece <= King; piece++ {
			for sq := Square(0); sq < NumSquares; sq++ {
				zt.pieces[c][piece][sq] = ZobristHash(r.Uint64())
			}
		}
	}
	for i := range zt.castling {
		zt.castling[i] = ZobristHash(r.Uint64())
	}
	for i := range zt.enfile {
		zt.enfile[i] = ZobristHash(r.Uint64())
	}
	zt.turn = ZobristHash(r.Uint64())
	return zt
}

// Hash computes the position hash from scratch.
func (zt *ZobristTable) Hash(p *Position) ZobristHash {
	var h ZobristHash
	for sq := Square(0); sq < NumSquares; sq++ {
		if o := p.board[sq]; o.Present {
			h ^= zt.pieces[o.Color][o.Piece][sq]
		}
	}
	h ^= zt.castling[p.castle]
	if ep, ok := p.EnPassant(); ok {
		h ^= zt.enfile[ep.File()]
	}
	if p.turn == Black {
		h ^= zt.turn
	}
	return h
}
