package eval

import "math/rand"

// Random adds a small amount of noise to leaf evaluations, so otherwise-identical
// games vary. Limit specifies how many centipawns to add/remove, in the range
// [-limit/2; limit/2]. The zero value always returns zero (noise disabled).
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{limit: limit, rand: rand.New(rand.NewSource(seed))}
}

func (n Random) Noise() int16 {
	if n.limit <= 0 {
		return 0
	}
	return int16(n.rand.Intn(n.limit) - n.limit/2)
}
