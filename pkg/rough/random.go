package rough

// Random is the seeded Park-Miller generator used for all jitter.
type Random struct {
	state int32
}

// NewRandom returns a generator seeded with seed. Only the low 32 bits are
// used, and a zero seed is replaced by 1 so the sequence never collapses.
func NewRandom(seed uint64) *Random {
	s := int32(uint32(seed))
	if s == 0 {
		s = 1
	}
	return &Random{state: s}
}

// Next returns the next value in [0, 1).
func (r *Random) Next() float64 {
	r.state *= 48271
	return float64(r.state&0x7fffffff) / (1 << 31)
}
