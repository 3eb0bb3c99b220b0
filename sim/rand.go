package sim

import (
	"math/rand"
	"time"
)

// Rand is the random source the core consumes, Float64 in [0,1)
// *rand.Rand satisfies it
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded source; seed 0 seeds from the clock
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// pick maps one draw onto [0, n)
func pick(r Rand, n int) int {
	if n <= 1 {
		return 0
	}
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
