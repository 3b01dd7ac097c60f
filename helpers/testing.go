package helpers

import (
	"math/rand"
	"time"
)

// RandUnix is seeded from wall clock, tests log the seed they use.
func RandUnix() (*rand.Rand, int64) {
	seed := time.Now().UnixNano()
	return rand.New(rand.NewSource(seed)), seed
}
