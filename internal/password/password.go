package password

import (
	"math/rand"
	"time"
)

// Random picks an index in [0, n).
type Random interface {
	Intn(n int) int
}

// NewRandom returns a Random seeded with seed, or with the current time when seed is zero.
func NewRandom(seed int64) Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Assemble joins cleaned lyric text and the suffix with no separator.
func Assemble(lyrics, suffix string) string {
	return lyrics + suffix
}
