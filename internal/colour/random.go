package colour

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand/v2"
)

// maxPacked is the number of distinct 24-bit colours.
const maxPacked = 1 << 24

// Source supplies uniform random integers in [0, n).
// *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a ChaCha8-backed Source. A zero seed is replaced by
// one drawn from crypto/rand, so only explicit seeds are reproducible.
func NewSource(seed uint64) Source {
	if seed == 0 {
		var randomBytes [8]byte
		if _, err := rand.Read(randomBytes[:]); err == nil {
			seed = binary.LittleEndian.Uint64(randomBytes[:])
		}
	}

	var seedArray [32]byte
	binary.LittleEndian.PutUint64(seedArray[:8], seed)
	// #nosec G404 -- colours need reproducibility, not unpredictability
	return mathrand.New(mathrand.NewChaCha8(seedArray))
}

// RandomHex draws a uniform colour in [#000000, #ffffff] from src.
func RandomHex(src Source) string {
	return FromPacked(uint32(src.IntN(maxPacked))).Hex() // #nosec G115 -- IntN bounded by 1<<24
}
