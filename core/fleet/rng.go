package fleet

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// vehicleRand returns a deterministically derived RNG for one vehicle.
// Each vehicle gets its own stream so fault counts are reproducible for a
// given master seed regardless of goroutine interleaving.
func vehicleRand(masterSeed int64, id int) *rand.Rand {
	return rand.New(rand.NewSource(masterSeed ^ fnv1a64(fmt.Sprintf("vehicle_%d", id))))
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
