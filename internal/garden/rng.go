package garden

// Rand is the randomness the engine needs. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Pick returns a uniformly random index in [0, n).
func Pick(rng Rand, n int) int {
	if n <= 1 {
		return 0
	}
	return rng.Intn(n)
}

// ShufflePositions shuffles ps in place (Fisher-Yates).
func ShufflePositions(rng Rand, ps []Position) {
	for i := len(ps) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		ps[i], ps[j] = ps[j], ps[i]
	}
}
