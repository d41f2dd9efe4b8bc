package telemetry

import (
	"math/rand"
	"sync"
)

// NoiseSource draws bounded symmetric noise for a sensor channel. Injecting
// it keeps simulation output reproducible under test.
type NoiseSource interface {
	// Draw returns a value in [-magnitude, +magnitude].
	Draw(magnitude float64) float64
}

// SeededNoise is the production noise source backed by math/rand.
type SeededNoise struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSeededNoise(seed int64) *SeededNoise {
	return &SeededNoise{rng: rand.New(rand.NewSource(seed))}
}

func (n *SeededNoise) Draw(magnitude float64) float64 {
	n.mu.Lock()
	v := (n.rng.Float64()*2 - 1) * magnitude
	n.mu.Unlock()
	return v
}

// ZeroNoise returns no noise at all. Tests use it to assert exact channel
// formulas.
type ZeroNoise struct{}

func (ZeroNoise) Draw(float64) float64 { return 0 }
