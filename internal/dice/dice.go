package dice

import (
	"math/rand"
	"time"
)

// Roller is the table's source of randomness: it shuffles the role pool
// into seats and draws random role sets.
type Roller struct {
	random *rand.Rand
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new dice roller
func New(cfg *Config) *Roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &Roller{
		random: random,
	}
}

// Shuffle permutes n elements through swap.
func (r *Roller) Shuffle(n int, swap func(i, j int)) {
	r.random.Shuffle(n, swap)
}
