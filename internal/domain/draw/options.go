package draw

import "math/rand"

// Option applies a configuration option to the Picker.
type Option func(*Picker)

// WithRand sets the random source. Tests pass a seeded source to make
// draws deterministic.
func WithRand(rng *rand.Rand) Option {
	return func(p *Picker) {
		if rng != nil {
			p.rng = rng
		}
	}
}

// WithHighTierOdds sets the probability of drawing from the high tier.
func WithHighTierOdds(odds float64) Option {
	return func(p *Picker) {
		if odds >= 0 && odds <= 1 {
			p.highTierOdds = odds
		}
	}
}

// WithHighTierFloor sets the minimum rating of the high tier.
func WithHighTierFloor(floor int) Option {
	return func(p *Picker) {
		if floor > 0 {
			p.highTierFloor = floor
		}
	}
}
