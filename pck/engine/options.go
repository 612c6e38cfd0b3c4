package engine

import (
	"io"
	"math/rand"
	"os"

	"github.com/jtomasevic/rete-synapse/pck/rete/strategy"
)

// Options configures an InferenceEngine. There is no environment-variable
// or config-file surface: tunables are plain Go values, following the
// same plain-struct-config idiom as pck/event_network/expression.go's
// Conditions{MaxDepth, Counter, TimeWindow, ...}.
type Options struct {
	Strategy    strategy.ConflictResolutionStrategy
	Warnings    io.Writer
	GBBWeight   float64
	GBBLearning float64
	GBBEpsilon  float64
	GBBRand     *rand.Rand
}

func defaultOptions() Options {
	return Options{
		Strategy:    strategy.NewDefaultStrategy(),
		Warnings:    os.Stderr,
		GBBWeight:   1.0,
		GBBLearning: 0.5,
		GBBEpsilon:  strategy.Epsilon,
	}
}

// Option mutates Options during InferenceEngine construction.
type Option func(*Options)

// WithStrategy sets the initial conflict-resolution strategy.
func WithStrategy(s strategy.ConflictResolutionStrategy) Option {
	return func(o *Options) { o.Strategy = s }
}

// WithWarningsWriter redirects malformed-rule warning output; defaults to os.Stderr.
func WithWarningsWriter(w io.Writer) Option {
	return func(o *Options) { o.Warnings = w }
}

// WithGBB selects a Gambler's Bucket Brigade strategy with the given
// initial weight, learning rate, and weight-floor epsilon (epsilon <= 0
// falls back to strategy.Epsilon), optionally seeded with a
// deterministic RNG for tests.
func WithGBB(initialWeight, learningRate, epsilon float64, rng *rand.Rand) Option {
	return func(o *Options) {
		o.GBBWeight = initialWeight
		o.GBBLearning = learningRate
		o.GBBEpsilon = epsilon
		o.GBBRand = rng
		o.Strategy = strategy.NewGBBStrategy(initialWeight, learningRate, epsilon, rng)
	}
}
