package strategy

import (
	"math"
	"math/rand"

	"github.com/jtomasevic/rete-synapse/pck/rete"
)

// Epsilon is the default floor applied to a production's weight so
// feedback can never drive it to zero or negative; used whenever
// NewGBBStrategy is given a non-positive epsilon.
const Epsilon = 1e-6

// GBBStrategy is the Gambler's Bucket Brigade reinforcement-learning
// selector. It maintains a weight per production,
// selects by fitness-proportional ("roulette-wheel") sampling, and
// updates weights from externally supplied success/failure feedback.
// Grounded on the pack's priority/specificity conflict-resolution
// reference (other_examples/9d996655_*production_system.go), adapted
// from discrete scoring to continuous weighted sampling.
type GBBStrategy struct {
	initialWeight float64
	learningRate  float64
	epsilon       float64
	rng           *rand.Rand

	weight        map[string]float64
	lastFiredRule string
}

// NewGBBStrategy builds a GBB strategy with the given initial weight,
// learning rate, and weight-floor epsilon. epsilon <= 0 falls back to
// the package default Epsilon. rng may be nil, in which case a new
// source seeded with 1 is used; tests pass a seeded *rand.Rand for
// determinism.
func NewGBBStrategy(initialWeight, learningRate, epsilon float64, rng *rand.Rand) *GBBStrategy {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if epsilon <= 0 {
		epsilon = Epsilon
	}
	return &GBBStrategy{
		initialWeight: initialWeight,
		learningRate:  learningRate,
		epsilon:       epsilon,
		rng:           rng,
		weight:        make(map[string]float64),
	}
}

func (g *GBBStrategy) weightOf(name string) float64 {
	if w, ok := g.weight[name]; ok {
		return w
	}
	return g.initialWeight
}

// Select performs fitness-proportional sampling over the agenda's
// productions' weights: draw uniform r in [0, W), scan cumulative sums,
// return the first entry whose cumulative weight exceeds r. The selected production is recorded as last_fired_rule.
func (g *GBBStrategy) Select(agenda []AgendaEntry) AgendaEntry {
	total := 0.0
	weights := make([]float64, len(agenda))
	for i, e := range agenda {
		w := g.weightOf(e.Production.Production.Name)
		weights[i] = w
		total += w
	}

	r := g.rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r < cumulative {
			g.lastFiredRule = agenda[i].Production.Production.Name
			return agenda[i]
		}
	}

	// Floating-point rounding can leave r >= cumulative total; fall back
	// to the last entry rather than panicking.
	last := agenda[len(agenda)-1]
	g.lastFiredRule = last.Production.Production.Name
	return last
}

// ProvideFeedback applies new_weight = max(epsilon, old * (1 +
// learning_rate * s)), s in [-1, 1]. Other weights are unchanged.
func (g *GBBStrategy) ProvideFeedback(production *rete.Production, scalar float64) {
	if production == nil {
		return
	}
	old := g.weightOf(production.Name)
	updated := old * (1 + g.learningRate*scalar)
	g.weight[production.Name] = math.Max(g.epsilon, updated)
}

// Epsilon returns the weight floor this strategy was built with.
func (g *GBBStrategy) Epsilon() float64 { return g.epsilon }

// LastFiredRule returns the name of the production selected by the most
// recent call to Select, or "" if Select has never been called.
func (g *GBBStrategy) LastFiredRule() string { return g.lastFiredRule }

// WeightOf exposes a production's current weight, for tests and
// diagnostics.
func (g *GBBStrategy) WeightOf(name string) float64 { return g.weightOf(name) }
