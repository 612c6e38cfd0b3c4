package strategy

import "github.com/jtomasevic/rete-synapse/pck/rete"

// DefaultStrategy chooses the agenda entry whose token has maximum depth
// — the most-specific, most-complete match — breaking ties by agenda
// insertion order.
type DefaultStrategy struct{}

func NewDefaultStrategy() *DefaultStrategy { return &DefaultStrategy{} }

func (d *DefaultStrategy) Select(agenda []AgendaEntry) AgendaEntry {
	best := agenda[0]
	bestDepth := best.Token.Depth()
	for _, e := range agenda[1:] {
		if depth := e.Token.Depth(); depth > bestDepth {
			best, bestDepth = e, depth
		}
	}
	return best
}

func (d *DefaultStrategy) ProvideFeedback(production *rete.Production, scalar float64) {}
