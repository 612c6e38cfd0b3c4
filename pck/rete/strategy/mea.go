package strategy

import "github.com/jtomasevic/rete-synapse/pck/rete"

// anchorTimestamp returns the assertion index of the WME contributed by
// the rule's first condition — the "goal" anchor.
// Token.AllWMEs() is newest-first, so the first condition's WME is the
// last element.
func anchorTimestamp(e AgendaEntry) int {
	wmes := e.Token.AllWMEs()
	if len(wmes) == 0 {
		return -1
	}
	return wmes[len(wmes)-1].Timestamp()
}

// MEAStrategy is identical to LEX except it gives absolute priority to
// the recency of the WME contributed by the rule's first condition;
// remaining positions break ties LEX-style.
type MEAStrategy struct{}

func NewMEAStrategy() *MEAStrategy { return &MEAStrategy{} }

func (m *MEAStrategy) Select(agenda []AgendaEntry) AgendaEntry {
	best := agenda[0]
	bestAnchor := anchorTimestamp(best)
	bestSeq := recencySequence(best)
	bestDepth := best.Token.Depth()

	for _, e := range agenda[1:] {
		anchor := anchorTimestamp(e)
		switch {
		case anchor > bestAnchor:
			best, bestAnchor, bestSeq, bestDepth = e, anchor, recencySequence(e), e.Token.Depth()
		case anchor < bestAnchor:
			// loses on the anchor alone
		default:
			seq := recencySequence(e)
			switch c := lexCompare(seq, bestSeq); {
			case c > 0:
				best, bestAnchor, bestSeq, bestDepth = e, anchor, seq, e.Token.Depth()
			case c == 0:
				if depth := e.Token.Depth(); depth > bestDepth {
					best, bestAnchor, bestSeq, bestDepth = e, anchor, seq, depth
				}
			}
		}
	}
	return best
}

func (m *MEAStrategy) ProvideFeedback(production *rete.Production, scalar float64) {}
