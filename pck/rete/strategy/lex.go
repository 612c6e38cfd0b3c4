package strategy

import (
	"sort"

	"github.com/jtomasevic/rete-synapse/pck/rete"
)

// recencySequence forms the sequence of an agenda entry token's
// contributing WMEs' assertion indices, sorted descending.
func recencySequence(e AgendaEntry) []int {
	wmes := e.Token.AllWMEs()
	seq := make([]int, 0, len(wmes))
	for _, w := range wmes {
		seq = append(seq, w.Timestamp())
	}
	sort.Sort(sort.Reverse(sort.IntSlice(seq)))
	return seq
}

// lexCompare compares two descending-sorted sequences lexicographically,
// returning >0 if a wins, <0 if b wins, 0 if equal.
func lexCompare(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] - b[i]
		}
	}
	return len(a) - len(b)
}

// LEXStrategy picks the agenda entry whose contributing WMEs are, in
// lexicographic order of descending assertion-recency, the most recent.
// Ties break by token depth then agenda insertion order.
type LEXStrategy struct{}

func NewLEXStrategy() *LEXStrategy { return &LEXStrategy{} }

func (l *LEXStrategy) Select(agenda []AgendaEntry) AgendaEntry {
	best := agenda[0]
	bestSeq := recencySequence(best)
	bestDepth := best.Token.Depth()

	for _, e := range agenda[1:] {
		seq := recencySequence(e)
		switch c := lexCompare(seq, bestSeq); {
		case c > 0:
			best, bestSeq, bestDepth = e, seq, e.Token.Depth()
		case c == 0:
			if depth := e.Token.Depth(); depth > bestDepth {
				best, bestSeq, bestDepth = e, seq, depth
			}
		}
	}
	return best
}

func (l *LEXStrategy) ProvideFeedback(production *rete.Production, scalar float64) {}
