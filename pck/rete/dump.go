package rete

import (
	"fmt"
	"io"
)

// DumpState writes a debug-only textual dump of working memory, alpha
// memories, beta memories, production items, and the agenda. It is
// intentionally plain — a `fmt`-based developer aid like
// pck/event_network/printing.go's PrintEventGraph, not a pretty-printer
// product.
func (net *ReteNetwork) DumpState(w io.Writer) {
	fmt.Fprintf(w, "working memory (%d facts):\n", len(net.workingMemory))
	for _, wme := range net.workingMemory {
		fmt.Fprintf(w, "  #%d (%s %s %s)\n", wme.timestamp, wme.Identifier, wme.Attribute, wme.Value.String())
	}

	alphaMemories := net.AlphaMemories()
	fmt.Fprintf(w, "alpha memories (%d):\n", len(alphaMemories))
	for _, m := range alphaMemories {
		fmt.Fprintf(w, "  %s (%d item(s)):\n", m.ID, len(m.items))
		for _, wme := range m.items {
			fmt.Fprintf(w, "    #%d (%s %s %s)\n", wme.timestamp, wme.Identifier, wme.Attribute, wme.Value.String())
		}
	}

	betaMemories := net.BetaMemories()
	fmt.Fprintf(w, "beta memories (%d):\n", len(betaMemories))
	for _, b := range betaMemories {
		fmt.Fprintf(w, "  %s (%d token(s)):\n", b.ID, len(b.tokens))
		for _, t := range b.tokens {
			fmt.Fprintf(w, "    depth=%d %v\n", t.Depth(), dumpWMEChain(t))
		}
	}

	fmt.Fprintf(w, "productions (%d):\n", len(net.productionNodes))
	for _, p := range net.productionNodes {
		fmt.Fprintf(w, "  %s: %d condition(s), %d match(es)\n", p.Production.Name, len(p.Production.Conditions), len(p.items))
		for _, t := range p.items {
			fmt.Fprintf(w, "    %v\n", p.getVariableBindings(t))
		}
	}

	fmt.Fprintf(w, "agenda (%d entries):\n", countAgendaEntries(net.productionNodes))
	for _, p := range net.productionNodes {
		for _, t := range p.items {
			fmt.Fprintf(w, "  %s %v\n", p.Production.Name, p.getVariableBindings(t))
		}
	}
}

func countAgendaEntries(nodes []*ProductionNode) int {
	n := 0
	for _, p := range nodes {
		n += len(p.items)
	}
	return n
}

// dumpWMEChain renders a token's WME chain from the dummy root's
// immediate child through to the token's own WME, oldest first.
func dumpWMEChain(t *Token) []string {
	wmes := t.AllWMEs()
	out := make([]string, 0, len(wmes))
	for i := len(wmes) - 1; i >= 0; i-- {
		w := wmes[i]
		if w == nil {
			continue
		}
		out = append(out, fmt.Sprintf("(%s %s %s)", w.Identifier, w.Attribute, w.Value.String()))
	}
	return out
}
