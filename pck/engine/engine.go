// Package engine implements the embedding API: working memory mutators,
// the recognize-act cycle, and the pluggable conflict-resolution
// strategies defined in pck/rete/strategy.
package engine

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jtomasevic/rete-synapse/pck/rete"
	"github.com/jtomasevic/rete-synapse/pck/rete/strategy"
)

// InferenceEngine owns working memory, the Rete network, and the agenda,
// and drives the recognize-act cycle.
type InferenceEngine struct {
	id       uuid.UUID
	network  *rete.ReteNetwork
	strategy strategy.ConflictResolutionStrategy
	warnOut  io.Writer
	fired    map[strategy.AgendaEntry]bool
}

// New builds an InferenceEngine. With no options it uses the Default
// conflict-resolution strategy.
func New(opts ...Option) *InferenceEngine {
	o := defaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return &InferenceEngine{
		id:       uuid.New(),
		network:  rete.NewReteNetwork(),
		strategy: o.Strategy,
		warnOut:  o.Warnings,
		fired:    make(map[strategy.AgendaEntry]bool),
	}
}

// AddProduction registers a production. Conditions fix the left-to-right
// join order; actions run in order when the production fires.
// Malformed-rule warnings are printed to the engine's warnings writer —
// the same bare fmt.Println diagnostic idiom synapse_runtime.go's
// OnRecognize uses — and the rule is still accepted and matched as given.
func (e *InferenceEngine) AddProduction(name string, conditions []rete.Condition, actions ...rete.Action) (*rete.Production, error) {
	p := rete.NewProduction(name, conditions, actions...)
	_, warnings, err := e.network.AddProduction(p)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		fmt.Fprintf(e.warnOut, "%s: %s\n", ErrMalformedRule, w)
	}
	return p, nil
}

// AddWME asserts a fact. Duplicate assertion of an equal WME is a silent
// no-op.
func (e *InferenceEngine) AddWME(id, attr rete.Symbol, val rete.Value) *rete.WME {
	return e.network.AddWME(id, attr, val)
}

// RemoveWME retracts a fact.
func (e *InferenceEngine) RemoveWME(w *rete.WME) {
	e.network.RemoveWME(w)
}

// SetConflictResolutionStrategy swaps the active strategy.
func (e *InferenceEngine) SetConflictResolutionStrategy(s strategy.ConflictResolutionStrategy) {
	e.strategy = s
}

// ProvideFeedback forwards a success/failure scalar to the active
// strategy. The engine never calls this automatically — it is purely an
// embedder-driven entry point, callable from an action or after Run
// returns.
func (e *InferenceEngine) ProvideFeedback(p *rete.Production, successFactor float64) {
	if e.strategy == nil || p == nil {
		return
	}
	e.strategy.ProvideFeedback(p, successFactor)
}

// buildConflictSet recomputes the agenda as the flat list of
// (production, token) over every ProductionNode's current items, leaving
// out entries that have already fired.
func (e *InferenceEngine) buildConflictSet() []strategy.AgendaEntry {
	var agenda []strategy.AgendaEntry
	for _, node := range e.network.ProductionNodes() {
		for _, t := range node.Items() {
			entry := strategy.AgendaEntry{Production: node, Token: t}
			if !e.fired[entry] {
				agenda = append(agenda, entry)
			}
		}
	}
	return agenda
}

// Run executes the recognize-act cycle: rebuild the agenda, select one
// entry, execute its production, repeat, until the agenda is empty or
// maxCycles has been reached. maxCycles <= 0 means unlimited. Each match
// fires at most once; a match rebuilt from re-asserted facts is a new
// match and can fire again. An action
// error propagates out of Run unmodified, after all mutations already
// performed remain in effect — Run returns the cycle count completed so
// far alongside the error.
func (e *InferenceEngine) Run(maxCycles int) (int, error) {
	cycles := 0
	for {
		agenda := e.buildConflictSet()
		if len(agenda) == 0 {
			return cycles, nil
		}

		entry := e.strategy.Select(agenda)
		e.fired[entry] = true
		if err := entry.Production.Execute(entry.Token, e); err != nil {
			return cycles, err
		}

		cycles++
		if maxCycles > 0 && cycles >= maxCycles {
			return cycles, nil
		}
	}
}

// DumpState writes a debug-only textual dump of working memory,
// production items, and agenda.
func (e *InferenceEngine) DumpState(w io.Writer) {
	fmt.Fprintf(w, "engine %s\n", e.id)
	e.network.DumpState(w)
}

// Network exposes the underlying Rete network for inspection (e.g. in
// tests asserting sharing invariants); it is not part of the embedding
// API's mutation surface.
func (e *InferenceEngine) Network() *rete.ReteNetwork {
	return e.network
}
