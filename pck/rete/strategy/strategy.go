// Package strategy implements the four conflict-resolution strategies:
// Default, LEX, MEA, and Gambler's Bucket Brigade (GBB). Each is a
// small, independently-testable implementer of
// ConflictResolutionStrategy — "a small interface with four concrete
// implementations; no reflection required".
package strategy

import "github.com/jtomasevic/rete-synapse/pck/rete"

// AgendaEntry is one (production, token) pair on the conflict set.
type AgendaEntry struct {
	Production *rete.ProductionNode
	Token      *rete.Token
}

// ConflictResolutionStrategy selects one agenda entry to fire and
// optionally accepts feedback after it fires.
type ConflictResolutionStrategy interface {
	// Select picks one entry from a non-empty agenda. Callers must never
	// pass an empty slice.
	Select(agenda []AgendaEntry) AgendaEntry

	// ProvideFeedback is the optional reinforcement-learning hook
	//; strategies that don't use it implement it as
	// a no-op.
	ProvideFeedback(production *rete.Production, scalar float64)
}
