package rete

import (
	"fmt"
	"sort"
)

// ReteNetwork builds and shares the discrimination network and routes
// assertions. It exclusively owns every node
// in the network (alpha-trie nodes, alpha/beta memories, join nodes,
// production nodes); WMEs are owned by the embedding engine's working
// memory — the network only holds non-owning references to them.
type ReteNetwork struct {
	alphaRoot *alphaTrieNode
	betaRoot  *BetaMemory

	workingMemory []*WME
	nextTimestamp int

	productionNodes []*ProductionNode
	byName          map[string]*ProductionNode
}

// NewReteNetwork builds an empty network with its distinguished
// beta_root.
func NewReteNetwork() *ReteNetwork {
	return &ReteNetwork{
		alphaRoot: newAlphaTrieNode(),
		betaRoot:  newBetaRoot(),
		byName:    make(map[string]*ProductionNode),
	}
}

// AddWME asserts a fact: traverse the alpha trie from the root,
// descending into every child whose constant test the WME passes,
// activating every AlphaMemory encountered. Duplicate assertion of an
// equal WME is a silent no-op.
func (net *ReteNetwork) AddWME(id, attr Symbol, val Value) *WME {
	for _, existing := range net.workingMemory {
		if existing.Identifier == id && existing.Attribute == attr && existing.Value.Equal(val) {
			return existing
		}
	}

	net.nextTimestamp++
	w := newWME(id, attr, val, net.nextTimestamp)
	net.workingMemory = append(net.workingMemory, w)
	net.activateAlphaTrie(net.alphaRoot, w)
	return w
}

// activateAlphaTrie descends every branch whose test the WME passes —
// at each depth a WME may satisfy more than one child test only when
// fields collide in value, which cannot happen for a single field, so
// in practice at most one child per tested field matches, but the walk
// is written generally in case of future field extensions.
func (net *ReteNetwork) activateAlphaTrie(node *alphaTrieNode, w *WME) {
	if node.memory != nil {
		node.memory.activateWith(w)
	}
	for key, child := range node.children {
		if wmeSatisfiesTest(w, key) {
			net.activateAlphaTrie(child, w)
		}
	}
}

func wmeSatisfiesTest(w *WME, key alphaTestKey) bool {
	switch key.field {
	case fieldID:
		s, _ := key.value.AsString()
		return w.Identifier == s
	case fieldAttr:
		s, _ := key.value.AsString()
		return w.Attribute == s
	default:
		return key.value.Equal(w.Value)
	}
}

// RemoveWME retracts a fact: remove it from every AlphaMemory it
// appears in, then detach every token that references it — children
// first, so invariants hold at every intermediate step.
func (net *ReteNetwork) RemoveWME(w *WME) {
	for i, existing := range net.workingMemory {
		if existing == w {
			net.workingMemory = append(net.workingMemory[:i], net.workingMemory[i+1:]...)
			break
		}
	}

	for _, m := range append([]*AlphaMemory(nil), w.alphaMemories...) {
		m.removeWME(w)
	}

	for _, t := range append([]*Token(nil), w.tokens...) {
		t.detach()
	}
}

// AddProduction builds (or shares) the beta-side chain for a
// production's conditions and wraps the terminal BetaMemory in a
// ProductionNode. It returns the resulting ProductionNode plus any
// non-fatal malformed-rule warnings: the rule is still accepted and
// matched as given.
func (net *ReteNetwork) AddProduction(p *Production) (*ProductionNode, []string, error) {
	if p == nil {
		return nil, nil, fmt.Errorf("nil production")
	}
	if len(p.Conditions) == 0 {
		return nil, nil, fmt.Errorf("production %q has no conditions", p.Name)
	}

	warnings := validateBindings(p)

	parent := net.betaRoot
	for i, cond := range p.Conditions {
		alpha := net.buildOrShareAlphaMemory(cond)
		tests := deriveJoinTests(cond, p.Conditions[:i])
		isRoot := i == 0

		join := findSharedJoin(parent, alpha, tests)
		if join == nil {
			join = newJoinNode(parent, alpha, tests, isRoot)
			join.betaChild = newBetaMemory()
			parent.addChild(join)
			// Newly created join: populate its beta memory from
			// whatever is already in the alpha memory, by simulating a
			// left-activation for every token currently in parent.
			for _, t := range parent.Tokens() {
				join.leftActivation(t, nil)
			}
		}
		parent = join.betaChild
	}

	node := newProductionNode(parent, p)
	parent.addChild(node)

	// A production can already have matches if its conditions were
	// fully satisfied by working memory accumulated before this call
	// (shared chains carry pre-existing tokens forward); pick those up
	// now.
	for _, t := range parent.Tokens() {
		node.leftActivation(t, t.WME())
	}

	net.productionNodes = append(net.productionNodes, node)
	net.byName[p.Name] = node
	return node, warnings, nil
}

func findSharedJoin(parent *BetaMemory, alpha *AlphaMemory, tests []JoinTest) *JoinNode {
	for _, child := range parent.children {
		if j, ok := child.(*JoinNode); ok && j.sameShape(alpha, tests) {
			return j
		}
	}
	return nil
}

// deriveJoinTests derives the join tests for the current condition: for
// the current condition and each earlier condition (nearest first), for
// every variable field of the current condition that also occurs in an
// earlier condition, emit a test against that earlier condition's WME,
// measured by distance along the token chain from the newest WME.
func deriveJoinTests(current Condition, earlier []Condition) []JoinTest {
	var tests []JoinTest
	n := len(earlier)

	for fi, f := range current.fields() {
		if f.Kind != FieldVariable {
			continue
		}
		// Nearest ancestor first stabilises sharing.
		for i := n - 1; i >= 0; i-- {
			if gi, ok := firstVariableField(earlier[i], f.Variable); ok {
				tests = append(tests, JoinTest{
					NewField:      fieldIndex(fi),
					AncestorDepth: n - 1 - i,
					AncestorField: gi,
				})
				break
			}
		}
	}
	return tests
}

func firstVariableField(c Condition, name string) (fieldIndex, bool) {
	for idx, f := range c.fields() {
		if f.Kind == FieldVariable && f.Variable == name {
			return fieldIndex(idx), true
		}
	}
	return 0, false
}

// validateBindings flags a condition that references a variable which
// does not appear in any earlier condition AND is not bound in any
// later condition, as a non-fatal warning.
func validateBindings(p *Production) []string {
	var warnings []string
	for i, c := range p.Conditions {
		for _, f := range c.fields() {
			if f.Kind != FieldVariable {
				continue
			}
			boundElsewhere := false
			for j, other := range p.Conditions {
				if j == i {
					continue
				}
				if _, ok := firstVariableField(other, f.Variable); ok {
					boundElsewhere = true
					break
				}
			}
			if !boundElsewhere {
				warnings = append(warnings, fmt.Sprintf(
					"production %q: variable %q in condition %d occurs nowhere else — matches as a universally-bound variable",
					p.Name, f.Variable, i))
			}
		}
	}
	return warnings
}

// ProductionNodes returns every registered production node, used by the
// engine to rebuild the agenda each cycle.
func (net *ReteNetwork) ProductionNodes() []*ProductionNode {
	return append([]*ProductionNode(nil), net.productionNodes...)
}

// ProductionByName looks up a registered production's node by name.
func (net *ReteNetwork) ProductionByName(name string) (*ProductionNode, bool) {
	n, ok := net.byName[name]
	return n, ok
}

// WorkingMemory returns every currently asserted WME, in assertion order.
func (net *ReteNetwork) WorkingMemory() []*WME {
	return append([]*WME(nil), net.workingMemory...)
}

// AlphaMemories returns every AlphaMemory reachable from the alpha trie
// root, sorted by ID for stable dump output — used by DumpState, which
// has no other way to enumerate memories the trie owns internally.
func (net *ReteNetwork) AlphaMemories() []*AlphaMemory {
	var out []*AlphaMemory
	collectAlphaMemories(net.alphaRoot, &out)
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

func collectAlphaMemories(n *alphaTrieNode, out *[]*AlphaMemory) {
	if n.memory != nil {
		*out = append(*out, n.memory)
	}
	for _, child := range n.children {
		collectAlphaMemories(child, out)
	}
}

// BetaMemories returns every BetaMemory reachable from beta_root —
// beta_root itself plus every JoinNode's betaChild, transitively —
// sorted by ID for stable dump output.
func (net *ReteNetwork) BetaMemories() []*BetaMemory {
	var out []*BetaMemory
	seen := make(map[*BetaMemory]bool)
	collectBetaMemories(net.betaRoot, &out, seen)
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

func collectBetaMemories(b *BetaMemory, out *[]*BetaMemory, seen map[*BetaMemory]bool) {
	if b == nil || seen[b] {
		return
	}
	seen[b] = true
	*out = append(*out, b)
	for _, child := range b.children {
		if j, ok := child.(*JoinNode); ok {
			collectBetaMemories(j.betaChild, out, seen)
		}
	}
}
