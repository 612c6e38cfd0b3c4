package rete

// JoinTest is (field_of_new_wme, k, field_of_kth_ancestor_wme): the named
// field of the candidate new WME must equal the named field of the WME
// contributed by the k-th predecessor in the token chain.
type JoinTest struct {
	NewField      fieldIndex
	AncestorDepth int
	AncestorField fieldIndex
}

func fieldValue(w *WME, f fieldIndex) Value {
	switch f {
	case fieldID:
		return StringValue(w.Identifier)
	case fieldAttr:
		return StringValue(w.Attribute)
	default:
		return w.Value
	}
}

// JoinNode tests variable consistency between a BetaMemory and an
// AlphaMemory.
type JoinNode struct {
	ID     NodeID
	parent *BetaMemory // beta_root for a rule's first join
	alpha  *AlphaMemory
	tests  []JoinTest

	// betaChild is exactly one BetaMemory, optionally shared. A terminal rule attaches its
	// ProductionNode to that BetaMemory as a further child, not to the JoinNode directly.
	betaChild *BetaMemory

	isRoot bool // parent == beta_root and this join performs no tests
}

func newJoinNode(parent *BetaMemory, alpha *AlphaMemory, tests []JoinTest, isRoot bool) *JoinNode {
	j := &JoinNode{ID: newNodeID(), parent: parent, alpha: alpha, tests: tests, isRoot: isRoot}
	alpha.addSuccessor(j)
	return j
}

func (j *JoinNode) sameShape(alpha *AlphaMemory, tests []JoinTest) bool {
	if j.alpha != alpha || len(j.tests) != len(tests) {
		return false
	}
	for i := range tests {
		if j.tests[i] != tests[i] {
			return false
		}
	}
	return true
}

// RightActivation runs, for each token in the parent BetaMemory, the
// join tests against the new WME, and forwards every pass to the child.
func (j *JoinNode) RightActivation(w *WME) {
	for _, t := range j.parent.Tokens() {
		if j.performJoinTests(t, w) {
			j.forward(t, w)
		}
	}
}

// leftActivation is called when a new token arrives at the parent
// BetaMemory. The root join of a rule forwards
// every alpha WME unconditionally; otherwise each alpha WME is tested
// against the new token.
func (j *JoinNode) leftActivation(token *Token, _ *WME) {
	for _, w := range j.alpha.Items() {
		if j.isRoot || j.performJoinTests(token, w) {
			j.forward(token, w)
		}
	}
}

func (j *JoinNode) forward(token *Token, w *WME) {
	j.betaChild.leftActivation(token, w)
}

// performJoinTests reports whether every test passes.
func (j *JoinNode) performJoinTests(token *Token, w *WME) bool {
	for _, t := range j.tests {
		ancestorWME := token.NthAncestorWME(t.AncestorDepth)
		if ancestorWME == nil {
			return false
		}
		if !fieldValue(w, t.NewField).Equal(fieldValue(ancestorWME, t.AncestorField)) {
			return false
		}
	}
	return true
}
