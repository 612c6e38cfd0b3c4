package rete

import "github.com/google/uuid"

// NodeID labels network nodes for dump_state / debugging only; it plays
// no role in match semantics. Follows the same `EventID = uuid.UUID`
// node-identification idiom as pck/event_network.
type NodeID = uuid.UUID

func newNodeID() NodeID { return uuid.New() }

// AlphaMemory holds the WMEs satisfying a single condition's constant
// tests, in insertion order, with no duplicates.
type AlphaMemory struct {
	ID    NodeID
	items []*WME
	succ  []*JoinNode
}

func newAlphaMemory() *AlphaMemory {
	return &AlphaMemory{ID: newNodeID()}
}

// Items returns the WMEs currently held, in insertion order.
func (m *AlphaMemory) Items() []*WME {
	return append([]*WME(nil), m.items...)
}

func (m *AlphaMemory) contains(w *WME) bool {
	for _, item := range m.items {
		if item.Equal(w) {
			return true
		}
	}
	return false
}

// activateWith appends the WME if novel, records the back-reference,
// then right-activates every successor JoinNode in registration order.
func (m *AlphaMemory) activateWith(w *WME) {
	if m.contains(w) {
		return
	}
	m.items = append(m.items, w)
	w.addAlphaMemory(m)
	for _, j := range m.succ {
		j.RightActivation(w)
	}
}

func (m *AlphaMemory) addSuccessor(j *JoinNode) {
	m.succ = append(m.succ, j)
}

// removeWME drops w from this memory.
func (m *AlphaMemory) removeWME(w *WME) {
	for i, item := range m.items {
		if item.Equal(w) {
			m.items = append(m.items[:i], m.items[i+1:]...)
			w.removeAlphaMemory(m)
			return
		}
	}
}

// --- alpha trie: constant-test discrimination tree ---
//
// The trie is keyed by constant field tests in fixed order
// (identifier, attribute, value); a variable field contributes no test
// (always-true) and is simply skipped, so two conditions sharing the
// same constant fields — regardless of where their variables sit — walk
// to the same trie node and share one AlphaMemory.

type alphaTestKey struct {
	field fieldIndex
	value Value
}

type alphaTrieNode struct {
	children map[alphaTestKey]*alphaTrieNode
	memory   *AlphaMemory

	// tests accumulates the constant tests applied along the path from
	// the root to this node, so that a freshly created AlphaMemory can
	// be retro-populated by re-testing already-known WMEs.
	tests []constantTest
}

type constantTest struct {
	field fieldIndex
	value Value
}

func newAlphaTrieNode() *alphaTrieNode {
	return &alphaTrieNode{children: make(map[alphaTestKey]*alphaTrieNode)}
}

func (n *alphaTrieNode) childFor(field fieldIndex, value Value) *alphaTrieNode {
	key := alphaTestKey{field: field, value: value}
	child, ok := n.children[key]
	if !ok {
		child = newAlphaTrieNode()
		child.tests = append(append([]constantTest(nil), n.tests...), constantTest{field: field, value: value})
		n.children[key] = child
	}
	return child
}

// canonicalTestValue normalizes identifier/attribute constants to their
// string content regardless of whether the caller built them with
// StringValue or SymbolValue, so two conditions naming the same symbol
// through either constructor still share a trie path. Value-field constants are left as-is: value equality is
// by Value.Equal, which is kind-sensitive by design.
func canonicalTestValue(field fieldIndex, v Value) Value {
	if field == fieldVal {
		return v
	}
	if s, ok := v.AsString(); ok {
		return StringValue(s)
	}
	return v
}

// passes reports whether a WME satisfies every constant test accumulated
// on this trie node.
func (n *alphaTrieNode) passes(w *WME) bool {
	for _, t := range n.tests {
		switch t.field {
		case fieldID:
			sym, _ := t.value.AsString()
			if w.Identifier != sym {
				return false
			}
		case fieldAttr:
			sym, _ := t.value.AsString()
			if w.Attribute != sym {
				return false
			}
		case fieldVal:
			if !t.value.Equal(w.Value) {
				return false
			}
		}
	}
	return true
}

// buildOrShareAlphaMemory walks/extends the trie for one condition and
// returns the (possibly shared) leaf AlphaMemory, retro-inserting
// currently known WMEs into any newly created memory.
func (net *ReteNetwork) buildOrShareAlphaMemory(c Condition) *AlphaMemory {
	node := net.alphaRoot
	for idx, f := range c.fields() {
		if f.Kind != FieldConstant {
			continue
		}
		node = node.childFor(fieldIndex(idx), canonicalTestValue(fieldIndex(idx), f.Constant))
	}

	if node.memory == nil {
		node.memory = newAlphaMemory()
		// Retro-insertion: late rule addition must see current facts.
		for _, w := range net.workingMemory {
			if node.passes(w) {
				node.memory.activateWithoutNotify(w)
			}
		}
	}
	return node.memory
}

// activateWithoutNotify is used only for retro-insertion at network
// construction time: the memory's successor list is still empty (the
// JoinNode that will consume it hasn't been wired yet), so there is
// nothing to notify.
func (m *AlphaMemory) activateWithoutNotify(w *WME) {
	if m.contains(w) {
		return
	}
	m.items = append(m.items, w)
	w.addAlphaMemory(m)
}
