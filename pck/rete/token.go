package rete

// Token is a node in a singly-parented chain representing a consistent
// partial match. A token of depth k represents a
// consistent assignment to the first k conditions of some rule; walking
// parent yields the k contributing WMEs in reverse condition order
// (newest first).
type Token struct {
	parent *Token
	wme    *WME // nil only for the dummy top token

	// owner is the memory (BetaMemory or ProductionNode) this token is
	// currently stored in, used to detach it during retraction without a
	// linear scan.
	owner tokenOwner

	// children are tokens built on top of this one, kept so retraction
	// can cascade child-first.
	children []*Token
}

// tokenOwner is whatever memory currently holds a Token — a BetaMemory or
// a ProductionNode (DESIGN NOTES §9's "tagged variant {Beta, Prod}").
type tokenOwner interface {
	removeToken(t *Token)
}

// newDummyTopToken is the sentinel token seeding every rule's first join.
func newDummyTopToken() *Token {
	return &Token{}
}

func newToken(parent *Token, wme *WME) *Token {
	t := &Token{parent: parent, wme: wme}
	if parent != nil {
		parent.children = append(parent.children, t)
	}
	if wme != nil {
		wme.addToken(t)
	}
	return t
}

// Depth is the number of WMEs contributed along the chain (0 for the
// dummy top token).
func (t *Token) Depth() int {
	d := 0
	for cur := t; cur != nil && cur.wme != nil; cur = cur.parent {
		d++
	}
	return d
}

// WME is the WME contributed at this level, or nil for the dummy top
// token.
func (t *Token) WME() *WME { return t.wme }

// Parent is the predecessor token.
func (t *Token) Parent() *Token { return t.parent }

// NthAncestorWME returns the WME contributed by the k-th ancestor in the
// chain: k=0 is t.WME(), k=1 is t.Parent().WME(), and so on.
func (t *Token) NthAncestorWME(k int) *WME {
	cur := t
	for i := 0; i < k; i++ {
		if cur == nil {
			return nil
		}
		cur = cur.parent
	}
	if cur == nil {
		return nil
	}
	return cur.wme
}

// AllWMEs walks the chain from the newest contribution back to the
// oldest, returning every contributing WME (leaf first).
func (t *Token) AllWMEs() []*WME {
	var out []*WME
	for cur := t; cur != nil && cur.wme != nil; cur = cur.parent {
		out = append(out, cur.wme)
	}
	return out
}

// sameChain reports whether two tokens represent the same (parent, wme)
// pair — the chain-equality test used to prevent duplicate tokens in a
// BetaMemory.
func (t *Token) sameChain(parent *Token, wme *WME) bool {
	return t.parent == parent && t.wme.Equal(wme)
}

// detach removes this token from its owner and recursively detaches its
// children first, so invariants hold at every intermediate step.
func (t *Token) detach() {
	for _, child := range append([]*Token(nil), t.children...) {
		child.detach()
	}
	t.children = nil
	if t.owner != nil {
		t.owner.removeToken(t)
		t.owner = nil
	}
	if t.wme != nil {
		t.wme.removeToken(t)
	}
	if t.parent != nil {
		t.parent.removeChild(t)
	}
}

func (t *Token) removeChild(child *Token) {
	for i, c := range t.children {
		if c == child {
			t.children = append(t.children[:i], t.children[i+1:]...)
			return
		}
	}
}
