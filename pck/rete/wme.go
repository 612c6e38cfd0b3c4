package rete

// WME is an immutable working-memory triple (identifier, attribute,
// value). Equality and hashing are by triple contents; a WME
// carries back-references to every AlphaMemory and Token that currently
// incorporate it so that retraction is O(affected matches) rather than
// O(network).
type WME struct {
	Identifier Symbol
	Attribute  Symbol
	Value      Value

	// timestamp is the monotonic assertion index assigned by the owning
	// ReteNetwork's counter at add_wme time.
	timestamp int

	// alphaMemories and tokens are non-owning back-references: WMEs are owned by the engine's working memory;
	// these slices exist only to make remove_wme cheap.
	alphaMemories []*AlphaMemory
	tokens        []*Token
}

// newWME constructs a WME with the given assertion timestamp. Unexported:
// callers go through ReteNetwork.AddWME, which is the only place a
// timestamp is legitimately minted.
func newWME(id, attr Symbol, val Value, timestamp int) *WME {
	return &WME{Identifier: id, Attribute: attr, Value: val, timestamp: timestamp}
}

// Timestamp is the monotonic assertion index.
func (w *WME) Timestamp() int { return w.timestamp }

// Equal implements triple-content equality.
func (w *WME) Equal(other *WME) bool {
	if w == nil || other == nil {
		return w == other
	}
	return w.Identifier == other.Identifier &&
		w.Attribute == other.Attribute &&
		w.Value.Equal(other.Value)
}

func (w *WME) addAlphaMemory(m *AlphaMemory) {
	w.alphaMemories = append(w.alphaMemories, m)
}

func (w *WME) addToken(t *Token) {
	w.tokens = append(w.tokens, t)
}

func (w *WME) removeAlphaMemory(m *AlphaMemory) {
	for i, am := range w.alphaMemories {
		if am == m {
			w.alphaMemories = append(w.alphaMemories[:i], w.alphaMemories[i+1:]...)
			return
		}
	}
}

func (w *WME) removeToken(t *Token) {
	for i, tk := range w.tokens {
		if tk == t {
			w.tokens = append(w.tokens[:i], w.tokens[i+1:]...)
			return
		}
	}
}
