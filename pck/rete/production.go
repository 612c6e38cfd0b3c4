package rete

// Bindings maps a variable name to the Value it was bound to by a
// particular match.
type Bindings map[string]Value

// Action is a callable invoked with the bindings of a complete match and
// a handle to the engine. engine is typed `any` here because
// pck/engine (the InferenceEngine) depends on pck/rete, not the other
// way around; the embedder's action closures know the concrete type they
// were registered with.
type Action func(bindings Bindings, engine any) error

// Production is a rule: a name, an ordered list of Conditions (fixing
// the left-to-right join order), and an ordered list of actions.
type Production struct {
	Name       string
	Conditions []Condition
	Actions    []Action
}

// NewProduction builds a Production. Order of conditions fixes the
// left-to-right join order in the network.
func NewProduction(name string, conditions []Condition, actions ...Action) *Production {
	return &Production{Name: name, Conditions: conditions, Actions: actions}
}

// ProductionNode is the terminal node of a rule: it accumulates complete
// matches.
type ProductionNode struct {
	ID         NodeID
	parent     *BetaMemory
	Production *Production
	items      []*Token
}

func newProductionNode(parent *BetaMemory, p *Production) *ProductionNode {
	return &ProductionNode{ID: newNodeID(), parent: parent, Production: p}
}

// Items returns the production's current match set.
func (p *ProductionNode) Items() []*Token {
	return append([]*Token(nil), p.items...)
}

// leftActivation appends a token with the same (parent, wme) chain as the
// arriving one if absent — that list IS the per-rule match set that feeds
// the agenda. The item is the production node's own token, so retraction
// detaches it from here and the arriving token from its beta memory.
func (p *ProductionNode) leftActivation(token *Token, _ *WME) {
	for _, existing := range p.items {
		if existing.sameChain(token.parent, token.wme) {
			return
		}
	}
	item := newToken(token.parent, token.wme)
	item.owner = p
	p.items = append(p.items, item)
}

// removeToken detaches a token from this production's match set.
func (p *ProductionNode) removeToken(t *Token) {
	for i, tk := range p.items {
		if tk == t {
			p.items = append(p.items[:i], p.items[i+1:]...)
			return
		}
	}
}

// getVariableBindings walks the token chain in condition order
// (ancestor -> leaf), pairing each Condition's fields with the
// corresponding WME's triple. Later occurrences of a variable silently
// overwrite earlier ones: joins already guarantee consistency, so
// overwrites are idempotent.
func (p *ProductionNode) getVariableBindings(token *Token) Bindings {
	wmes := token.AllWMEs() // newest first
	bindings := make(Bindings)

	// Walk ancestor -> leaf, i.e. reverse of AllWMEs' newest-first order,
	// matching each WME against the condition at the same depth.
	depth := len(wmes)
	for i := depth - 1; i >= 0; i-- {
		w := wmes[i]
		cond := p.Production.Conditions[depth-1-i]
		bindField(bindings, cond.ID, StringValue(w.Identifier))
		bindField(bindings, cond.Attr, StringValue(w.Attribute))
		bindField(bindings, cond.Val, w.Value)
	}
	return bindings
}

func bindField(bindings Bindings, f Field, v Value) {
	if f.Kind == FieldVariable {
		bindings[f.Variable] = v
	}
}

// Execute computes bindings then invokes each action callable in order
// with (bindings, engine).
func (p *ProductionNode) Execute(token *Token, engine any) error {
	bindings := p.getVariableBindings(token)
	for _, action := range p.Production.Actions {
		if err := action(bindings, engine); err != nil {
			return err
		}
	}
	return nil
}
