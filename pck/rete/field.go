package rete

// FieldKind tags whether a Condition field is bound to a constant or a
// variable.
type FieldKind int

const (
	FieldConstant FieldKind = iota
	FieldVariable
)

// Field is one position (identifier, attribute, or value) of a Condition.
// Mirrors pck/event_network's `specTerm`/`term` tagged-token model: a
// small closed struct rather than an interface hierarchy, since the set
// of kinds never grows.
type Field struct {
	Kind     FieldKind
	Constant Value
	Variable string
}

// Const builds a constant field.
func Const(v Value) Field { return Field{Kind: FieldConstant, Constant: v} }

// Var builds a variable field. The canonical surface syntax uses a
// leading "?"; callers may pass either "?x" or "x" — Var
// normalizes by stripping a leading "?" so `Var("?x")` and `Var("x")`
// are the same variable.
func Var(name string) Field {
	if len(name) > 0 && name[0] == '?' {
		name = name[1:]
	}
	return Field{Kind: FieldVariable, Variable: name}
}

func (f Field) IsVariable() bool { return f.Kind == FieldVariable }
func (f Field) IsConstant() bool { return f.Kind == FieldConstant }

// Condition is the syntactic triple (id-field, attr-field, value-field)
// tested against working memory.
type Condition struct {
	ID   Field
	Attr Field
	Val  Field
}

// NewCondition builds a Condition from three fields, in (id, attr, val)
// order — the fixed order used throughout the alpha trie and join-test
// derivation.
func NewCondition(id, attr, val Field) Condition {
	return Condition{ID: id, Attr: attr, Val: val}
}

// fields returns the condition's three fields in canonical order, for
// code that needs to iterate generically (alpha trie construction,
// join-test derivation, binding extraction).
func (c Condition) fields() [3]Field { return [3]Field{c.ID, c.Attr, c.Val} }

// fieldIndex names which of a Condition's three fields is meant: the
// fixed id -> attr -> val order used throughout the alpha trie and
// join-test derivation.
type fieldIndex int

const (
	fieldID fieldIndex = iota
	fieldAttr
	fieldVal
)
