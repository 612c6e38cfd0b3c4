package engine

import "errors"

// ErrMalformedRule tags a non-fatal warning produced while registering a
// production whose condition references a variable that never recurs
// elsewhere. The engine still accepts and matches the rule as given —
// this is never returned from AddProduction; its message prefixes each
// warning line the engine prints to its warnings writer.
var ErrMalformedRule = errors.New("malformed rule")
