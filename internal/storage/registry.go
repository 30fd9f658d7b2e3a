package storage

import (
	"tensile/internal/diag"
)

// Registry of mode types by level-format name. Built-ins are
// registered at init; third parties may add their own types, provided
// the capability record validates.
var registry = map[string]ModeType{}

// Register makes a mode type available under the given level-format
// name. Duplicate registration is a programmer error.
func Register(name string, t ModeType) {
	diag.Assertf(t.Defined(), "cannot register undefined mode type %q", name)
	_, dup := registry[name]
	diag.Assertf(!dup, "mode type %q registered twice", name)
	registry[name] = t
}

// Lookup returns the mode type registered under name.
func Lookup(name string) (ModeType, bool) {
	t, ok := registry[name]
	return t, ok
}

func init() {
	Register("dense", DenseType)
	Register("sparse", CompressedType)
	Register("fixed", SingletonType)
	Register("replicated", ReplicatedType)
	Register("values", ValuesType)
}
