package format

import (
	"tensile/grammar"
	"tensile/internal/diag"
)

// Parse builds a schema from its textual form. Parsing validates the
// invariants the factories enforce by construction: every level name is
// registered, values() appears exactly once and only as the terminal.
func Parse(text string) (TreeLevel, error) {
	lvl, err := grammar.ParseFormat("<format>", text)
	if err != nil {
		return nil, diag.Newf(diag.ErrorFormatSyntax, "cannot parse format %q: %v", text, err)
	}
	return build(lvl)
}

func build(lvl *grammar.Level) (TreeLevel, error) {
	var wrap func(TreeLevel) TreeLevel
	switch lvl.Name {
	case "values":
		if lvl.Sub != nil {
			return nil, diag.Newf(diag.ErrorMalformedSchema,
				"%s: values() cannot have a sublevel", lvl.Pos)
		}
		return Values(), nil
	case "dense":
		wrap = Dense
	case "sparse":
		wrap = Sparse
	case "fixed":
		wrap = Fixed
	case "replicated":
		wrap = Replicated
	default:
		return nil, diag.Newf(diag.ErrorUnknownFormat,
			"%s: unknown level format %q", lvl.Pos, lvl.Name)
	}

	if lvl.Sub == nil {
		return nil, diag.Newf(diag.ErrorMalformedSchema,
			"%s: %s() requires a sublevel; schemas terminate with values()", lvl.Pos, lvl.Name)
	}
	sub, err := build(lvl.Sub)
	if err != nil {
		return nil, err
	}
	return wrap(sub), nil
}
