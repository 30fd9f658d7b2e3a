package format

import (
	"fmt"
	"strings"
)

// String returns the compact textual form, e.g. dense(sparse(values())).
// The form round-trips through Parse.
func String(l TreeLevel) string {
	var b strings.Builder
	writeCompact(&b, l)
	return b.String()
}

func writeCompact(b *strings.Builder, l TreeLevel) {
	b.WriteString(l.FormatName())
	b.WriteString("(")
	if sub := l.Sub(); sub != nil {
		writeCompact(b, sub)
	}
	b.WriteString(")")
}

// TreeString returns a one-level-per-line rendering for terminal
// output, root first.
func TreeString(l TreeLevel) string {
	var b strings.Builder
	depth := 0
	for ; l != nil; l = l.Sub() {
		if depth > 0 {
			b.WriteString(strings.Repeat("  ", depth-1))
			b.WriteString("└─ ")
		}
		b.WriteString(fmt.Sprintf("%s\n", l.FormatName()))
		depth++
	}
	return b.String()
}
