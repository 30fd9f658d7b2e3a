package grammar

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
)

var parser = buildParser()

func buildParser() *participle.Parser[Level] {
	p, err := participle.Build[Level](
		participle.Lexer(FormatLexer),
		participle.Elide("Whitespace"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build format parser: %w", err))
	}

	return p
}

// ParseFormat parses the textual form of a storage format. The result
// is syntactic only; level names and terminal placement are validated
// when the tree is built.
func ParseFormat(sourceName string, source string) (*Level, error) {
	return parser.ParseString(sourceName, source)
}
