package grammar

import "github.com/alecthomas/participle/v2/lexer"

// Level is one node of the storage-format text form, e.g. the whole of
// dense(sparse(values())). The terminal level is written values() and
// has no Sub.
type Level struct {
	Pos lexer.Position

	Name string `@Ident`
	Sub  *Level `"(" @@? ")"`
}
