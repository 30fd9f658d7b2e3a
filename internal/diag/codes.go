package diag

// Error codes used in diagnostics across the toolchain.
//
// Error code ranges:
// E0100-E0199: Format-DSL parse and validation errors
// E0200-E0299: Schema binding errors
// E2000-E2099: JIT compilation and loading errors
const (
	// E0100: Format text does not parse
	ErrorFormatSyntax = "E0100"

	// E0101: Level name is not a registered format
	ErrorUnknownFormat = "E0101"

	// E0102: values() in a non-terminal position, or a missing terminal
	ErrorMalformedSchema = "E0102"

	// E0200: Schema and tensor order disagree
	ErrorSchemaArity = "E0200"

	// E2001: C compiler returned a non-zero exit status
	ErrorCompileFailed = "E2001"

	// E2002: Shared object failed to load
	ErrorLoadFailed = "E2002"

	// E2003: Symbol not present in the loaded library
	ErrorSymbolMissing = "E2003"

	// E2004: Temp source or object file could not be created
	ErrorTempFile = "E2004"
)

// Description returns a human-readable description of the error code.
func Description(code string) string {
	switch code {
	case ErrorFormatSyntax:
		return "Storage format text does not parse"
	case ErrorUnknownFormat:
		return "Level name is not a registered storage format"
	case ErrorMalformedSchema:
		return "Schema is malformed: values() must appear exactly once, as the terminal level"
	case ErrorSchemaArity:
		return "Schema depth does not match the tensor order"
	case ErrorCompileFailed:
		return "C compiler failed"
	case ErrorLoadFailed:
		return "Compiled shared object failed to load"
	case ErrorSymbolMissing:
		return "Function symbol not found in loaded module"
	case ErrorTempFile:
		return "Could not create temp file for emitted source"
	default:
		return "Unknown error code"
	}
}
