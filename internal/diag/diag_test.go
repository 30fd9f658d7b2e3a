package diag

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCodedError(t *testing.T) {
	err := Newf(ErrorSymbolMissing, "function %s not found", "f")
	assert.Equal(t, "error[E2003]: function f not found", err.Error())
	assert.Equal(t, ErrorSymbolMissing, err.Code)
}

func TestRender(t *testing.T) {
	out := Render(Newf(ErrorCompileFailed, "cc exited 1"))
	assert.True(t, strings.Contains(out, "E2001"))
	assert.True(t, strings.Contains(out, "cc exited 1"))

	out = Render(errors.New("plain failure"))
	assert.True(t, strings.Contains(out, "plain failure"))
}

func TestAssertf(t *testing.T) {
	assert.NotPanics(t, func() { Assertf(true, "fine") })
	assert.PanicsWithValue(t, "internal error: var t not found", func() {
		Assertf(false, "var %s not found", "t")
	})
}

func TestDescriptionsCoverCodes(t *testing.T) {
	for _, code := range []string{
		ErrorFormatSyntax, ErrorUnknownFormat, ErrorMalformedSchema,
		ErrorSchemaArity, ErrorCompileFailed, ErrorLoadFailed,
		ErrorSymbolMissing, ErrorTempFile,
	} {
		assert.NotEqual(t, "Unknown error code", Description(code), code)
	}
}
