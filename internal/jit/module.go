package jit

import (
	"bytes"
	"math/rand"
	"os"
	"os/exec"
	"strings"

	"github.com/ebitengine/purego"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	"go.uber.org/multierr"

	"tensile/internal/diag"
)

var log = commonlog.GetLogger("tensile.jit")

// The library stem avoids i, l and o so temp names are unambiguous
// when read back from a terminal.
const stemChars = "abcdefghjkmnpqrstuvwxyz0123456789"

func randomStem(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = stemChars[rand.Intn(len(stemChars))]
	}
	return string(b)
}

// Module bundles emitted C source with the temp files and library
// handle produced from it. A module must not be closed while any
// function pointer it returned is still in use.
type Module struct {
	source  string
	tmpdir  string
	libname string
	handle  uintptr
}

// New wraps emitted source. The standard-library include needed by
// emitted calls is prepended here; TMPDIR is read once, defaulting to
// /tmp/.
func New(source string) *Module {
	tmp := os.Getenv("TMPDIR")
	if tmp == "" {
		tmp = "/tmp/"
	}
	if !strings.HasSuffix(tmp, "/") {
		tmp += "/"
	}
	return &Module{
		source:  "#include <stdio.h>\n" + source,
		tmpdir:  tmp,
		libname: randomStem(12),
	}
}

// Source returns the full source text, includes included.
func (m *Module) Source() string { return m.source }

func (m *Module) cPath() string  { return m.tmpdir + m.libname + ".c" }
func (m *Module) soPath() string { return m.tmpdir + m.libname + ".so" }

// Compile writes the source to a temp file, compiles it to a shared
// object and loads it. Returns the shared object's path. Temp files
// from failed compilations are left on disk for inspection.
func (m *Module) Compile() (string, error) {
	if err := os.WriteFile(m.cPath(), []byte(m.source), 0o644); err != nil {
		return "", diag.Newf(diag.ErrorTempFile, "cannot write %s: %v", m.cPath(), err)
	}

	cmd := exec.Command("cc", "-std=c99", "-shared", m.cPath(), "-o", m.soPath())
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	log.Infof("compiling: %s", strings.Join(cmd.Args, " "))

	if err := cmd.Run(); err != nil {
		return "", diag.Newf(diag.ErrorCompileFailed, "compilation command failed: %s: %v: %s",
			strings.Join(cmd.Args, " "), err, strings.TrimSpace(stderr.String()))
	}

	handle, err := purego.Dlopen(m.soPath(), purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return "", diag.Newf(diag.ErrorLoadFailed, "cannot load %s: %v", m.soPath(), err)
	}
	m.handle = handle
	return m.soPath(), nil
}

// Func returns the address of a function in the compiled module. The
// module must have compiled successfully; a missing symbol is a hard
// error.
func (m *Module) Func(name string) (uintptr, error) {
	diag.Assertf(m.handle != 0, "module %s%s is not compiled", m.tmpdir, m.libname)

	addr, err := purego.Dlsym(m.handle, name)
	if err != nil || addr == 0 {
		return 0, diag.Newf(diag.ErrorSymbolMissing, "function %s not found in module %s%s",
			name, m.tmpdir, m.libname)
	}
	return addr, nil
}

// Close unloads the library, invalidating every function pointer the
// module returned, then removes the temp files. Unload happens before
// unlink so the loader never sees a dangling path.
func (m *Module) Close() error {
	var errs error
	if m.handle != 0 {
		if err := purego.Dlclose(m.handle); err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, "unloading library"))
		}
		m.handle = 0
	}
	for _, p := range []string{m.cPath(), m.soPath()} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			errs = multierr.Append(errs, errors.Wrapf(err, "removing %s", p))
		}
	}
	return errs
}
