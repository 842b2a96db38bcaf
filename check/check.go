// Package check verifies that rendered configuration sources still
// compile.
package check

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

var ErrSyntax = errors.New("syntax error")

// Loader returns the esbuild loader for a file name. TypeScript is
// assumed for unknown extensions.
func Loader(filename string) api.Loader {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".js", ".mjs", ".cjs":
		return api.LoaderJS
	case ".jsx":
		return api.LoaderJSX
	case ".tsx":
		return api.LoaderTSX
	}
	return api.LoaderTS
}

// Syntax reports the syntax errors of src, which is named filename.
func Syntax(src []byte, filename string) error {
	name := filename
	if name == "" {
		name = "<input>"
	}
	res := api.Transform(string(src), api.TransformOptions{
		Loader:     Loader(filename),
		Sourcefile: name,
		LogLevel:   api.LogLevelSilent,
	})
	if len(res.Errors) == 0 {
		return nil
	}
	var b strings.Builder
	for i, err := range res.Errors {
		if i > 0 {
			b.WriteByte('\n')
		}
		if err.Location != nil {
			fmt.Fprintf(&b, "%s:%d:%d: ", err.Location.File, err.Location.Line, err.Location.Column)
		}
		b.WriteString(err.Text)
	}
	return fmt.Errorf("%w: %s", ErrSyntax, b.String())
}
