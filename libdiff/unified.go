package libdiff

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Unified returns the unified diff turning from into to, with name used
// as both file names. Equal inputs yield "".
func Unified(name string, from, to []byte) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(from)),
		B:        difflib.SplitLines(string(to)),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
