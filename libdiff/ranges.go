package libdiff

import (
	"fmt"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Range is a byte range [Start, End) of the original text. An insertion
// is an empty range at the offset where text was added.
type Range struct {
	Start, End int
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Ranges returns the ranges of from which differ in to, in order and
// with adjacent ranges joined.
func Ranges(from, to string) []Range {
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMain(from, to, false)
	diffs = diffCfg.DiffCleanupSemantic(diffs)
	var (
		res []Range
		off int
	)
	add := func(r Range) {
		if n := len(res); n > 0 && res[n-1].End >= r.Start {
			if r.End > res[n-1].End {
				res[n-1].End = r.End
			}
			return
		}
		res = append(res, r)
	}
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffEqual:
			off += len(diff.Text)
		case diffpatch.DiffDelete:
			add(Range{Start: off, End: off + len(diff.Text)})
			off += len(diff.Text)
		case diffpatch.DiffInsert:
			add(Range{Start: off, End: off})
		}
	}
	return res
}
