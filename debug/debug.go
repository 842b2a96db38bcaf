package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse   bool
	Nest    bool
	Resolve bool
	Merge   bool
	Render  bool
	Match   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("TWCFG_DEBUG_PARSE")
	d.Nest = boolEnv("TWCFG_DEBUG_NEST")
	d.Resolve = boolEnv("TWCFG_DEBUG_RESOLVE")
	d.Merge = boolEnv("TWCFG_DEBUG_MERGE")
	d.Render = boolEnv("TWCFG_DEBUG_RENDER")
	d.Match = boolEnv("TWCFG_DEBUG_MATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Nest() bool {
	return d.Nest
}
func Resolve() bool {
	return d.Resolve
}
func Merge() bool {
	return d.Merge
}
func Render() bool {
	return d.Render
}
func Match() bool {
	return d.Match
}

// Enabled reports whether any debug output is on.
func Enabled() bool {
	return d.Parse || d.Nest || d.Resolve || d.Merge || d.Render || d.Match
}
