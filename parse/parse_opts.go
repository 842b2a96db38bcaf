package parse

type parseOpts struct {
	filename string
	binding  string
}

type ParseOption func(*parseOpts)

// ParseFilename names the source in errors and in the resulting file.
func ParseFilename(v string) ParseOption {
	return func(o *parseOpts) { o.filename = v }
}

// ParseBinding locates the object literal bound to the top level
// variable v instead of the exported one.
func ParseBinding(v string) ParseOption {
	return func(o *parseOpts) { o.binding = v }
}
