package ir

// File is the parse of one configuration source file.
type File struct {
	Name string
	// Src is the source as read; it is never modified.
	Src []byte
	// Config is the exported configuration object literal.
	Config *Node
	// Export describes how Config was found, for example
	// "export default config".
	Export string
}
