// Package twcfg merges requested settings into tailwind configuration
// files written in JavaScript or TypeScript.
//
// The configuration object exported by a file is parsed into an [ir]
// tree which remembers its source text. Spreads are encoded as sentinel
// entries ([spread.Nest]), the requested properties, plugins and theme
// values are merged with the strategies of [mergeop], the sentinels are
// decoded again and the tree is rendered back in place ([encode.Render]).
// Bytes outside of changed regions are preserved, and a request which is
// already satisfied leaves the file byte for byte identical.
package twcfg
