// Package encode renders [ir] trees back to JavaScript source.
//
// Parsed nodes which did not change render as their original text. A
// changed object or array keeps the text around its untouched items and
// lays out new items the way its neighbours are laid out, so that the
// smallest possible region of a file differs after a merge.
package encode
