// Package token provides tokenization of JavaScript and TypeScript sources.
//
// [Tokenize] splits bytes into tokens carrying their byte offsets. Whitespace
// is not tokenized: callers recover it, together with comments, from the
// gaps between token offsets so that untouched source can be re-emitted
// exactly.
//
// [Match] pairs brackets, braces and parentheses.
package token
