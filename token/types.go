package token

import "fmt"

type TokenType int

const (
	TIdent TokenType = iota
	TString
	TTemplate
	TNumber
	TRegex
	TComment
	TLCurl
	TRCurl
	TLSquare
	TRSquare
	TLParen
	TRParen
	TComma
	TColon
	TSemi
	TDot
	TSpread
	TEq
	TArrow
	TQuestion
	TOp
)

func (t TokenType) String() string {
	s, ok := map[TokenType]string{
		TIdent:    "TIdent",
		TString:   "TString",
		TTemplate: "TTemplate",
		TNumber:   "TNumber",
		TRegex:    "TRegex",
		TComment:  "TComment",
		TLCurl:    "TLCurl",
		TRCurl:    "TRCurl",
		TLSquare:  "TLSquare",
		TRSquare:  "TRSquare",
		TLParen:   "TLParen",
		TRParen:   "TRParen",
		TComma:    "TComma",
		TColon:    "TColon",
		TSemi:     "TSemi",
		TDot:      "TDot",
		TSpread:   "TSpread",
		TEq:       "TEq",
		TArrow:    "TArrow",
		TQuestion: "TQuestion",
		TOp:       "TOp",
	}[t]
	if ok {
		return s
	}
	return "<unknown token>"
}

func (t TokenType) IsOpen() bool {
	return t == TLCurl || t == TLSquare || t == TLParen
}

func (t TokenType) IsClose() bool {
	return t == TRCurl || t == TRSquare || t == TRParen
}

func (t TokenType) closes(o TokenType) bool {
	switch t {
	case TRCurl:
		return o == TLCurl
	case TRSquare:
		return o == TLSquare
	case TRParen:
		return o == TLParen
	}
	return false
}

type Token struct {
	Type  TokenType
	Pos   *Pos
	Bytes []byte
}

// Start is the offset of the first byte of t.
func (t *Token) Start() int {
	return t.Pos.I
}

// End is the offset just past the last byte of t.
func (t *Token) End() int {
	return t.Pos.I + len(t.Bytes)
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

// Is reports whether t is an identifier or keyword spelled w.
func (t *Token) Is(w string) bool {
	return t.Type == TIdent && string(t.Bytes) == w
}

// String returns the decoded value of string tokens and the
// raw text of other tokens.
func (t *Token) String() string {
	if t.Type != TString {
		return string(t.Bytes)
	}
	s, err := Unquote(string(t.Bytes))
	if err != nil {
		return string(t.Bytes)
	}
	return s
}
