package token

import (
	"bytes"
	"unicode"
	"unicode/utf8"
)

// Tokenize appends the tokens of d to dst. Comments are kept as TComment
// tokens; whitespace is dropped.
func Tokenize(dst []Token, d []byte) ([]Token, error) {
	s := &scanner{d: d, doc: NewPosDoc(d)}
	s.prologue()
	for {
		tok, ok, err := s.next()
		if err != nil {
			return dst, err
		}
		if !ok {
			return dst, nil
		}
		dst = append(dst, tok)
	}
}

// Significant returns toks without comments.
func Significant(toks []Token) []Token {
	res := make([]Token, 0, len(toks))
	for i := range toks {
		if toks[i].Type == TComment {
			continue
		}
		res = append(res, toks[i])
	}
	return res
}

type scanner struct {
	d       []byte
	i       int
	doc     *PosDoc
	last    TokenType
	lastTok []byte
	hasLast bool
}

func (s *scanner) prologue() {
	if bytes.HasPrefix(s.d, []byte("\xef\xbb\xbf")) {
		s.i = 3
	}
}

func (s *scanner) tok(t TokenType, start int) Token {
	tok := Token{Type: t, Pos: s.doc.Pos(start), Bytes: s.d[start:s.i]}
	if t != TComment {
		s.last = t
		s.lastTok = tok.Bytes
		s.hasLast = true
	}
	return tok
}

func (s *scanner) skipSpace() {
	for s.i < len(s.d) {
		c := s.d[s.i]
		switch c {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			s.i++
			continue
		}
		if c < utf8.RuneSelf {
			return
		}
		r, sz := utf8.DecodeRune(s.d[s.i:])
		if r == 0xfeff || r == 0xa0 || r == 0x2028 || r == 0x2029 || unicode.Is(unicode.Zs, r) {
			s.i += sz
			continue
		}
		return
	}
}

func (s *scanner) next() (Token, bool, error) {
	s.skipSpace()
	n := len(s.d)
	if s.i >= n {
		return Token{}, false, nil
	}
	start := s.i
	c := s.d[s.i]
	switch {
	case c == '#' && start == 0 && n > 1 && s.d[1] == '!':
		s.lineComment()
		return s.tok(TComment, start), true, nil
	case c == '/' && s.peek(1) == '/':
		s.lineComment()
		return s.tok(TComment, start), true, nil
	case c == '/' && s.peek(1) == '*':
		end := bytes.Index(s.d[s.i+2:], []byte("*/"))
		if end == -1 {
			return Token{}, false, NewTokenizeErr(ErrUnterminated, s.doc.Pos(start))
		}
		s.i += 2 + end + 2
		return s.tok(TComment, start), true, nil
	case c == '/' && s.regexAllowed():
		if err := s.regex(); err != nil {
			return Token{}, false, err
		}
		return s.tok(TRegex, start), true, nil
	case c == '"' || c == '\'':
		if err := s.str(c); err != nil {
			return Token{}, false, err
		}
		return s.tok(TString, start), true, nil
	case c == '`':
		if err := s.template(); err != nil {
			return Token{}, false, err
		}
		return s.tok(TTemplate, start), true, nil
	case isDigit(c) || (c == '.' && isDigit(s.peek(1))):
		s.number()
		return s.tok(TNumber, start), true, nil
	case c == '#' || c == '\\':
		s.i++
		s.ident()
		return s.tok(TIdent, start), true, nil
	}
	r, sz := utf8.DecodeRune(s.d[s.i:])
	if r == utf8.RuneError && sz <= 1 {
		return Token{}, false, NewTokenizeErr(ErrBadUTF8, s.doc.Pos(start))
	}
	if IsIdentStart(r) {
		s.ident()
		return s.tok(TIdent, start), true, nil
	}
	for _, p := range punctuators {
		if !bytes.HasPrefix(s.d[s.i:], []byte(p.text)) {
			continue
		}
		if p.text == "?." && isDigit(s.peek(2)) {
			continue
		}
		s.i += len(p.text)
		return s.tok(p.typ, start), true, nil
	}
	return Token{}, false, UnexpectedErr(string(r), s.doc.Pos(start))
}

func (s *scanner) peek(k int) byte {
	if s.i+k >= len(s.d) {
		return 0
	}
	return s.d[s.i+k]
}

func (s *scanner) lineComment() {
	end := bytes.IndexByte(s.d[s.i:], '\n')
	if end == -1 {
		s.i = len(s.d)
		return
	}
	s.i += end
	if s.i > 0 && s.d[s.i-1] == '\r' {
		s.i--
	}
}

var regexKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true,
	"of": true, "new": true, "delete": true, "void": true, "throw": true,
	"case": true, "do": true, "else": true, "yield": true, "await": true,
}

func (s *scanner) regexAllowed() bool {
	if !s.hasLast {
		return true
	}
	switch s.last {
	case TNumber, TString, TTemplate, TRegex, TRParen, TRSquare, TRCurl:
		return false
	case TIdent:
		return regexKeywords[string(s.lastTok)]
	case TOp:
		l := string(s.lastTok)
		return l != "++" && l != "--"
	}
	return true
}

func (s *scanner) regex() error {
	start := s.i
	s.i++
	inClass := false
	for s.i < len(s.d) {
		c := s.d[s.i]
		switch {
		case c == '\\':
			s.i += 2
			continue
		case c == '\n':
			return NewTokenizeErr(ErrUnterminated, s.doc.Pos(start))
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			s.i++
			s.ident()
			return nil
		}
		s.i++
	}
	return NewTokenizeErr(ErrUnterminated, s.doc.Pos(start))
}

func (s *scanner) str(q byte) error {
	start := s.i
	s.i++
	for s.i < len(s.d) {
		c := s.d[s.i]
		switch c {
		case '\\':
			s.i++
			if s.peek(0) == '\r' && s.peek(1) == '\n' {
				s.i++
			}
		case '\n':
			return NewTokenizeErr(ErrUnterminated, s.doc.Pos(start))
		case q:
			s.i++
			return nil
		}
		s.i++
	}
	return NewTokenizeErr(ErrUnterminated, s.doc.Pos(start))
}

func (s *scanner) template() error {
	start := s.i
	s.i++
	for s.i < len(s.d) {
		switch s.d[s.i] {
		case '\\':
			s.i += 2
			continue
		case '`':
			s.i++
			return nil
		case '$':
			if s.peek(1) == '{' {
				s.i += 2
				if err := s.substitution(start); err != nil {
					return err
				}
				continue
			}
		}
		s.i++
	}
	return NewTokenizeErr(ErrUnterminated, s.doc.Pos(start))
}

// substitution consumes the code of a template "${" ... "}" up to and
// including the closing brace.
func (s *scanner) substitution(start int) error {
	last, lastTok, hasLast := s.last, s.lastTok, s.hasLast
	defer func() {
		s.last, s.lastTok, s.hasLast = last, lastTok, hasLast
	}()
	s.hasLast = false
	depth := 0
	for {
		tok, ok, err := s.next()
		if err != nil {
			return err
		}
		if !ok {
			return NewTokenizeErr(ErrUnterminated, s.doc.Pos(start))
		}
		switch tok.Type {
		case TLCurl:
			depth++
		case TRCurl:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

func (s *scanner) number() {
	if s.d[s.i] == '0' {
		switch s.peek(1) {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			s.i += 2
			for s.i < len(s.d) && (isHex(s.d[s.i]) || s.d[s.i] == '_') {
				s.i++
			}
			if s.peek(0) == 'n' {
				s.i++
			}
			return
		}
	}
	s.digits()
	if s.peek(0) == '.' {
		s.i++
		s.digits()
	}
	if c := s.peek(0); c == 'e' || c == 'E' {
		s.i++
		if c := s.peek(0); c == '+' || c == '-' {
			s.i++
		}
		s.digits()
	}
	if s.peek(0) == 'n' {
		s.i++
	}
}

func (s *scanner) digits() {
	for s.i < len(s.d) && (isDigit(s.d[s.i]) || s.d[s.i] == '_') {
		s.i++
	}
}

func (s *scanner) ident() {
	for s.i < len(s.d) {
		c := s.d[s.i]
		if c == '\\' {
			s.i += 2
			continue
		}
		r, sz := utf8.DecodeRune(s.d[s.i:])
		if !IsIdentPart(r) {
			return
		}
		s.i += sz
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

type punctuator struct {
	text string
	typ  TokenType
}

// longest first
var punctuators = []punctuator{
	{">>>=", TOp},
	{"...", TSpread},
	{"===", TOp}, {"!==", TOp}, {"**=", TOp}, {"<<=", TOp}, {">>=", TOp},
	{">>>", TOp}, {"&&=", TOp}, {"||=", TOp}, {"??=", TOp},
	{"=>", TArrow},
	{"==", TOp}, {"!=", TOp}, {"<=", TOp}, {">=", TOp}, {"&&", TOp},
	{"||", TOp}, {"??", TOp}, {"?.", TOp}, {"++", TOp}, {"--", TOp},
	{"+=", TOp}, {"-=", TOp}, {"*=", TOp}, {"/=", TOp}, {"%=", TOp},
	{"&=", TOp}, {"|=", TOp}, {"^=", TOp}, {"**", TOp}, {"<<", TOp},
	{">>", TOp},
	{"{", TLCurl}, {"}", TRCurl}, {"[", TLSquare}, {"]", TRSquare},
	{"(", TLParen}, {")", TRParen}, {",", TComma}, {":", TColon},
	{";", TSemi}, {".", TDot}, {"=", TEq}, {"?", TQuestion},
	{"<", TOp}, {">", TOp}, {"+", TOp}, {"-", TOp}, {"*", TOp},
	{"/", TOp}, {"%", TOp}, {"&", TOp}, {"|", TOp}, {"^", TOp},
	{"!", TOp}, {"~", TOp}, {"@", TOp},
}
