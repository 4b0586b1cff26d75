package vscript

import "fmt"

type TokenKind uint8

const (
	TokenInvalid TokenKind = iota
	TokenBraceOpen
	TokenBraceClose
	TokenGlobal
	TokenLocal
	TokenColon
	TokenPattern
	TokenSemicolon
)

var tokenNames = [...]string{
	TokenInvalid:    "invalid",
	TokenBraceOpen:  "'{'",
	TokenBraceClose: "'}'",
	TokenGlobal:     "'global'",
	TokenLocal:      "'local'",
	TokenColon:      "':'",
	TokenPattern:    "pattern",
	TokenSemicolon:  "';'",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", uint8(k))
}

// Span is a half-open byte range into the source.
type Span struct {
	Start, End int
}

type Token struct {
	Kind TokenKind
	Span Span
	Text string
}

type lexer struct {
	src []byte
	pos int
}

func isPatternByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '_', c == '$', c == '.', c == '*':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// next returns the following token, ok=false at end of input. A byte that
// starts no token is returned as a TokenInvalid token spanning the run of
// such bytes.
func (l *lexer) next() (tok Token, ok bool) {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return
	}

	start := l.pos
	kind := TokenInvalid
	switch c := l.src[l.pos]; {
	case c == '{':
		kind, l.pos = TokenBraceOpen, l.pos+1
	case c == '}':
		kind, l.pos = TokenBraceClose, l.pos+1
	case c == ':':
		kind, l.pos = TokenColon, l.pos+1
	case c == ';':
		kind, l.pos = TokenSemicolon, l.pos+1
	case isPatternByte(c):
		for l.pos < len(l.src) && isPatternByte(l.src[l.pos]) {
			l.pos++
		}
		switch string(l.src[start:l.pos]) {
		case "global":
			kind = TokenGlobal
		case "local":
			kind = TokenLocal
		default:
			kind = TokenPattern
		}
	default:
		for l.pos < len(l.src) && !isSpace(l.src[l.pos]) && !startsToken(l.src[l.pos]) {
			l.pos++
		}
	}
	return Token{Kind: kind, Span: Span{start, l.pos}, Text: string(l.src[start:l.pos])}, true
}

func startsToken(c byte) bool {
	return c == '{' || c == '}' || c == ':' || c == ';' || isPatternByte(c)
}
