// Package vscript parses the trivial linker version script grammar
//
//	{ global: pattern; ... local: pattern; ... };
//
// into the sets of exported and hidden symbol patterns.
package vscript

import (
	"fmt"

	"github.com/ii64/psvlink/lib/globset"
)

type Script struct {
	Global *globset.Set
	Local  *globset.Set
}

func New() *Script {
	return &Script{Global: &globset.Set{}, Local: &globset.Set{}}
}

func Parse(src []byte) (*Script, error) {
	p := &parser{lex: lexer{src: src}}
	return p.script()
}

func ParseString(src string) (*Script, error) { return Parse([]byte(src)) }

// IsExported decides symbol visibility: a global match exports, a local
// match hides, anything else keeps default (exported) visibility.
func (s *Script) IsExported(name string) bool {
	if s.Global.IsMatch(name) {
		return true
	}
	return !s.Local.IsMatch(name)
}

func (s *Script) Equal(o *Script) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Global.Equal(o.Global) && s.Local.Equal(o.Local)
}

func (s *Script) String() string {
	return fmt.Sprintf("Script{global: %s, local: %s}", s.Global, s.Local)
}

type parser struct {
	lex lexer
}

// script := '{' 'global' ':' list 'local' ':' list '}' ';'
func (p *parser) script() (vs *Script, err error) {
	vs = New()
	for _, k := range []TokenKind{TokenBraceOpen, TokenGlobal, TokenColon} {
		if _, err = p.expect(k); err != nil {
			return nil, err
		}
	}
	if err = p.patternList(vs.Global, TokenLocal); err != nil {
		return nil, err
	}
	if _, err = p.expect(TokenColon); err != nil {
		return nil, err
	}
	if err = p.patternList(vs.Local, TokenBraceClose); err != nil {
		return nil, err
	}
	if _, err = p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	if tok, ok := p.lex.next(); ok {
		return nil, &ParseError{Kind: ErrExpectedEnd, Got: &tok}
	}
	return vs, nil
}

// patternList := (pattern ';')* and consumes the terminating token.
func (p *parser) patternList(set *globset.Set, end TokenKind) error {
	for {
		tok, err := p.expect(TokenPattern, end)
		if err != nil {
			return err
		}
		if tok.Kind == end {
			return nil
		}
		pat, perr := globset.ParsePattern(tok.Text)
		if perr != nil {
			return &ParseError{Kind: ErrPatternSyntax, Got: &tok, Err: perr}
		}
		set.Insert(pat)
		if _, err = p.expect(TokenSemicolon); err != nil {
			return err
		}
	}
}

func (p *parser) expect(kinds ...TokenKind) (tok Token, err error) {
	tok, ok := p.lex.next()
	if !ok {
		return tok, &ParseError{Kind: ErrUnexpectedEnd, Expected: kinds}
	}
	if tok.Kind == TokenInvalid {
		return tok, &ParseError{Kind: ErrLex, Got: &tok, Expected: kinds}
	}
	for _, k := range kinds {
		if tok.Kind == k {
			return tok, nil
		}
	}
	return tok, &ParseError{Kind: ErrWrongToken, Got: &tok, Expected: kinds}
}
