package config

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenEnd tokenKind = iota
	tokenWord
	tokenDelim
)

type token struct {
	kind tokenKind
	text string
	line int
}

// lexer splits the text format into words and ";" delimiters.
type lexer struct {
	src  string
	pos  int
	line int
}

func (l *lexer) next() token {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case unicode.IsSpace(rune(c)):
			l.pos++
		case c == ';':
			l.pos++
			return token{kind: tokenDelim, text: ";", line: l.line}
		default:
			start := l.pos
			for l.pos < len(l.src) {
				c := l.src[l.pos]
				if c == ';' || c == '#' || unicode.IsSpace(rune(c)) {
					break
				}
				l.pos++
			}
			return token{kind: tokenWord, text: l.src[start:l.pos], line: l.line}
		}
	}
	return token{kind: tokenEnd, line: l.line}
}

// ParseText parses families from the text format.
func ParseText(src string) ([]Family, error) {
	lex := &lexer{src: src, line: 1}
	var families []Family

	for {
		tok := lex.next()
		if tok.kind == tokenEnd {
			return families, nil
		}
		if tok.kind != tokenWord {
			return families, fmt.Errorf("%w: line %d: expected family name, got %q", ErrMalformed, tok.line, tok.text)
		}

		f, err := parseHeader(tok)
		if err != nil {
			return families, err
		}
		if f.Left, err = parseGroup(lex, f.Name); err != nil {
			return families, err
		}
		if f.Right, err = parseGroup(lex, f.Name); err != nil {
			return families, err
		}
		if err := f.Validate(); err != nil {
			return families, fmt.Errorf("line %d: %w", tok.line, err)
		}

		families = append(families, f)
	}
}

// parseHeader splits "name" or "name(selector)".
func parseHeader(tok token) (Family, error) {
	name, rest, found := strings.Cut(tok.text, "(")
	if !found {
		return Family{Name: name}, nil
	}
	sel, ok := strings.CutSuffix(rest, ")")
	if !ok || sel == "" {
		return Family{}, fmt.Errorf("%w: line %d: bad family header %q", ErrMalformed, tok.line, tok.text)
	}
	return Family{Name: name, Object: sel}, nil
}

// parseGroup reads function names up to the next delimiter.
func parseGroup(lex *lexer, family string) ([]string, error) {
	var funcs []string
	for {
		tok := lex.next()
		switch tok.kind {
		case tokenWord:
			funcs = append(funcs, tok.text)
		case tokenDelim:
			return funcs, nil
		default:
			return nil, fmt.Errorf("%w: family %s: missing ';' at end of input", ErrTruncated, family)
		}
	}
}

// WriteText writes families in the text format.
func WriteText(w io.Writer, families []Family) error {
	for _, f := range families {
		var b strings.Builder
		b.WriteString(f.Name)
		if f.Object != "" {
			b.WriteString("(" + f.Object + ")")
		}
		for _, fn := range f.Left {
			b.WriteString(" " + fn)
		}
		b.WriteString(" ;")
		for _, fn := range f.Right {
			b.WriteString(" " + fn)
		}
		b.WriteString(" ;\n")

		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
