package kv

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/andygrunwald/vdf"
)

// DecodeText parses the brace-delimited text dialect. The returned node is an
// unnamed object whose children are the top-level keys of the document.
//
// Bare and quoted keys and values, // comments, stray commas between entries
// and bracketed platform conditionals ([$WIN32]) are accepted. Nesting is
// tracked with an explicit stack.
func DecodeText(r io.Reader) (*Node, error) {
	p := &textParser{s: vdf.NewScanner(r), line: 1}

	root := NewObject("")
	stack := []*Node{root}

	for {
		top := stack[len(stack)-1]

		tok, lit := p.next()
		var key string
		switch tok {
		case vdf.EOF:
			if len(stack) > 1 {
				return nil, p.fail(ErrUnbalanced)
			}
			if !hasObjectChild(root) {
				return nil, p.fail(ErrMissingRootKey)
			}
			return root, nil
		case vdf.CurlyBraceClose:
			if len(stack) == 1 {
				return nil, p.fail(ErrUnbalanced)
			}
			stack = stack[:len(stack)-1]
			continue
		case vdf.QuotationMark:
			s, err := p.quoted()
			if err != nil {
				return nil, err
			}
			key = s
		case vdf.Ident:
			key = lit
		case vdf.Illegal:
			if lit == "," {
				continue
			}
			if lit == "[" {
				p.skipConditional()
				continue
			}
			return nil, p.fail(ErrUnexpectedToken)
		default:
			return nil, p.fail(ErrUnexpectedToken)
		}

		tok, lit = p.next()
		switch tok {
		case vdf.QuotationMark:
			s, err := p.quoted()
			if err != nil {
				return nil, err
			}
			top.Set(NewString(key, s))
		case vdf.Ident:
			top.Set(NewString(key, lit))
		case vdf.CurlyBraceOpen:
			obj := NewObject(key)
			top.Set(obj)
			stack = append(stack, obj)
		case vdf.EOF, vdf.CurlyBraceClose:
			return nil, p.fail(ErrMissingValue)
		default:
			return nil, p.fail(ErrUnexpectedToken)
		}
	}
}

func hasObjectChild(n *Node) bool {
	for _, c := range n.children {
		if c.IsObject() {
			return true
		}
	}
	return false
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

type textParser struct {
	s    *vdf.Scanner
	line int
}

func (p *textParser) fail(err error) error {
	return &SyntaxError{Line: p.line, Err: err}
}

// next returns the next token that is not whitespace or part of a comment.
func (p *textParser) next() (vdf.Token, string) {
	for {
		tok, lit := p.s.Scan(false)
		switch tok {
		case vdf.WS, vdf.EOL:
			p.line += strings.Count(lit, "\n")
		case vdf.CommentDoubleSlash:
			if p.skipLine() {
				return vdf.EOF, ""
			}
		default:
			return tok, lit
		}
	}
}

// skipLine consumes the rest of the current line. It reports whether the
// input ended first.
func (p *textParser) skipLine() bool {
	for {
		tok, lit := p.s.Scan(true)
		switch tok {
		case vdf.EOF:
			return true
		case vdf.EOL:
			p.line += strings.Count(lit, "\n")
			return false
		}
	}
}

func (p *textParser) skipConditional() {
	for {
		tok, lit := p.next()
		if tok == vdf.EOF || (tok == vdf.Illegal && lit == "]") {
			return
		}
	}
}

// quoted reads up to the closing quotation mark. \\ and \" stand for
// themselves, \n and \t for a newline and a tab. Any other backslash is kept
// as written.
func (p *textParser) quoted() (string, error) {
	var buf bytes.Buffer
	escaped := false
	for {
		tok, lit := p.s.Scan(true)
		if tok == vdf.EOF {
			return "", p.fail(ErrUnterminatedString)
		}
		if tok == vdf.EOL {
			p.line += strings.Count(lit, "\n")
		}

		if !escaped {
			switch tok {
			case vdf.QuotationMark:
				return buf.String(), nil
			case vdf.EscapeSequence:
				escaped = true
				continue
			}
			buf.WriteString(lit)
			continue
		}

		escaped = false
		switch {
		case tok == vdf.QuotationMark, tok == vdf.EscapeSequence:
			buf.WriteString(lit)
		case tok == vdf.Ident && lit[0] == 'n':
			buf.WriteString("\n" + lit[1:])
		case tok == vdf.Ident && lit[0] == 't':
			buf.WriteString("\t" + lit[1:])
		default:
			buf.WriteString(`\` + lit)
		}
	}
}
