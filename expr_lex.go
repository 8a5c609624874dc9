package feather

import (
	"strconv"
	"strings"
)

// tokenizeExpr lexes a Tcl expression string into the token stream
// consumed by exprParser: numbers, operators, parentheses, quoted/braced
// literals, and $var / [cmd] interpolation (identical substitution rules
// to a script word, per SPEC_FULL.md §4.4).
func tokenizeExpr(src string) ([]Token, error) {
	p := newParser(src)
	var toks []Token
	for {
		p.skipExprBlanks()
		if p.eof() {
			break
		}
		c := p.peek()
		switch {
		case c == '(':
			p.advance()
			toks = append(toks, Token{Type: TokSubexprOpen, Text: "(", Line: p.line})
		case c == ')':
			p.advance()
			toks = append(toks, Token{Type: TokSubexprClose, Text: ")", Line: p.line})
		case c == '$':
			tok, ok := p.scanVar()
			if !ok {
				return nil, newParseError(p.line, "syntax error in expression: unexpected \"$\"")
			}
			toks = append(toks, tok)
		case c == '[':
			inner, err := p.scanBracketed()
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Type: TokCmd, Text: inner, Line: p.line})
		case c == '{':
			text, err := p.scanBraced()
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Type: TokSTR, Text: text, Line: p.line})
		case c == '"':
			text, err := p.scanQuotedLiteral()
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Type: TokESC, Text: applyEscapes(text), Line: p.line})
		case isDigit(c) || (c == '.' && isDigit(p.peekAt(1))):
			toks = append(toks, p.scanNumber())
		case isIdentStart(c):
			toks = append(toks, p.scanIdentOrWordOp())
		default:
			tok, ok := p.scanOperator()
			if !ok {
				return nil, newParseError(p.line, "syntax error in expression: unexpected character %q", string(c))
			}
			toks = append(toks, tok)
		}
	}
	toks = append(toks, Token{Type: TokEOF, Line: p.line})
	return toks, nil
}

func (p *parser) skipExprBlanks() {
	for !p.eof() {
		c := p.peek()
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			p.advance()
			continue
		}
		return
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isIdentByte(c byte) bool { return isIdentStart(c) || isDigit(c) }

func (p *parser) scanNumber() Token {
	start := p.pos
	line := p.line
	if p.peek() == '0' && (p.peekAt(1) == 'x' || p.peekAt(1) == 'X') {
		p.advance()
		p.advance()
		for !p.eof() && isHexDigit(p.peek()) {
			p.advance()
		}
		return Token{Type: TokNum, Text: p.src[start:p.pos], Line: line}
	}
	for !p.eof() && isDigit(p.peek()) {
		p.advance()
	}
	if p.peek() == '.' {
		p.advance()
		for !p.eof() && isDigit(p.peek()) {
			p.advance()
		}
	}
	if p.peek() == 'e' || p.peek() == 'E' {
		save := p.pos
		p.advance()
		if p.peek() == '+' || p.peek() == '-' {
			p.advance()
		}
		if isDigit(p.peek()) {
			for !p.eof() && isDigit(p.peek()) {
				p.advance()
			}
		} else {
			p.pos = save
		}
	}
	return Token{Type: TokNum, Text: p.src[start:p.pos], Line: line}
}

// scanIdentOrWordOp lexes a bareword: either the "eq"/"ne" word operators
// or a boolean literal (true/false/yes/no/on/off), represented as a
// TokNum token carrying its canonical 0/1 text so the VM needs no special
// case for it.
func (p *parser) scanIdentOrWordOp() Token {
	start := p.pos
	line := p.line
	for !p.eof() && isIdentByte(p.peek()) {
		p.advance()
	}
	word := p.src[start:p.pos]
	switch word {
	case "eq", "ne":
		return Token{Type: TokOperator, Text: word, Line: line}
	}
	if b, ok := asBoolLiteral(word); ok {
		if b {
			return Token{Type: TokNum, Text: "1", Line: line}
		}
		return Token{Type: TokNum, Text: "0", Line: line}
	}
	return Token{Type: TokESC, Text: word, Line: line}
}

func asBoolLiteral(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true, true
	case "false", "no", "off":
		return false, true
	}
	return false, false
}

func (p *parser) scanOperator() (Token, bool) {
	line := p.line
	three := string(p.peek()) + string(p.peekAt(1)) + string(p.peekAt(2))
	switch three {
	case "<<<", ">>>":
		p.advance()
		p.advance()
		p.advance()
		return Token{Type: TokOperator, Text: three, Line: line}, true
	}
	two := string(p.peek()) + string(p.peekAt(1))
	switch two {
	case "**", "==", "!=", "<=", ">=", "&&", "||", "<<", ">>":
		p.advance()
		p.advance()
		return Token{Type: TokOperator, Text: two, Line: line}, true
	}
	c := p.peek()
	switch c {
	case '+', '-', '*', '/', '%', '<', '>', '&', '|', '^', '~', '!', '?', ':':
		p.advance()
		return Token{Type: TokOperator, Text: string(c), Line: line}, true
	}
	return Token{}, false
}

func parseIntStrict(s string) (int64, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseInt(s[2:], 16, 64)
		return n, err
	}
	return strconv.ParseInt(s, 10, 64)
}

func parseFloatStrict(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
