// Package expr renders constant initializers as binding value expressions.
//
// Only integer and float literals, identifiers, parentheses and the
// arithmetic and bitwise operators are understood. Anything else (strings,
// Objective-C literals, casts, calls) is reported as unparseable and the
// caller falls back to the evaluated value or drops the declaration.
package expr

import (
	"strconv"
	"strings"
	"text/scanner"

	"github.com/cockroachdb/errors"

	"github.com/roach88/headergen/internal/ast"
	"github.com/roach88/headergen/internal/ir"
)

// ErrUnparseable is returned for expressions outside the supported subset.
var ErrUnparseable = errors.New("unparseable expression")

// FromValue renders an evaluated integer. Unsigned values are rendered from
// their bit pattern.
func FromValue(v int64, signed bool) ir.Expr {
	if signed {
		return ir.Expr(strconv.FormatInt(v, 10))
	}
	return ir.Expr(strconv.FormatUint(uint64(v), 10))
}

// ParseEnumConstant renders the initializer of an enum constant.
// Float literals are rejected.
func ParseEnumConstant(e ast.Entity) (ir.Expr, bool) {
	text, ok := e.Expression()
	if !ok {
		return "", false
	}
	out, err := Parse(text, false)
	if err != nil {
		return "", false
	}
	return out, true
}

// ParseVar renders the initializer expression node of a variable.
func ParseVar(e ast.Entity) (ir.Expr, bool) {
	text, ok := e.Expression()
	if !ok {
		return "", false
	}
	out, err := Parse(text, true)
	if err != nil {
		return "", false
	}
	return out, true
}

// Parse renders C expression text. Integer suffixes are stripped, binary
// operators are spaced and bitwise not is rendered as "!".
func Parse(text string, allowFloat bool) (ir.Expr, error) {
	toks, err := lex(text)
	if err != nil {
		return "", err
	}
	if len(toks) == 0 {
		return "", errors.Wrap(ErrUnparseable, "empty expression")
	}
	p := &parser{toks: toks, allowFloat: allowFloat}
	out, err := p.expr(0)
	if err != nil {
		return "", errors.Wrapf(err, "%q", text)
	}
	if !p.done() {
		return "", errors.Wrapf(ErrUnparseable, "%q: unexpected %q", text, p.peek().text)
	}
	return ir.Expr(out), nil
}

type tokenKind int

const (
	tokInt tokenKind = iota
	tokFloat
	tokIdent
	tokOp
)

type token struct {
	kind tokenKind
	text string
}

var integerSuffix = "uUlL"
var floatSuffix = "fFlL"

func lex(text string) ([]token, error) {
	var s scanner.Scanner
	s.Init(strings.NewReader(text))
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanStrings | scanner.ScanChars | scanner.ScanRawStrings |
		scanner.ScanComments | scanner.SkipComments
	s.Error = func(*scanner.Scanner, string) {}

	var (
		toks    []token
		lastEnd = -1
	)
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		start := s.Position.Offset
		lit := s.TokenText()
		adjacent := start == lastEnd
		lastEnd = start + len(lit)

		switch tok {
		case scanner.Int:
			lit, err := cInteger(lit)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{tokInt, lit})
		case scanner.Float:
			if strings.ContainsRune(lit, '_') || strings.HasPrefix(strings.ToLower(lit), "0x") {
				return nil, errors.Wrapf(ErrUnparseable, "float literal %s", lit)
			}
			toks = append(toks, token{tokFloat, lit})
		case scanner.Ident:
			if adjacent && len(toks) > 0 {
				prev := toks[len(toks)-1]
				if prev.kind == tokInt && strings.Trim(lit, integerSuffix) == "" {
					continue
				}
				if prev.kind == tokFloat && len(lit) == 1 && strings.Contains(floatSuffix, lit) {
					continue
				}
				if prev.kind == tokInt || prev.kind == tokFloat {
					return nil, errors.Wrapf(ErrUnparseable, "bad literal suffix %q", lit)
				}
			}
			toks = append(toks, token{tokIdent, lit})
		case scanner.String, scanner.RawString, scanner.Char:
			return nil, errors.Wrapf(ErrUnparseable, "literal %s", lit)
		case '<', '>':
			// shifts arrive as two adjacent characters
			if adjacent && len(toks) > 0 && toks[len(toks)-1].text == lit {
				toks[len(toks)-1].text += lit
				continue
			}
			toks = append(toks, token{tokOp, lit})
		case '|', '&', '^', '+', '-', '*', '/', '~', '!', '(', ')':
			toks = append(toks, token{tokOp, lit})
		default:
			return nil, errors.Wrapf(ErrUnparseable, "unexpected %q", lit)
		}
	}
	for _, t := range toks {
		if t.text == "<" || t.text == ">" {
			return nil, errors.Wrap(ErrUnparseable, "comparison")
		}
	}
	return toks, nil
}

// cInteger checks an integer token against C literal syntax. The scanner
// also accepts Go-only spellings (0b, 0o, digit separators), which are
// rejected. Octal literals are rewritten with an explicit 0o prefix so a
// leading zero keeps its base.
func cInteger(lit string) (string, error) {
	lower := strings.ToLower(lit)
	switch {
	case strings.ContainsRune(lit, '_'):
		return "", errors.Wrapf(ErrUnparseable, "digit separator in %s", lit)
	case strings.HasPrefix(lower, "0x"):
		return lit, nil
	case strings.HasPrefix(lower, "0b"), strings.HasPrefix(lower, "0o"):
		return "", errors.Wrapf(ErrUnparseable, "integer prefix in %s", lit)
	case len(lit) > 1 && lit[0] == '0':
		if strings.Trim(lit, "01234567") != "" {
			return "", errors.Wrapf(ErrUnparseable, "octal literal %s", lit)
		}
		return "0o" + lit[1:], nil
	}
	return lit, nil
}

var precedence = map[string]int{
	"|":  1,
	"^":  2,
	"&":  3,
	"<<": 4,
	">>": 4,
	"+":  5,
	"-":  5,
	"*":  6,
	"/":  6,
}

type parser struct {
	toks       []token
	pos        int
	allowFloat bool
}

func (p *parser) done() bool { return p.pos >= len(p.toks) }

func (p *parser) peek() token {
	if p.done() {
		return token{kind: tokOp}
	}
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.peek()
	p.pos++
	return t
}

// expr parses binary operators with precedence climbing.
func (p *parser) expr(minPrec int) (string, error) {
	left, err := p.unary()
	if err != nil {
		return "", err
	}
	for !p.done() {
		op := p.peek()
		prec, ok := precedence[op.text]
		if op.kind != tokOp || !ok || prec <= minPrec {
			break
		}
		p.next()
		right, err := p.expr(prec)
		if err != nil {
			return "", err
		}
		left = left + " " + op.text + " " + right
	}
	return left, nil
}

func (p *parser) unary() (string, error) {
	t := p.peek()
	if t.kind == tokOp {
		switch t.text {
		case "-":
			p.next()
			operand, err := p.unary()
			return "-" + operand, err
		case "~", "!":
			p.next()
			operand, err := p.unary()
			return "!" + operand, err
		}
	}
	return p.primary()
}

func (p *parser) primary() (string, error) {
	if p.done() {
		return "", errors.Wrap(ErrUnparseable, "unexpected end")
	}
	t := p.next()
	switch t.kind {
	case tokInt:
		return t.text, nil
	case tokFloat:
		if !p.allowFloat {
			return "", errors.Wrapf(ErrUnparseable, "float %s", t.text)
		}
		return t.text, nil
	case tokIdent:
		if p.peek().text == "(" && !p.done() {
			return "", errors.Wrapf(ErrUnparseable, "call of %s", t.text)
		}
		return t.text, nil
	}

	if t.text != "(" {
		return "", errors.Wrapf(ErrUnparseable, "unexpected %q", t.text)
	}
	if p.isCast() {
		return "", errors.Wrap(ErrUnparseable, "cast")
	}
	inner, err := p.expr(0)
	if err != nil {
		return "", err
	}
	if p.done() || p.next().text != ")" {
		return "", errors.Wrap(ErrUnparseable, "unbalanced parenthesis")
	}
	return "(" + inner + ")", nil
}

// isCast reports whether the tokens after an opening parenthesis look like
// "(Type) operand", "(Type *) operand" or "(unsigned int) operand".
func (p *parser) isCast() bool {
	i := p.pos
	idents := 0
	for i < len(p.toks) && (p.toks[i].kind == tokIdent || p.toks[i].text == "*") {
		if p.toks[i].kind == tokIdent {
			idents++
		}
		i++
	}
	if idents == 0 || i >= len(p.toks) || p.toks[i].text != ")" {
		return false
	}
	if i-p.pos > 1 {
		// more than a single identifier can only be a type
		return true
	}
	i++
	if i >= len(p.toks) {
		return false
	}
	next := p.toks[i]
	return next.kind != tokOp || next.text == "(" || next.text == "~" || next.text == "!"
}
