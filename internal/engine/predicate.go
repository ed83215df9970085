package engine

import (
	"fmt"
	"strconv"
	"strings"

	"rowdb/internal/storage"
)

// The predicate engine compiles a WHERE-clause string into a reusable
// boolean test over rows. Column names are resolved to positional
// indices at compile time, so a compiled predicate holds no reference
// to its source table and must be recompiled for a different schema.
//
// Grammar (lowest precedence first):
//
//	condition  := and_expr ( OR and_expr )*
//	and_expr   := term ( AND term )*
//	term       := "(" condition ")" | comparison
//	comparison := column ( ">" | "<" | "=" ) value
//	            | column IS [NOT] NULL
//
// Keywords are case-insensitive. String literals may be single- or
// double-quoted and may contain spaces.

type predKind int

const (
	predCompare predKind = iota
	predAnd
	predOr
)

type compareOp int

const (
	cmpEq compareOp = iota
	cmpGt
	cmpLt
	cmpIsNull
	cmpIsNotNull
)

// Predicate is a compiled condition: a tagged expression tree evaluated
// against one row at a time. A nil Predicate matches every row.
type Predicate struct {
	kind predKind

	left  *Predicate // predAnd, predOr
	right *Predicate

	col     int // predCompare
	op      compareOp
	literal string
}

// Match reports whether the row satisfies the condition.
func (p *Predicate) Match(row storage.Row) bool {
	if p == nil {
		return true
	}
	switch p.kind {
	case predAnd:
		return p.left.Match(row) && p.right.Match(row)
	case predOr:
		return p.left.Match(row) || p.right.Match(row)
	}

	var cell string
	if p.col >= 0 && p.col < len(row) {
		cell = row[p.col]
	}
	switch p.op {
	case cmpEq:
		return cell == p.literal
	case cmpGt:
		return asInt32(cell) > asInt32(p.literal)
	case cmpLt:
		return asInt32(cell) < asInt32(p.literal)
	case cmpIsNull:
		return storage.IsNull(cell)
	case cmpIsNotNull:
		return !storage.IsNull(cell)
	}
	return false
}

// asInt32 parses a cell for ordering. Unparsable cells (including NULL)
// order as 0; this permissive policy is intentional and tested.
func asInt32(s string) int32 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0
	}
	return int32(v)
}

// Compile turns condition text into a Predicate bound to the table's
// current column layout. Empty text compiles to the match-all (nil)
// predicate.
func Compile(condition string, t *storage.Table) (*Predicate, error) {
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return nil, nil
	}

	toks, err := tokenizeCondition(condition)
	if err != nil {
		return nil, &ConditionParseError{Detail: err.Error()}
	}
	if len(toks) == 0 {
		return nil, nil
	}

	p := &condParser{toks: toks, table: t}
	pred, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, &ConditionParseError{Detail: fmt.Sprintf("unexpected token %q", p.toks[p.pos].text)}
	}
	return pred, nil
}

type tokenKind int

const (
	tokWord tokenKind = iota
	tokString
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
}

// tokenizeCondition splits condition text into words, operators,
// parentheses, and quoted literals. Quotes are stripped here, so a
// space inside a literal can never be mistaken for a separator, and a
// keyword inside an identifier (BRAND vs AND) never splits.
func tokenizeCondition(s string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "("})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++
		case c == '>' || c == '<' || c == '=':
			toks = append(toks, token{tokOp, string(c)})
			i++
		case c == '\'' || c == '"':
			quote := c
			j := i + 1
			for j < len(s) && s[j] != quote {
				j++
			}
			if j >= len(s) {
				return nil, fmt.Errorf("unterminated string literal starting at %q", s[i:])
			}
			toks = append(toks, token{tokString, s[i+1 : j]})
			i = j + 1
		default:
			j := i
			for j < len(s) && !isBoundary(s[j]) {
				j++
			}
			toks = append(toks, token{tokWord, s[i:j]})
			i = j
		}
	}
	return toks, nil
}

func isBoundary(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '(', ')', '>', '<', '=', '\'', '"':
		return true
	}
	return false
}

type condParser struct {
	toks  []token
	pos   int
	table *storage.Table
}

// keyword consumes the next token if it is the given word, ignoring case.
func (p *condParser) keyword(kw string) bool {
	if p.pos < len(p.toks) && p.toks[p.pos].kind == tokWord && strings.EqualFold(p.toks[p.pos].text, kw) {
		p.pos++
		return true
	}
	return false
}

func (p *condParser) parseOr() (*Predicate, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.keyword("OR") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Predicate{kind: predOr, left: left, right: right}
	}
	return left, nil
}

func (p *condParser) parseAnd() (*Predicate, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.keyword("AND") {
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Predicate{kind: predAnd, left: left, right: right}
	}
	return left, nil
}

func (p *condParser) parseTerm() (*Predicate, error) {
	if p.pos < len(p.toks) && p.toks[p.pos].kind == tokLParen {
		p.pos++
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.pos >= len(p.toks) || p.toks[p.pos].kind != tokRParen {
			return nil, &ConditionParseError{Detail: "missing closing parenthesis"}
		}
		p.pos++
		return inner, nil
	}
	return p.parseComparison()
}

func (p *condParser) parseComparison() (*Predicate, error) {
	if p.pos >= len(p.toks) || p.toks[p.pos].kind != tokWord {
		return nil, &ConditionParseError{Detail: "expected a column name"}
	}
	colName := p.toks[p.pos].text
	p.pos++

	idx, ok := p.table.ColumnIndex(colName)
	if !ok {
		return nil, &ConditionParseError{Detail: fmt.Sprintf("column %q not found", colName)}
	}

	if p.pos >= len(p.toks) {
		return nil, &ConditionParseError{Detail: fmt.Sprintf("missing operator after column %q", colName)}
	}

	opTok := p.toks[p.pos]
	switch {
	case opTok.kind == tokOp:
		p.pos++
		var op compareOp
		switch opTok.text {
		case "=":
			op = cmpEq
		case ">":
			op = cmpGt
		case "<":
			op = cmpLt
		}
		lit, err := p.parseValue(colName)
		if err != nil {
			return nil, err
		}
		return &Predicate{kind: predCompare, col: idx, op: op, literal: lit}, nil

	case opTok.kind == tokWord && strings.EqualFold(opTok.text, "IS"):
		p.pos++
		op := cmpIsNull
		if p.keyword("NOT") {
			op = cmpIsNotNull
		}
		if !p.consumeNull() {
			return nil, &ConditionParseError{Detail: fmt.Sprintf("expected NULL after IS for column %q", colName)}
		}
		return &Predicate{kind: predCompare, col: idx, op: op}, nil

	default:
		return nil, &ConditionParseError{Detail: fmt.Sprintf("unsupported operator %q", opTok.text)}
	}
}

// parseValue consumes a comparison operand: a bare word or a quoted
// literal. The NULL keyword collapses to the empty sentinel.
func (p *condParser) parseValue(colName string) (string, error) {
	if p.pos >= len(p.toks) {
		return "", &ConditionParseError{Detail: fmt.Sprintf("missing value for column %q", colName)}
	}
	tok := p.toks[p.pos]
	switch tok.kind {
	case tokString:
		p.pos++
		return tok.text, nil
	case tokWord:
		p.pos++
		if strings.EqualFold(tok.text, "null") {
			return "", nil
		}
		return tok.text, nil
	}
	return "", &ConditionParseError{Detail: fmt.Sprintf("missing value for column %q", colName)}
}

// consumeNull accepts the NULL keyword or an empty quoted string; the
// front end historically rewrote IS NULL into IS "" and both spellings
// still come through.
func (p *condParser) consumeNull() bool {
	if p.keyword("NULL") {
		return true
	}
	if p.pos < len(p.toks) && p.toks[p.pos].kind == tokString && p.toks[p.pos].text == "" {
		p.pos++
		return true
	}
	return false
}
