package sql

import (
	"fmt"
	"strconv"
	"strings"
)

// The calculator handles scalar queries like "SELECT 1 + 2 * 3" or a
// bare "(4 - 1) / 3". It is independent of the data engine: expressions
// are evaluated at parse time and the result travels in the CalcStmt.

type calcTokenKind int

const (
	calcNumber calcTokenKind = iota
	calcOperator
	calcLParen
	calcRParen
)

type calcToken struct {
	kind  calcTokenKind
	num   float64
	op    byte
}

// parseCalculation evaluates input as an arithmetic expression. An
// optional leading SELECT keyword is stripped first.
func parseCalculation(input string) (Statement, error) {
	expr := strings.TrimSpace(input)
	if upper := strings.ToUpper(expr); strings.HasPrefix(upper, "SELECT ") {
		expr = strings.TrimSpace(expr[len("SELECT "):])
	}
	expr = strings.TrimSpace(strings.TrimSuffix(expr, ";"))
	if expr == "" {
		return nil, fmt.Errorf("empty expression")
	}

	depth := 0
	for _, c := range expr {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unmatched closing parenthesis")
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unmatched opening parenthesis")
	}

	result, err := evalExpression(expr)
	if err != nil {
		return nil, err
	}
	return &CalcStmt{Expression: expr, Result: result}, nil
}

func tokenizeExpression(expr string) ([]calcToken, error) {
	var tokens []calcToken
	var num strings.Builder

	flush := func() error {
		if num.Len() == 0 {
			return nil
		}
		v, err := strconv.ParseFloat(num.String(), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", num.String())
		}
		tokens = append(tokens, calcToken{kind: calcNumber, num: v})
		num.Reset()
		return nil
	}

	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case c >= '0' && c <= '9' || c == '.':
			num.WriteByte(c)
		case c == '+' || c == '-' || c == '*' || c == '/':
			if err := flush(); err != nil {
				return nil, err
			}
			tokens = append(tokens, calcToken{kind: calcOperator, op: c})
		case c == '(':
			if err := flush(); err != nil {
				return nil, err
			}
			tokens = append(tokens, calcToken{kind: calcLParen})
		case c == ')':
			if err := flush(); err != nil {
				return nil, err
			}
			tokens = append(tokens, calcToken{kind: calcRParen})
		case c == ' ' || c == '\t':
			if err := flush(); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unknown character %q in expression", c)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return tokens, nil
}

func precedence(op byte) int {
	switch op {
	case '*', '/':
		return 3
	case '+', '-':
		return 2
	}
	return 0
}

func applyOperator(op byte, left, right float64) (float64, error) {
	switch op {
	case '+':
		return left + right, nil
	case '-':
		return left - right, nil
	case '*':
		return left * right, nil
	case '/':
		if right == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return left / right, nil
	}
	return 0, fmt.Errorf("unknown operator %q", op)
}

// evalExpression is a standard shunting-yard evaluator over + - * /
// with parentheses.
func evalExpression(expr string) (float64, error) {
	tokens, err := tokenizeExpression(expr)
	if err != nil {
		return 0, err
	}

	var output []float64
	var operators []byte

	reduce := func() error {
		if len(output) < 2 {
			return fmt.Errorf("missing operand")
		}
		op := operators[len(operators)-1]
		operators = operators[:len(operators)-1]
		right := output[len(output)-1]
		left := output[len(output)-2]
		output = output[:len(output)-2]
		v, err := applyOperator(op, left, right)
		if err != nil {
			return err
		}
		output = append(output, v)
		return nil
	}

	for _, tok := range tokens {
		switch tok.kind {
		case calcNumber:
			output = append(output, tok.num)
		case calcOperator:
			for len(operators) > 0 && operators[len(operators)-1] != '(' &&
				precedence(operators[len(operators)-1]) >= precedence(tok.op) {
				if err := reduce(); err != nil {
					return 0, err
				}
			}
			operators = append(operators, tok.op)
		case calcLParen:
			operators = append(operators, '(')
		case calcRParen:
			for len(operators) > 0 && operators[len(operators)-1] != '(' {
				if err := reduce(); err != nil {
					return 0, err
				}
			}
			if len(operators) == 0 {
				return 0, fmt.Errorf("unmatched closing parenthesis")
			}
			operators = operators[:len(operators)-1]
		}
	}

	for len(operators) > 0 {
		if operators[len(operators)-1] == '(' {
			return 0, fmt.Errorf("unmatched opening parenthesis")
		}
		if err := reduce(); err != nil {
			return 0, err
		}
	}

	if len(output) != 1 {
		return 0, fmt.Errorf("invalid expression")
	}
	return output[0], nil
}
