// SPDX-License-Identifier: MIT

package expr

import (
	"strings"
)

// tokenKind classifies a lexeme.
type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOperator
	tokLParen
	tokRParen
	tokComma
	tokEquals
)

// token is one lexeme with its byte offset in the source.
type token struct {
	kind tokenKind
	text string
	pos  int
}

var mulToken = token{kind: tokOperator, text: "*"}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

// scan splits expression into tokens. It knows nothing about grammar.
func scan(expression string) ([]token, error) {
	var (
		toks []token
		i    int
		n    = len(expression)
	)
	for i < n {
		c := expression[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case isDigit(c) || (c == '.' && i+1 < n && isDigit(expression[i+1])):
			j := scanNumber(expression, i)
			toks = append(toks, token{kind: tokNumber, text: expression[i:j], pos: i})
			i = j
		case isIdentStart(c):
			j := i + 1
			for j < n && isIdentPart(expression[j]) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: expression[i:j], pos: i})
			i = j
		case strings.IndexByte("+-*/^%", c) >= 0:
			toks = append(toks, token{kind: tokOperator, text: string(c), pos: i})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma, text: ",", pos: i})
			i++
		case c == '=':
			toks = append(toks, token{kind: tokEquals, text: "=", pos: i})
			i++
		default:
			return nil, syntaxErrorf(expression, i, "unexpected character %q", c)
		}
	}

	return toks, nil
}

// scanNumber returns the end offset of the number starting at i.
// An exponent is consumed only when digits follow it, so "2e" reads as 2·e.
func scanNumber(s string, i int) int {
	n := len(s)
	for i < n && isDigit(s[i]) {
		i++
	}
	if i < n && s[i] == '.' {
		i++
		for i < n && isDigit(s[i]) {
			i++
		}
	}
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < n && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < n && isDigit(s[j]) {
			for j < n && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}

	return i
}

// endsOperand reports whether t can close an operand.
func endsOperand(t token) bool {
	return t.kind == tokNumber || t.kind == tokRParen || (t.kind == tokIdent && !isFunction(t.text))
}

// startsOperand reports whether t can open an operand.
func startsOperand(t token) bool {
	return t.kind == tokNumber || t.kind == tokIdent || t.kind == tokLParen
}

// rewrite validates the token stream and inserts explicit multiplications.
//
// Rules:
//   - a builtin name must be followed by "(" and opens a call;
//   - "," is only legal directly inside a call;
//   - at most one "=" and only outside parentheses;
//   - reserved Lua words and names starting with "__" are rejected.
func rewrite(expression string, toks []token) ([]token, error) {
	out := make([]token, 0, len(toks)+4)
	calls := make([]bool, 0, 4) // paren stack: true when the paren opened a call
	equals := 0
	for k, t := range toks {
		switch t.kind {
		case tokIdent:
			if _, bad := reserved[t.text]; bad || strings.HasPrefix(t.text, "__") {
				return nil, syntaxErrorf(expression, t.pos, "%q cannot be used as a name", t.text)
			}
			if isFunction(t.text) && (k+1 >= len(toks) || toks[k+1].kind != tokLParen) {
				return nil, syntaxErrorf(expression, t.pos, "function %s needs arguments", t.text)
			}
		case tokLParen:
			calls = append(calls, k > 0 && toks[k-1].kind == tokIdent && isFunction(toks[k-1].text))
		case tokRParen:
			if len(calls) == 0 {
				return nil, syntaxErrorf(expression, t.pos, "unbalanced )")
			}
			calls = calls[:len(calls)-1]
		case tokComma:
			if len(calls) == 0 || !calls[len(calls)-1] {
				return nil, syntaxErrorf(expression, t.pos, "comma outside a function call")
			}
		case tokEquals:
			if equals++; equals > 1 {
				return nil, syntaxErrorf(expression, t.pos, "more than one =")
			}
			if len(calls) != 0 {
				return nil, syntaxErrorf(expression, t.pos, "= inside parentheses")
			}
		}

		if k > 0 && endsOperand(toks[k-1]) && startsOperand(t) {
			if toks[k-1].kind == tokNumber && t.kind == tokNumber {
				return nil, syntaxErrorf(expression, t.pos, "unexpected number %s", t.text)
			}
			out = append(out, mulToken)
		}
		out = append(out, t)
	}
	if len(calls) != 0 {
		return nil, syntaxErrorf(expression, len(expression), "unbalanced (")
	}

	return out, nil
}

// residual joins the tokens into one expression, turning lhs = rhs into
// (lhs) - (rhs). Tokens are space separated so "- -" never forms a comment.
func residual(expression string, toks []token) (string, error) {
	eq := -1
	for k, t := range toks {
		if t.kind == tokEquals {
			eq = k
		}
	}
	if len(toks) == 0 {
		return "", syntaxErrorf(expression, 0, "empty expression")
	}
	if eq < 0 {
		return join(toks), nil
	}
	lhs, rhs := toks[:eq], toks[eq+1:]
	if len(lhs) == 0 || len(rhs) == 0 {
		return "", syntaxErrorf(expression, toks[eq].pos, "missing side of =")
	}

	return "( " + join(lhs) + " ) - ( " + join(rhs) + " )", nil
}

func join(toks []token) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.text
	}

	return strings.Join(parts, " ")
}

// parse runs scan, rewrite and residual, and collects unknown names in
// first-appearance order.
func parse(expression string) (body string, names []string, err error) {
	toks, err := scan(expression)
	if err != nil {
		return "", nil, err
	}
	if toks, err = rewrite(expression, toks); err != nil {
		return "", nil, err
	}
	if body, err = residual(expression, toks); err != nil {
		return "", nil, err
	}
	seen := make(map[string]struct{})
	for _, t := range toks {
		if t.kind != tokIdent || isFunction(t.text) || isConstant(t.text) {
			continue
		}
		if _, dup := seen[t.text]; !dup {
			seen[t.text] = struct{}{}
			names = append(names, t.text)
		}
	}

	return body, names, nil
}

// Normalize returns the canonical residual form of expression: explicit
// multiplication, space-separated tokens, and lhs = rhs as (lhs) - (rhs).
//
//	Normalize("2x = y")  →  "( 2 * x ) - ( y )"
func Normalize(expression string) (string, error) {
	body, _, err := parse(expression)
	return body, err
}

// Identifiers returns the names the equations depend on, excluding
// builtins and constants, in order of first appearance across equations.
func Identifiers(equations ...string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	for _, eq := range equations {
		_, names, err := parse(eq)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				out = append(out, name)
			}
		}
	}

	return out, nil
}
