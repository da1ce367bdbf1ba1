package expr

import (
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokString
	tokIdent
	tokTrue
	tokFalse
	tokOp
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

var twoCharOps = []string{"==", "!=", "<=", ">=", "&&", "||"}

const singleCharOps = "<>!+-*/%()?:."

// maxTokens bounds expression length, and with it the depth of operator chains.
const maxTokens = 4096

// lex splits src into tokens. Positions are 1-based byte offsets.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		if len(toks) > maxTokens {
			return nil, errorf(toks[maxTokens].pos, "expression too long")
		}
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c):
			start := i
			for i < len(src) && isDigit(src[i]) {
				i++
			}
			if i < len(src) && src[i] == '.' && i+1 < len(src) && isDigit(src[i+1]) {
				i++
				for i < len(src) && isDigit(src[i]) {
					i++
				}
			}
			if i < len(src) && isIdentStart(src[i]) {
				return nil, errorf(start+1, "malformed number %q", src[start:i+1])
			}
			f, err := strconv.ParseFloat(src[start:i], 64)
			if err != nil {
				return nil, errorf(start+1, "malformed number %q", src[start:i])
			}
			toks = append(toks, token{kind: tokNumber, text: src[start:i], num: f, pos: start + 1})
		case c == '"' || c == '\'':
			s, n, err := lexString(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokString, text: s, pos: i + 1})
			i += n
		case isIdentStart(c):
			start := i
			for i < len(src) && (isIdentStart(src[i]) || isDigit(src[i])) {
				i++
			}
			word := src[start:i]
			kind := tokIdent
			switch word {
			case "true":
				kind = tokTrue
			case "false":
				kind = tokFalse
			}
			toks = append(toks, token{kind: kind, text: word, pos: start + 1})
		default:
			op := ""
			for _, two := range twoCharOps {
				if strings.HasPrefix(src[i:], two) {
					op = two
					break
				}
			}
			if op == "" && strings.IndexByte(singleCharOps, c) >= 0 {
				op = string(c)
			}
			if op == "" {
				if c == '=' {
					return nil, errorf(i+1, "unexpected '=' (use '==' to compare)")
				}
				return nil, errorf(i+1, "unexpected character %q", rune(c))
			}
			toks = append(toks, token{kind: tokOp, text: op, pos: i + 1})
			i += len(op)
		}
	}
	if len(toks) > maxTokens {
		return nil, errorf(toks[maxTokens].pos, "expression too long")
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src) + 1})
	return toks, nil
}

// lexString reads a quoted literal starting at src[start] and returns the unescaped
// value and the number of bytes consumed.
func lexString(src string, start int) (string, int, error) {
	quote := src[start]
	var b strings.Builder
	i := start + 1
	for i < len(src) {
		c := src[i]
		switch {
		case c == quote:
			return b.String(), i - start + 1, nil
		case c == '\\':
			if i+1 >= len(src) {
				return "", 0, errorf(i+1, "unterminated escape")
			}
			switch esc := src[i+1]; esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '"', '\'':
				b.WriteByte(esc)
			default:
				return "", 0, errorf(i+1, "unknown escape '\\%c'", esc)
			}
			i += 2
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, errorf(start+1, "unterminated string")
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
