package expr

import (
	"math"
	"strconv"
	"strings"
)

type node interface {
	eval(env *Env) (any, error)
	pos() int
}

type literalNode struct {
	at  int
	val any
}

type refNode struct {
	at   int
	path []string
}

type unaryNode struct {
	at int
	op string
	x  node
}

type binaryNode struct {
	at   int
	op   string
	l, r node
}

type logicalNode struct {
	at   int
	op   string
	l, r node
}

type condNode struct {
	at              int
	cond, then, els node
}

func (n *literalNode) pos() int { return n.at }
func (n *refNode) pos() int     { return n.at }
func (n *unaryNode) pos() int   { return n.at }
func (n *binaryNode) pos() int  { return n.at }
func (n *logicalNode) pos() int { return n.at }
func (n *condNode) pos() int    { return n.at }

func (n *literalNode) eval(*Env) (any, error) { return n.val, nil }

func (n *refNode) eval(env *Env) (any, error) {
	name := strings.Join(n.path, ".")
	v, ok := env.Lookup(n.path)
	if !ok {
		return nil, errorf(n.at, "undefined variable %q", name)
	}
	nv, ok := normalize(v)
	if !ok {
		return nil, errorf(n.at, "variable %q has unsupported type %T", name, v)
	}
	return nv, nil
}

func (n *unaryNode) eval(env *Env) (any, error) {
	x, err := n.x.eval(env)
	if err != nil {
		return nil, err
	}
	switch n.op {
	case "!":
		b, ok := x.(bool)
		if !ok {
			return nil, errorf(n.at, "operator '!' needs a bool, got %s", typeName(x))
		}
		return !b, nil
	default:
		f, ok := x.(float64)
		if !ok {
			return nil, errorf(n.at, "operator '-' needs a number, got %s", typeName(x))
		}
		return -f, nil
	}
}

func (n *logicalNode) eval(env *Env) (any, error) {
	l, err := evalBool(n.l, env, n.op)
	if err != nil {
		return nil, err
	}
	if (n.op == "&&" && !l) || (n.op == "||" && l) {
		return l, nil
	}
	return evalBool(n.r, env, n.op)
}

func evalBool(n node, env *Env, op string) (bool, error) {
	v, err := n.eval(env)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, errorf(n.pos(), "operand of '%s' must be a bool, got %s", op, typeName(v))
	}
	return b, nil
}

func (n *condNode) eval(env *Env) (any, error) {
	c, err := evalBool(n.cond, env, "?")
	if err != nil {
		return nil, err
	}
	if c {
		return n.then.eval(env)
	}
	return n.els.eval(env)
}

func (n *binaryNode) eval(env *Env) (any, error) {
	l, err := n.l.eval(env)
	if err != nil {
		return nil, err
	}
	r, err := n.r.eval(env)
	if err != nil {
		return nil, err
	}

	switch n.op {
	case "==", "!=":
		if typeName(l) != typeName(r) {
			return nil, errorf(n.at, "cannot compare %s with %s", typeName(l), typeName(r))
		}
		return (l == r) == (n.op == "=="), nil
	case "<", "<=", ">", ">=":
		return n.order(l, r)
	case "+":
		if ls, ok := l.(string); ok {
			rs, err := n.concat(r)
			return ls + rs, err
		}
		if rs, ok := r.(string); ok {
			ls, err := n.concat(l)
			return ls + rs, err
		}
	}

	lf, lok := l.(float64)
	rf, rok := r.(float64)
	if !lok || !rok {
		return nil, errorf(n.at, "operator '%s' needs numbers, got %s and %s", n.op, typeName(l), typeName(r))
	}
	switch n.op {
	case "+":
		return lf + rf, nil
	case "-":
		return lf - rf, nil
	case "*":
		return lf * rf, nil
	case "/":
		if rf == 0 {
			return nil, errorf(n.at, "division by zero")
		}
		return lf / rf, nil
	default:
		if rf == 0 {
			return nil, errorf(n.at, "modulo by zero")
		}
		return math.Mod(lf, rf), nil
	}
}

func (n *binaryNode) order(l, r any) (any, error) {
	var c int
	switch lv := l.(type) {
	case float64:
		rv, ok := r.(float64)
		if !ok {
			return nil, errorf(n.at, "cannot order number and %s", typeName(r))
		}
		switch {
		case lv < rv:
			c = -1
		case lv > rv:
			c = 1
		}
	case string:
		rv, ok := r.(string)
		if !ok {
			return nil, errorf(n.at, "cannot order string and %s", typeName(r))
		}
		c = strings.Compare(lv, rv)
	default:
		return nil, errorf(n.at, "operator '%s' is not defined on %s", n.op, typeName(l))
	}
	switch n.op {
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	case ">":
		return c > 0, nil
	default:
		return c >= 0, nil
	}
}

func (n *binaryNode) concat(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	default:
		return "", errorf(n.at, "cannot concatenate %s", typeName(v))
	}
}

func typeName(v any) string {
	switch v.(type) {
	case float64:
		return "number"
	case string:
		return "string"
	case bool:
		return "bool"
	default:
		return "unknown"
	}
}

// normalize maps Go values onto the three expression types.
func normalize(v any) (any, bool) {
	switch x := v.(type) {
	case bool, string, float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return nil, false
	}
}
