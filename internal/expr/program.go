package expr

import "strings"

// Program is a compiled expression.
type Program struct {
	src  string
	root node
}

// Compile parses src into a Program.
func Compile(src string) (*Program, error) {
	root, err := parse(src)
	if err != nil {
		return nil, withSource(err, src)
	}
	return &Program{src: src, root: root}, nil
}

// MustCompile is Compile that panics on error. Meant for expressions fixed at compile time.
func MustCompile(src string) *Program {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

// Source returns the text the program was compiled from.
func (p *Program) Source() string { return p.src }

// Eval evaluates the program. The result is a float64, string or bool.
func (p *Program) Eval(env *Env) (any, error) {
	v, err := p.root.eval(env)
	if err != nil {
		return nil, withSource(err, p.src)
	}
	return v, nil
}

// EvalBool evaluates the program and requires a bool result.
func (p *Program) EvalBool(env *Env) (bool, error) {
	v, err := p.Eval(env)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, &Error{Source: p.src, Pos: p.root.pos(), Msg: "expected a bool result, got " + typeName(v)}
	}
	return b, nil
}

// EvalString evaluates the program and requires a string result.
func (p *Program) EvalString(env *Env) (string, error) {
	v, err := p.Eval(env)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &Error{Source: p.src, Pos: p.root.pos(), Msg: "expected a string result, got " + typeName(v)}
	}
	return s, nil
}

// Template reports whether s is a parameter expression of the form "${...}" and
// returns the enclosed source.
func Template(s string) (string, bool) {
	if !strings.HasPrefix(s, "${") || !strings.HasSuffix(s, "}") {
		return "", false
	}
	return s[2 : len(s)-1], true
}
