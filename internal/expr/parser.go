package expr

// maxDepth bounds nesting of parentheses, ternaries and unary operators.
const maxDepth = 256

type parser struct {
	toks  []token
	i     int
	depth int
}

// enter records one nesting level entered at t.
func (p *parser) enter(t token) error {
	p.depth++
	if p.depth > maxDepth {
		return errorf(t.pos, "expression nested too deeply")
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

// accept consumes the next token if it is one of ops.
func (p *parser) accept(ops ...string) (token, bool) {
	t := p.peek()
	if t.kind != tokOp {
		return t, false
	}
	for _, op := range ops {
		if t.text == op {
			p.i++
			return t, true
		}
	}
	return t, false
}

func (p *parser) expect(op string) error {
	if _, ok := p.accept(op); !ok {
		return unexpected(p.peek(), "'"+op+"'")
	}
	return nil
}

func unexpected(t token, want string) *Error {
	if t.kind == tokEOF {
		return errorf(t.pos, "unexpected end of expression, expected %s", want)
	}
	return errorf(t.pos, "unexpected %q, expected %s", t.text, want)
}

func parse(src string) (node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	if toks[0].kind == tokEOF {
		return nil, errorf(toks[0].pos, "empty expression")
	}
	p := &parser{toks: toks}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, errorf(t.pos, "unexpected %q after expression", t.text)
	}
	return n, nil
}

func (p *parser) parseExpr() (node, error) {
	if err := p.enter(p.peek()); err != nil {
		return nil, err
	}
	defer p.leave()
	c, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	q, ok := p.accept("?")
	if !ok {
		return c, nil
	}
	t, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	f, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &condNode{at: q.pos, cond: c, then: t, els: f}, nil
}

func (p *parser) parseOr() (node, error) {
	l, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.accept("||")
		if !ok {
			return l, nil
		}
		r, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		l = &logicalNode{at: op.pos, op: op.text, l: l, r: r}
	}
}

func (p *parser) parseAnd() (node, error) {
	l, err := p.parseCmp()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.accept("&&")
		if !ok {
			return l, nil
		}
		r, err := p.parseCmp()
		if err != nil {
			return nil, err
		}
		l = &logicalNode{at: op.pos, op: op.text, l: l, r: r}
	}
}

// parseCmp does not chain: "a < b < c" is rejected by the caller as trailing input.
func (p *parser) parseCmp() (node, error) {
	l, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	op, ok := p.accept("==", "!=", "<", "<=", ">", ">=")
	if !ok {
		return l, nil
	}
	r, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	return &binaryNode{at: op.pos, op: op.text, l: l, r: r}, nil
}

func (p *parser) parseAdd() (node, error) {
	l, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.accept("+", "-")
		if !ok {
			return l, nil
		}
		r, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		l = &binaryNode{at: op.pos, op: op.text, l: l, r: r}
	}
}

func (p *parser) parseMul() (node, error) {
	l, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.accept("*", "/", "%")
		if !ok {
			return l, nil
		}
		r, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		l = &binaryNode{at: op.pos, op: op.text, l: l, r: r}
	}
}

func (p *parser) parseUnary() (node, error) {
	if op, ok := p.accept("!", "-"); ok {
		if err := p.enter(op); err != nil {
			return nil, err
		}
		defer p.leave()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{at: op.pos, op: op.text, x: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return &literalNode{at: t.pos, val: t.num}, nil
	case tokString:
		return &literalNode{at: t.pos, val: t.text}, nil
	case tokTrue:
		return &literalNode{at: t.pos, val: true}, nil
	case tokFalse:
		return &literalNode{at: t.pos, val: false}, nil
	case tokIdent:
		path := []string{t.text}
		for {
			if _, ok := p.accept("."); !ok {
				break
			}
			seg := p.next()
			if seg.kind != tokIdent {
				return nil, unexpected(seg, "identifier after '.'")
			}
			path = append(path, seg.text)
		}
		return &refNode{at: t.pos, path: path}, nil
	case tokOp:
		if t.text == "(" {
			n, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return n, nil
		}
	}
	return nil, unexpected(t, "operand")
}
