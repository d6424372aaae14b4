package lambda

// Grammar:
//
//	term := ("\" | "λ") CHAR ("." | "→") term
//	      | "(" term ")"
//	      | DIGIT
//	      | "+" " " term " " term
//	      | CHAR
//	      | term " " term
//
// A single space is the only whitespace the grammar accepts, and it always
// means application. Compound operands have to be parenthesized.

// Parser is a small Pratt-style parser over the runes of its input.
type Parser struct {
	input []rune
	pos   int
}

func NewParser(input string) *Parser {
	return &Parser{input: []rune(input)}
}

// Parse parses one term at binding power 0.
func (p *Parser) Parse() (Term, error) {
	return p.parseTerm(0)
}

// Rest returns the input that has not been consumed yet.
func (p *Parser) Rest() string {
	return string(p.input[p.pos:])
}

func (p *Parser) peek() (rune, bool) {
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *Parser) fail(kind error) error {
	return &ParseError{Kind: kind, Pos: p.pos, Input: string(p.input)}
}

func (p *Parser) parseTerm(bp int) (Term, error) {
	ch, ok := p.peek()
	if !ok {
		return nil, p.fail(ErrEmptyInput)
	}

	var t Term
	switch {
	case ch == '\\' || ch == 'λ':
		abs, err := p.parseAbs()
		if err != nil {
			return nil, err
		}
		t = abs
	case ch == '(':
		p.pos++
		inner, err := p.parseTerm(0)
		if err != nil {
			return nil, err
		}
		if next, ok := p.peek(); !ok || next != ')' {
			return nil, p.fail(ErrUnmatchedParen)
		}
		p.pos++
		t = inner
	case ch == ')':
		return nil, p.fail(ErrUnexpectedCloseParen)
	case isDigit(ch):
		p.pos++
		t = Num{Value: int64(ch - '0')}
	case ch == '+':
		// Addition never picks up trailing arguments.
		return p.parseAdd()
	default:
		p.pos++
		t = Var{Name: string(ch)}
	}

	// Only the outermost level folds applications, so `a b c` is `(a b) c`.
	for bp == 0 {
		if next, ok := p.peek(); !ok || next != ' ' {
			break
		}
		p.pos++
		arg, err := p.parseTerm(1)
		if err != nil {
			return nil, err
		}
		t = App{Fun: t, Arg: arg}
	}

	return t, nil
}

func (p *Parser) parseAbs() (Term, error) {
	p.pos++ // consume '\' or 'λ'

	arg, ok := p.peek()
	if !ok {
		return nil, p.fail(ErrMalformedBinder)
	}
	p.pos++

	if sep, ok := p.peek(); !ok || (sep != '.' && sep != '→') {
		return nil, p.fail(ErrMalformedBinder)
	}
	p.pos++

	body, err := p.parseTerm(0)
	if err != nil {
		return nil, err
	}
	return Abs{Arg: string(arg), Body: body}, nil
}

func (p *Parser) parseAdd() (Term, error) {
	p.pos++ // consume '+'

	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return Add{Left: left, Right: right}, nil
}

// parseOperand expects a single space followed by a term at binding power 1.
func (p *Parser) parseOperand() (Term, error) {
	if sp, ok := p.peek(); !ok || sp != ' ' {
		return nil, p.fail(ErrMalformedAddition)
	}
	p.pos++
	if _, ok := p.peek(); !ok {
		return nil, p.fail(ErrMalformedAddition)
	}
	return p.parseTerm(1)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// ParsePrefix parses a term from the start of input at the given binding
// power and returns the unconsumed remainder.
func ParsePrefix(input string, bp int) (Term, string, error) {
	p := NewParser(input)
	t, err := p.parseTerm(bp)
	if err != nil {
		return nil, "", err
	}
	return t, p.Rest(), nil
}

// Parse parses a lambda term from a string. Input left over after the
// first complete term is ignored; use ParsePrefix to inspect it.
func Parse(input string) (Term, error) {
	t, _, err := ParsePrefix(input, 0)
	return t, err
}
