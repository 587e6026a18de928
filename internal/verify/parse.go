package verify

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ExtractContracts pulls @requires/@ensures lines out of a docstring.
// Lines that fail to parse come back as errors tagged with their text;
// everything else in the docstring is prose and is ignored.
func ExtractContracts(doc string) ([]Contract, []error) {
	var contracts []Contract
	var errs []error
	for _, raw := range strings.Split(doc, "\n") {
		line := strings.TrimSpace(raw)
		var kind ContractKind
		var rest string
		switch {
		case strings.HasPrefix(line, "@requires"):
			kind, rest = Requires, strings.TrimPrefix(line, "@requires")
		case strings.HasPrefix(line, "@ensures"):
			kind, rest = Ensures, strings.TrimPrefix(line, "@ensures")
		default:
			continue
		}
		pred, err := ParsePredicate(strings.TrimSpace(rest))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", line, err))
			continue
		}
		contracts = append(contracts, Contract{Kind: kind, Pred: pred, Line: line})
	}
	return contracts, errs
}

// ParsePredicate parses one predicate expression:
//
//	pred    := and ("or" and)*
//	and     := unary ("and" unary)*
//	unary   := "not" unary | "(" pred ")" | compare
//	compare := value op value
//	value   := name | int | float | bool | quoted string
func ParsePredicate(src string) (*Predicate, error) {
	toks, err := tokenizePredicate(src)
	if err != nil {
		return nil, err
	}
	p := &predParser{toks: toks}
	pred, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, fmt.Errorf("unexpected %q after predicate", p.cur())
	}
	return pred, nil
}

type predParser struct {
	toks []string
	pos  int
}

func (p *predParser) cur() string {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return ""
}

func (p *predParser) atEnd() bool {
	return p.pos >= len(p.toks)
}

func (p *predParser) eat(tok string) bool {
	if p.cur() == tok {
		p.pos++
		return true
	}
	return false
}

func (p *predParser) parseOr() (*Predicate, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.eat("or") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Predicate{Kind: PredOr, X: left, Y: right}
	}
	return left, nil
}

func (p *predParser) parseAnd() (*Predicate, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.eat("and") {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Predicate{Kind: PredAnd, X: left, Y: right}
	}
	return left, nil
}

func (p *predParser) parseUnary() (*Predicate, error) {
	if p.eat("not") {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Predicate{Kind: PredNot, X: inner}, nil
	}
	if p.eat("(") {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.eat(")") {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		return inner, nil
	}
	return p.parseCompare()
}

var compareOps = map[string]CompareOp{
	"==": CmpEq,
	"!=": CmpNotEq,
	"<":  CmpLt,
	"<=": CmpLtEq,
	">":  CmpGt,
	">=": CmpGtEq,
}

func (p *predParser) parseCompare() (*Predicate, error) {
	left, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	op, ok := compareOps[p.cur()]
	if !ok {
		return nil, fmt.Errorf("expected comparison operator, found %q", p.cur())
	}
	p.pos++
	right, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return &Predicate{Kind: PredCompare, Op: op, Left: left, Right: right}, nil
}

func (p *predParser) parseValue() (Value, error) {
	tok := p.cur()
	if tok == "" {
		return Value{}, fmt.Errorf("expected a value, found end of predicate")
	}
	p.pos++
	switch {
	case tok == "true" || tok == "True":
		return Value{Kind: ValBool, Bool: true}, nil
	case tok == "false" || tok == "False":
		return Value{Kind: ValBool, Bool: false}, nil
	case tok[0] == '"':
		return Value{Kind: ValStr, Str: strings.Trim(tok, "\"")}, nil
	case tok[0] == '-' || unicode.IsDigit(rune(tok[0])):
		if strings.ContainsAny(tok, ".eE") {
			f, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return Value{}, fmt.Errorf("bad number %q", tok)
			}
			return Value{Kind: ValFloat, Float: f}, nil
		}
		i, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("bad number %q", tok)
		}
		return Value{Kind: ValInt, Int: i}, nil
	case isPredIdent(tok):
		return Value{Kind: ValVar, Var: tok}, nil
	}
	return Value{}, fmt.Errorf("unexpected %q", tok)
}

func isPredIdent(tok string) bool {
	for i, r := range tok {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return tok != ""
}

func tokenizePredicate(src string) ([]string, error) {
	var toks []string
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(' || c == ')':
			toks = append(toks, string(c))
			i++
		case c == '<' || c == '>' || c == '=' || c == '!':
			if i+1 < len(src) && src[i+1] == '=' {
				toks = append(toks, src[i:i+2])
				i += 2
				continue
			}
			if c == '=' || c == '!' {
				return nil, fmt.Errorf("unexpected %q", string(c))
			}
			toks = append(toks, string(c))
			i++
		case c == '"':
			end := strings.IndexByte(src[i+1:], '"')
			if end < 0 {
				return nil, fmt.Errorf("unterminated string")
			}
			toks = append(toks, src[i:i+end+2])
			i += end + 2
		case c == '-' || c >= '0' && c <= '9':
			start := i
			i++
			for i < len(src) && (src[i] >= '0' && src[i] <= '9' || src[i] == '.' || src[i] == 'e' || src[i] == 'E') {
				i++
			}
			toks = append(toks, src[start:i])
		case c == '_' || unicode.IsLetter(rune(c)):
			start := i
			for i < len(src) && (src[i] == '_' || unicode.IsLetter(rune(src[i])) || unicode.IsDigit(rune(src[i]))) {
				i++
			}
			toks = append(toks, src[start:i])
		default:
			return nil, fmt.Errorf("unexpected %q", string(c))
		}
	}
	return toks, nil
}
