package ss

import (
	"io"
	"strings"
)

// InlineMath is the identifier emitted for \{...}
const InlineMath = "\\"

// partial is an enclosure which is opened but not closed yet
type partial struct {
	open     Token
	quote    bool
	kind     BracketKind
	children []Node
}

func (b *partial) finish(close *Token) Node {
	open := b.open
	if b.quote {
		return &Quotation{Open: &open, Close: close, Children: b.children}
	}

	return &Bracket{Kind: b.kind, Open: &open, Close: close, Children: b.children}
}

type Parser struct {
	tokens *Tokenizer
}

func Parse(r io.RuneScanner) ([]Node, error) {
	return NewParser(r).Parse()
}

// ParseString parses source text, it never fails: malformed input is represented in the tree
func ParseString(src string) []Node {
	nodes, _ := Parse(strings.NewReader(src))
	return nodes
}

func NewParser(r io.RuneScanner) *Parser {
	return &Parser{tokens: NewTokenizer(r)}
}

// Parse builds a tree from the whole input. Unbalanced brackets are not an error: a dangling closer becomes
// InvalidToken and an enclosure left open at the end of input has no Close token.
func (p *Parser) Parse() ([]Node, error) {
	var words []Token
	for {
		word, err := p.tokens.Token()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, err
		}

		words = append(words, word)
	}

	root := &partial{}
	var stack []*partial

	top := func() *partial {
		if len(stack) == 0 {
			return root
		}

		return stack[len(stack)-1]
	}

	emit := func(n Node) {
		b := top()
		b.children = append(b.children, n)
	}

	push := func(w Token, quote bool, kind BracketKind) {
		stack = append(stack, &partial{open: w, quote: quote, kind: kind})
	}

	pop := func(close *Token) {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		emit(b.finish(close))
	}

	for i := 0; i < len(words); i++ {
		word := words[i]

		var next string
		if i+1 < len(words) {
			next = words[i+1].Text
		}

		switch word.Text {
		case "\\":
			switch {
			case next == "{":
				emit(&Ident{Name: InlineMath, Span: word.Span})
			case isPlainWord(next):
				emit(&Ident{Name: "\\" + next, Span: Span{Start: word.Span.Start, End: words[i+1].Span.End}})
				i++
			default:
				emit(&Symbol{Value: word.Text, Span: word.Span})
			}
		case "=":
			if next == ">" {
				emit(&Symbol{Value: "=>", Span: Span{Start: word.Span.Start, End: words[i+1].Span.End}})
				i++
				continue
			}

			emit(&Symbol{Value: word.Text, Span: word.Span})
		case "{":
			push(word, false, CurlyBrace)
		case "[":
			push(word, false, SquareParen)
		case "(":
			push(word, false, Parens)
		case "}", "]", ")":
			if len(stack) == 0 {
				emit(&InvalidToken{Token: word})
				continue
			}

			close := word
			pop(&close)
		case "\"":
			if len(stack) > 0 && top().quote {
				close := word
				pop(&close)
				continue
			}

			push(word, true, 0)
		case ">":
			if next == ">" {
				emit(&Symbol{Value: ">>", Span: Span{Start: word.Span.Start, End: words[i+1].Span.End}})
				i++
				continue
			}

			emit(&Symbol{Value: word.Text, Span: word.Span})
		case "_", "^", ",", ".":
			emit(&Symbol{Value: word.Text, Span: word.Span})
		default:
			emit(&Text{Value: word.Text, Span: word.Span})
		}
	}

	// whatever is still open at the end of input is left unterminated
	for len(stack) > 0 {
		pop(nil)
	}

	return root.children, nil
}
