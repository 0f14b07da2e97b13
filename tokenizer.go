package ss

import (
	"io"
	"strings"
	"unicode"
)

// Tokenizer splits source into words: a single reserved character, a single whitespace character or
// a maximal run of characters which are neither.
type Tokenizer struct {
	r      io.RuneScanner
	offset int
}

func NewTokenizer(r io.RuneScanner) *Tokenizer {
	return &Tokenizer{r: r}
}

// Words segments source text, it is a shortcut for reading all tokens from a string
func Words(src string) []Token {
	t := NewTokenizer(strings.NewReader(src))

	var words []Token
	for {
		word, err := t.Token()
		if err != nil {
			return words
		}

		words = append(words, word)
	}
}

// Token reads next word, it returns io.EOF when input is over
func (l *Tokenizer) Token() (Token, error) {
	char, size, err := l.r.ReadRune()
	if err != nil {
		return Token{}, err
	}

	start := l.offset
	l.offset += size

	if isReserved(char) || isWhitespace(char) {
		return Token{Text: string(char), Span: Span{Start: start, End: l.offset}}, nil
	}

	return l.readRun(char, start)
}

// readRun reads plain characters until reserved character, whitespace or end of input
func (l *Tokenizer) readRun(first rune, start int) (Token, error) {
	var b strings.Builder
	b.WriteRune(first)

	for {
		read, size, err := l.r.ReadRune()
		if err == io.EOF {
			break
		}

		if err != nil {
			return Token{}, err
		}

		if isReserved(read) || isWhitespace(read) {
			if err := l.r.UnreadRune(); err != nil {
				return Token{}, err
			}

			break
		}

		b.WriteRune(read)
		l.offset += size
	}

	return Token{Text: b.String(), Span: Span{Start: start, End: l.offset}}, nil
}

// isReserved returns true for characters which always form a word on their own
func isReserved(r rune) bool {
	switch r {
	case '\\', '{', '}', '[', ']', '(', ')', '=', '>', '_', '^', ',', '.', '"':
		return true
	default:
		return false
	}
}

func isWhitespace(r rune) bool {
	return unicode.IsSpace(r)
}

// isPlainWord returns true if word is a run of non-reserved, non-space characters
func isPlainWord(word string) bool {
	for _, r := range word {
		if isReserved(r) || isWhitespace(r) {
			return false
		}
	}

	return word != ""
}

// isBlank returns true if word consists of whitespace only
func isBlank(word string) bool {
	return word != "" && strings.TrimSpace(word) == ""
}
