package ss

// Span locates a piece of source as byte offsets: [Start, End)
type Span struct {
	Start int
	End   int
}

// Token is a word of source text together with its location
type Token struct {
	Text string
	Span Span
}

// text returns token text, or empty string for absent token
func (t *Token) text() string {
	if t == nil {
		return ""
	}

	return t.Text
}
