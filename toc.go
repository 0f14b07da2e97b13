package ss

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// TocPage accumulates table of contents of one output page
type TocPage struct {
	Used  map[string]bool
	Items []*html.Node
	Math  *MathEnv
}

func NewTocPage(math *MathEnv) *TocPage {
	if math == nil {
		math = NewMathEnv()
	}

	return &TocPage{Used: map[string]bool{}, Math: math}
}

// Anchor derives a unique URL-safe id from heading text. If id is already used on the page, a number is
// appended: text, text1, text2 etc.
func (t *TocPage) Anchor(text string) string {
	base := anchorID(text)

	id := base
	for n := 1; t.Used[id]; n++ {
		id = base + strconv.Itoa(n)
	}

	t.Used[id] = true
	return id
}

// Add appends an item for a heading
func (t *TocPage) Add(level int, href string, external bool, children ...*html.Node) {
	class := "toc-local"
	if external {
		class = "toc-external"
	}

	link := element("a", []html.Attribute{{Key: "href", Val: href}}, children...)
	item := element("li", []html.Attribute{{Key: "class", Val: class}, {Key: "data-level", Val: strconv.Itoa(level)}}, link)

	t.Items = append(t.Items, item)
}

// Fragment renders accumulated items as a list
func (t *TocPage) Fragment() *html.Node {
	list := element("ul", []html.Attribute{{Key: "class", Val: "toc"}})
	for _, item := range t.Items {
		list.AppendChild(item)
	}

	return list
}

func anchorID(text string) string {
	decoded, err := url.PathUnescape(text)
	if err != nil {
		decoded = text
	}

	decoded = strings.Join(strings.Fields(decoded), "-")
	if decoded == "" {
		return "section"
	}

	return url.PathEscape(decoded)
}

// PageURL is an absolute URL of a page compiled from a source file
func PageURL(source string) string {
	return "/" + strings.TrimPrefix(strings.TrimSuffix(path.Clean(strings.ReplaceAll(source, "\\", "/")), ".ss"), "/") + ".html"
}
