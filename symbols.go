package ss

import "strings"

// ligatures are replaced anywhere inside a text word, longer sequences go first
var ligatures = strings.NewReplacer("---", "—", "--", "–", "<<", "«", "~", " ")

func symbol(a string) string {
	switch a {
	case ">>":
		return "»"
	case "=>":
		return "⇒"
	default:
		return ligatures.Replace(a)
	}
}

// quote returns typographic quote mark
func quote(opening bool) string {
	if opening {
		return "“"
	}

	return "”"
}
