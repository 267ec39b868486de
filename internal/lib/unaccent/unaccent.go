// Package unaccent убирает диакритические знаки из строки запроса,
// чтобы фильтр по стране совпадал с SQL-функцией unaccent на стороне базы.
package unaccent

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Strip возвращает строку без комбинируемых диакритических знаков:
// "Côte d'Ivoire" -> "Cote d'Ivoire".
func Strip(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
