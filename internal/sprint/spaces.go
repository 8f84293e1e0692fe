package sprint

import (
	"strings"
	"unicode"

	"github.com/baiirun/cu/internal/clickup"
)

var noiseWords = map[string]bool{
	"product": true,
	"team":    true,
	"the":     true,
	"and":     true,
	"for":     true,
	"test":    true,
}

const minKeywordLen = 3

// ExtractKeywords returns the distinctive lowercase words of a space name.
func ExtractKeywords(name string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, name)

	keywords := []string{}
	seen := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(cleaned)) {
		if len([]rune(w)) < minKeywordLen || noiseWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		keywords = append(keywords, w)
	}
	return keywords
}

// FindRelatedSpaces widens the spaces a user works in to sibling spaces that
// share a keyword, e.g. "Acme" and "Product - Acme". With no usable keywords
// every space is returned.
func FindRelatedSpaces(mine map[string]bool, all []clickup.Space) []clickup.Space {
	var keywords []string
	for _, s := range all {
		if mine[s.ID] {
			keywords = append(keywords, ExtractKeywords(s.Name)...)
		}
	}
	if len(keywords) == 0 {
		return all
	}

	var related []clickup.Space
	for _, s := range all {
		if mine[s.ID] || containsAny(strings.ToLower(s.Name), keywords) {
			related = append(related, s)
		}
	}
	return related
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
