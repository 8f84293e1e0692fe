// Package status resolves loosely typed status names against the statuses a
// space actually defines.
package status

import "strings"

// Match resolves query against statuses. Exact matches win over prefix
// matches, which win over substring matches. All comparisons ignore case
// and ties go to the earlier entry in statuses.
func Match(query string, statuses []string) (string, bool) {
	if query == "" {
		return "", false
	}
	q := strings.ToLower(query)

	for _, s := range statuses {
		if strings.ToLower(s) == q {
			return s, true
		}
	}
	for _, s := range statuses {
		if strings.HasPrefix(strings.ToLower(s), q) {
			return s, true
		}
	}
	for _, s := range statuses {
		if strings.Contains(strings.ToLower(s), q) {
			return s, true
		}
	}
	return "", false
}

// Unique returns the distinct names in first-seen order, comparing without case.
func Unique(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		k := strings.ToLower(n)
		if n == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, n)
	}
	return out
}
