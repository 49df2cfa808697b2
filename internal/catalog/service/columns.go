package service

import "strings"

// ResolveColumn picks the raw header that carries a logical field, given
// the field's candidate names in priority order. Two passes, first match
// wins:
//
//  1. header equals a candidate, or contains it as a substring
//     (trimmed, case-insensitive);
//  2. header contains the candidate's first whitespace-delimited token.
//
// Real price lists phrase headers inconsistently; ordered substring
// matching is simple and good enough, not guaranteed unambiguous.
func ResolveColumn(headers []string, candidates []string) (string, bool) {
	for _, cand := range candidates {
		c := strings.ToUpper(strings.TrimSpace(cand))
		if c == "" {
			continue
		}
		for _, h := range headers {
			hu := strings.ToUpper(strings.TrimSpace(h))
			if hu == c || strings.Contains(hu, c) {
				return h, true
			}
		}
	}
	for _, cand := range candidates {
		fields := strings.Fields(cand)
		if len(fields) == 0 {
			continue
		}
		tok := strings.ToUpper(fields[0])
		for _, h := range headers {
			if strings.Contains(strings.ToUpper(h), tok) {
				return h, true
			}
		}
	}
	return "", false
}
