package service

import (
	"strconv"
	"strings"
)

// ParsePrice converts a raw cell value into a non-negative amount. It
// never fails: anything it cannot interpret becomes 0.
//
// Strings are stripped down to digits, commas and periods, then the
// first comma becomes a period (decimal-separator normalization) and the
// longest valid leading numeric prefix is taken. The heuristic is lossy
// on thousands separators: "1,234.56" parses as 1.234. That is the
// documented behavior, kept deterministic rather than guessed at.
func ParsePrice(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return clampPrice(x)
	case float32:
		return clampPrice(float64(x))
	case int:
		return clampPrice(float64(x))
	case int64:
		return clampPrice(float64(x))
	case string:
		return parsePriceString(x)
	default:
		return 0
	}
}

func clampPrice(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}

func parsePriceString(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Replace(b.String(), ",", ".", 1)
	return leadingFloat(cleaned)
}

// leadingFloat parses the longest valid numeric prefix ("1.234.56" →
// 1.234), 0 when no prefix parses.
func leadingFloat(s string) float64 {
	end := 0
	dot := false
	for i, r := range s {
		if r >= '0' && r <= '9' {
			end = i + 1
			continue
		}
		if r == '.' && !dot {
			dot = true
			continue
		}
		break
	}
	// a trailing dot with no digits after it is not part of the number
	for end > 0 && s[end-1] == '.' {
		end--
	}
	prefix := s[:end]
	if prefix == "" || prefix == "." {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return clampPrice(f)
}
