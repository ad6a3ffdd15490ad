// Package location canonicalizes free-text playa addresses into the
// "<Ring> & <Clock>" form, e.g. "Gobsmack & 7:25" -> "G & 7:25".
//
// The rules here were tuned empirically against live directory text. In
// particular, the last clock match wins and a named street maps to the ring
// of its initial letter. When no ring/clock pair can be assembled the cleaned
// original text is returned verbatim; that is a valid output, not an error.
package location

import (
	"regexp"
	"strings"
)

const ringLetters = "ABCDEFGHIJK"

var (
	clockRe       = regexp.MustCompile(`\b((?:[0-1]?\d|2[0-3]):[0-5]\d)\b`)
	esplanadeRe   = regexp.MustCompile(`(?i)\bEsplanade\b`)
	singleRingRe  = regexp.MustCompile(`\b([A-Ka-k])\b`)
	plazaRingRe   = regexp.MustCompile(`(?i)\b([A-Ka-k])\s*(?:Plaza|Plz)\b`)
	wordRe        = regexp.MustCompile(`\b[A-Za-z][A-Za-z\-']*\b`)
	parentheticRe = regexp.MustCompile(`\s*\([^)]*\)`)
	trailingRe    = regexp.MustCompile(`,.*$`)
	ampSpacingRe  = regexp.MustCompile(`\s*&\s*`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a raw location string. Normalize is idempotent:
// an already-canonical string comes back unchanged.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	s := parentheticRe.ReplaceAllString(raw, "")
	s = trailingRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "@", "&")
	s = ampSpacingRe.ReplaceAllString(s, " & ")
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))

	ring := extractRing(s)
	clock := extractClock(s)
	if ring != "" && clock != "" {
		return ring + " & " + clock
	}

	// Reversed forms like "9:00 & J": attempt each half independently and
	// recombine, preferring the clock from the half that did not supply the
	// ring.
	if idx := strings.Index(s, "&"); idx >= 0 {
		left := strings.TrimSpace(s[:idx])
		right := strings.TrimSpace(s[idx+1:])
		ring = extractRing(left)
		if ring == "" {
			ring = extractRing(right)
		}
		clock = extractClock(right)
		if clock == "" {
			clock = extractClock(left)
		}
		if ring != "" && clock != "" {
			return ring + " & " + clock
		}
	}

	return s
}

// extractRing returns "Esplanade" or a single letter A..K, or "" when no
// ring can be recovered.
func extractRing(text string) string {
	if text == "" {
		return ""
	}
	s := strings.TrimSpace(text)

	// Esplanade is a distinct ring, not the letter E.
	if esplanadeRe.MatchString(s) {
		return "Esplanade"
	}

	if m := singleRingRe.FindStringSubmatch(s); m != nil {
		return strings.ToUpper(m[1])
	}

	if m := plazaRingRe.FindStringSubmatch(s); m != nil {
		return strings.ToUpper(m[1])
	}

	// Named street: ring by initial letter, e.g. "Gobsmack" -> "G".
	for _, word := range wordRe.FindAllString(s, -1) {
		if strings.EqualFold(word, "esplanade") {
			return "Esplanade"
		}
		first := strings.ToUpper(word[:1])
		if strings.Contains(ringLetters, first) {
			return first
		}
	}

	return ""
}

// extractClock returns the last H:MM clock position found in the text, or "".
// Last wins because clock text can appear on either side of the ring token.
func extractClock(text string) string {
	matches := clockRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1]
}
