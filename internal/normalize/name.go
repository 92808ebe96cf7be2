package normalize

import (
	"regexp"
	"strings"
)

// uiNoiseTokens are words that mark a candidate as navigation chrome rather
// than a person: any token matching disqualifies the whole candidate.
var uiNoiseTokens = map[string]struct{}{
	"save": {}, "more": {}, "sell": {}, "support": {}, "help": {},
	"center": {}, "contact": {}, "customer": {}, "manage": {},
	"account": {}, "orders": {}, "wishlist": {}, "reviews": {},
	"returns": {}, "care": {}, "buy": {}, "all": {}, "login": {},
	"signup": {}, "track": {}, "cart": {}, "shop": {}, "deals": {},
}

// nameStopWords end a capitalized run when it drifts into narrative text
// ("Jane Doe Succeeds John Smith As ...").
var nameStopWords = map[string]struct{}{
	"succeeds": {}, "appointed": {}, "appoints": {}, "joins": {},
	"leaves": {}, "replaces": {}, "to": {}, "as": {}, "the": {},
	"is": {}, "was": {}, "will": {}, "has": {}, "he": {}, "she": {},
}

var capTokenRe = regexp.MustCompile(`[A-Z][a-z]+`)

// CapitalizedRunRe matches a run of one to five capitalized words, the
// loose fallback used when no heading yields a name.
var CapitalizedRunRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s[A-Z][a-z]+){0,4})\b`)

// HumanName reports whether s is shaped like a person's name: one to five
// tokens, 3–80 characters, leading capital, not shouting, and free of UI
// noise words.
func HumanName(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 3 || len(s) > 80 {
		return false
	}
	if s == strings.ToUpper(s) {
		return false
	}
	parts := strings.Fields(s)
	if len(parts) < 1 || len(parts) > 5 {
		return false
	}
	for _, p := range parts {
		if _, bad := uiNoiseTokens[strings.ToLower(p)]; bad {
			return false
		}
	}
	first := []rune(parts[0])
	return first[0] >= 'A' && first[0] <= 'Z'
}

// ClipNameTokens extracts the leading capitalized tokens of s, stopping at
// the first narrative verb. Returns "" unless two to four tokens survive.
func ClipNameTokens(s string) string {
	var out []string
	for _, tok := range capTokenRe.FindAllString(s, -1) {
		if _, stop := nameStopWords[strings.ToLower(tok)]; stop {
			break
		}
		out = append(out, tok)
	}
	if len(out) < 2 || len(out) > 4 {
		return ""
	}
	return strings.Join(out, " ")
}

// CleanTitle collapses whitespace in a job title, trims separator
// punctuation, and bounds its length.
func CleanTitle(t string) string {
	t = strings.Join(strings.Fields(t), " ")
	t = strings.Trim(t, " :,-|–—")
	if len(t) > 120 {
		t = strings.TrimSpace(t[:120])
	}
	return t
}
