package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

// addressNoiseTokens are legal/UI boilerplate fragments that disqualify a
// candidate outright. Tuned against footer text commonly co-located with
// real addresses.
var addressNoiseTokens = []string{
	"cookie", "policy", "terms", "privacy", "listen", "playlist",
	"subscribe", "sign in", "sign up", "log in", "javascript",
	"copyright", "all rights",
}

var regionSegmentRe = regexp.MustCompile(`^[A-Za-z][A-Za-z .\-]{0,38}(?:\d[\dA-Za-z\- ]{0,14})?$`)

// AddressRe captures street-address-shaped spans in free text: a house
// number, a street name, and at least one comma-separated locality
// segment. Candidates still pass through PlausibleAddress.
var AddressRe = regexp.MustCompile(`\d{1,5}\s+[A-Za-z][A-Za-z0-9 .'\-]*(?:,\s*[A-Za-z0-9][A-Za-z0-9 .'\-]*){1,4}`)

// PlausibleAddress is the acceptance predicate for address candidates.
// It rejects syntactically well-formed but semantically implausible
// strings: too short or long, missing comma structure or digits, carrying
// boilerplate noise, mostly non-Latin, or ending in something that does not
// look like a region or country token.
func PlausibleAddress(v string) bool {
	t := strings.Join(strings.Fields(v), " ")
	t = strings.Trim(t, ", ")
	if len(t) < 10 || len(t) > 200 {
		return false
	}

	segments := strings.Split(t, ",")
	if len(segments) < 2 {
		return false
	}

	if !strings.ContainsFunc(t, unicode.IsDigit) {
		return false
	}

	low := strings.ToLower(t)
	for _, tok := range addressNoiseTokens {
		if strings.Contains(low, tok) {
			return false
		}
	}

	if nonLatinRatio(t) >= 0.25 {
		return false
	}

	last := strings.TrimSpace(segments[len(segments)-1])
	return regionSegmentRe.MatchString(last)
}

// CleanAddress collapses whitespace and strips stray leading/trailing
// separators so equal addresses from different sources dedupe by value.
func CleanAddress(v string) string {
	t := strings.Join(strings.Fields(v), " ")
	return strings.Trim(t, ", ")
}

func nonLatinRatio(s string) float64 {
	total, nonLatin := 0, 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if r > unicode.MaxASCII && !unicode.In(r, unicode.Latin) {
			nonLatin++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(nonLatin) / float64(total)
}
