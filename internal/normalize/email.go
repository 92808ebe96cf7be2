package normalize

import (
	"regexp"
	"strings"
)

var (
	// EmailRe matches email-shaped tokens in free text. Word-ish boundaries
	// keep it from eating surrounding punctuation.
	EmailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	phoneTokenRe = regexp.MustCompile(`\+?\d[\d\s().\-]{7,}\d`)
)

// Email lowercases and trims an email candidate; returns "" when the result
// is not email-shaped.
func Email(raw string) string {
	e := strings.ToLower(strings.TrimSpace(raw))
	if !EmailRe.MatchString(e) || strings.Count(e, "@") != 1 {
		return ""
	}
	return e
}

// EmailsInText extracts lowercased, deduplicated email candidates from
// free text in order of appearance.
func EmailsInText(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range EmailRe.FindAllString(text, -1) {
		e := Email(m)
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// BrandMatchesEmail reports whether an email plausibly belongs to the brand
// behind the given domain: the email's host is the domain (or a subdomain),
// or the host's leading label prefix/suffix-matches the brand token.
func BrandMatchesEmail(domain, email string) bool {
	brand := BrandToken(domain)
	if brand == "" {
		return false
	}
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return false
	}
	host := strings.ToLower(email[at+1:])
	d := Domain(domain)
	if host == d || strings.HasSuffix(host, "."+d) {
		return true
	}
	label := host
	if i := strings.IndexByte(label, '.'); i >= 0 {
		label = label[:i]
	}
	return strings.HasPrefix(label, brand) || strings.HasSuffix(label, brand)
}
