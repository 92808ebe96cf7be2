// Package normalize holds the shared validators and normalizers the
// extractors agree on: phone formatting, address plausibility, human-name
// shape, brand/email matching, and URL canonicalization. Everything here is
// a pure function; implausible input yields a zero value, never an error.
package normalize

import (
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// ccTLDRegions maps country-code TLDs to search locale codes. Domains
// outside the table fall back to DefaultRegion.
var ccTLDRegions = map[string]string{
	"uk": "gb", "de": "de", "fr": "fr", "es": "es", "it": "it",
	"nl": "nl", "se": "se", "no": "no", "dk": "dk", "fi": "fi",
	"pl": "pl", "pt": "pt", "ch": "ch", "at": "at", "be": "be",
	"ie": "ie", "ca": "ca", "au": "au", "nz": "nz", "jp": "jp",
	"kr": "kr", "cn": "cn", "in": "in", "br": "br", "mx": "mx",
	"ar": "ar", "cl": "cl", "za": "za", "ae": "ae", "sa": "sa",
	"sg": "sg", "hk": "hk", "tw": "tw", "tr": "tr", "id": "id",
	"my": "my", "th": "th", "vn": "vn", "ph": "ph", "il": "il",
	"ru": "ru", "ua": "ua", "cz": "cz", "gr": "gr", "hu": "hu",
	"ro": "ro",
}

// DefaultRegion is the search locale used when a domain carries no
// recognizable country code.
const DefaultRegion = "us"

// Domain strips scheme, path, port, and leading www from a raw domain or
// URL and lowercases the result. Internationalized hosts are converted to
// their ASCII (punycode) form so downstream comparisons are stable.
func Domain(raw string) string {
	d := strings.TrimSpace(strings.ToLower(raw))
	if d == "" {
		return ""
	}
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	if i := strings.IndexByte(d, ':'); i >= 0 {
		d = d[:i]
	}
	d = strings.TrimPrefix(d, "www.")
	d = strings.Trim(d, ".")
	if ascii, err := idna.Lookup.ToASCII(d); err == nil {
		d = ascii
	}
	return d
}

// BrandToken returns the leading label of a domain, the token used to score
// social handles and validate email domains. "acme.co.uk" → "acme".
func BrandToken(domain string) string {
	d := Domain(domain)
	if d == "" {
		return ""
	}
	if i := strings.IndexByte(d, '.'); i >= 0 {
		return d[:i]
	}
	return d
}

// RegionForDomain guesses a search locale from the domain's country-code
// TLD. Unknown or generic TLDs map to DefaultRegion.
func RegionForDomain(domain string) string {
	d := Domain(domain)
	i := strings.LastIndexByte(d, '.')
	if i < 0 || i == len(d)-1 {
		return DefaultRegion
	}
	if r, ok := ccTLDRegions[d[i+1:]]; ok {
		return r
	}
	return DefaultRegion
}

// PhoneRegion returns the ISO 3166-1 region hint for parsing phone numbers
// found on a domain's pages. Defaults to "US".
func PhoneRegion(domain string) string {
	r := RegionForDomain(domain)
	if r == "" {
		return "US"
	}
	return strings.ToUpper(r)
}

// CanonicalURL strips query, fragment, and trailing slash, and lowercases
// the host. Unparsable input is returned trimmed so callers can still
// dedupe on it.
func CanonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return strings.TrimRight(raw, "/")
	}
	u.Host = strings.ToLower(u.Host)
	u.RawQuery = ""
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/")
	return u.String()
}

// HostMatchesDomain reports whether a URL's host is the domain itself or a
// subdomain of it. Used to decide when a discovered link may overwrite the
// seeded website.
func HostMatchesDomain(rawURL, domain string) bool {
	d := Domain(domain)
	if d == "" {
		return false
	}
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	host := strings.ToLower(strings.TrimPrefix(u.Host, "www."))
	return host == d || strings.HasSuffix(host, "."+d)
}
