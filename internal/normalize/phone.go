package normalize

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// SnippetPhoneRe loosely captures phone-shaped tokens in search snippets.
// Candidates it produces must still pass Phone before acceptance.
var SnippetPhoneRe = phoneTokenRe

// Phone parses a raw phone candidate and returns its E.164 form, or "" when
// the candidate is not a valid number. The region hint is used for numbers
// without an international prefix; pass PhoneRegion(domain) when the source
// domain is known.
func Phone(raw, region string) string {
	cand := strings.TrimSpace(strings.ReplaceAll(raw, " ", " "))
	if cand == "" {
		return ""
	}
	if region == "" {
		region = "US"
	}
	num, err := phonenumbers.Parse(cand, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(num) || !phonenumbers.IsValidNumber(num) {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

// PhonesInText finds valid phone numbers in free text, returned in E.164
// form in order of appearance, deduplicated.
func PhonesInText(text, region string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range SnippetPhoneRe.FindAllString(text, -1) {
		p := Phone(m, region)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
