package model

import (
	"strings"

	"github.com/sells-group/profile-cli/internal/normalize"
)

// MaxAddresses bounds the address list on a ContactSet.
const MaxAddresses = 3

// Address is one postal address candidate that survived the plausibility
// predicate, with the source it was extracted from.
type Address struct {
	Value  string `json:"value"`
	Source string `json:"source,omitempty"`
}

// ContactSet holds the reconciled contact data for a company.
type ContactSet struct {
	Emails    []string  `json:"emails"`
	Phones    []string  `json:"phones"`
	Addresses []Address `json:"addresses"`
}

// NewContactSet builds a ContactSet from raw candidates. Emails are
// lowercased and deduplicated; when the domain is known they are filtered
// to brand matches, and a synthetic info@domain stands in when none
// survive. Phones are deduplicated as given (callers normalize to E.164
// before this point). Addresses must pass the plausibility predicate and
// are deduplicated by value, capped at MaxAddresses.
func NewContactSet(emails, phones []string, addrs []Address, domain string) ContactSet {
	cs := ContactSet{
		Emails:    []string{},
		Phones:    []string{},
		Addresses: []Address{},
	}

	seenEmail := make(map[string]struct{})
	for _, raw := range emails {
		e := normalize.Email(raw)
		if e == "" {
			continue
		}
		if domain != "" && !normalize.BrandMatchesEmail(domain, e) {
			continue
		}
		if _, ok := seenEmail[e]; ok {
			continue
		}
		seenEmail[e] = struct{}{}
		cs.Emails = append(cs.Emails, e)
	}
	if len(cs.Emails) == 0 && domain != "" {
		cs.Emails = []string{"info@" + normalize.Domain(domain)}
	}

	seenPhone := make(map[string]struct{})
	for _, p := range phones {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seenPhone[p]; ok {
			continue
		}
		seenPhone[p] = struct{}{}
		cs.Phones = append(cs.Phones, p)
	}

	seenAddr := make(map[string]struct{})
	for _, a := range addrs {
		v := normalize.CleanAddress(a.Value)
		if !normalize.PlausibleAddress(v) {
			continue
		}
		if _, ok := seenAddr[v]; ok {
			continue
		}
		seenAddr[v] = struct{}{}
		cs.Addresses = append(cs.Addresses, Address{Value: v, Source: a.Source})
		if len(cs.Addresses) == MaxAddresses {
			break
		}
	}

	return cs
}

// Complete reports whether the set already has at least one of each kind,
// the early-stop signal for the contact cascade.
func (c ContactSet) Complete() bool {
	return len(c.Emails) > 0 && len(c.Phones) > 0 && len(c.Addresses) > 0
}
