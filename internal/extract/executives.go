package extract

import (
	"context"
	"sort"
	"strings"

	"github.com/sells-group/profile-cli/internal/fetcher"
	"github.com/sells-group/profile-cli/internal/htmlutil"
	"github.com/sells-group/profile-cli/internal/model"
	"github.com/sells-group/profile-cli/internal/normalize"
	"github.com/sells-group/profile-cli/pkg/serper"
)

// leadershipKeywords gate job titles: a title must contain one of these
// to count as an executive role.
var leadershipKeywords = []string{
	"chief", "ceo", "cto", "cfo", "coo", "cmo", "cio", "vp", "svp", "evp",
	"president", "founder", "co-founder", "chair", "chairman", "director", "head", "board",
}

// leadershipPaths are the conventional leadership-page locations probed
// on the main site and its subdomains.
var leadershipPaths = []string{
	"/leadership", "/team", "/management", "/executive-team", "/leadership-team", "/board",
	"/board-of-directors", "/about/leadership", "/about/team", "/company/leadership",
	"/company/team", "/people", "/who-we-are", "/our-team", "/investors/corporate-governance",
}

// excludedURLTokens filter discovered URLs that are clearly account or
// support surfaces, not leadership pages.
var excludedURLTokens = []string{"/help", "/support", "/customer", "/account", "/orders", "/wishlist"}

// probeRoles are searched one by one when the page cascade comes up
// short; each contributes at most one name.
var probeRoles = []string{"CEO", "CFO", "CTO", "COO", "CMO", "CIO", "President", "Chairman"}

// infoboxPeopleLabels mark encyclopedia infobox rows that list people.
var infoboxPeopleLabels = []string{"key people", "founders", "founder", "ceo", "chief executive", "chairman", "chairperson", "president"}

const (
	maxLeadershipURLs = 12
	// enoughExecutives stops the cascade; pages keep being crawled a bit
	// past it so ranking has material to choose from.
	enoughExecutives  = 6
	crawlStopAtPeople = 10
)

// ExecutiveExtractor resolves a ranked leadership list for a company.
type ExecutiveExtractor struct {
	search Searcher
	fetch  fetcher.Fetcher
}

// NewExecutiveExtractor wires an executive extractor to its collaborators.
func NewExecutiveExtractor(search Searcher, fetch fetcher.Fetcher) *ExecutiveExtractor {
	return &ExecutiveExtractor{search: search, fetch: fetch}
}

// Extract runs the executive cascade: leadership pages, encyclopedia
// infobox, per-role search probes, then knowledge-graph officers. Each
// later tier runs only while fewer than six people have been found. The
// result is deduplicated, ranked, and capped by the model.
func (e *ExecutiveExtractor) Extract(ctx context.Context, company, domain, website string) []model.Executive {
	var people []model.Executive

	people = append(people, e.fromLeadershipPages(ctx, domain, website)...)
	if len(people) < enoughExecutives {
		people = append(people, e.fromInfobox(ctx, firstNonEmpty(company, domain))...)
	}
	if len(people) < enoughExecutives {
		people = append(people, e.fromRoleProbes(ctx, firstNonEmpty(company, domain))...)
	}
	if len(people) < enoughExecutives {
		people = append(people, e.fromKnowledgeGraph(ctx, firstNonEmpty(company, domain))...)
	}

	for i := range people {
		if people[i].ProfileURL == "" {
			people[i].ProfileURL = e.profileLinkFor(ctx, people[i].Name, company)
		}
	}
	return model.SortExecutives(people)
}

// fromLeadershipPages discovers candidate leadership URLs and parses
// their card-like DOM blocks for name/title pairs.
func (e *ExecutiveExtractor) fromLeadershipPages(ctx context.Context, domain, website string) []model.Executive {
	var people []model.Executive
	for _, pageURL := range e.discoverLeadershipURLs(ctx, domain, website) {
		doc := fetchDoc(ctx, e.fetch, pageURL)
		if doc == nil {
			continue
		}
		people = append(people, peopleFromCards(htmlutil.Cards(doc, 8))...)
		if len(people) >= crawlStopAtPeople {
			break
		}
	}
	return people
}

// discoverLeadershipURLs combines site-scoped search hits with
// conventional path guesses on the site and its newsroom/investor
// subdomains, deduplicated and capped.
func (e *ExecutiveExtractor) discoverLeadershipURLs(ctx context.Context, domain, website string) []string {
	var urls []string

	if domain != "" {
		opts := serper.SearchOptions{Num: 6, Locale: normalize.RegionForDomain(domain)}
		queries := []string{
			"site:" + domain + " leadership",
			"site:" + domain + " team",
			"site:" + domain + " executive team",
			"site:" + domain + " board of directors",
			"site:" + domain + " management",
		}
		for _, q := range queries {
			for _, hit := range organicHits(ctx, e.search, q, opts) {
				if hit.Link != "" {
					urls = append(urls, hit.Link)
				}
			}
		}
	}

	if website != "" {
		for _, root := range subdomainRoots(website) {
			urls = append(urls, root+"/")
			for _, p := range leadershipPaths {
				urls = append(urls, joinPath(root, p))
			}
		}
		for _, p := range leadershipPaths {
			urls = append(urls, joinPath(website, p))
		}
	}

	seen := make(map[string]struct{}, len(urls))
	out := urls[:0]
	for _, u := range urls {
		if _, ok := seen[u]; ok || excludedURL(u) {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
		if len(out) >= maxLeadershipURLs {
			break
		}
	}
	return out
}

func excludedURL(u string) bool {
	low := strings.ToLower(u)
	for _, tok := range excludedURLTokens {
		if strings.Contains(low, tok) {
			return true
		}
	}
	return false
}

// peopleFromCards extracts name/title pairs from card-like DOM blocks.
// A card contributes a person only when it yields both a name-shaped
// heading (or capitalized run) and a leadership-keyword title.
func peopleFromCards(cards []htmlutil.Card) []model.Executive {
	var people []model.Executive
	for _, card := range cards {
		name := cardName(card)
		if name == "" {
			continue
		}
		title := cardTitle(card, name)
		if title == "" {
			continue
		}
		person := model.Executive{Name: name, JobTitle: title}
		for _, a := range card.Links {
			if strings.Contains(a.Href, "linkedin.com/in") {
				person.ProfileURL = a.Href
				break
			}
		}
		people = append(people, person)
	}
	return people
}

func cardName(card htmlutil.Card) string {
	for _, h := range card.Headings {
		if normalize.HumanName(h) {
			return h
		}
	}
	if m := normalize.CapitalizedRunRe.FindString(card.Text); m != "" {
		cand := normalize.ClipNameTokens(m)
		if cand == "" {
			cand = m
		}
		if normalize.HumanName(cand) {
			return cand
		}
	}
	return ""
}

// cardTitle takes the heading after the name when it carries a
// leadership keyword, falling back to a keyword-centered text window.
func cardTitle(card htmlutil.Card, name string) string {
	for i, h := range card.Headings {
		if h != name || i+1 >= len(card.Headings) {
			continue
		}
		next := card.Headings[i+1]
		if hasLeadershipKeyword(next) {
			return normalize.CleanTitle(next)
		}
	}
	low := strings.ToLower(card.Text)
	for _, kw := range leadershipKeywords {
		pos := strings.Index(low, kw)
		if pos < 0 {
			continue
		}
		start := pos - 40
		if start < 0 {
			start = 0
		}
		end := pos + 80
		if end > len(card.Text) {
			end = len(card.Text)
		}
		return normalize.CleanTitle(card.Text[start:end])
	}
	return ""
}

func hasLeadershipKeyword(s string) bool {
	low := strings.ToLower(s)
	for _, kw := range leadershipKeywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}

// fromInfobox reads people rows off an encyclopedia infobox: key
// people, founders, and named officer rows, splitting multi-person
// cells and pairing each name with its role.
func (e *ExecutiveExtractor) fromInfobox(ctx context.Context, subject string) []model.Executive {
	if subject == "" {
		return nil
	}
	opts := serper.SearchOptions{Num: 3, Locale: normalize.DefaultRegion}
	for _, hit := range organicHits(ctx, e.search, subject+" site:wikipedia.org", opts) {
		if !strings.Contains(hit.Link, "wikipedia.org") {
			continue
		}
		doc := fetchDoc(ctx, e.fetch, hit.Link)
		if doc == nil {
			continue
		}
		var people []model.Executive
		for _, row := range htmlutil.InfoboxRows(doc) {
			label := strings.ToLower(row.Label)
			if !containsAnyKeyword(label, infoboxPeopleLabels) {
				continue
			}
			for _, chunk := range splitPeopleCell(row.Value) {
				name, role := splitNameRole(chunk, row.Label)
				if normalize.HumanName(name) {
					people = append(people, model.Executive{Name: name, JobTitle: normalize.CleanTitle(role)})
				}
			}
		}
		if len(people) > 0 {
			return people
		}
	}
	return nil
}

func containsAnyKeyword(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// splitPeopleCell breaks a multi-person infobox cell on the separators
// encyclopedia markup produces.
func splitPeopleCell(cell string) []string {
	parts := strings.FieldsFunc(cell, func(r rune) bool {
		return r == '\n' || r == '•' || r == '·' || r == ';'
	})
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitNameRole separates "Jane Doe – CEO" style chunks; when no
// separator is present the row label supplies the role.
func splitNameRole(chunk, fallbackRole string) (string, string) {
	for _, sep := range []string{"–", " - ", "—"} {
		if i := strings.Index(chunk, sep); i >= 0 {
			return strings.TrimSpace(chunk[:i]), strings.TrimSpace(chunk[i+len(sep):])
		}
	}
	return strings.TrimSpace(chunk), fallbackRole
}

// fromRoleProbes searches "<company> <role>" per role and accepts the
// first name-shaped candidate from each result set.
func (e *ExecutiveExtractor) fromRoleProbes(ctx context.Context, subject string) []model.Executive {
	if subject == "" {
		return nil
	}
	opts := serper.SearchOptions{Num: 5, Locale: normalize.DefaultRegion}
	var people []model.Executive
	for _, role := range probeRoles {
		for _, hit := range organicHits(ctx, e.search, subject+" "+role, opts) {
			m := normalize.CapitalizedRunRe.FindString(hit.Title + " " + hit.Snippet)
			if m == "" {
				continue
			}
			name := normalize.ClipNameTokens(m)
			if name != "" && normalize.HumanName(name) {
				people = append(people, model.Executive{Name: name, JobTitle: role})
				break
			}
		}
	}
	return people
}

// fromKnowledgeGraph splits officer fields off the entity record.
func (e *ExecutiveExtractor) fromKnowledgeGraph(ctx context.Context, subject string) []model.Executive {
	if subject == "" {
		return nil
	}
	opts := serper.SearchOptions{Num: searchNum, Locale: normalize.DefaultRegion}
	kg := knowledgeGraph(ctx, e.search, subject, opts)
	if kg == nil {
		return nil
	}
	officerLabels := []string{"CEO", "Founder", "Chairman", "President"}

	keys := make([]string, 0, len(kg.Attributes))
	for k := range kg.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Every officer-shaped attribute is scanned, but a name contributes
	// once: "Founder" and "Founders" keys often list the same people.
	var people []model.Executive
	seen := make(map[string]struct{})
	for _, k := range keys {
		role := officerRole(k, officerLabels)
		if role == "" {
			continue
		}
		for _, chunk := range strings.FieldsFunc(kg.Attributes[k], func(r rune) bool { return r == ',' || r == ';' }) {
			name := strings.TrimSpace(chunk)
			if !normalize.HumanName(name) {
				continue
			}
			low := strings.ToLower(name)
			if _, ok := seen[low]; ok {
				continue
			}
			seen[low] = struct{}{}
			people = append(people, model.Executive{Name: name, JobTitle: role})
		}
	}
	return people
}

// officerRole maps an attribute key to the officer label it carries, or
// "" when the key is not officer-shaped.
func officerRole(key string, labels []string) string {
	low := strings.ToLower(key)
	for _, label := range labels {
		if strings.Contains(low, strings.ToLower(label)) {
			return label
		}
	}
	return ""
}

// profileLinkFor backfills a professional-network URL with one targeted
// search per person.
func (e *ExecutiveExtractor) profileLinkFor(ctx context.Context, name, company string) string {
	if name == "" {
		return ""
	}
	q := strings.TrimSpace(`site:linkedin.com/in "` + name + `" ` + company)
	opts := serper.SearchOptions{Num: 5, Locale: normalize.DefaultRegion}
	for _, hit := range organicHits(ctx, e.search, q, opts) {
		if strings.Contains(hit.Link, "linkedin.com/in") {
			return hit.Link
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
