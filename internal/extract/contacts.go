package extract

import (
	"context"
	"strings"

	"github.com/sells-group/profile-cli/internal/fetcher"
	"github.com/sells-group/profile-cli/internal/htmlutil"
	"github.com/sells-group/profile-cli/internal/model"
	"github.com/sells-group/profile-cli/internal/normalize"
	"github.com/sells-group/profile-cli/pkg/serper"
)

// contactPaths are the conventional pages checked for contact signal,
// in crawl order.
var contactPaths = []string{
	"contact", "contact-us", "contacts", "about", "press",
	"newsroom", "investors", "impressum", "legal", "company",
}

// contactSiteQueries find extra on-site pages via site-scoped search.
var contactSiteQueries = []string{
	"site:%s contact",
	"site:%s about",
	"site:%s press",
	"site:%s investor relations",
	"site:%s media contacts",
	"site:%s newsroom",
}

// maxContactPages bounds the crawl inside the page strategy.
const maxContactPages = 16

// ContactExtractor resolves emails, phones, and postal addresses for a
// company through a tiered source cascade.
type ContactExtractor struct {
	search Searcher
	fetch  fetcher.Fetcher
}

// NewContactExtractor wires a contact extractor to its collaborators.
func NewContactExtractor(search Searcher, fetch fetcher.Fetcher) *ContactExtractor {
	return &ContactExtractor{search: search, fetch: fetch}
}

// contactFindings accumulates raw candidates across strategies. Final
// validation and dedup happen in model.NewContactSet.
type contactFindings struct {
	emails []string
	phones []string
	addrs  []model.Address
}

func (f *contactFindings) needEmail() bool { return len(f.emails) == 0 }
func (f *contactFindings) needPhone() bool { return len(f.phones) == 0 }
func (f *contactFindings) needAddr() bool  { return len(f.addrs) == 0 }
func (f *contactFindings) complete() bool {
	return !f.needEmail() && !f.needPhone() && !f.needAddr()
}

// Extract runs the contact cascade. Strategies execute in order and
// only while a contact kind is still missing; the result is always a
// valid ContactSet, possibly empty.
func (e *ContactExtractor) Extract(ctx context.Context, domain, website string) model.ContactSet {
	findings := &contactFindings{}
	strategies := []func(context.Context, string, string, *contactFindings){
		e.fromKnowledgeGraph,
		e.fromSnippets,
		e.fromPages,
		e.fromInfobox,
		e.fromAddressSearch,
	}
	for _, strategy := range strategies {
		if findings.complete() {
			break
		}
		strategy(ctx, domain, website, findings)
	}
	return model.NewContactSet(findings.emails, findings.phones, findings.addrs, domain)
}

// fromKnowledgeGraph takes the phone and headquarters fields off the
// entity record when they survive validation.
func (e *ContactExtractor) fromKnowledgeGraph(ctx context.Context, domain, _ string, f *contactFindings) {
	if domain == "" {
		return
	}
	opts := serper.SearchOptions{Num: searchNum, Locale: normalize.RegionForDomain(domain)}
	kg := knowledgeGraph(ctx, e.search, domain, opts)
	if kg == nil {
		return
	}
	if f.needPhone() {
		if p := normalize.Phone(kg.Attribute("phone"), normalize.PhoneRegion(domain)); p != "" {
			f.phones = append(f.phones, p)
		}
	}
	if f.needAddr() {
		for _, label := range []string{"headquarters", "address"} {
			if v := normalize.CleanAddress(kg.Attribute(label)); normalize.PlausibleAddress(v) {
				f.addrs = append(f.addrs, model.Address{Value: v, Source: "knowledge-graph"})
				break
			}
		}
	}
}

// fromSnippets regex-mines search result titles and snippets with
// per-kind query phrasings.
func (e *ContactExtractor) fromSnippets(ctx context.Context, domain, _ string, f *contactFindings) {
	if domain == "" {
		return
	}
	opts := serper.SearchOptions{Num: searchNum, Locale: normalize.RegionForDomain(domain)}
	region := normalize.PhoneRegion(domain)

	if f.needEmail() {
		for _, q := range []string{domain + " press email", domain + " media email", domain + " contact email"} {
			for _, hit := range organicHits(ctx, e.search, q, opts) {
				f.emails = append(f.emails, normalize.EmailsInText(hit.Title+" "+hit.Snippet)...)
			}
			if !f.needEmail() {
				break
			}
		}
	}

	if f.needPhone() {
		phoneQueries := []string{
			domain + " contact phone",
			domain + " customer service phone",
			domain + " support phone",
			domain + " press phone",
			domain + " investor relations phone",
			domain + " headquarters phone",
		}
		for _, q := range phoneQueries {
			for _, hit := range organicHits(ctx, e.search, q, opts) {
				f.phones = append(f.phones, normalize.PhonesInText(hit.Title+" "+hit.Snippet, region)...)
			}
			if !f.needPhone() {
				break
			}
		}
	}

	if f.needAddr() {
		for _, hit := range organicHits(ctx, e.search, domain+" headquarters address", opts) {
			if m := normalize.AddressRe.FindString(hit.Title + " " + hit.Snippet); m != "" {
				v := normalize.CleanAddress(m)
				if normalize.PlausibleAddress(v) {
					f.addrs = append(f.addrs, model.Address{Value: v, Source: "search"})
					break
				}
			}
		}
	}
}

// fromPages crawls the homepage, conventional contact paths, the
// newsroom/investor subdomains, and site-scoped search hits, stopping
// as soon as one of each contact kind has been seen.
func (e *ContactExtractor) fromPages(ctx context.Context, domain, website string, f *contactFindings) {
	pages := e.candidatePages(ctx, domain, website)
	region := normalize.PhoneRegion(domain)

	for _, pageURL := range pages {
		doc := fetchDoc(ctx, e.fetch, pageURL)
		if doc == nil {
			continue
		}

		for _, org := range htmlutil.JSONLDOrganizations(doc) {
			if org.Email != "" {
				f.emails = append(f.emails, org.Email)
			}
			if p := normalize.Phone(org.Telephone, region); p != "" {
				f.phones = append(f.phones, p)
			}
			if v := normalize.CleanAddress(org.Address); normalize.PlausibleAddress(v) {
				f.addrs = append(f.addrs, model.Address{Value: v, Source: pageURL})
			}
		}

		text := htmlutil.VisibleText(doc)
		f.emails = append(f.emails, normalize.EmailsInText(text)...)
		f.phones = append(f.phones, normalize.PhonesInText(text, region)...)
		for _, href := range htmlutil.TelHrefs(doc) {
			if p := normalize.Phone(href, region); p != "" {
				f.phones = append(f.phones, p)
			}
		}

		if f.needAddr() {
			if m := normalize.AddressRe.FindString(text); m != "" {
				v := normalize.CleanAddress(m)
				if normalize.PlausibleAddress(v) {
					f.addrs = append(f.addrs, model.Address{Value: v, Source: pageURL})
				}
			}
		}

		if f.complete() {
			break
		}
	}
}

// candidatePages builds the ordered crawl list: homepage, conventional
// paths, subdomain roots, then site-scoped search hits, deduplicated
// and capped.
func (e *ContactExtractor) candidatePages(ctx context.Context, domain, website string) []string {
	var pages []string
	if website != "" {
		pages = append(pages, website)
		for _, p := range contactPaths {
			pages = append(pages, joinPath(website, p))
		}
		pages = append(pages, subdomainRoots(website)...)
	}
	if domain != "" {
		opts := serper.SearchOptions{Num: searchNum, Locale: normalize.RegionForDomain(domain)}
		for _, q := range contactSiteQueries {
			query := strings.Replace(q, "%s", domain, 1)
			for _, hit := range organicHits(ctx, e.search, query, opts) {
				if hit.Link != "" {
					pages = append(pages, hit.Link)
				}
			}
		}
	}

	seen := make(map[string]struct{}, len(pages))
	out := pages[:0]
	for _, p := range pages {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
		if len(out) >= maxContactPages {
			break
		}
	}
	return out
}

// fromInfobox reads a headquarters row off an encyclopedia infobox. The
// page heading must contain the brand token so a parent company's
// article can't supply the address.
func (e *ContactExtractor) fromInfobox(ctx context.Context, domain, _ string, f *contactFindings) {
	if !f.needAddr() || domain == "" {
		return
	}
	brand := normalize.BrandToken(domain)
	if brand == "" {
		return
	}
	opts := serper.SearchOptions{Num: 3, Locale: normalize.DefaultRegion}
	for _, hit := range organicHits(ctx, e.search, domain+" site:wikipedia.org", opts) {
		if !strings.Contains(hit.Link, "wikipedia.org") {
			continue
		}
		doc := fetchDoc(ctx, e.fetch, hit.Link)
		if doc == nil {
			continue
		}
		if !strings.Contains(strings.ToLower(htmlutil.FirstHeading(doc)), brand) {
			continue
		}
		for _, row := range htmlutil.InfoboxRows(doc) {
			if !strings.Contains(strings.ToLower(row.Label), "headquarters") {
				continue
			}
			v := normalize.CleanAddress(strings.ReplaceAll(row.Value, "\n", ", "))
			if normalize.PlausibleAddress(v) {
				f.addrs = append(f.addrs, model.Address{Value: v, Source: hit.Link})
				return
			}
		}
	}
}

// fromAddressSearch is the last-resort address pass over generic search
// snippets.
func (e *ContactExtractor) fromAddressSearch(ctx context.Context, domain, _ string, f *contactFindings) {
	if !f.needAddr() || domain == "" {
		return
	}
	opts := serper.SearchOptions{Num: 6, Locale: normalize.RegionForDomain(domain)}
	for _, hit := range organicHits(ctx, e.search, domain+" office address", opts) {
		if m := normalize.AddressRe.FindString(hit.Title + " " + hit.Snippet); m != "" {
			v := normalize.CleanAddress(m)
			if normalize.PlausibleAddress(v) {
				f.addrs = append(f.addrs, model.Address{Value: v, Source: "search"})
				return
			}
		}
	}
}
