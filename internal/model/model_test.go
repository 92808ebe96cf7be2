package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContactSet_EmailDedupAndCase(t *testing.T) {
	cs := NewContactSet(
		[]string{"A@Example.com", "a@example.com"},
		nil, nil,
		"example.com",
	)
	assert.Equal(t, []string{"a@example.com"}, cs.Emails)
}

func TestNewContactSet_BrandFilter(t *testing.T) {
	cs := NewContactSet(
		[]string{"press@acme.com", "spam@widgets.com"},
		nil, nil,
		"acme.com",
	)
	assert.Equal(t, []string{"press@acme.com"}, cs.Emails)
}

func TestNewContactSet_SyntheticEmail(t *testing.T) {
	cs := NewContactSet(nil, nil, nil, "acme.com")
	assert.Equal(t, []string{"info@acme.com"}, cs.Emails)

	// No domain, no synthesis.
	cs = NewContactSet(nil, nil, nil, "")
	assert.Empty(t, cs.Emails)
}

func TestNewContactSet_Addresses(t *testing.T) {
	cs := NewContactSet(nil, nil, []Address{
		{Value: "123 Main St, Springfield, IL 62704", Source: "page"},
		{Value: " 123  Main St, Springfield, IL 62704", Source: "search"}, // dup after cleanup
		{Value: "Cookie Policy, Terms", Source: "page"},
		{Value: "200 Oak Ave, Portland, OR 97205", Source: "page"},
		{Value: "1 Infinite Loop, Cupertino, CA 95014", Source: "kg"},
		{Value: "500 Pine St, Seattle, WA 98101", Source: "page"},
	}, "")
	assert.Len(t, cs.Addresses, MaxAddresses)
	assert.Equal(t, "123 Main St, Springfield, IL 62704", cs.Addresses[0].Value)
	assert.Equal(t, "page", cs.Addresses[0].Source)
}

func TestContactSet_Complete(t *testing.T) {
	assert.False(t, ContactSet{}.Complete())
	full := ContactSet{
		Emails:    []string{"a@b.com"},
		Phones:    []string{"+14155550132"},
		Addresses: []Address{{Value: "x"}},
	}
	assert.True(t, full.Complete())
}

func TestRankTitle(t *testing.T) {
	assert.Equal(t, 0, RankTitle("CEO & Founder"))
	assert.Equal(t, 1, RankTitle("Chief People Officer"))
	assert.Equal(t, 2, RankTitle("President"))
	assert.Equal(t, 3, RankTitle("CFO"))
	assert.Equal(t, 4, RankTitle("Board Member"))
	assert.Equal(t, 5, RankTitle("SVP Engineering"))
	assert.Equal(t, 6, RankTitle("Founder"))
	assert.Equal(t, 7, RankTitle("Head of Design"))
}

func TestSortExecutives_Ordering(t *testing.T) {
	in := []Executive{
		{Name: "Carol", JobTitle: "CFO"},
		{Name: "Alice", JobTitle: "CEO"},
		{Name: "Bob", JobTitle: "Board Member"},
	}
	out := SortExecutives(in)
	assert.Equal(t, []string{"Alice", "Carol", "Bob"}, []string{out[0].Name, out[1].Name, out[2].Name})
}

func TestSortExecutives_DedupAndCap(t *testing.T) {
	var in []Executive
	in = append(in,
		Executive{Name: "Jane Doe", JobTitle: "CEO"},
		Executive{Name: "jane doe", JobTitle: "ceo"},
		Executive{Name: "", JobTitle: "CTO"},
	)
	for i := 0; i < 15; i++ {
		in = append(in, Executive{Name: "Person " + string(rune('A'+i)), JobTitle: "Director"})
	}
	out := SortExecutives(in)
	assert.Len(t, out, MaxExecutives)
	assert.Equal(t, "Jane Doe", out[0].Name)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i].Rank, out[i-1].Rank)
	}
}

func TestNewSocialLinks(t *testing.T) {
	s := NewSocialLinks("https://acme.com", map[string]string{
		"twitter": "https://x.com/acme",
		"myspace": "https://myspace.com/acme",
		"youtube": "",
	})
	assert.Equal(t, map[string]string{"twitter": "https://x.com/acme"}, s.Links)
	assert.Equal(t, "https://acme.com", s.Website)
}

func TestSanitizePosts(t *testing.T) {
	in := []Post{
		{Title: "Launch", URL: "https://acme.com/a"},
		{Title: "Launch again", URL: "https://acme.com/a"}, // dup url
		{Title: "", URL: "https://acme.com/b"},
		{Title: "No link"},
		{Title: "B", URL: "https://acme.com/b"},
		{Title: "C", URL: "https://acme.com/c"},
		{Title: "D", URL: "https://acme.com/d"},
		{Title: "E", URL: "https://acme.com/e"},
		{Title: "F", URL: "https://acme.com/f"},
	}
	out := SanitizePosts(in)
	assert.Len(t, out, MaxPosts)
	assert.Equal(t, "Launch", out[0].Title)
}

func TestSanitizePosts_Placeholder(t *testing.T) {
	out := SanitizePosts(nil)
	assert.Len(t, out, 1)
	assert.Equal(t, PlaceholderTitle, out[0].Title)
	assert.True(t, out[0].Placeholder)
}
