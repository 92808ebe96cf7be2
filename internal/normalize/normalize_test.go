package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomain(t *testing.T) {
	assert.Equal(t, "example.com", Domain("https://www.Example.com/about?x=1"))
	assert.Equal(t, "example.co.uk", Domain("http://example.co.uk/"))
	assert.Equal(t, "example.com", Domain("example.com:8080"))
	assert.Equal(t, "", Domain("  "))
}

func TestBrandToken(t *testing.T) {
	assert.Equal(t, "acme", BrandToken("acme.co.uk"))
	assert.Equal(t, "acme", BrandToken("https://www.acme.com"))
	assert.Equal(t, "", BrandToken(""))
}

func TestRegionForDomain(t *testing.T) {
	assert.Equal(t, "de", RegionForDomain("acme.de"))
	assert.Equal(t, "gb", RegionForDomain("acme.co.uk"))
	assert.Equal(t, "us", RegionForDomain("acme.com"))
	assert.Equal(t, "us", RegionForDomain(""))
}

func TestCanonicalURL(t *testing.T) {
	assert.Equal(t, "https://x.com/acme", CanonicalURL("https://X.com/acme/?ref=nav#top"))
	assert.Equal(t, "https://x.com/acme", CanonicalURL("https://x.com/acme/"))
	// Unparsable input is trimmed, not dropped.
	assert.Equal(t, "not a url", CanonicalURL("not a url/"))
}

func TestHostMatchesDomain(t *testing.T) {
	assert.True(t, HostMatchesDomain("https://www.acme.com/home", "acme.com"))
	assert.True(t, HostMatchesDomain("https://newsroom.acme.com", "acme.com"))
	assert.False(t, HostMatchesDomain("https://acme.evil.com", "acme.com"))
	assert.False(t, HostMatchesDomain("https://acme.com", ""))
}

func TestPhone(t *testing.T) {
	assert.Equal(t, "+14155550132", Phone("+1 (415) 555-0132", ""))
	assert.Equal(t, "", Phone("call us!", "US"))
	assert.Equal(t, "", Phone("12345", "US"))
	assert.Equal(t, "", Phone("", "US"))
}

func TestPhonesInText(t *testing.T) {
	text := "Reach us at +1 (415) 555-0132 or +1 415 555 0132. Fax: nonsense."
	got := PhonesInText(text, "US")
	assert.Equal(t, []string{"+14155550132"}, got, "duplicates collapse to one E.164 number")
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "a@example.com", Email("A@Example.com"))
	assert.Equal(t, "", Email("not-an-email"))
	assert.Equal(t, "", Email("two@at@example.com"))
}

func TestEmailsInText(t *testing.T) {
	got := EmailsInText("Contact A@Example.com or a@example.com or press@acme.io.")
	assert.Equal(t, []string{"a@example.com", "press@acme.io"}, got)
}

func TestBrandMatchesEmail(t *testing.T) {
	assert.True(t, BrandMatchesEmail("acme.com", "info@acme.com"))
	assert.True(t, BrandMatchesEmail("acme.com", "press@mail.acme.com"))
	assert.True(t, BrandMatchesEmail("acme.com", "hello@acmecorp.com"))
	assert.True(t, BrandMatchesEmail("acme.com", "hello@theacme.io"))
	assert.False(t, BrandMatchesEmail("acme.com", "sales@widgets.com"))
	assert.False(t, BrandMatchesEmail("", "info@acme.com"))
}

func TestPlausibleAddress(t *testing.T) {
	assert.True(t, PlausibleAddress("123 Main St, Springfield, IL 62704"))
	assert.True(t, PlausibleAddress("1 Infinite Loop, Cupertino, CA 95014"))

	assert.False(t, PlausibleAddress("Cookie Policy, Terms"), "noise tokens")
	assert.False(t, PlausibleAddress("Main Street, Springfield, Illinois"), "no digit")
	assert.False(t, PlausibleAddress("123 Main St Springfield"), "no comma segments")
	assert.False(t, PlausibleAddress("12, Ok"), "too short")
	assert.False(t, PlausibleAddress("123 Main St, 62704"), "trailing segment not region-like")
}

func TestAddressRe(t *testing.T) {
	assert.Equal(t, "55 Water Street, New York, NY 10041",
		AddressRe.FindString("Visit us at 55 Water Street, New York, NY 10041"),
		"postcode belongs to the captured span")
	assert.Equal(t, "123 Main St, Springfield, IL 62704",
		AddressRe.FindString("HQ: 123 Main St, Springfield, IL 62704\nOpen weekdays"))
	assert.Empty(t, AddressRe.FindString("Main Street, Springfield"), "no house number")
}

func TestPlausibleAddressNonLatin(t *testing.T) {
	assert.False(t, PlausibleAddress("東京都港区六本木6-10-1, 六本木ヒルズ森タワー, 東京"))
}

func TestCleanAddress(t *testing.T) {
	assert.Equal(t, "123 Main St, Springfield", CleanAddress("  123  Main St,   Springfield, "))
}

func TestHumanName(t *testing.T) {
	assert.True(t, HumanName("Jane Doe"))
	assert.True(t, HumanName("Mary Jane van der Berg"))
	assert.False(t, HumanName("JANE DOE"), "all caps")
	assert.False(t, HumanName("Customer Care Center"), "UI noise")
	assert.False(t, HumanName("jane doe"), "no leading capital")
	assert.False(t, HumanName("Jo"), "too short")
	assert.False(t, HumanName("One Two Three Four Five Six"), "too many tokens")
}

func TestClipNameTokens(t *testing.T) {
	assert.Equal(t, "Jane Doe", ClipNameTokens("Jane Doe Succeeds John Smith"))
	assert.Equal(t, "", ClipNameTokens("Jane"), "single token rejected")
	assert.Equal(t, "John Smith", ClipNameTokens("John Smith Appointed Chief Executive"))
}

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "Chief Executive Officer", CleanTitle("  Chief   Executive Officer :"))
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	assert.LessOrEqual(t, len(CleanTitle(string(long))), 120)
}
