package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/profile-cli/internal/model"
	"github.com/sells-group/profile-cli/pkg/serper"
)

const rssBody = `<?xml version="1.0"?>
<rss version="2.0"><channel>
	<item><title>Acme launches widgets</title><link>https://acme.com/news/widgets</link><pubDate>Mon, 03 Aug 2026 00:00:00 GMT</pubDate></item>
	<item><title>Acme partners with Example</title><link>https://acme.com/news/partnership</link></item>
</channel></rss>`

const atomBody = `<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<entry><title>Q2 results</title><link rel="alternate" href="https://acme.com/q2"/><updated>2026-07-30</updated></entry>
</feed>`

func TestPostsExtractor_SiteFeed(t *testing.T) {
	fetch := &stubFetch{pages: map[string]string{
		"https://acme.com/newsroom":      `<html><body>Newsroom</body></html>`,
		"https://acme.com/newsroom/feed": rssBody,
	}}

	posts := NewPostsExtractor(&stubSearch{}, fetch).Extract(context.Background(), "Acme", "acme.com", "https://acme.com")

	require.Len(t, posts, 2)
	assert.Equal(t, "blog", posts[0].Source)
	assert.Equal(t, "Acme launches widgets", posts[0].Title)
	assert.Equal(t, "https://acme.com/news/widgets", posts[0].URL)
	assert.Equal(t, "Mon, 03 Aug 2026 00:00:00 GMT", posts[0].Published)
}

func TestPostsExtractor_FeedLinkHint(t *testing.T) {
	fetch := &stubFetch{pages: map[string]string{
		"https://acme.com/blog": `<html><head>
			<link rel="alternate" type="application/rss+xml" href="/updates.xml">
		</head><body>Blog</body></html>`,
		"https://acme.com/updates.xml": atomBody,
	}}

	posts := NewPostsExtractor(&stubSearch{}, fetch).Extract(context.Background(), "Acme", "acme.com", "https://acme.com")

	require.Len(t, posts, 1)
	assert.Equal(t, "Q2 results", posts[0].Title)
	assert.Equal(t, "https://acme.com/q2", posts[0].URL)
	assert.Equal(t, "2026-07-30", posts[0].Published)
}

func TestPostsExtractor_NewsFallback(t *testing.T) {
	search := &stubSearch{news: []serper.NewsItem{
		{Title: "Acme raises Series C", Link: "https://news.example/acme", Date: "2 days ago"},
	}}

	posts := NewPostsExtractor(search, &stubFetch{}).Extract(context.Background(), "Acme", "", "")

	require.Len(t, posts, 1)
	assert.Equal(t, "news", posts[0].Source)
	assert.Equal(t, "Acme raises Series C", posts[0].Title)
	assert.Equal(t, "2 days ago", posts[0].Published)
}

func TestPostsExtractor_WebSearchLastTier(t *testing.T) {
	search := &stubSearch{organic: map[string][]serper.OrganicResult{
		"Acme news": {{Title: "Acme in the press", Link: "https://example.com/acme"}},
	}}

	posts := NewPostsExtractor(search, &stubFetch{}).Extract(context.Background(), "Acme", "", "")

	require.Len(t, posts, 1)
	assert.Equal(t, "search", posts[0].Source)
	assert.Equal(t, "Acme in the press", posts[0].Title)
}

func TestPostsExtractor_PlaceholderWhenEmpty(t *testing.T) {
	posts := NewPostsExtractor(&stubSearch{}, &stubFetch{}).Extract(context.Background(), "Acme", "acme.com", "https://acme.com")

	require.Len(t, posts, 1)
	assert.Equal(t, model.PlaceholderTitle, posts[0].Title)
	assert.True(t, posts[0].Placeholder)
}

func TestParseFeed(t *testing.T) {
	t.Run("rss", func(t *testing.T) {
		entries, err := parseFeed([]byte(rssBody))
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "Acme launches widgets", entries[0].Title)
	})

	t.Run("atom", func(t *testing.T) {
		entries, err := parseFeed([]byte(atomBody))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "https://acme.com/q2", entries[0].Link)
		assert.Equal(t, "2026-07-30", entries[0].Published)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := parseFeed([]byte(`<html><body>not a feed</body></html>`))
		assert.Error(t, err)
	})
}
