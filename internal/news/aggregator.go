// Package news aggregates recent ticker news from the Google News RSS search
// feed, filtered to a trusted-source allowlist.
package news

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/azizdeniz890/multi-agent-finance/internal/logger"
	"github.com/azizdeniz890/multi-agent-finance/internal/store"
	"github.com/azizdeniz890/multi-agent-finance/internal/trace"
	"github.com/azizdeniz890/multi-agent-finance/internal/types"
)

const googleNewsFeed = "https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en"

var nonWord = regexp.MustCompile(`[^\w\s]`)

// Aggregator fetches and filters the news feed. Fetch failures are recovered
// locally: the caller always gets a (possibly empty) list.
type Aggregator struct {
	trusted []string
	timeout time.Duration
	feedURL string // format string taking the sanitized query
}

func NewAggregator(cfg *store.Config) *Aggregator {
	return &Aggregator{
		trusted: cfg.News.TrustedSources,
		timeout: time.Duration(cfg.News.TimeoutSeconds) * time.Second,
		feedURL: googleNewsFeed,
	}
}

// NewAggregatorWithFeed is used by tests to point at a stub feed.
func NewAggregatorWithFeed(cfg *store.Config, feedURL string) *Aggregator {
	a := NewAggregator(cfg)
	a.feedURL = feedURL
	return a
}

// RecentNews returns up to max trusted news items for symbol, preserving
// feed order. Untrusted sources are skipped, never backfilled.
func (a *Aggregator) RecentNews(ctx context.Context, symbol string, max int) ([]types.NewsItem, error) {
	ctx, span := trace.StartSpan(ctx, "news-fetch")
	defer span.End()

	op := logger.StartOperation(ctx, "news-aggregate", "symbol", symbol, "max", max)
	ctx = op.GetContext()

	entries, err := a.fetchFeed(ctx, SanitizeQuery(symbol))
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch news feed", err, "symbol", symbol)
		op.EndWithError(err)
		return []types.NewsItem{}, nil
	}

	items := FilterTrusted(entries, a.trusted, max)
	op.End("fetched", len(entries), "kept", len(items))
	return items, nil
}

// fetchFeed pulls the raw RSS items for a sanitized query, in feed order.
func (a *Aggregator) fetchFeed(ctx context.Context, query string) ([]types.NewsItem, error) {
	feedURL := fmt.Sprintf(a.feedURL, query)

	host := ""
	if u, err := url.Parse(feedURL); err == nil {
		host = u.Hostname()
	}

	c := colly.NewCollector(
		colly.AllowedDomains(host),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(a.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	})

	entries := []types.NewsItem{}
	c.OnXML("//item", func(e *colly.XMLElement) {
		entries = append(entries, types.NewsItem{
			Title:   strings.TrimSpace(e.ChildText("title")),
			Summary: StripHTML(e.ChildText("description")),
			Link:    strings.TrimSpace(e.ChildText("link")),
			Source:  strings.TrimSpace(e.ChildText("source")),
		})
	})

	var fetchErr error
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(feedURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", feedURL, err)
	}
	c.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	return entries, nil
}

// SanitizeQuery turns a ticker into a search-safe token: non-word characters
// stripped, spaces joined with '+'.
func SanitizeQuery(symbol string) string {
	clean := nonWord.ReplaceAllString(symbol, "")
	return strings.ReplaceAll(strings.TrimSpace(clean), " ", "+")
}

// FilterTrusted keeps entries whose source case-insensitively contains one of
// the trusted outlet names, stopping once max items are collected. Feed order
// is preserved; untrusted entries are never backfilled.
func FilterTrusted(entries []types.NewsItem, trusted []string, max int) []types.NewsItem {
	items := []types.NewsItem{}
	for _, e := range entries {
		if len(items) >= max {
			break
		}
		if trustedSource(e.Source, trusted) {
			items = append(items, e)
		}
	}
	return items
}

func trustedSource(source string, trusted []string) bool {
	s := strings.ToLower(source)
	for _, t := range trusted {
		if strings.Contains(s, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

// StripHTML reduces an RSS description fragment to its text content. Google
// News descriptions arrive as HTML anchors.
func StripHTML(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(doc.Text())
}
