package interfaces

import (
	"context"

	"github.com/azizdeniz890/multi-agent-finance/internal/types"
)

// NewsFetcher retrieves recent trusted-source news for a ticker, in feed
// order, capped at max items.
type NewsFetcher interface {
	RecentNews(ctx context.Context, symbol string, max int) ([]types.NewsItem, error)
}
