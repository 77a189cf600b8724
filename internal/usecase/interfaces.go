package usecase

import "context"

type Page interface {
	Markup(context.Context) string
	GetLinks(context.Context) []string
}

type Requester interface {
	Get(ctx context.Context, url string) (Page, error)
}

type Extractor interface {
	Extract(ctx context.Context, p Page, baseURL string) (*Findings, error)
}

type Crawler interface {
	Crawl(ctx context.Context, seed string) (*Findings, error)
	IncMaxDepth(int32)
	Stats() CrawlStats
}

// CrawlStats counts URLs by the way their processing concluded.
type CrawlStats struct {
	Analyzed    int
	Skipped     int
	Exhausted   int
	Discarded   int // dequeued again after already being visited
	MaxFrontier int
}
