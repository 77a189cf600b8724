package crawler

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
	"webextractor/internal/app/classifier"
	"webextractor/internal/usecase"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrPageLimit is returned with the partial result when MaxPages is reached.
var ErrPageLimit = errors.New("page limit reached")

// Outcome is the terminal state of a dequeued URL.
type Outcome int

const (
	Analyzed Outcome = iota
	Skipped
	Exhausted
)

func (o Outcome) String() string {
	switch o {
	case Analyzed:
		return "analyzed"
	case Skipped:
		return "skipped"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

type Options struct {
	MaxDepth   int32 // negative disables the depth policy
	MaxRetries int
	RetryDelay time.Duration
	MaxPages   int // 0 means no cap
}

func DefaultOptions() Options {
	return Options{
		MaxDepth:   -1,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	}
}

type crawler struct {
	r          usecase.Requester
	ex         usecase.Extractor
	logger     *zap.Logger
	MaxDepth   int32
	maxRetries int
	retryDelay time.Duration
	maxPages   int

	mu    sync.Mutex
	stats usecase.CrawlStats
}

func NewCrawler(r usecase.Requester, ex usecase.Extractor, logger *zap.Logger, opts Options) *crawler {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	return &crawler{
		r:          r,
		ex:         ex,
		logger:     logger,
		MaxDepth:   opts.MaxDepth,
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
		maxPages:   opts.MaxPages,
	}
}

// Crawl walks the seed's site breadth first and returns the union of every
// analyzed page's findings. The result is returned even when err is non-nil:
// on cancellation or page limit it holds what was gathered so far.
func (c *crawler) Crawl(ctx context.Context, seed string) (*usecase.Findings, error) {
	agg := usecase.NewFindings()
	visited := newVisitedSet()
	frontier := []string{seed}
	fetched := 0

	c.mu.Lock()
	c.stats = usecase.CrawlStats{MaxFrontier: 1}
	c.mu.Unlock()

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			c.logger.Info("crawl canceled", zap.Int("pending", len(frontier)), zap.Error(err))
			return agg, err
		}

		url := frontier[0]
		frontier = frontier[1:]

		if visited.Has(url) {
			c.record(func(s *usecase.CrawlStats) { s.Discarded++ })
			continue
		}

		depth := classifier.Depth(url)
		if !c.allowed(depth) {
			c.logger.Info("skipping", zap.String("url", url), zap.Int("level", depth))
			c.conclude(visited, url, Skipped)
			continue
		}

		if c.maxPages > 0 && fetched >= c.maxPages {
			c.logger.Warn("page limit reached", zap.Int("max_pages", c.maxPages), zap.Int("pending", len(frontier)+1))
			return agg, ErrPageLimit
		}
		fetched++

		c.logger.Info("analyzing", zap.String("url", url), zap.String("level", c.levelLabel(depth)))
		found, err := c.fetch(ctx, url)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return agg, ctxErr
			}
			c.logger.Warn("unable to access page, treated as read",
				zap.String("url", url), zap.Int("attempts", c.maxRetries), zap.Error(err))
			c.conclude(visited, url, Exhausted)
			continue
		}

		c.conclude(visited, url, Analyzed)
		agg.Merge(found)

		for _, link := range found.Links.Sorted() {
			if !visited.Has(link) {
				frontier = append(frontier, link)
			}
		}
		c.record(func(s *usecase.CrawlStats) {
			if len(frontier) > s.MaxFrontier {
				s.MaxFrontier = len(frontier)
			}
		})
	}

	c.logger.Info("crawl finished", zap.Int("visited", visited.Len()))
	return agg, nil
}

// fetch requests url up to maxRetries times, waiting retryDelay between
// attempts, and extracts the first page that arrives.
func (c *crawler) fetch(ctx context.Context, url string) (*usecase.Findings, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		found, err := c.attempt(ctx, url)
		if err == nil {
			return found, nil
		}
		lastErr = err
		c.logger.Warn("error accessing page",
			zap.String("url", url), zap.Int("attempt", attempt), zap.Error(err))

		if attempt == c.maxRetries {
			break
		}
		if err := c.wait(ctx); err != nil {
			return nil, err
		}
	}
	return nil, eris.Wrapf(lastErr, "all %d attempts failed", c.maxRetries)
}

func (c *crawler) attempt(ctx context.Context, url string) (*usecase.Findings, error) {
	page, err := c.r.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return c.ex.Extract(ctx, page, url)
}

func (c *crawler) wait(ctx context.Context) error {
	if c.retryDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(c.retryDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *crawler) allowed(depth int) bool {
	limit := atomic.LoadInt32(&c.MaxDepth)
	return limit < 0 || int32(depth) <= limit
}

func (c *crawler) levelLabel(depth int) string {
	if atomic.LoadInt32(&c.MaxDepth) < 0 {
		return "All"
	}
	return "L-" + strconv.Itoa(depth)
}

// IncMaxDepth raises the depth limit. An unlimited crawl stays unlimited.
func (c *crawler) IncMaxDepth(delta int32) {
	for {
		cur := atomic.LoadInt32(&c.MaxDepth)
		if cur < 0 {
			c.logger.Debug("depth is unlimited, increment ignored")
			return
		}
		if atomic.CompareAndSwapInt32(&c.MaxDepth, cur, cur+delta) {
			c.logger.Debug("new maxDepth", zap.Int32("max_depth", cur+delta))
			return
		}
	}
}

func (c *crawler) Stats() usecase.CrawlStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// conclude marks url visited and counts its outcome.
func (c *crawler) conclude(visited *visitedSet, url string, o Outcome) {
	if !visited.Add(url) {
		return
	}
	c.record(func(s *usecase.CrawlStats) {
		switch o {
		case Analyzed:
			s.Analyzed++
		case Skipped:
			s.Skipped++
		case Exhausted:
			s.Exhausted++
		}
	})
}

func (c *crawler) record(fn func(*usecase.CrawlStats)) {
	c.mu.Lock()
	fn(&c.stats)
	c.mu.Unlock()
}
