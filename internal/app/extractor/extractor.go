package extractor

import (
	"context"
	"net/url"
	"webextractor/internal/app/classifier"
	"webextractor/internal/usecase"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Kind names one of the text signals taken from a page.
type Kind int

const (
	Emails Kind = iota
	Names
	Phones
	Comments
)

func (k Kind) String() string {
	switch k {
	case Emails:
		return "emails"
	case Names:
		return "names"
	case Phones:
		return "phones"
	case Comments:
		return "comments"
	}
	return "unknown"
}

type Option func(*extractor)

// WithMatcher replaces the matcher used for kind.
func WithMatcher(kind Kind, m Matcher) Option {
	return func(e *extractor) {
		e.matchers[kind] = m
	}
}

type extractor struct {
	matchers map[Kind]Matcher
	logger   *zap.Logger
}

func NewExtractor(logger *zap.Logger, opts ...Option) *extractor {
	e := &extractor{
		matchers: map[Kind]Matcher{
			Emails:   EmailMatcher(),
			Names:    NameMatcher(),
			Phones:   PhoneMatcher(),
			Comments: CommentMatcher(),
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract scans the page markup once per matcher, concurrently, and collects
// the page's links resolved against baseURL and limited to its host.
func (e *extractor) Extract(ctx context.Context, p usecase.Page, baseURL string) (*usecase.Findings, error) {
	markup := p.Markup(ctx)

	kinds := []Kind{Emails, Names, Phones, Comments}
	found := make([][]string, len(kinds))
	var links []string

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		m := e.matchers[kind]
		if m == nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			found[i] = m.Match(markup)
			return nil
		})
	}
	g.Go(func() error {
		links = e.resolveLinks(p.GetLinks(gctx), baseURL)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	f := usecase.NewFindings()
	f.Emails.Add(found[Emails]...)
	f.Names.Add(found[Names]...)
	f.Phones.Add(found[Phones]...)
	f.Comments.Add(found[Comments]...)
	f.Links.Add(links...)

	e.logger.Debug("page extracted",
		zap.String("url", baseURL),
		zap.Int("emails", f.Emails.Len()),
		zap.Int("names", f.Names.Len()),
		zap.Int("phones", f.Phones.Len()),
		zap.Int("comments", f.Comments.Len()),
		zap.Int("links", f.Links.Len()),
	)
	return f, nil
}

func (e *extractor) resolveLinks(hrefs []string, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		e.logger.Warn("unparsable base url", zap.String("url", baseURL), zap.Error(err))
		return nil
	}
	var out []string
	for _, href := range hrefs {
		ref, err := url.Parse(href)
		if err != nil {
			e.logger.Debug("dropping unparsable href", zap.String("href", href))
			continue
		}
		abs := base.ResolveReference(ref).String()
		if classifier.SameDomain(abs, baseURL) {
			out = append(out, abs)
		}
	}
	return out
}
