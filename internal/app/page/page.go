package page

import (
	"context"
	"io"
	"webextractor/internal/usecase"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

type page struct {
	doc    *goquery.Document
	markup string
	logger *zap.Logger
}

// NewPage parses raw markup. The underlying parser is tolerant, so malformed
// HTML produces a best-effort document rather than an error.
func NewPage(raw io.Reader, logger *zap.Logger) (usecase.Page, error) {
	doc, err := goquery.NewDocumentFromReader(raw)
	if err != nil {
		logger.Error("new page error", zap.Error(err))
		return nil, eris.Wrap(err, "parse document")
	}
	var markup string
	for _, n := range doc.Nodes {
		markup += prettify(n)
	}
	logger.Debug("new page initialize", zap.Int("markup_bytes", len(markup)))
	return &page{doc: doc, markup: markup, logger: logger}, nil
}

// Markup returns the document serialized one tag, comment or text line per
// line, comments included.
func (p *page) Markup(ctx context.Context) string {
	select {
	case <-ctx.Done():
		p.logger.Debug("context done in markup")
		return ""
	default:
		return p.markup
	}
}

func (p *page) GetLinks(ctx context.Context) []string {
	select {
	case <-ctx.Done():
		p.logger.Debug("context done in get links")
		return nil
	default:
		var urls []string
		p.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			if url, ok := s.Attr("href"); ok {
				urls = append(urls, url)
			}
		})
		p.logger.Debug("get links", zap.Int("count", len(urls)))
		return urls
	}
}
