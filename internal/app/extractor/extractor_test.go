package extractor

import (
	"context"
	"os"
	"strings"
	"testing"
	"webextractor/internal/app/page"
	"webextractor/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPage(t *testing.T, html string) usecase.Page {
	t.Helper()
	p, err := page.NewPage(strings.NewReader(html), zap.NewNop())
	require.NoError(t, err)
	return p
}

func TestExtractMinimalPage(t *testing.T) {
	html := `<html><body><!--secret--><p>a@b.com</p><a href="/x">x</a></body></html>`
	e := NewExtractor(zap.NewExample())

	f, err := e.Extract(context.Background(), newPage(t, html), "https://site.test/")
	require.NoError(t, err)

	assert.Equal(t, []string{"secret"}, f.Comments.Sorted())
	assert.Equal(t, []string{"a@b.com"}, f.Emails.Sorted())
	assert.Equal(t, []string{"https://site.test/x"}, f.Links.Sorted())
}

func TestExtractFixture(t *testing.T) {
	b, err := os.ReadFile("../../../tests/test.html")
	require.NoError(t, err)
	e := NewExtractor(zap.NewNop())

	f, err := e.Extract(context.Background(), newPage(t, string(b)), "https://example.com/contact/index.html")
	require.NoError(t, err)

	assert.Equal(t, []string{"mario.rossi@example.com", "sales@example.com"}, f.Emails.Sorted())
	assert.Equal(t, []string{"Contact Office", "Mario Rossi"}, f.Names.Sorted())
	assert.Equal(t, []string{"+39 06 1234567"}, f.Phones.Sorted())
	assert.Equal(t, []string{" build 42: remove before release ", "secret"}, f.Comments.Sorted())
	assert.Equal(t, []string{
		"https://example.com/about",
		"https://example.com/contact/team/people.html",
		"https://example.com/docs/guide/",
	}, f.Links.Sorted())
}

func TestExtractDropsForeignAndUnparsableLinks(t *testing.T) {
	html := `<a href="https://other.test/p">o</a><a href="http://site.test:81/p">port</a>` +
		`<a href="%zz">bad</a><a href="mailto:x@y.com">m</a><a href="?q=1">q</a>`
	e := NewExtractor(zap.NewNop())

	f, err := e.Extract(context.Background(), newPage(t, html), "https://site.test/a/b")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://site.test/a/b?q=1"}, f.Links.Sorted())
}

func TestWithMatcherReplacesStrategy(t *testing.T) {
	upper := MatcherFunc(func(text string) []string {
		if strings.Contains(text, "ACME") {
			return []string{"ACME"}
		}
		return nil
	})
	e := NewExtractor(zap.NewNop(), WithMatcher(Names, upper))

	f, err := e.Extract(context.Background(), newPage(t, `<p>John Smith works at ACME</p>`), "https://site.test/")
	require.NoError(t, err)
	assert.Equal(t, []string{"ACME"}, f.Names.Sorted())
}

func TestExtractCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := NewExtractor(zap.NewNop())

	_, err := e.Extract(ctx, newPage(t, `<p>a@b.com</p>`), "https://site.test/")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "emails", Emails.String())
	assert.Equal(t, "comments", Comments.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestExtractPhonesInsideElements(t *testing.T) {
	html := `<html><body><p>+39 06 1234567</p><ul><li>06-1234-5678</li><li>call 333 now</li></ul></body></html>`
	e := NewExtractor(zap.NewNop())

	f, err := e.Extract(context.Background(), newPage(t, html), "https://site.test/")
	require.NoError(t, err)
	assert.Equal(t, []string{"+39 06 1234567", "06-1234-5678"}, f.Phones.Sorted())
}
