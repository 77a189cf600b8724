package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailMatcher(t *testing.T) {
	got := EmailMatcher().Match(`<a href="mailto:info@site.it">x</a> write john.doe+tag@mail.example.org`)
	assert.Equal(t, []string{"info@site.it", "john.doe+tag@mail.example.org"}, got)
	assert.Empty(t, EmailMatcher().Match("no at sign here, nor @here"))
}

func TestNameMatcher(t *testing.T) {
	got := NameMatcher().Match("Hello Mario Rossi and Anna Bianchi, HTML Code is not a name")
	assert.Equal(t, []string{"Hello Mario", "Anna Bianchi"}, got)
}

func TestPhoneMatcherIsLineAnchored(t *testing.T) {
	text := "<p>\n  +39 333 1234567  \n</p>\n<p>call 06-1234-5678 now</p>\n06-1234-5678\n"
	got := PhoneMatcher().Match(text)
	assert.Equal(t, []string{"+39 333 1234567", "06-1234-5678"}, got)
}

func TestCommentMatcherNonGreedy(t *testing.T) {
	got := CommentMatcher().Match("<!--a--> text <!-- b\nc --><!---->")
	assert.Equal(t, []string{"a", " b\nc ", ""}, got)
}
