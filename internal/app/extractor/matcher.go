package extractor

import (
	"bufio"
	"regexp"
	"strings"
)

// Matcher pulls candidate values out of serialized page markup.
type Matcher interface {
	Match(text string) []string
}

// MatcherFunc adapts an ordinary function to Matcher.
type MatcherFunc func(text string) []string

func (f MatcherFunc) Match(text string) []string {
	return f(text)
}

var (
	emailRe   = regexp.MustCompile(`(?:mailto:)?([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
	nameRe    = regexp.MustCompile(`\b[A-Z][a-z]+\s[A-Z][a-z]+\b`)
	phoneRe   = regexp.MustCompile(`^(\+?[1-9]\d{0,2}[ -]?)?(\(?\d{1,4}?\)?[ -]?\d{1,4}[ -]?\d{1,4}[ -]?\d{1,9})$`)
	commentRe = regexp.MustCompile(`(?s)<!--(.*?)-->`)
)

// RegexpMatcher returns every match of re. When re has capture groups only the
// given group is kept.
type RegexpMatcher struct {
	re    *regexp.Regexp
	group int
}

func NewRegexpMatcher(re *regexp.Regexp, group int) *RegexpMatcher {
	return &RegexpMatcher{re: re, group: group}
}

func (m *RegexpMatcher) Match(text string) []string {
	var out []string
	for _, sm := range m.re.FindAllStringSubmatch(text, -1) {
		if m.group < len(sm) {
			out = append(out, sm[m.group])
		}
	}
	return out
}

// LineMatcher applies an anchored expression to each line of the text after
// trimming surrounding whitespace.
type LineMatcher struct {
	re *regexp.Regexp
}

func NewLineMatcher(re *regexp.Regexp) *LineMatcher {
	return &LineMatcher{re: re}
}

func (m *LineMatcher) Match(text string) []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" && m.re.MatchString(line) {
			out = append(out, line)
		}
	}
	return out
}

// EmailMatcher matches mailbox tokens; a leading "mailto:" is not captured.
func EmailMatcher() Matcher { return NewRegexpMatcher(emailRe, 1) }

// NameMatcher matches two consecutive title-case words.
func NameMatcher() Matcher { return NewRegexpMatcher(nameRe, 0) }

// PhoneMatcher matches lines that consist of a phone-like digit grouping.
func PhoneMatcher() Matcher { return NewLineMatcher(phoneRe) }

// CommentMatcher returns the inner text of every HTML comment.
func CommentMatcher() Matcher { return NewRegexpMatcher(commentRe, 1) }
