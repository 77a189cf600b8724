package usecase

import "sort"

// Set is a set of strings keyed by exact value.
type Set map[string]struct{}

func NewSet(values ...string) Set {
	s := make(Set, len(values))
	s.Add(values...)
	return s
}

func (s Set) Add(values ...string) {
	for _, v := range values {
		s[v] = struct{}{}
	}
}

func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s Set) Merge(other Set) {
	for v := range other {
		s[v] = struct{}{}
	}
}

func (s Set) Len() int {
	return len(s)
}

// Sorted returns the members in ascending byte order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Findings holds the five signal sets extracted from one page, or accumulated
// over a whole crawl.
type Findings struct {
	Emails   Set
	Names    Set
	Phones   Set
	Comments Set
	Links    Set
}

func NewFindings() *Findings {
	return &Findings{
		Emails:   NewSet(),
		Names:    NewSet(),
		Phones:   NewSet(),
		Comments: NewSet(),
		Links:    NewSet(),
	}
}

// Merge unions every set of other into f. A nil other is ignored.
func (f *Findings) Merge(other *Findings) {
	if other == nil {
		return
	}
	f.Emails.Merge(other.Emails)
	f.Names.Merge(other.Names)
	f.Phones.Merge(other.Phones)
	f.Comments.Merge(other.Comments)
	f.Links.Merge(other.Links)
}

func (f *Findings) Empty() bool {
	return f.Emails.Len()+f.Names.Len()+f.Phones.Len()+f.Comments.Len()+f.Links.Len() == 0
}
