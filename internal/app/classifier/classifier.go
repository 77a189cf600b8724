package classifier

import (
	"net/url"
	"strings"
)

// Depth returns the number of directory boundaries in the URL path. The site
// root and pages directly below it share depth 0: "/" and "/a" are 0, "/a/b" is 1.
// A single trailing slash is ignored. Unparsable URLs are depth 0.
func Depth(rawURL string) int {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0
	}
	path := strings.TrimSuffix(u.Path, "/")
	if path == "" {
		return 0
	}
	return len(strings.Split(path, "/")) - 1
}

// SameDomain reports whether both URLs have exactly the same host[:port].
// Scheme is not compared and no case folding is applied.
func SameDomain(rawURL, baseURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	b, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	return u.Host == b.Host
}
