// Package placeholder holds the stock images shown when no real photo of a
// restaurant is known.
package placeholder

import (
	"net/url"
	"strings"
)

const stockHost = "unsplash.com"

var images = []string{
	"https://images.unsplash.com/photo-1555126634-323283e090fa?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1569718212165-3a8278d5f624?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1552566626-52f8b828add9?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1414235077428-338989a2e8c0?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1559339352-11d035aa65de?w=400&h=300&fit=crop",
}

// ForIndex returns the stock image for the i-th result, cycling through the set.
func ForIndex(i int) string {
	if i < 0 {
		i = -i
	}
	return images[i%len(images)]
}

// IsStock reports whether u is served from the stock image host. Empty and
// unparseable values are not stock.
func IsStock(u string) bool {
	if u == "" {
		return false
	}
	parsed, err := url.Parse(u)
	if err != nil || parsed.Host == "" {
		return strings.Contains(u, stockHost)
	}
	host := strings.ToLower(parsed.Hostname())
	return host == stockHost || strings.HasSuffix(host, "."+stockHost)
}

// IsReal reports whether u is a non-empty image that did not come from the
// stock set. Enrichment never replaces a real image.
func IsReal(u string) bool {
	return u != "" && !IsStock(u)
}
