// Package harvest extracts detail-page links from directory index pages and
// canonicalizes them: no query or fragment, a trailing slash, and resolution
// against the index's base URL. Output is deduplicated in first-seen order.
package harvest

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/playamaps/brc-directory/internal/htmldoc"
)

// Pattern anchors an entity's detail-page path: a literal prefix segment
// followed by a numeric ID, an optional trailing slash, and an optional
// query or fragment. An href matches only as a whole string.
type Pattern struct {
	re *regexp.Regexp
}

// NewPathPattern builds a Pattern for a detail path prefix such as "/camps"
// or "/2025/playa_event".
func NewPathPattern(prefix string) (*Pattern, error) {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" || !strings.HasPrefix(prefix, "/") {
		return nil, fmt.Errorf("invalid path prefix %q: want a leading slash", prefix)
	}
	return &Pattern{
		re: regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `/\d+/?(?:[?#].*)?$`),
	}, nil
}

var stripQueryRe = regexp.MustCompile(`[?#].*$`)

// Harvest returns the ordered list of canonical detail URLs found in the
// document. Malformed or non-matching hrefs are skipped silently; duplicates
// are dropped, keeping first-seen order.
func Harvest(doc *htmldoc.Document, baseURL string, pattern *Pattern) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !pattern.re.MatchString(href) {
			return
		}

		canonical := stripQueryRe.ReplaceAllString(href, "")
		if !strings.HasSuffix(canonical, "/") {
			canonical += "/"
		}

		ref, err := url.Parse(canonical)
		if err != nil {
			return
		}
		links = append(links, base.ResolveReference(ref).String())
	})

	// Deduplicate, preserving first-seen order.
	seen := make(map[string]bool, len(links))
	unique := make([]string, 0, len(links))
	for _, link := range links {
		if !seen[link] {
			seen[link] = true
			unique = append(unique, link)
		}
	}
	return unique, nil
}

var trailingIDRe = regexp.MustCompile(`/(\d+)/?$`)

// EntityID returns the numeric ID segment at the end of a detail URL, or ""
// when the URL has none.
func EntityID(link string) string {
	m := trailingIDRe.FindStringSubmatch(link)
	if m == nil {
		return ""
	}
	return m[1]
}
