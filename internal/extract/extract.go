// Package extract assembles camp, artwork, and event records from parsed
// detail pages. Each extractor is a thin composition of the label, location,
// geo, and timeparse packages; every field is recovered best-effort and a
// missing field never aborts a record.
package extract

import (
	"regexp"
	"strings"

	"github.com/playamaps/brc-directory/internal/htmldoc"
)

var (
	urlRe          = regexp.MustCompile(`https?://\S+`)
	absoluteHTTPRe = regexp.MustCompile(`^https?://`)
)

// headingName recovers an entity name from heading elements. A heading with
// an "<entityWord>:" prefix wins after stripping the prefix; otherwise the
// first non-empty heading text is used; otherwise the document's text is
// searched for an "<entityWord>: <value>" line.
func headingName(doc *htmldoc.Document, entityWord string) string {
	prefix := strings.ToLower(entityWord) + ":"

	var name string
	for _, tag := range []string{"h1", "h2"} {
		for _, h := range doc.ElementsByTag(tag) {
			text := h.Text()
			if text == "" {
				continue
			}
			if strings.HasPrefix(strings.ToLower(text), prefix) {
				name = strings.TrimSpace(text[strings.Index(text, ":")+1:])
			} else {
				name = text
			}
			break
		}
		if name != "" {
			break
		}
	}
	if name != "" {
		return name
	}

	nameRe := regexp.MustCompile(`(?i)^\s*` + regexp.QuoteMeta(entityWord) + `:\s*(.+)$`)
	nodes := doc.TextNodes(func(raw string) bool {
		return nameRe.MatchString(raw)
	})
	if len(nodes) > 0 {
		if m := nameRe.FindStringSubmatch(nodes[0].Text()); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// descriptionAfterLabel recovers a description from a "Description" label:
// the label's parent's next sibling element holds the value on most pages,
// with the remainder of the parent's own text as the fallback. The page's
// meta description covers pages with no label at all.
func descriptionAfterLabel(doc *htmldoc.Document) string {
	labelRe := regexp.MustCompile(`(?i)^\s*Description\s*:?`)
	stripRe := regexp.MustCompile(`(?i)^\s*Description\s*:?\s*`)

	nodes := doc.TextNodes(func(raw string) bool {
		return labelRe.MatchString(raw)
	})

	var description string
	if len(nodes) > 0 {
		parent := nodes[0].Parent()
		if parent != nil {
			if next := parent.NextElementSibling(); next != nil {
				description = next.Text()
			} else {
				description = strings.TrimSpace(stripRe.ReplaceAllString(parent.Text(), ""))
			}
		}
	}

	if description == "" {
		description = doc.MetaDescription()
	}
	return description
}
