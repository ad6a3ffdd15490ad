package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/playamaps/brc-directory/internal/geo"
	"github.com/playamaps/brc-directory/internal/htmldoc"
	"github.com/playamaps/brc-directory/internal/label"
	"github.com/playamaps/brc-directory/internal/location"
	"github.com/playamaps/brc-directory/internal/record"
)

var (
	websiteLabelExactRe = regexp.MustCompile(`(?i)^\s*Website\s*:?\s*$`)
	websiteLabelRe      = regexp.MustCompile(`(?i)Website\s*:?`)
)

// Camp extracts a camp record from a camp detail page. Fields that cannot be
// recovered stay empty; the coordinate is set only when the normalized
// location resolves.
func Camp(doc *htmldoc.Document) *record.Camp {
	labels := label.New()

	c := &record.Camp{
		Name:        headingName(doc, "Camp"),
		Website:     campWebsite(doc, labels),
		Location:    labels.ValueAfterLabel(doc, "Location:"),
		Description: descriptionAfterLabel(doc),
	}
	c.NormalizedLocation = location.Normalize(c.Location)

	if strings.Contains(c.NormalizedLocation, "&") {
		if ll, err := geo.NormalizedLocationToLatLon(c.NormalizedLocation); err == nil {
			lat, lon := ll.Lat, ll.Lon
			c.Latitude, c.Longitude = &lat, &lon
		}
	}
	return c
}

// campWebsite recovers the camp's website URL. Preference order: an anchor
// in the same container as the "Website" label, the first absolute link
// among the label's forward siblings before the next labeled section, a
// URL-shaped substring of the label's text value, and finally the first
// external link anywhere on the page.
func campWebsite(doc *htmldoc.Document, labels *label.Extractor) string {
	isAbsolute := func(href string) bool { return absoluteHTTPRe.MatchString(href) }

	labelNode := firstTextNode(doc, websiteLabelExactRe)
	if labelNode == nil {
		labelNode = firstTextNode(doc, websiteLabelRe)
	}
	if labelNode != nil {
		if parent := labelNode.Parent(); parent != nil {
			if href, ok := parent.FirstAnchor(isAbsolute); ok {
				return href
			}
			for _, sib := range parent.FollowingSiblings() {
				if labels.IsLabelStart(sib.Text()) {
					break
				}
				if !sib.IsElement() {
					continue
				}
				if href, ok := sib.FirstAnchor(isAbsolute); ok {
					return href
				}
			}
		}
	}

	if value := labels.ValueAfterLabel(doc, "Website:"); value != "" {
		if m := urlRe.FindString(value); m != "" {
			return m
		}
		return value
	}

	if href, ok := firstExternalLink(doc); ok {
		return href
	}
	return ""
}

func firstTextNode(doc *htmldoc.Document, re *regexp.Regexp) *htmldoc.Node {
	nodes := doc.TextNodes(func(raw string) bool {
		return re.MatchString(strings.TrimSpace(raw))
	})
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

func firstExternalLink(doc *htmldoc.Document) (string, bool) {
	var href string
	var found bool
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		h, _ := sel.Attr("href")
		if absoluteHTTPRe.MatchString(h) {
			href = h
			found = true
			return false
		}
		return true
	})
	return href, found
}
