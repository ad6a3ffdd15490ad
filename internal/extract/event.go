package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/playamaps/brc-directory/internal/htmldoc"
	"github.com/playamaps/brc-directory/internal/record"
	"github.com/playamaps/brc-directory/internal/timeparse"
)

// titleSeparators cut site branding appended after the real page title.
var titleSeparators = []string{"|", "-", "—"}

// Event extracts an event record from a playa event detail page. The page is
// modeled as an ordered sequence of label/value rows inside the event
// display container; unmatched rows are ignored.
func Event(doc *htmldoc.Document, eventID string) *record.Event {
	evt := record.NewEvent(eventID)

	display := doc.Find("div.event-display").First()
	if display.Length() == 0 {
		return evt
	}

	evt.Title = eventTitle(doc, display)

	display.Find("div.row").Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("div")
		if cols.Length() < 2 {
			return
		}
		lbl := strings.ToLower(selectionText(cols.Eq(0)))
		value := cols.Eq(1)
		text := selectionText(value)

		switch {
		case strings.Contains(lbl, "dates and times") || strings.Contains(lbl, "date and time"):
			evt.Times = timeparse.Parse(text)
		case strings.Contains(lbl, "type"):
			evt.Type = text
		case strings.Contains(lbl, "located at camp"):
			link := value.Find("a").First()
			if link.Length() > 0 {
				evt.Camp = selectionText(link)
				evt.CampURL, _ = link.Attr("href")
			} else {
				evt.Camp = text
			}
		// A "Located at Camp" row also contains "location"; the camp check
		// above must win, so plain location requires the absence of "camp".
		case strings.Contains(lbl, "location") && !strings.Contains(lbl, "camp"):
			evt.Location = text
		case strings.Contains(lbl, "description"):
			evt.Description = text
		}
	})

	if evt.Description == "" {
		evt.Description = doc.MetaDescription()
	}
	return evt
}

// eventTitle prefers a heading inside the event display, then any page
// heading, then the <title> element truncated at the first branding
// separator.
func eventTitle(doc *htmldoc.Document, display *goquery.Selection) string {
	if h := display.Find("h1, h2").First(); h.Length() > 0 {
		return selectionText(h)
	}
	for _, tag := range []string{"h1", "h2"} {
		if h := doc.Find(tag).First(); h.Length() > 0 {
			return selectionText(h)
		}
	}

	title := doc.Title()
	for _, sep := range titleSeparators {
		if idx := strings.Index(title, sep); idx >= 0 {
			title = strings.TrimSpace(title[:idx])
			break
		}
	}
	return title
}

// selectionText returns the collapsed visible text of the selection's first
// node.
func selectionText(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	return htmldoc.Wrap(sel.Nodes[0]).Text()
}
