package extract

import (
	"regexp"
	"strconv"

	"github.com/playamaps/brc-directory/internal/geo"
	"github.com/playamaps/brc-directory/internal/htmldoc"
	"github.com/playamaps/brc-directory/internal/label"
	"github.com/playamaps/brc-directory/internal/record"
)

// Artwork locations lead with a clock angle and a radial distance in feet,
// e.g. "5:30 1710', Open Playa".
var clockDistanceRe = regexp.MustCompile(`^\s*([0-1]?\d:[0-5]\d)\s+([0-9]{2,5})'?\b`)

// Art extracts an artwork record from an artwork detail page. The coordinate
// is set only when the location leads with a parseable clock/distance pair.
func Art(doc *htmldoc.Document) *record.Art {
	labels := label.New()

	a := &record.Art{
		Name:        headingName(doc, "Artwork"),
		Location:    labels.ValueAfterLabel(doc, "Location:"),
		Description: descriptionAfterLabel(doc),
	}

	if m := clockDistanceRe.FindStringSubmatch(a.Location); m != nil {
		if feet, err := strconv.ParseFloat(m[2], 64); err == nil {
			if ll, err := geo.ClockDistanceToLatLon(m[1], feet); err == nil {
				lat, lon := ll.Lat, ll.Lon
				a.Latitude, a.Longitude = &lat, &lon
			}
		}
	}
	return a
}
