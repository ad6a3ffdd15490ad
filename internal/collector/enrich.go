package collector

import (
	"regexp"
	"strings"

	"github.com/playamaps/brc-directory/internal/record"
)

var (
	campWordAndRe  = regexp.MustCompile(`\band\b`)
	campNonAlnumRe = regexp.MustCompile(`[^a-z0-9 &]`)
	campSpacesRe   = regexp.MustCompile(`\s+`)
)

// normalizeCampName produces a matching key for camp names: lowercase,
// collapsed whitespace, "and" unified to "&", punctuation dropped.
func normalizeCampName(name string) string {
	if name == "" {
		return ""
	}
	s := strings.ToLower(strings.TrimSpace(name))
	s = campSpacesRe.ReplaceAllString(s, " ")
	s = campWordAndRe.ReplaceAllString(s, "&")
	s = campNonAlnumRe.ReplaceAllString(s, "")
	return strings.TrimSpace(campSpacesRe.ReplaceAllString(s, " "))
}

// enrichEventLocation overwrites the event's location with its host camp's
// normalized location and coordinates. When no camp matches, the location is
// set to "n/a" to flag the record for manual review. With no camp index at
// all, the scraped location is kept and only an empty one becomes "n/a".
func enrichEventLocation(evt *record.Event, camps map[string]*record.Camp) {
	if len(camps) == 0 {
		if evt.Location == "" {
			evt.Location = "n/a"
		}
		return
	}

	key := normalizeCampName(evt.Camp)
	camp := camps[key]
	if camp == nil {
		// Looser pass: compare with all spaces stripped.
		loose := strings.ReplaceAll(key, " ", "")
		for k, v := range camps {
			if strings.ReplaceAll(k, " ", "") == loose {
				camp = v
				break
			}
		}
	}

	if camp != nil && camp.NormalizedLocation != "" {
		evt.Location = camp.NormalizedLocation
		if camp.Latitude != nil && camp.Longitude != nil {
			lat, lon := *camp.Latitude, *camp.Longitude
			evt.Latitude, evt.Longitude = &lat, &lon
		}
		return
	}

	evt.Location = "n/a"
}
