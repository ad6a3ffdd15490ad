// Package timeparse turns free-text date/time-range listings such as
// "Sunday, August 24th, 2025, 12 AM – 2 AM" into normalized occurrences.
// Listings glue multiple days together back to back and mix 12/24-hour
// notation, so parsing is best effort: a day segment that fails to parse is
// dropped, never substituted.
package timeparse

import (
	"regexp"
	"strings"
	"time"

	"github.com/playamaps/brc-directory/internal/record"
)

var (
	// weekdayRe splits the input into one candidate segment per calendar-day
	// mention.
	weekdayRe = regexp.MustCompile(`(Sunday|Monday|Tuesday|Wednesday|Thursday|Friday|Saturday)`)

	// segmentRe captures weekday (discarded), month name, day of month with
	// optional ordinal suffix, 4-digit year, start time, end time. Start and
	// end are separated by a hyphen, en dash, or em dash. The end time runs
	// to the end of the segment; weekday segmentation already cut the text at
	// the next weekday token.
	segmentRe = regexp.MustCompile(`(\w+),\s*(\w+)\s+(\d+)\w*,\s*(\d{4}),\s*(.+?)\s*[–—-]\s*(.+?)\s*$`)

	// meridiemSpaceRe inserts the missing space in forms like "9PM".
	meridiemSpaceRe = regexp.MustCompile(`(\d)([AaPp][Mm])`)
)

// Parse extracts the ordered list of occurrences from a raw times string.
// Output order matches source order; an empty result is valid.
func Parse(text string) []record.Occurrence {
	times := []record.Occurrence{}

	for _, segment := range splitByWeekday(text) {
		m := segmentRe.FindStringSubmatch(segment)
		if m == nil {
			continue
		}
		month, day, year := m[2], m[3], m[4]

		date, err := time.Parse("January 2 2006", month+" "+day+" "+year)
		if err != nil {
			// Invalid month name or nonexistent day: drop this segment only.
			continue
		}

		times = append(times, record.Occurrence{
			Date:      date.Format("01/02/2006"),
			StartTime: To24Hour(m[5]),
			EndTime:   To24Hour(m[6]),
		})
	}

	return times
}

// splitByWeekday cuts the input on canonical weekday names, re-attaching each
// name to the text that follows it. Text before the first weekday carries no
// day and is discarded.
func splitByWeekday(text string) []string {
	locs := weekdayRe.FindAllStringIndex(text, -1)
	if locs == nil {
		return nil
	}
	segments := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segments = append(segments, text[loc[0]:end])
	}
	return segments
}

// To24Hour normalizes a time string to 24-hour "HH:MM". Accepted 12-hour
// forms may omit minutes and the space before the meridiem marker. Text with
// no meridiem marker is assumed to already be 24-hour and passes through
// unchanged, as does text matching no accepted format at all (a documented
// lossy fallback).
func To24Hour(timeStr string) string {
	timeStr = strings.TrimSpace(timeStr)

	if !strings.Contains(strings.ToUpper(timeStr), "AM") && !strings.Contains(strings.ToUpper(timeStr), "PM") {
		return timeStr
	}

	normalized := meridiemSpaceRe.ReplaceAllString(timeStr, "$1 $2")
	normalized = strings.ToUpper(normalized)

	for _, layout := range []string{"3:04 PM", "3 PM", "3:04PM", "3PM"} {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t.Format("15:04")
		}
	}

	return timeStr
}
