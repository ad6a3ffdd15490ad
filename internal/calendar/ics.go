// Package calendar exports collected events as an iCalendar file, one VEVENT
// per occurrence.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/playamaps/brc-directory/internal/record"
)

// GenerateICS renders events as a single VCALENDAR. Occurrences whose date
// or start time failed normalization upstream are skipped; the calendar only
// carries spans it can place on a clock.
func GenerateICS(events []*record.Event) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//BRC Directory//brc-directory//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	stamp := formatICSTime(time.Now().UTC())

	for _, evt := range events {
		for i, occ := range evt.Times {
			start, end, ok := occurrenceSpan(occ)
			if !ok {
				continue
			}

			ics.WriteString("BEGIN:VEVENT\r\n")
			ics.WriteString(fmt.Sprintf("UID:%s-%d@playaevents.burningman.org\r\n", evt.ID, i))
			ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", stamp))
			ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))
			ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(end)))
			ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(evt.Title)))

			description := evt.Description
			if evt.Camp != "" {
				description = strings.TrimSpace(description + "\nHosted by: " + evt.Camp)
			}
			if description != "" {
				ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))
			}
			if evt.Location != "" && evt.Location != "n/a" {
				ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(evt.Location)))
			}

			ics.WriteString("STATUS:CONFIRMED\r\n")
			ics.WriteString("SEQUENCE:0\r\n")
			ics.WriteString("TRANSP:OPAQUE\r\n")
			ics.WriteString("END:VEVENT\r\n")
		}
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

// occurrenceSpan resolves one occurrence to a concrete start/end. An end at
// or before the start is an overnight span and rolls to the next day; an end
// that never normalized falls back to a one-hour span.
func occurrenceSpan(occ record.Occurrence) (start, end time.Time, ok bool) {
	day, err := time.Parse("01/02/2006", occ.Date)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	startClock, err := time.Parse("15:04", occ.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	start = time.Date(day.Year(), day.Month(), day.Day(),
		startClock.Hour(), startClock.Minute(), 0, 0, time.UTC)

	endClock, err := time.Parse("15:04", occ.EndTime)
	if err != nil {
		return start, start.Add(time.Hour), true
	}
	end = time.Date(day.Year(), day.Month(), day.Day(),
		endClock.Hour(), endClock.Minute(), 0, 0, time.UTC)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, true
}

// formatICSTime formats a time as an iCalendar UTC datetime.
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes text per RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
