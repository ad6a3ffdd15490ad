// Package record defines the flat output records produced by the directory
// extractors: camps, artworks, and playa events.
//
// Absent fields are empty strings or empty lists, never omitted keys, so that
// downstream consumers can treat "absent" and "empty" as the same state.
// Coordinates are the one exception: they are pointers omitted when the
// location could not be resolved, because a guessed coordinate is worse than
// a missing one.
package record

// Occurrence is one concrete date plus start/end time span for an event.
// Times are 24-hour zero-padded "HH:MM" after normalization; dates render as
// "MM/DD/YYYY".
type Occurrence struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Camp is one theme camp from the directory.
type Camp struct {
	Name               string   `json:"name"`
	Website            string   `json:"website"`
	Location           string   `json:"location"`
	NormalizedLocation string   `json:"normalized_location"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
	Description        string   `json:"description"`
}

// Art is one artwork from the directory.
type Art struct {
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Description string   `json:"description"`
}

// Event is one scheduled playa event.
type Event struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Times       []Occurrence `json:"times"`
	Type        string       `json:"type"`
	Camp        string       `json:"camp"`
	CampURL     string       `json:"camp_url"`
	Location    string       `json:"location"`
	Latitude    *float64     `json:"latitude,omitempty"`
	Longitude   *float64     `json:"longitude,omitempty"`
	Description string       `json:"description"`
}

// NewEvent returns an Event with the times list initialized so it marshals
// as [] rather than null.
func NewEvent(id string) *Event {
	return &Event{
		ID:    id,
		Times: []Occurrence{},
	}
}
