package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/playamaps/brc-directory/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampsRoundTrip(t *testing.T) {
	lat, lon := 40.7964, -119.2168
	camps := []*record.Camp{
		{
			Name:               "Dusty Nest",
			Website:            "https://dustynest.example.org",
			Location:           "Gobsmack & 7:25",
			NormalizedLocation: "G & 7:25",
			Latitude:           &lat,
			Longitude:          &lon,
			Description:        "Tea all day.",
		},
		{Name: "Quiet Corner"},
	}

	path := filepath.Join(t.TempDir(), "out", "camps.json")
	require.NoError(t, SaveCamps(path, camps))

	loaded, err := LoadCamps(path)
	require.NoError(t, err)
	assert.Equal(t, camps, loaded)
}

func TestEventsRoundTrip(t *testing.T) {
	evt := record.NewEvent("9001")
	evt.Title = "Tea Ceremony"
	evt.Times = []record.Occurrence{
		{Date: "08/24/2025", StartTime: "21:00", EndTime: "01:00"},
	}

	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, SaveEvents(path, []*record.Event{evt}))

	loaded, err := LoadEvents(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, evt, loaded[0])
}

func TestArtRoundTrip(t *testing.T) {
	art := []*record.Art{{Name: "Temple of Echoes", Location: "5:30 1710', Open Playa"}}

	path := filepath.Join(t.TempDir(), "arts.json")
	require.NoError(t, SaveArt(path, art))

	loaded, err := LoadArt(path)
	require.NoError(t, err)
	assert.Equal(t, art, loaded)
}

func TestLoadMissingFileYieldsEmpty(t *testing.T) {
	camps, err := LoadCamps(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, camps)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadCamps(path)
	assert.ErrorContains(t, err, "parsing records")
}

// Camps with no coordinate must serialize without latitude/longitude keys,
// and event occurrence lists must serialize as [] rather than null.
func TestSerializedShape(t *testing.T) {
	dir := t.TempDir()

	campsPath := filepath.Join(dir, "camps.json")
	require.NoError(t, SaveCamps(campsPath, []*record.Camp{{Name: "Quiet Corner"}}))
	campsData, err := os.ReadFile(campsPath)
	require.NoError(t, err)
	assert.NotContains(t, string(campsData), "latitude")
	assert.NotContains(t, string(campsData), "longitude")

	eventsPath := filepath.Join(dir, "events.json")
	require.NoError(t, SaveEvents(eventsPath, []*record.Event{record.NewEvent("1")}))
	var raw []map[string]json.RawMessage
	eventsData, err := os.ReadFile(eventsPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(eventsData, &raw))
	require.Len(t, raw, 1)
	assert.JSONEq(t, "[]", string(raw[0]["times"]))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/data/camps.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data", "camps.json"), got)

	got, err = ExpandPath("/tmp/camps.json")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/camps.json", got)
}
