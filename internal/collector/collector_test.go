package collector

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/playamaps/brc-directory/internal/config"
	"github.com/playamaps/brc-directory/internal/record"
	"github.com/playamaps/brc-directory/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves pages from a map; unknown URLs fail like a dead server.
type fakeFetcher struct {
	pages map[string]string
	calls []string
}

func (f *fakeFetcher) Get(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	page, ok := f.pages[url]
	if !ok {
		return "", fmt.Errorf("no such page: %s", url)
	}
	return page, nil
}

func testCfg() *config.Config {
	cfg := config.Default()
	cfg.Camps = config.Source{
		BaseURL:    "https://test.example",
		PageFormat: "https://test.example/camps/?page=%d",
		StartPage:  1,
		EndPage:    2,
		PathPrefix: "/camps",
		Output:     "camps.json",
	}
	cfg.Events = config.Source{
		BaseURL:    "https://test.example",
		PageFormat: "https://test.example/2025/playa_events/%02d",
		StartPage:  1,
		EndPage:    1,
		PathPrefix: "/2025/playa_event",
		Output:     "events.json",
	}
	return cfg
}

func campDetail(name string) string {
	return fmt.Sprintf(`<html><body><h1>Camp: %s</h1></body></html>`, name)
}

func TestCollectCamps(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://test.example/camps/?page=1": `<html><body>
			<a href="/camps/2/">Camp Two</a>
			<a href="/camps/1/">Camp One</a>
		</body></html>`,
		// Page two repeats a link; the duplicate must collapse.
		"https://test.example/camps/?page=2": `<html><body>
			<a href="/camps/1/">Camp One</a>
		</body></html>`,
		"https://test.example/camps/2/": campDetail("Camp Two"),
		"https://test.example/camps/1/": campDetail("Camp One"),
	}}

	camps, err := New(f, testCfg()).CollectCamps(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, camps, 2)
	assert.Equal(t, "Camp Two", camps[0].Name)
	assert.Equal(t, "Camp One", camps[1].Name)
}

func TestCollectCampsMaxPages(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://test.example/camps/?page=1": `<html><body><a href="/camps/1/">Camp One</a></body></html>`,
		"https://test.example/camps/1/":      campDetail("Camp One"),
	}}

	camps, err := New(f, testCfg()).CollectCamps(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, camps, 1)
	assert.NotContains(t, f.calls, "https://test.example/camps/?page=2")
}

func TestCollectCampsSkipsFailedPages(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		// Index page 2 and the detail page for camp 3 are missing; both
		// failures are skipped, not fatal.
		"https://test.example/camps/?page=1": `<html><body>
			<a href="/camps/1/">Camp One</a>
			<a href="/camps/3/">Camp Three</a>
		</body></html>`,
		"https://test.example/camps/1/": campDetail("Camp One"),
	}}

	camps, err := New(f, testCfg()).CollectCamps(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, camps, 1)
	assert.Equal(t, "Camp One", camps[0].Name)
}

func eventDetail(title, camp string) string {
	return fmt.Sprintf(`<html><body><div class="event-display">
		<h1>%s</h1>
		<div class="row"><div>Located at Camp:</div><div>%s</div></div>
	</div></body></html>`, title, camp)
}

func TestCollectEvents(t *testing.T) {
	lat, lon := 40.7964, -119.2168
	campsPath := filepath.Join(t.TempDir(), "camps.json")
	require.NoError(t, storage.SaveCamps(campsPath, []*record.Camp{{
		Name:               "Dusty Nest",
		NormalizedLocation: "G & 7:25",
		Latitude:           &lat,
		Longitude:          &lon,
	}}))

	f := &fakeFetcher{pages: map[string]string{
		"https://test.example/2025/playa_events/01": `<html><body>
			<a href="/2025/playa_event/10/">Morning Tea</a>
			<a href="/2025/playa_event/9/">Evening Tea</a>
			<a href="/2025/playa_event/10/">Morning Tea again</a>
		</body></html>`,
		"https://test.example/2025/playa_event/10/": eventDetail("Morning Tea", "Dusty Nest"),
		"https://test.example/2025/playa_event/9/":  eventDetail("Evening Tea", "Camp Unknown"),
	}}

	events, err := New(f, testCfg()).CollectEvents(context.Background(), 0, campsPath)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// IDs process in sorted order: "10" before "9".
	assert.Equal(t, "10", events[0].ID)
	assert.Equal(t, "Morning Tea", events[0].Title)
	assert.Equal(t, "G & 7:25", events[0].Location)
	require.NotNil(t, events[0].Latitude)
	assert.Equal(t, lat, *events[0].Latitude)

	// The unmatched camp gets the review placeholder.
	assert.Equal(t, "9", events[1].ID)
	assert.Equal(t, "n/a", events[1].Location)
	assert.Nil(t, events[1].Latitude)
}

func TestCollectEventsMaxEvents(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://test.example/2025/playa_events/01": `<html><body>
			<a href="/2025/playa_event/10/">A</a>
			<a href="/2025/playa_event/9/">B</a>
		</body></html>`,
		"https://test.example/2025/playa_event/10/": eventDetail("A", ""),
		"https://test.example/2025/playa_event/9/":  eventDetail("B", ""),
	}}

	events, err := New(f, testCfg()).CollectEvents(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "10", events[0].ID)
}

func TestNormalizeCampName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dusty Nest", "dusty nest"},
		{"Fire and Ice", "fire & ice"},
		{"Fire & Ice", "fire & ice"},
		{"  The   Grand  Nest! ", "the grand nest"},
		{"Sandblast!", "sandblast"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeCampName(tt.in), "input %q", tt.in)
	}
}

func TestEnrichEventLocation(t *testing.T) {
	lat, lon := 40.79, -119.21
	camps := map[string]*record.Camp{
		"dusty nest": {
			Name:               "Dusty Nest",
			NormalizedLocation: "G & 7:25",
			Latitude:           &lat,
			Longitude:          &lon,
		},
		"fire & ice": {Name: "Fire & Ice"}, // no normalized location
	}

	t.Run("exact match inherits location and coordinates", func(t *testing.T) {
		evt := record.NewEvent("1")
		evt.Camp = "Dusty Nest"
		enrichEventLocation(evt, camps)
		assert.Equal(t, "G & 7:25", evt.Location)
		require.NotNil(t, evt.Latitude)
		assert.Equal(t, lat, *evt.Latitude)
	})

	t.Run("loose match ignores spacing", func(t *testing.T) {
		evt := record.NewEvent("2")
		evt.Camp = "DustyNest"
		enrichEventLocation(evt, camps)
		assert.Equal(t, "G & 7:25", evt.Location)
	})

	t.Run("match without normalized location flags the record", func(t *testing.T) {
		evt := record.NewEvent("3")
		evt.Camp = "Fire and Ice"
		evt.Location = "scraped text"
		enrichEventLocation(evt, camps)
		assert.Equal(t, "n/a", evt.Location)
	})

	t.Run("no match flags the record", func(t *testing.T) {
		evt := record.NewEvent("4")
		evt.Camp = "Camp Unknown"
		evt.Location = "scraped text"
		enrichEventLocation(evt, camps)
		assert.Equal(t, "n/a", evt.Location)
	})

	t.Run("no index keeps scraped location", func(t *testing.T) {
		evt := record.NewEvent("5")
		evt.Location = "scraped text"
		enrichEventLocation(evt, nil)
		assert.Equal(t, "scraped text", evt.Location)

		empty := record.NewEvent("6")
		enrichEventLocation(empty, nil)
		assert.Equal(t, "n/a", empty.Location)
	})
}
