package harvest

import (
	"reflect"
	"testing"

	"github.com/playamaps/brc-directory/internal/htmldoc"
)

const indexPage = `<html><body>
<a href="/camps/123/">Dusty Nest</a>
<a href="/camps/123/">Dusty Nest again</a>
<a href="/camps/456">Camp Quench</a>
<a href="/camps/789/?page=2">Tracked link</a>
<a href="/camps/789/#photos">Fragment link</a>
<a href="/camps/">Index itself</a>
<a href="/camps/abc/">Non-numeric</a>
<a href="/art/55/">Wrong prefix</a>
<a href="https://elsewhere.example/camps/99/">Absolute href</a>
<a href="/camps/123/details">Extra segment</a>
</body></html>`

func TestHarvest(t *testing.T) {
	doc, err := htmldoc.Parse(indexPage)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	pattern, err := NewPathPattern("/camps")
	if err != nil {
		t.Fatalf("NewPathPattern returned error: %v", err)
	}

	got, err := Harvest(doc, "https://directory.example.org", pattern)
	if err != nil {
		t.Fatalf("Harvest returned error: %v", err)
	}

	want := []string{
		"https://directory.example.org/camps/123/",
		"https://directory.example.org/camps/456/",
		"https://directory.example.org/camps/789/",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Harvest = %v, want %v", got, want)
	}
}

func TestHarvestEmptyPage(t *testing.T) {
	doc, err := htmldoc.Parse(`<html><body><p>No links</p></body></html>`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	pattern, err := NewPathPattern("/camps")
	if err != nil {
		t.Fatalf("NewPathPattern returned error: %v", err)
	}

	got, err := Harvest(doc, "https://directory.example.org", pattern)
	if err != nil {
		t.Fatalf("Harvest returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Harvest = %v, want empty", got)
	}
}

func TestNewPathPatternInvalid(t *testing.T) {
	for _, prefix := range []string{"", "camps", "/"} {
		if _, err := NewPathPattern(prefix); err == nil {
			t.Errorf("NewPathPattern(%q) = nil error, want error", prefix)
		}
	}
}

func TestNewPathPatternTrailingSlash(t *testing.T) {
	a, err := NewPathPattern("/camps")
	if err != nil {
		t.Fatalf("NewPathPattern returned error: %v", err)
	}
	b, err := NewPathPattern("/camps/")
	if err != nil {
		t.Fatalf("NewPathPattern returned error: %v", err)
	}
	for _, href := range []string{"/camps/1", "/camps/1/", "/camps/1/?x=1"} {
		if a.re.MatchString(href) != b.re.MatchString(href) {
			t.Errorf("patterns disagree on %q", href)
		}
	}
}

func TestEntityID(t *testing.T) {
	tests := []struct {
		link string
		want string
	}{
		{"https://directory.example.org/camps/123/", "123"},
		{"https://directory.example.org/camps/456", "456"},
		{"/2025/playa_event/9001/", "9001"},
		{"https://directory.example.org/camps/", ""},
		{"https://directory.example.org/about", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EntityID(tt.link); got != tt.want {
			t.Errorf("EntityID(%q) = %q, want %q", tt.link, got, tt.want)
		}
	}
}
