package location

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "Named street maps to initial letter",
			raw:  "Gobsmack & 7:25",
			want: "G & 7:25",
		},
		{
			name: "Reversed clock and ring",
			raw:  "9:00 & J",
			want: "J & 9:00",
		},
		{
			name: "Esplanade stays distinct from letter E",
			raw:  "Esplanade & 7:45",
			want: "Esplanade & 7:45",
		},
		{
			name: "At-sign separator",
			raw:  "E @ 5:15",
			want: "E & 5:15",
		},
		{
			name: "Loose ampersand spacing",
			raw:  "B&4:30",
			want: "B & 4:30",
		},
		{
			name: "Parenthetical and trailing annotation stripped",
			raw:  "G (near the plaza) & 7:25, Man side",
			want: "G & 7:25",
		},
		{
			name: "No ring anywhere yields cleaned text",
			raw:  "9:00 Plaza  &  9:00",
			want: "9:00 Plaza & 9:00",
		},
		{
			name: "Letter plaza",
			raw:  "G Plaza at 7:30",
			want: "G & 7:30",
		},
		{
			name: "No clock yields cleaned text",
			raw:  "Center Camp (near fountain), Man side",
			want: "Center Camp",
		},
		{
			name: "Empty input",
			raw:  "",
			want: "",
		},
		{
			name: "Already canonical",
			raw:  "K & 10:00",
			want: "K & 10:00",
		},
		{
			name: "Lowercase ring letter",
			raw:  "7:15 & c",
			want: "C & 7:15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// Normalizing an already-normalized string must return it unchanged.
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Gobsmack & 7:25",
		"9:00 & J",
		"Esplanade & 7:45",
		"E @ 5:15",
		"Center Camp (near fountain), Man side",
		"somewhere in deep playa",
		"",
		"G & 7:25",
	}
	for _, raw := range inputs {
		once := Normalize(raw)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}

func TestExtractRingPriority(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Esplanade", "Esplanade"},
		{"esplanade near G", "Esplanade"}, // literal Esplanade beats letter match
		{"J", "J"},
		{"Gobsmack", "G"},
		{"Baghdad by the Bay", "B"},
		{"Zulu Time", ""}, // no word starts with A..K
	}

	for _, tt := range tests {
		if got := extractRing(tt.text); got != tt.want {
			t.Errorf("extractRing(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractClockLastMatchWins(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"2:00 and also 7:25", "7:25"},
		{"no clock here", ""},
		{"at 9:00", "9:00"},
	}
	for _, tt := range tests {
		if got := extractClock(tt.text); got != tt.want {
			t.Errorf("extractClock(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
