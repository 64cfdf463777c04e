package textutil

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"mixed case", "MissionImpossible", "missionimpossible"},
		{"spaces and punctuation", "Mission: Impossible!", "missionimpossible"},
		{"digits kept", "Slate57-Take1", "slate57take1"},
		{"underscores dropped", "IMG_0001", "img0001"},
		{"empty", "", ""},
		{"only punctuation", "--__--", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSharedPrefixLen(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"missionimpossible", "missionimp", 10},
		{"abc", "abd", 2},
		{"abc", "xyz", 0},
		{"", "abc", 0},
		{"same", "same", 4},
	}
	for _, tt := range tests {
		if got := SharedPrefixLen(tt.a, tt.b); got != tt.want {
			t.Errorf("SharedPrefixLen(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"IMG_0001.jpg", "IMG_0001"},
		{"/shots/day1/IMG_0001.jpg", "IMG_0001"},
		{"noext", "noext"},
		{"archive.tar.gz", "archive.tar"},
	}
	for _, tt := range tests {
		if got := Stem(tt.input); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"mission_impossible.jpg", "Mission Impossible"},
		{"Slate57-Take1.jpg", "Slate57 Take1"},
		{"...", "Untitled"},
	}
	for _, tt := range tests {
		if got := DisplayTitle(tt.input); got != tt.want {
			t.Errorf("DisplayTitle(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Day 1 Exteriors", "day_1_exteriors"},
		{"preset/name", "preset_name"},
		{"  ", "unnamed"},
		{"__--__", "unnamed"},
		{"Ok-Name", "ok-name"},
	}
	for _, tt := range tests {
		if got := SanitizeToken(tt.input); got != tt.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
