package sidecar

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"slatelink/internal/overlay"
)

func testDocument(imagePath string) Document {
	return Document{
		ImagePath: imagePath,
		CSVName:   "day3.csv",
		Row: map[string]string{
			"Scene":   "12A",
			"Take":    "3",
			"Notes":   "hold for sound",
			"Creator": "A. Camera",
		},
		SelectedFields: []string{"Scene", "Take", "Notes", "Creator"},
		FieldOrder:     []string{"Scene", "Take"},
		Positions:      map[string]overlay.Point{"Scene": {X: 0.1, Y: 0.9}},
		JoinKey:        "Name",
		ImageSHA256:    "abc123",
		CSVSHA256:      "def456",
	}
}

func newTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "IMG_0001.jpg")
	if err := os.WriteFile(path, []byte("jpeg"), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	return path
}

func TestWriteReadRoundTrip(t *testing.T) {
	image := newTestImage(t)
	writer := NewWriter("skip", "_{n}")

	path, err := writer.Write(testDocument(image))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if path != PathFor(image) {
		t.Errorf("path = %s, want %s", path, PathFor(image))
	}

	info, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(info.SelectedFields, []string{"Scene", "Take", "Notes", "Creator"}) {
		t.Errorf("selected fields = %v", info.SelectedFields)
	}
	if !reflect.DeepEqual(info.FieldOrder, []string{"Scene", "Take"}) {
		t.Errorf("field order = %v", info.FieldOrder)
	}
	if got := info.Positions["Scene"]; got != (overlay.Point{X: 0.1, Y: 0.9}) {
		t.Errorf("position = %v", got)
	}
	if info.JoinKey != "Name" || info.CSVName != "day3.csv" {
		t.Errorf("provenance = %+v", info)
	}
	if info.ImageSHA256 != "abc123" || info.CSVSHA256 != "def456" {
		t.Errorf("hashes = %q %q", info.ImageSHA256, info.CSVSHA256)
	}
}

func TestWriteStandardFieldMappings(t *testing.T) {
	image := newTestImage(t)
	writer := NewWriter("skip", "_{n}")
	path, err := writer.Write(testDocument(image))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sidecar: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"<Iptc4xmpCore:Creator>A. Camera</Iptc4xmpCore:Creator>",
		"<dc:description>",
		"x-default",
		"<slx:scene>12A</slx:scene>",
		"<slx:take>3</slx:take>",
		"<slx:joinKey>Name</slx:joinKey>",
		"sha256:abc123",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("sidecar missing %q", want)
		}
	}
}

func TestWriteCollisionModes(t *testing.T) {
	image := newTestImage(t)

	if _, err := NewWriter("skip", "_{n}").Write(testDocument(image)); err != nil {
		t.Fatalf("first Write: %v", err)
	}

	// skip: second write is refused.
	if _, err := NewWriter("skip", "_{n}").Write(testDocument(image)); !errors.Is(err, ErrExists) {
		t.Errorf("skip mode err = %v, want ErrExists", err)
	}

	// overwrite: same path again.
	path, err := NewWriter("overwrite", "_{n}").Write(testDocument(image))
	if err != nil {
		t.Fatalf("overwrite Write: %v", err)
	}
	if path != PathFor(image) {
		t.Errorf("overwrite path = %s", path)
	}

	// suffix: numbered siblings.
	first, err := NewWriter("suffix", "_{n}").Write(testDocument(image))
	if err != nil {
		t.Fatalf("suffix Write: %v", err)
	}
	if !strings.HasSuffix(first, "IMG_0001_1.xmp") {
		t.Errorf("suffix path = %s, want _1 suffix", first)
	}
	second, err := NewWriter("suffix", "_{n}").Write(testDocument(image))
	if err != nil {
		t.Fatalf("second suffix Write: %v", err)
	}
	if !strings.HasSuffix(second, "IMG_0001_2.xmp") {
		t.Errorf("suffix path = %s, want _2 suffix", second)
	}
}

func TestReadMissingOptionalElements(t *testing.T) {
	image := newTestImage(t)
	doc := testDocument(image)
	doc.FieldOrder = nil
	doc.Positions = nil

	path, err := NewWriter("skip", "_{n}").Write(doc)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	info, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if info.FieldOrder != nil || info.Positions != nil {
		t.Errorf("optional fields populated: %+v", info)
	}
	if info.Spec() != nil {
		t.Error("Spec() should be nil when the sidecar has no layout")
	}
}

func TestReadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xmp")
	if err := os.WriteFile(path, []byte("<unclosed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Read(path); err == nil {
		t.Error("Read accepted malformed XML")
	}
}

func TestNormalizeFieldName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Clip Name", "clipName"},
		{"TC Start", "tcStart"},
		{"scene", "scene"},
		{"Camera_Roll", "cameraRoll"},
		{"Notes!", "notes"},
		{"  ", "field"},
		{"%%%", "field"},
	}
	for _, tt := range tests {
		if got := NormalizeFieldName(tt.in); got != tt.want {
			t.Errorf("NormalizeFieldName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
