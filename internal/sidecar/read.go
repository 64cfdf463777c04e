package sidecar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"slatelink/internal/overlay"
)

// Info is what a previously written sidecar contributes back: the per-image
// layout for precedence resolution plus the recorded provenance.
type Info struct {
	SelectedFields []string
	FieldOrder     []string
	Positions      map[string]overlay.Point
	JoinKey        string
	CSVName        string
	ImageSHA256    string
	CSVSHA256      string
}

// Spec returns the sidecar's layout as a per-image overlay source.
func (i Info) Spec() *overlay.Spec {
	if len(i.FieldOrder) == 0 && len(i.Positions) == 0 {
		return nil
	}
	return &overlay.Spec{FieldOrder: i.FieldOrder, Positions: i.Positions}
}

// PathFor returns the natural sidecar path for an image.
func PathFor(imagePath string) string {
	ext := filepath.Ext(imagePath)
	return strings.TrimSuffix(imagePath, ext) + ".xmp"
}

// Exists reports whether an image already has a sidecar.
func Exists(imagePath string) bool {
	_, err := os.Stat(PathFor(imagePath))
	return err == nil
}

// Read parses a sidecar file. Missing optional elements leave zero fields;
// malformed XML is an error.
func Read(path string) (Info, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return Info{}, fmt.Errorf("parse sidecar %s: %w", path, err)
	}

	desc := doc.FindElement("//rdf:Description")
	if desc == nil {
		return Info{}, fmt.Errorf("sidecar %s has no rdf:Description", path)
	}

	info := Info{
		JoinKey:     elementText(desc, "slx:joinKey"),
		CSVName:     elementText(desc, "slx:csvFileName"),
		ImageSHA256: strings.TrimPrefix(elementText(desc, "slx:imageSHA256"), "sha256:"),
		CSVSHA256:   strings.TrimPrefix(elementText(desc, "slx:csvSHA256"), "sha256:"),
	}

	if bag := desc.FindElement("slx:selectedFields/rdf:Bag"); bag != nil {
		for _, li := range bag.SelectElements("rdf:li") {
			info.SelectedFields = append(info.SelectedFields, li.Text())
		}
	}

	if raw := elementText(desc, "slx:fieldOrder"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &info.FieldOrder); err != nil {
			return Info{}, fmt.Errorf("sidecar %s field order: %w", path, err)
		}
	}

	if raw := elementText(desc, "slx:overlayPositions"); raw != "" {
		var positions map[string][2]float64
		if err := json.Unmarshal([]byte(raw), &positions); err != nil {
			return Info{}, fmt.Errorf("sidecar %s positions: %w", path, err)
		}
		info.Positions = make(map[string]overlay.Point, len(positions))
		for field, xy := range positions {
			info.Positions[field] = overlay.Point{X: xy[0], Y: xy[1]}
		}
	}

	return info, nil
}

func elementText(parent *etree.Element, path string) string {
	if el := parent.FindElement(path); el != nil {
		return el.Text()
	}
	return ""
}
