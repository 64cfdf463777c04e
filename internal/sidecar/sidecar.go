// Package sidecar writes and reads XMP sidecar files that carry a matched
// row's metadata next to the image it belongs to. Standard fields land in
// the Dublin Core and IPTC namespaces; everything else, plus the linking
// provenance, lives in the slx namespace.
package sidecar

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"slatelink/internal/overlay"
)

const creatorTool = "slatelink 0.1"

// Namespace URIs written into every sidecar.
const (
	nsX     = "adobe:ns:meta/"
	nsRDF   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	nsXMP   = "http://ns.adobe.com/xap/1.0/"
	nsDC    = "http://purl.org/dc/elements/1.1/"
	nsXMPMM = "http://ns.adobe.com/xap/1.0/mm/"
	nsStRef = "http://ns.adobe.com/xap/1.0/sType/ResourceRef#"
	nsIPTC  = "http://iptc.org/std/Iptc4xmpCore/1.0/xmlns/"
	nsSLX   = "http://solvx.uk/ns/slx/1.0/"
)

// ErrExists reports a sidecar collision under the "skip" export mode.
var ErrExists = errors.New("sidecar already exists")

// Document is everything one sidecar records: the matched row restricted to
// the selected fields, the resolved layout, and the provenance that ties
// sidecar, image, and source table together.
type Document struct {
	ImagePath      string
	CSVName        string
	Row            map[string]string
	SelectedFields []string
	FieldOrder     []string
	Positions      map[string]overlay.Point
	JoinKey        string
	ImageSHA256    string
	CSVSHA256      string
}

// Writer turns documents into sidecar files. CollisionMode is one of
// "skip", "overwrite", or "suffix"; SuffixPattern must contain "{n}" and is
// only consulted in suffix mode.
type Writer struct {
	CollisionMode string
	SuffixPattern string
	now           func() time.Time
}

// NewWriter returns a writer with the given collision policy.
func NewWriter(mode, suffixPattern string) *Writer {
	return &Writer{CollisionMode: mode, SuffixPattern: suffixPattern, now: time.Now}
}

// Write renders the document, writes it atomically next to the image, and
// re-parses the result to guarantee well-formed output. Returns the sidecar
// path. ErrExists signals a skip-mode collision; the caller decides whether
// that ends the batch.
func (w *Writer) Write(doc Document) (string, error) {
	path, err := w.outputPath(doc.ImagePath)
	if err != nil {
		return "", err
	}

	xml := w.render(doc)
	tmp := path + ".tmp"
	if err := xml.WriteToFile(tmp); err != nil {
		return "", fmt.Errorf("write sidecar: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("replace sidecar: %w", err)
	}

	if err := validate(path); err != nil {
		return "", err
	}
	return path, nil
}

// outputPath applies the collision policy to the natural sidecar path
// (image path with an .xmp extension).
func (w *Writer) outputPath(imagePath string) (string, error) {
	ext := filepath.Ext(imagePath)
	base := strings.TrimSuffix(imagePath, ext) + ".xmp"

	if _, err := os.Stat(base); errors.Is(err, os.ErrNotExist) {
		return base, nil
	}

	switch w.CollisionMode {
	case "overwrite":
		return base, nil
	case "suffix":
		stem := strings.TrimSuffix(base, ".xmp")
		for n := 1; ; n++ {
			suffix := strings.ReplaceAll(w.SuffixPattern, "{n}", fmt.Sprint(n))
			candidate := stem + suffix + ".xmp"
			if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
				return candidate, nil
			}
		}
	default:
		return "", fmt.Errorf("%w: %s", ErrExists, base)
	}
}

func (w *Writer) render(doc Document) *etree.Document {
	xml := etree.NewDocument()
	xml.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	xml.CreateProcInst("xpacket", `begin="" id="W5M0MpCehiHzreSzNTczkc9d"`)

	meta := xml.CreateElement("x:xmpmeta")
	meta.CreateAttr("xmlns:x", nsX)

	rdf := meta.CreateElement("rdf:RDF")
	rdf.CreateAttr("xmlns:rdf", nsRDF)

	desc := rdf.CreateElement("rdf:Description")
	desc.CreateAttr("rdf:about", "")
	desc.CreateAttr("xmlns:xmp", nsXMP)
	desc.CreateAttr("xmlns:dc", nsDC)
	desc.CreateAttr("xmlns:xmpMM", nsXMPMM)
	desc.CreateAttr("xmlns:stRef", nsStRef)
	desc.CreateAttr("xmlns:Iptc4xmpCore", nsIPTC)
	desc.CreateAttr("xmlns:slx", nsSLX)

	w.addStandardFields(desc, doc)
	addRowFields(desc, doc)
	addProvenance(desc, doc)

	xml.Indent(2)
	return xml
}

func (w *Writer) addStandardFields(desc *etree.Element, doc Document) {
	desc.CreateElement("xmp:CreatorTool").SetText(creatorTool)
	desc.CreateElement("xmp:CreateDate").SetText(w.now().UTC().Format("2006-01-02T15:04:05Z"))

	derived := desc.CreateElement("xmpMM:DerivedFrom")
	derived.CreateElement("stRef:filePath").SetText(filepath.Base(doc.ImagePath))
	derived.CreateElement("stRef:documentID").SetText("sha256:" + doc.ImageSHA256)
	derived.CreateElement("stRef:instanceID").SetText(uuid.NewString())
}

// addRowFields writes each selected field's row value. Creator, copyright,
// description, and title-like fields also land in their standard IPTC or
// Dublin Core homes; everything carries an slx mirror except the pure
// standard ones.
func addRowFields(desc *etree.Element, doc Document) {
	for _, field := range doc.SelectedFields {
		value, ok := doc.Row[field]
		if !ok {
			continue
		}
		normalized := NormalizeFieldName(field)

		switch strings.ToLower(field) {
		case "creator", "byline":
			desc.CreateElement("Iptc4xmpCore:Creator").SetText(value)
			desc.CreateElement("slx:" + normalized).SetText(value)
		case "copyright":
			addLangAlt(desc, "dc:rights", value)
		case "description", "notes":
			addLangAlt(desc, "dc:description", value)
			desc.CreateElement("slx:" + normalized).SetText(value)
		case "title", "slate":
			addLangAlt(desc, "dc:title", value)
		default:
			desc.CreateElement("slx:" + normalized).SetText(value)
		}
	}
}

func addLangAlt(desc *etree.Element, tag, value string) {
	alt := desc.CreateElement(tag).CreateElement("rdf:Alt")
	li := alt.CreateElement("rdf:li")
	li.CreateAttr("xml:lang", "x-default")
	li.SetText(value)
}

func addProvenance(desc *etree.Element, doc Document) {
	desc.CreateElement("slx:csvFileName").SetText(doc.CSVName)
	desc.CreateElement("slx:csvSHA256").SetText("sha256:" + doc.CSVSHA256)
	desc.CreateElement("slx:imageSHA256").SetText("sha256:" + doc.ImageSHA256)
	desc.CreateElement("slx:joinKey").SetText(doc.JoinKey)

	mapping := make(map[string]string, len(doc.SelectedFields))
	for _, field := range doc.SelectedFields {
		mapping[field] = NormalizeFieldName(field)
	}
	desc.CreateElement("slx:fieldMap").SetText(mustJSON(mapping))

	bag := desc.CreateElement("slx:selectedFields").CreateElement("rdf:Bag")
	for _, field := range doc.SelectedFields {
		bag.CreateElement("rdf:li").SetText(field)
	}

	if len(doc.FieldOrder) > 0 {
		desc.CreateElement("slx:fieldOrder").SetText(mustJSON(doc.FieldOrder))
	}
	if len(doc.Positions) > 0 {
		rounded := make(map[string][2]float64, len(doc.Positions))
		for field, p := range doc.Positions {
			rounded[field] = [2]float64{round4(p.X), round4(p.Y)}
		}
		desc.CreateElement("slx:overlayPositions").SetText(mustJSON(rounded))
	}
}

// NormalizeFieldName converts a column name to a lowerCamelCase XML-safe
// token. "Clip Name" becomes "clipName"; an empty result becomes "field".
func NormalizeFieldName(field string) string {
	var cleaned strings.Builder
	for _, r := range field {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			cleaned.WriteRune(r)
		case r == ' ' || r == '\t' || r == '_':
			cleaned.WriteByte(' ')
		}
	}

	parts := strings.Fields(cleaned.String())
	if len(parts) == 0 {
		return "field"
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(parts[0]))
	for _, part := range parts[1:] {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(strings.ToLower(part[1:]))
	}
	return b.String()
}

func validate(path string) error {
	check := etree.NewDocument()
	if err := check.ReadFromFile(path); err != nil {
		return fmt.Errorf("generated sidecar is not well-formed: %w", err)
	}
	return nil
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Only maps and slices of strings/floats reach here.
		panic(err)
	}
	return string(data)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
