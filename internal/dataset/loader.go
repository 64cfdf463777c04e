package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// delimiter candidates tried during sniffing, in preference order for ties.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// LoadResult is a parsed table plus the decode diagnostics callers surface
// in status output.
type LoadResult struct {
	Table            Table
	Path             string
	Encoding         string
	Delimiter        rune
	EncodingFallback bool
}

// Load reads and parses a delimited file with encoding and delimiter
// detection. Decode order: UTF-8, UTF-8 with BOM, Latin-1. Anything past
// plain UTF-8 sets EncodingFallback.
func Load(path string) (*LoadResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	content, encoding, fallback, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", path, err)
	}

	delimiter := DetectDelimiter(content)
	table, err := parse(content, delimiter)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	return &LoadResult{
		Table:            table,
		Path:             path,
		Encoding:         encoding,
		Delimiter:        delimiter,
		EncodingFallback: fallback,
	}, nil
}

func decode(raw []byte) (string, string, bool, error) {
	if bytes.HasPrefix(raw, utf8BOM) {
		stripped := raw[len(utf8BOM):]
		if utf8.Valid(stripped) {
			return string(stripped), "utf-8-sig", true, nil
		}
	} else if utf8.Valid(raw) {
		return string(raw), "utf-8", false, nil
	}

	decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		return "", "", false, err
	}
	return string(decoded), "latin-1", true, nil
}

// DetectDelimiter picks the delimiter occurring most often across the first
// few lines, outside quoted regions. Defaults to comma.
func DetectDelimiter(content string) rune {
	lines := strings.Split(content, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	sample := strings.Join(lines, "\n")

	counts := make(map[rune]int, len(delimiterCandidates))
	inQuotes := false
	for _, r := range sample {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		for _, candidate := range delimiterCandidates {
			if r == candidate {
				counts[r]++
				break
			}
		}
	}

	best := ','
	bestCount := 0
	for _, candidate := range delimiterCandidates {
		if counts[candidate] > bestCount {
			best = candidate
			bestCount = counts[candidate]
		}
	}
	return best
}

func parse(content string, delimiter rune) (Table, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return Table{}, nil
		}
		return Table{}, err
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, err
		}
		row := make(Row, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = record[i]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return Table{Headers: headers, Rows: rows}, nil
}

// AutoFind locates a dataset file next to an image: first a CSV sharing the
// image's stem, then the lexically first CSV in the directory. Returns ""
// when nothing qualifies.
func AutoFind(imagePath string) string {
	dir := filepath.Dir(imagePath)
	stem := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))

	sameName := filepath.Join(dir, stem+".csv")
	if info, err := os.Stat(sameName); err == nil && !info.IsDir() {
		return sameName
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[0]
}
