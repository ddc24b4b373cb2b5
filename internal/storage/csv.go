// Package storage reads and writes the pipeline's flat CSV datasets. Files
// are dated and versioned (_v2, _v3, ...) instead of overwritten, and
// written with a UTF-8 BOM so spreadsheet tools open the Spanish text
// correctly.
package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// Table is one CSV dataset: an ordered header plus one map per row.
// Columns a row does not carry serialize as empty fields.
type Table struct {
	Header []string
	Rows   []map[string]string
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NextFreePath returns path itself when unused, otherwise the first
// path_vN variant that does not exist yet.
func NextFreePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	base := path[:len(path)-len(ext)]
	for i := 2; ; i++ {
		cand := fmt.Sprintf("%s_v%d%s", base, i, ext)
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			return cand
		}
	}
}

var fileDateRe = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)

// ResolveLatest finds the freshest dataset matching todayGlob in any of
// the directories; failing that, the newest file matching fallbackGlob by
// embedded date then modification time.
func ResolveLatest(dirs []string, todayGlob, fallbackGlob string) (string, error) {
	globAll := func(pattern string) []string {
		var out []string
		for _, d := range dirs {
			matches, err := filepath.Glob(filepath.Join(d, pattern))
			if err == nil {
				out = append(out, matches...)
			}
		}
		return out
	}

	if today := globAll(todayGlob); len(today) > 0 {
		sort.Slice(today, func(i, j int) bool { return mtime(today[i]) < mtime(today[j]) })
		return today[len(today)-1], nil
	}

	candidates := globAll(fallbackGlob)
	if len(candidates) == 0 {
		return "", fmt.Errorf("no CSV matching %q or %q under %v", todayGlob, fallbackGlob, dirs)
	}
	sort.Slice(candidates, func(i, j int) bool {
		di, dj := embeddedDate(candidates[i]), embeddedDate(candidates[j])
		if di != dj {
			return di < dj
		}
		return mtime(candidates[i]) < mtime(candidates[j])
	})
	return candidates[len(candidates)-1], nil
}

func embeddedDate(path string) string {
	if m := fileDateRe.FindString(filepath.Base(path)); m != "" {
		return m
	}
	return "0000-00-00"
}

func mtime(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.ModTime().UnixNano()
}

// WriteTable writes the table to path, creating parent directories.
func WriteTable(path string, t *Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	record := make([]string, len(t.Header))
	for _, row := range t.Rows {
		for i, col := range t.Header {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// ReadTable loads a CSV written by WriteTable (BOM tolerated) into a Table.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	header := records[0]
	if len(header) > 0 && len(header[0]) >= 3 && header[0][:3] == string(utf8BOM) {
		header[0] = header[0][3:]
	}

	t := &Table{Header: header}
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

var fechaColRe = regexp.MustCompile(`^Fecha (\d+)$`)

// MaxScheduleIndex returns the highest N for which any row carries a
// "Fecha N" column.
func MaxScheduleIndex(rows []map[string]string) int {
	max := 0
	for _, row := range rows {
		for k := range row {
			if m := fechaColRe.FindStringSubmatch(k); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil && n > max {
					max = n
				}
			}
		}
	}
	return max
}
