// Package csvexport renders JSON-shaped records as the CSV files offered for
// download in the admin area.
//
// The dialect is deliberately loose: quotes are always doubled, but a field
// is only wrapped in quotes when it contains a comma or a newline.
package csvexport

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

var ErrNoData = errors.New("no data to export")

// Encode marshals items (a slice of structs or maps) to JSON and writes one
// CSV line per element. Columns follow the keys of the first element in
// their marshalled order.
func Encode(items any) ([]byte, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export rows: %w", err)
	}

	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		return nil, fmt.Errorf("export rows must be a list, got %s", doc.Type)
	}
	rows := doc.Array()
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	var headers []string
	rows[0].ForEach(func(key, _ gjson.Result) bool {
		headers = append(headers, key.String())
		return true
	})

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(headers, ","))
	for _, row := range rows {
		fields := make(map[string]gjson.Result, len(headers))
		row.ForEach(func(key, value gjson.Result) bool {
			fields[key.String()] = value
			return true
		})

		cells := make([]string, len(headers))
		for i, h := range headers {
			cells[i] = escape(render(fields[h]))
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	return []byte(strings.Join(lines, "\n")), nil
}

func render(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return v.String()
	case gjson.JSON, gjson.Number:
		return v.Raw
	default:
		return v.String()
	}
}

func escape(s string) string {
	s = strings.ReplaceAll(s, `"`, `""`)
	if strings.ContainsAny(s, ",\n") {
		return `"` + s + `"`
	}
	return s
}

// Filename returns "<name>_<YYYY-MM-DD>.csv" for the UTC date of now
func Filename(name string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", name, now.UTC().Format("2006-01-02"))
}
