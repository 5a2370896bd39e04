package codec

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Comcast/collate/record"

	"github.com/spf13/cast"
)

// fromRows turns a header row and data rows into records.  Blank rows
// are skipped, and short rows just lack the trailing keys.
func fromRows(rows [][]string) ([]*record.Record, error) {
	var header []string
	acc := make([]*record.Record, 0, len(rows))
	for i, row := range rows {
		if blankRow(row) {
			continue
		}
		if header == nil {
			h, err := headers(row)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			header = h
			continue
		}
		if len(header) < len(row) {
			return nil, fmt.Errorf("row %d has %d cells but there are only %d columns", i+1, len(row), len(header))
		}
		r := record.New()
		for j, v := range row {
			r.Set(header[j], v)
		}
		acc = append(acc, r)
	}
	return acc, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// headers trims the header cells and names any blank ones after their
// column.
func headers(row []string) ([]string, error) {
	acc := make([]string, len(row))
	seen := make(map[string]bool, len(row))
	for i, h := range row {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		if seen[h] {
			return nil, fmt.Errorf("duplicate column %q", h)
		}
		seen[h] = true
		acc[i] = h
	}
	return acc, nil
}

// toRows gives a header row (the columns in first-seen order) and a
// row of cells for each record.
func toRows(rs []*record.Record, cell func(interface{}) interface{}) [][]interface{} {
	cols := record.Columns(rs)
	acc := make([][]interface{}, 0, len(rs)+1)

	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	acc = append(acc, header)

	for _, r := range rs {
		row := make([]interface{}, len(cols))
		for i, c := range cols {
			v, _ := r.Get(c)
			row[i] = cell(v)
		}
		acc = append(acc, row)
	}
	return acc
}

// text renders a value for a cell.  Nested records and arrays become
// JSON.
func text(v interface{}) interface{} {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	case time.Time:
		return vv.Format(time.RFC3339Nano)
	case *record.Record, []interface{}, map[string]interface{}:
		js, err := json.Marshal(vv)
		if err != nil {
			return fmt.Sprint(vv)
		}
		return string(js)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}
