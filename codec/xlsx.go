package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Comcast/collate/record"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

func readXLSX(r io.Reader, o Options) ([]*record.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("xlsx file has no sheets")
	}

	sheet := sheets[0]
	if o.Sheet != "" {
		sheet = ""
		for _, s := range sheets {
			if s == o.Sheet {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("no sheet %q in %v", o.Sheet, sheets)
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %q: %w", sheet, err)
	}
	return fromRows(rows)
}

func writeXLSX(w io.Writer, rs []*record.Record, o Options) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := defaultSheet
	if o.Sheet != "" && o.Sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, o.Sheet); err != nil {
			return err
		}
		sheet = o.Sheet
	}

	for i, row := range toRows(rs, spreadsheetCell) {
		at, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(sheet, at, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// spreadsheetCell keeps numbers, booleans, and times typed so the
// spreadsheet treats them as such.
func spreadsheetCell(v interface{}) interface{} {
	switch vv := v.(type) {
	case nil:
		return nil
	case bool, string, time.Time,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return vv
	case json.Number:
		if n, err := vv.Int64(); err == nil {
			return n
		}
		if x, err := vv.Float64(); err == nil {
			return x
		}
		return string(vv)
	default:
		return text(v)
	}
}
