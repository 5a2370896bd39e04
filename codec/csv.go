package codec

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"

	"github.com/Comcast/collate/record"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

func readCSV(r io.Reader) ([]*record.Record, error) {
	in := bufio.NewReader(r)
	if prefix, err := in.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = in.Discard(len(byteOrderMark))
	}

	cr := csv.NewReader(in)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return fromRows(rows)
}

func writeCSV(w io.Writer, rs []*record.Record) error {
	if len(rs) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	for _, row := range toRows(rs, text) {
		ss := make([]string, len(row))
		for i, v := range row {
			ss[i] = v.(string)
		}
		if err := cw.Write(ss); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
