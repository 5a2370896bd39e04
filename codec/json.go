package codec

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Comcast/collate/record"

	"gopkg.in/yaml.v2"
)

func readJSON(r io.Reader) ([]*record.Record, error) {
	in := bufio.NewReader(r)

	// An array or a stream of objects?
	var first byte
	for {
		b, err := in.ReadByte()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if b != ' ' && b != '\t' && b != '\r' && b != '\n' {
			first = b
			in.UnreadByte()
			break
		}
	}

	dec := json.NewDecoder(in)

	if first == '[' {
		var rs []*record.Record
		if err := dec.Decode(&rs); err != nil {
			return nil, err
		}
		for i, r := range rs {
			if r == nil {
				return nil, fmt.Errorf("record %d is null", i)
			}
		}
		return rs, nil
	}

	acc := make([]*record.Record, 0, 32)
	for {
		var r record.Record
		err := dec.Decode(&r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(acc), err)
		}
		acc = append(acc, &r)
	}
	return acc, nil
}

func writeJSON(w io.Writer, rs []*record.Record, o Options) error {
	if rs == nil {
		rs = []*record.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if o.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(rs)
}

func readYAML(r io.Reader) ([]*record.Record, error) {
	var rs []*record.Record
	if err := yaml.NewDecoder(r).Decode(&rs); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	for i, r := range rs {
		if r == nil {
			return nil, fmt.Errorf("record %d is null", i)
		}
	}
	return rs, nil
}

func writeYAML(w io.Writer, rs []*record.Record) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(rs); err != nil {
		return err
	}
	return enc.Close()
}
