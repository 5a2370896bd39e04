/* Copyright 2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package codec reads and writes sets of records in a few formats.
package codec

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Comcast/collate/record"
	"github.com/Comcast/collate/tools"
	"github.com/Comcast/collate/util"
)

// Format names a record file format.
type Format string

const (
	// JSON is an array of objects.  When reading, a stream of
	// objects (like JSON Lines) is also accepted.
	JSON Format = "json"

	// YAML is a sequence of mappings.
	YAML Format = "yaml"

	// CSV has a header row that gives the keys.  All values are
	// strings.
	CSV Format = "csv"

	// XLSX is a spreadsheet with a header row, like CSV.
	XLSX Format = "xlsx"

	// HTML can only be written.
	HTML Format = "html"
)

// ErrUnsupportedFormat occurs for unknown formats and for reading
// HTML.
var ErrUnsupportedFormat = errors.New("unsupported format")

var formatNames = map[string]Format{
	"json":  JSON,
	"jsonl": JSON,
	"yaml":  YAML,
	"yml":   YAML,
	"csv":   CSV,
	"xlsx":  XLSX,
	"html":  HTML,
	"htm":   HTML,
}

// ParseFormat recognizes a format name (case-insensitive) or a common
// file extension.
func ParseFormat(s string) (Format, error) {
	f, have := formatNames[strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))]
	if !have {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
	return f, nil
}

// FormatFromFilename guesses the format from a file's extension.
func FormatFromFilename(filename string) (Format, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		return "", fmt.Errorf("%w: no extension on %q", ErrUnsupportedFormat, filename)
	}
	return ParseFormat(ext)
}

// Options adjust reading and writing.
type Options struct {
	// Sheet is the XLSX worksheet to read or write.  The default
	// is the first sheet when reading and "Sheet1" when writing.
	Sheet string

	// Pretty indents JSON output.
	Pretty bool
}

// Read reads all the records in the given format.
func Read(r io.Reader, f Format, o Options) ([]*record.Record, error) {
	var (
		rs  []*record.Record
		err error
	)
	switch f {
	case JSON:
		rs, err = readJSON(r)
	case YAML:
		rs, err = readYAML(r)
	case CSV:
		rs, err = readCSV(r)
	case XLSX:
		rs, err = readXLSX(r, o)
	default:
		return nil, fmt.Errorf("%w: can't read %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f, err)
	}
	util.Logf("codec: read %d %s records", len(rs), f)
	return rs, nil
}

// Write writes the records in the given format.
func Write(w io.Writer, f Format, rs []*record.Record, o Options) error {
	var err error
	switch f {
	case JSON:
		err = writeJSON(w, rs, o)
	case YAML:
		err = writeYAML(w, rs)
	case CSV:
		err = writeCSV(w, rs)
	case XLSX:
		err = writeXLSX(w, rs, o)
	case HTML:
		err = tools.RenderPage(nil, rs, w, nil)
	default:
		return fmt.Errorf("%w: can't write %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", f, err)
	}
	util.Logf("codec: wrote %d %s records", len(rs), f)
	return nil
}
