package tools

import (
	"fmt"
	"html"
	"io"

	"github.com/Comcast/collate/record"
	"github.com/Comcast/collate/storage"
	. "github.com/Comcast/collate/util/testutil"

	md "github.com/russross/blackfriday/v2"
)

// RenderProfileHTML writes an HTML fragment showing the profile's doc
// (as Markdown) and a table of its criteria.
func RenderProfileHTML(p *storage.Profile, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	if p.Doc != "" {
		f(`<div class="profileDoc doc">%s</div>`, md.Run([]byte(p.Doc)))
	}

	f(`<div class="criteria"><table>`)
	f(`<tr><th></th><th>key</th><th>type</th><th>pattern</th><th>order</th></tr>`)
	for i, c := range p.Criteria {
		order := "ascending"
		if c.Descending() {
			order = "descending"
		}
		f(`<tr class="criterion"><td class="criterionNum">%d</td><td><code>%s</code></td><td>%s</td><td><code>%s</code></td><td>%s</td></tr>`,
			i, html.EscapeString(c.Field()), c.Type(), html.EscapeString(c.Pattern()), order)
	}
	f(`</table></div>`)

	return nil
}

// RenderRecordsHTML writes the records as an HTML table.  The columns
// are the keys in the order they were first seen.
func RenderRecordsHTML(rs []*record.Record, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	cols := record.Columns(rs)

	f(`<div class="records"><table>`)
	f(`<tr>`)
	for _, col := range cols {
		f(`<th>%s</th>`, html.EscapeString(col))
	}
	f(`</tr>`)
	for _, r := range rs {
		f(`<tr class="record">`)
		for _, col := range cols {
			v, have := r.Get(col)
			if !have || v == nil {
				f(`<td></td>`)
				continue
			}
			f(`<td>%s</td>`, html.EscapeString(cell(v)))
		}
		f(`</tr>`)
	}
	f(`</table></div>`)

	return nil
}

func cell(v interface{}) string {
	switch vv := v.(type) {
	case string:
		return vv
	case *record.Record, []interface{}, map[string]interface{}:
		return JS(vv)
	default:
		return fmt.Sprint(vv)
	}
}

// RenderPage writes a standalone HTML page for the profile and,
// optionally, some records sorted by it.  The profile can be nil.
func RenderPage(p *storage.Profile, rs []*record.Record, out io.Writer, cssFiles []string) error {

	if cssFiles == nil {
		cssFiles = []string{"/static/collate.css"}
	}

	title := "records"
	if p != nil && p.Name != "" {
		title = p.Name
	}
	title = html.EscapeString(title)

	fmt.Fprintf(out, `<!DOCTYPE html>
<meta charset="utf-8">
<html>
  <head>
  <title>%s</title>
`, title)

	for _, cssFile := range cssFiles {
		fmt.Fprintf(out, "  <link href=\"%s\" rel=\"stylesheet\">\n", cssFile)
	}

	fmt.Fprintf(out, `
  </head>
  <body>
    <h1>%s</h1>
`, title)

	if p != nil {
		if err := RenderProfileHTML(p, out); err != nil {
			return err
		}
	}

	if rs != nil {
		if err := RenderRecordsHTML(rs, out); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, `
  </body>
</html>
`)

	return nil
}

// ReadAndRenderProfilePage reads a profile file (see ReadProfileFile)
// and renders it with RenderPage.
func ReadAndRenderProfilePage(filename string, cssFiles []string, out io.Writer) error {
	p, err := ReadProfileFile(filename)
	if err != nil {
		return err
	}
	return RenderPage(p, nil, out, cssFiles)
}
