package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Comcast/collate/codec"
	"github.com/Comcast/collate/compare"
	"github.com/Comcast/collate/record"
	"github.com/Comcast/collate/tools"

	"github.com/spf13/cobra"
)

func (a *app) sortCmd() *cobra.Command {
	var (
		write  string
		pretty bool
		check  bool
	)

	cmd := &cobra.Command{
		Use:   "sort [file]",
		Short: "Sort records",
		Long: `Sort the records in the file (or on stdin) and write them out.

The sort is stable.  If any value can't be parsed according to its
criterion, nothing is written and the error names the criterion.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			p, err := a.resolve(ctx)
			if err != nil {
				return err
			}
			c := p.Comparator()

			filename := ""
			if 0 < len(args) {
				filename = args[0]
			}
			rs, in, err := a.readRecords(cmd, filename)
			if err != nil {
				return err
			}

			if check {
				sorted, err := compare.IsSorted(c, rs)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), sorted)
				return nil
			}

			if err = compare.SortConcurrently(ctx, c, rs, a.cfg.Workers); err != nil {
				return err
			}

			out, err := a.outputFormat(in, write)
			if err != nil {
				return err
			}

			// Buffer so that nothing is written on failure.
			var buf bytes.Buffer
			if out == codec.HTML {
				err = tools.RenderPage(p, rs, &buf, nil)
			} else {
				err = codec.Write(&buf, out, rs, codec.Options{
					Sheet:  a.cfg.Sheet,
					Pretty: pretty,
				})
			}
			if err != nil {
				return err
			}

			if write == "" {
				_, err = buf.WriteTo(cmd.OutOrStdout())
				return err
			}
			return os.WriteFile(write, buf.Bytes(), 0644)
		},
	}

	a.addCriteriaFlags(cmd)
	fs := cmd.Flags()
	fs.StringP("format", "f", "", "input format (default: by extension, or json on stdin)")
	fs.StringP("output", "o", "", "output format (default: by --write extension, or the input format)")
	fs.String("sheet", "", "XLSX worksheet")
	fs.Int("workers", 1, "goroutines used for sorting")
	fs.StringVar(&write, "write", "", "write to this file instead of stdout")
	fs.BoolVar(&pretty, "pretty", false, "indent JSON output")
	fs.BoolVar(&check, "check", false, "just report whether the records are already sorted")

	return cmd
}

// readRecords reads from the named file or, if the name is empty or
// "-", stdin.
func (a *app) readRecords(cmd *cobra.Command, filename string) ([]*record.Record, codec.Format, error) {
	var (
		f   codec.Format
		err error
	)
	switch {
	case a.cfg.Format != "":
		f, err = codec.ParseFormat(a.cfg.Format)
	case filename == "" || filename == "-":
		f = codec.JSON
	default:
		f, err = codec.FormatFromFilename(filename)
	}
	if err != nil {
		return nil, "", err
	}

	var in io.Reader = cmd.InOrStdin()
	if filename != "" && filename != "-" {
		file, err := os.Open(filename)
		if err != nil {
			return nil, "", err
		}
		defer file.Close()
		in = file
	}

	rs, err := codec.Read(in, f, codec.Options{Sheet: a.cfg.Sheet})
	if err != nil {
		return nil, "", err
	}
	return rs, f, nil
}

func (a *app) outputFormat(in codec.Format, write string) (codec.Format, error) {
	switch {
	case a.cfg.Output != "":
		return codec.ParseFormat(a.cfg.Output)
	case write != "":
		if f, err := codec.FormatFromFilename(write); err == nil {
			return f, nil
		}
	}
	return in, nil
}
