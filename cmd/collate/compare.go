package main

import (
	"encoding/json"
	"fmt"

	"github.com/Comcast/collate/record"

	"github.com/spf13/cobra"
)

func (a *app) compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare A B",
		Short: "Compare two JSON records",
		Long: `Compare two records given as JSON objects.  Prints -1, 0, or 1
as A is less than, equal to, or greater than B.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.resolve(cmd.Context())
			if err != nil {
				return err
			}
			var rs [2]record.Record
			for i, js := range args {
				if err := json.Unmarshal([]byte(js), &rs[i]); err != nil {
					return fmt.Errorf("record %d: %w", i+1, err)
				}
			}
			n, err := p.Comparator().Compare(&rs[0], &rs[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	a.addCriteriaFlags(cmd)
	return cmd
}
