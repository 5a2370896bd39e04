package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

func (a *app) criteriaCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "criteria",
		Short: "Show the criteria that would be used",
		Long: `Show the criteria (from --by, --criteria, --profile, or the config)
in their normalized serialized form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.resolve(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(p.Criteria)
			}
			bs, err := yaml.Marshal(p.Criteria)
			if err != nil {
				return err
			}
			_, err = out.Write(bs)
			return err
		},
	}
	a.addCriteriaFlags(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "write JSON instead of YAML")
	return cmd
}
