package main

import (
	"fmt"

	"github.com/Comcast/collate/storage"
	"github.com/Comcast/collate/tools"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

func (a *app) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage stored profiles",
		Long: `A profile is a named, documented list of criteria kept in the bolt
file given by --db.

Available subcommands:
  save - Store a profile from a YAML or JSON file
  show - Print a profile
  list - List profile names
  rm   - Remove a profile`,
	}
	cmd.AddCommand(
		a.profileSaveCmd(),
		a.profileShowCmd(),
		a.profileListCmd(),
		a.profileRmCmd(),
	)
	return cmd
}

func (a *app) profileSaveCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "save FILE",
		Short: "Store a profile from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := tools.ReadProfileFile(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if name != "" {
				p.Name = name
			}
			if p.Name == "" {
				return fmt.Errorf("%s has no name; use --name", args[0])
			}
			ctx := cmd.Context()
			return a.withStorage(ctx, func(s storage.Storage) error {
				return s.Put(ctx, p)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "profile name (overrides the file's)")
	return cmd
}

func (a *app) profileShowCmd() *cobra.Command {
	var html bool
	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Print a profile as YAML or HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var p *storage.Profile
			err := a.withStorage(ctx, func(s storage.Storage) error {
				var err error
				p, err = s.Get(ctx, args[0])
				return err
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if html {
				return tools.RenderPage(p, nil, out, nil)
			}
			bs, err := yaml.Marshal(p)
			if err != nil {
				return err
			}
			_, err = out.Write(bs)
			return err
		},
	}
	cmd.Flags().BoolVar(&html, "html", false, "render an HTML page")
	return cmd
}

func (a *app) profileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profile names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return a.withStorage(ctx, func(s storage.Storage) error {
				names, err := s.List(ctx)
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}
}

func (a *app) profileRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm NAME",
		Short: "Remove a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return a.withStorage(ctx, func(s storage.Storage) error {
				return s.Delete(ctx, args[0])
			})
		},
	}
}
