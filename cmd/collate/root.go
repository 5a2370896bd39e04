package main

import (
	"context"
	"fmt"

	"github.com/Comcast/collate/compare"
	"github.com/Comcast/collate/config"
	"github.com/Comcast/collate/storage"
	"github.com/Comcast/collate/storage/bolt"
	"github.com/Comcast/collate/tools"
	"github.com/Comcast/collate/util"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds what the commands share.
type app struct {
	cfgFile string
	cfg     config.Config

	// by are compact criteria like "-age:integer".
	by []string

	// criteriaFile is a profile file (see tools.ReadProfileFile).
	criteriaFile string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "collate",
		Short: "Sort and compare records by typed criteria",
		Long: `Sort and compare records (JSON, YAML, CSV, or XLSX) using an
ordered list of criteria.  Each criterion names a key, a type
(object, string, integer, decimal, datetime, duration, boolean),
an optional pattern, and a direction.

Settings come from flags, COLLATE_* environment variables, and an
optional collate.yaml.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			util.Logging = cfg.Logging
			if cfg.Logging {
				l, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				util.SetLogger(l)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./collate.yaml if present)")
	pf.String("db", config.Default().DB, "bolt file that holds profiles")
	pf.BoolP("verbose", "v", false, "debug logging")

	root.AddCommand(
		a.sortCmd(),
		a.compareCmd(),
		a.criteriaCmd(),
		a.profileCmd(),
	)

	return root
}

// addCriteriaFlags adds the flags that say how to compare.
func (a *app) addCriteriaFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringArrayVar(&a.by, "by", nil, "criterion as [-]key[:type[:pattern]] (repeatable)")
	fs.StringVarP(&a.criteriaFile, "criteria", "c", "", "file with criteria (YAML or JSON)")
	fs.String("profile", "", "name of a stored profile")
}

// resolve finds the Criteria to use.  In order of precedence: --by,
// --criteria, --profile, then the config file's criteria.
func (a *app) resolve(ctx context.Context) (*storage.Profile, error) {
	switch {
	case len(a.by) > 0:
		p := &storage.Profile{}
		for _, s := range a.by {
			c, err := compare.ParseCriterion(s)
			if err != nil {
				return nil, fmt.Errorf("--by %q: %w", s, err)
			}
			p.Criteria = append(p.Criteria, c)
		}
		return p, nil

	case a.criteriaFile != "":
		p, err := tools.ReadProfileFile(a.criteriaFile)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", a.criteriaFile, err)
		}
		return p, nil

	case a.cfg.Profile != "":
		var p *storage.Profile
		err := a.withStorage(ctx, func(s storage.Storage) error {
			var err error
			p, err = s.Get(ctx, a.cfg.Profile)
			return err
		})
		return p, err

	case len(a.cfg.Criteria) > 0:
		return &storage.Profile{Criteria: a.cfg.Criteria}, nil

	default:
		return nil, fmt.Errorf("no criteria: use --by, --criteria, or --profile")
	}
}

// withStorage opens the profile database for the duration of f.
func (a *app) withStorage(ctx context.Context, f func(storage.Storage) error) error {
	s, err := bolt.NewStorage(a.cfg.DB)
	if err != nil {
		return err
	}
	s.Debug = a.cfg.Logging
	if err = s.Open(ctx); err != nil {
		return fmt.Errorf("opening %s: %w", a.cfg.DB, err)
	}
	err = f(s)
	if cerr := s.Close(ctx); err == nil {
		err = cerr
	}
	return err
}
