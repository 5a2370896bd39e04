// Package config loads settings for the command-line tools from a
// config file, COLLATE_* environment variables, and flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Comcast/collate/compare"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, so COLLATE_DB
// sets "db".
const EnvPrefix = "COLLATE"

// Config holds the settings.
type Config struct {
	// DB is the bolt file that holds profiles.
	DB string

	// Format is the input format.  Empty means guess from the
	// filename.
	Format string

	// Output is the output format.  Empty means the same as the
	// input.
	Output string

	// Sheet is the XLSX worksheet.
	Sheet string

	// Workers is the number of goroutines used for sorting.
	Workers int

	Logging bool

	// Profile names a stored profile to sort by.
	Profile string

	// Criteria come from the config file's "criteria" list.
	Criteria []*compare.Criterion
}

// flagNames maps settings to the flags that can override them.
// Criteria only come from the config file.
var flagNames = map[string]string{
	"db":      "db",
	"format":  "format",
	"output":  "output",
	"sheet":   "sheet",
	"workers": "workers",
	"profile": "profile",
	"logging": "verbose",
}

// Default returns the defaults.
func Default() Config {
	return Config{
		DB:      "collate.db",
		Workers: 1,
	}
}

// Load reads the configuration.
//
// If filename is empty, Load looks for an optional collate.yaml (or
// .json, .toml) in the working directory.  Flags that were actually
// given override everything else; the "verbose" flag sets "logging".
func Load(filename string, flags *pflag.FlagSet) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetDefault("db", cfg.DB)
	v.SetDefault("format", "")
	v.SetDefault("output", "")
	v.SetDefault("sheet", "")
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("logging", false)
	v.SetDefault("profile", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagNames {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return cfg, err
			}
		}
	}

	if filename != "" {
		v.SetConfigFile(filename)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", filename, err)
		}
	} else {
		v.SetConfigName("collate")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return cfg, err
			}
		}
	}

	cfg.DB = v.GetString("db")
	cfg.Format = v.GetString("format")
	cfg.Output = v.GetString("output")
	cfg.Sheet = v.GetString("sheet")
	cfg.Profile = v.GetString("profile")
	cfg.Logging = v.GetBool("logging")

	workers, err := cast.ToIntE(v.Get("workers"))
	if err != nil {
		return cfg, fmt.Errorf("config workers: %w", err)
	}
	if workers < 1 {
		workers = 1
	}
	cfg.Workers = workers

	if v.IsSet("criteria") {
		specs, err := cast.ToSliceE(v.Get("criteria"))
		if err != nil {
			return cfg, fmt.Errorf("config criteria: %w", err)
		}
		if cfg.Criteria, err = compare.FromRecords(specs); err != nil {
			return cfg, fmt.Errorf("config criteria: %w", err)
		}
	}

	return cfg, nil
}
