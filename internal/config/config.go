// Package config loads CLI configuration from i18nxlsx.toml and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "i18nxlsx.toml"

// EnvPrefix prefixes every environment override, e.g. I18NXLSX_PATHS_NEW.
const EnvPrefix = "I18NXLSX_"

// AppConfig is the complete CLI configuration.
type AppConfig struct {
	Paths    PathsConfig    `toml:"paths" envPrefix:"PATHS_"`
	Workbook WorkbookConfig `toml:"workbook" envPrefix:"WORKBOOK_"`
	Output   OutputConfig   `toml:"output" envPrefix:"OUTPUT_"`
	Import   ImportConfig   `toml:"import" envPrefix:"IMPORT_"`
	Log      LogConfig      `toml:"log" envPrefix:"LOG_"`
}

// PathsConfig holds the working directories.
type PathsConfig struct {
	// New is the authoritative translation tree root.
	New string `toml:"new" env:"NEW"`
	// Old is the baseline used to flag new keys.
	Old string `toml:"old" env:"OLD"`
	// Export receives imported trees and feeds merge.
	Export string `toml:"export" env:"EXPORT"`
	// Merge receives merged trees and the conflict log.
	Merge string `toml:"merge" env:"MERGE"`
	// ExportExcel receives generated workbooks.
	ExportExcel string `toml:"export_excel" env:"EXPORT_EXCEL"`
	// ImportExcel is scanned for edited workbooks.
	ImportExcel string `toml:"import_excel" env:"IMPORT_EXCEL"`
}

// WorkbookConfig controls workbook layout.
type WorkbookConfig struct {
	SummarySheet   string  `toml:"summary_sheet" env:"SUMMARY_SHEET"`
	NewFlagColumn  bool    `toml:"new_flag_column" env:"NEW_FLAG_COLUMN"`
	MaxColumnWidth float64 `toml:"max_column_width" env:"MAX_COLUMN_WIDTH"`
}

// OutputConfig controls how translation trees are written.
type OutputConfig struct {
	// Format is json, yaml or toml.
	Format string `toml:"format" env:"FORMAT"`
}

// ImportConfig controls workbook import.
type ImportConfig struct {
	// Parallelism bounds the number of workbooks parsed at once.
	Parallelism int `toml:"parallelism" env:"PARALLELISM"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `toml:"level" env:"LEVEL"`
	Format string `toml:"format" env:"FORMAT"`
}

// DefaultConfig returns the default configuration, laid out relative to the
// working directory.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Paths: PathsConfig{
			New:         "importLang/new",
			Old:         "importLang/old",
			Export:      "exportLang",
			Merge:       "importLang/merge",
			ExportExcel: "exportExcel",
			ImportExcel: "importExcel",
		},
		Workbook: WorkbookConfig{
			SummarySheet:   "Summary",
			NewFlagColumn:  true,
			MaxColumnWidth: 50,
		},
		Output: OutputConfig{
			Format: "json",
		},
		Import: ImportConfig{
			Parallelism: 4,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, the TOML file at path and
// environment overrides, in that order. An empty path means DefaultFileName,
// which may be absent; an explicit path must exist.
func Load(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *AppConfig) Validate() error {
	if c.Paths.New == "" {
		return errors.New("config: paths.new must be set")
	}
	if c.Import.Parallelism < 1 {
		return fmt.Errorf("config: import.parallelism must be positive, got %d", c.Import.Parallelism)
	}
	switch c.Output.Format {
	case "json", "yaml", "yml", "toml":
	default:
		return fmt.Errorf("config: unsupported output.format %q", c.Output.Format)
	}
	return nil
}

// Save writes the configuration as TOML.
func Save(path string, cfg *AppConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
