package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultConfigPath = ".scssparse.yaml"

// Config is the optional configuration file. Flags set on the command line take precedence.
type Config struct {
	Format      string `yaml:"format"`
	Encoding    string `yaml:"encoding"`
	SourceIndex int    `yaml:"source_index"`
	Debug       bool   `yaml:"debug"`
	NoColor     bool   `yaml:"no_color"`
}

// LoadConfig reads the configuration file at path. A missing file at the default path is not an error.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && path == defaultConfigPath {
		return &Config{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &config, nil
}

// load merges the configuration file into the options and sets up the logger.
func (opts *options) load(cmd *cobra.Command) error {
	config, err := LoadConfig(opts.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("format") && config.Format != "" {
		opts.format = config.Format
	}
	if !flags.Changed("encoding") && config.Encoding != "" {
		opts.encoding = config.Encoding
	}
	if !flags.Changed("source-index") && config.SourceIndex != 0 {
		opts.sourceIndex = config.SourceIndex
	}
	if !flags.Changed("debug") {
		opts.debug = opts.debug || config.Debug
	}
	if !flags.Changed("no-color") {
		opts.noColor = opts.noColor || config.NoColor
	}

	switch opts.format {
	case "tree", "yaml", "stats":
	default:
		return fmt.Errorf("unknown format %q, expected tree, yaml or stats", opts.format)
	}

	opts.log = zap.NewNop()
	if opts.debug {
		if opts.log, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}
	return nil
}
