package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config is the YAML form of the global flags. Unset fields leave the flag
// defaults alone, and flags given on the command line always win.
type Config struct {
	Workers  *int    `yaml:"workers"`
	Stages   *int    `yaml:"stages"`
	Progress *bool   `yaml:"progress"`
	Format   *string `yaml:"format"`
	Verbose  *bool   `yaml:"verbose"`
}

// LoadConfig reads a YAML config file. Unknown keys are rejected; an empty
// file is an empty config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &cfg, nil
}

// Apply copies every value set in the file onto opts, skipping flags that
// were given explicitly on cmd.
func (c *Config) Apply(cmd *cobra.Command, opts *RootOptions) {
	flags := cmd.Flags()

	if c.Workers != nil && !flags.Changed("workers") {
		opts.Workers = *c.Workers
	}
	if c.Stages != nil && !flags.Changed("stages") {
		opts.Stages = *c.Stages
	}
	if c.Progress != nil && !flags.Changed("progress") {
		opts.Progress = *c.Progress
	}
	if c.Format != nil && !flags.Changed("format") {
		opts.Format = *c.Format
	}
	if c.Verbose != nil && !flags.Changed("verbose") {
		opts.Verbose = *c.Verbose
	}
}
