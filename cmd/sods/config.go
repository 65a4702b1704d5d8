package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the flags that may also be set from a YAML file.
type fileConfig struct {
	MaxRepeat int    `yaml:"max_repeat"`
	Locale    string `yaml:"locale"`
	Pretty    bool   `yaml:"pretty"`
	Verbose   bool   `yaml:"verbose"`
}

// loadConfig reads a YAML config file. An empty path yields the zero config.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// override applies the flags given on the command line.
func (c *fileConfig) override(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("max-repeat") {
		c.MaxRepeat = maxRepeat
	}
	if flags.Changed("locale") {
		c.Locale = locale
	}
	if flags.Changed("pretty") {
		c.Pretty = pretty
	}
	if flags.Changed("verbose") {
		c.Verbose = verbose
	}
}
