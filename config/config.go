// Package config loads the ambient settings that sit outside the
// language core: REPL presentation, diagnostic colorization, and the
// program entry function name. Everything here is a collaborator in
// the sense spec.md §1 excludes from core — the lexer/parser/checker/
// interpreter never import this package.
/*
File   : vellum/config/config.go
*/
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const defaultEntryFunc = "main"

var defaultBanner = `
 __   __     ______     __         __     __  __     __    __
/\ \ / /    /\  ___\   /\ \       /\ \   /\ \/\ \   /\ "-./  \
\ \ \'/     \ \  __\   \ \ \____  \ \ \  \ \ \_\ \  \ \ \-./\ \
 \ \__|      \ \_____\  \ \_____\  \ \_\  \ \_____\  \ \_\ \ \_\
  \/_/        \/_____/   \/_____/   \/_/   \/_____/   \/_/  \/_/
`

// Config holds everything a CLI or REPL session needs that the
// language core itself has no opinion about.
type Config struct {
	EntryFunc string `yaml:"entry_func"`
	Prompt    string `yaml:"prompt"`
	Banner    string `yaml:"banner"`
	Line      string `yaml:"line"`
	Color     bool   `yaml:"color"`
}

// Default returns the built-in configuration used when no
// `.vellum.yaml` file is present and no `-config` flag was given.
func Default() *Config {
	return &Config{
		EntryFunc: defaultEntryFunc,
		Prompt:    "vellum >>> ",
		Banner:    defaultBanner,
		Line:      "----------------------------------------------------------------",
		Color:     true,
	}
}

// Load reads a YAML config file at path, overlaying any fields it sets
// onto Default(). A missing file is not an error — it just yields the
// defaults, so `.vellum.yaml` is always optional.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
