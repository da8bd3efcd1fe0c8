// Package config loads optional run configuration for nbheader from a TOML or
// YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the settings a config file may provide. Pointer fields are nil
// when the file does not set them.
type Config struct {
	Header      string `toml:"header" yaml:"header"`
	NotebookDir string `toml:"notebook_dir" yaml:"notebook_dir"`
	Extension   string `toml:"extension" yaml:"extension"`
	Atomic      *bool  `toml:"atomic" yaml:"atomic"`
	RenewIDs    *bool  `toml:"renew_ids" yaml:"renew_ids"`
}

// Load reads a config file. The format follows the file extension
// (.toml, .yaml or .yml). Relative paths are resolved against the directory
// of the config file.
func Load(path string) (Config, error) {
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := loadToml(path, &cfg); err != nil {
			return Config{}, err
		}
	case ".yaml", ".yml":
		if err := loadYaml(path, &cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("config %s: unsupported format (want .toml, .yaml or .yml)", path)
	}

	base := filepath.Dir(path)
	cfg.Header = resolve(base, cfg.Header)
	cfg.NotebookDir = resolve(base, cfg.NotebookDir)
	cfg.Extension = strings.TrimSpace(cfg.Extension)

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func loadToml(path string, out *Config) error {
	meta, err := toml.DecodeFile(path, out)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}
	return nil
}

func loadYaml(path string, out *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		// An empty file is an empty config.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func resolve(base, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Validate checks the values a config file set.
func Validate(cfg Config) error {
	if cfg.Extension != "" && (!strings.HasPrefix(cfg.Extension, ".") || len(cfg.Extension) < 2) {
		return fmt.Errorf("extension %q must start with a dot", cfg.Extension)
	}
	return nil
}
