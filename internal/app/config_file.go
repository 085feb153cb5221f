package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// duration accepts human-readable scalars like "45s" or "24h" in the
// config file. Bare integers are taken as nanoseconds.
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, perr := time.ParseDuration(s)
		if perr != nil {
			return fmt.Errorf("invalid duration %q: %w", s, perr)
		}
		*d = duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return err
	}
	*d = duration(n)
	return nil
}

// FileConfig is the optional YAML configuration file schema. Every field
// is optional; set fields override the defaults and are in turn
// overridden by flags.
type FileConfig struct {
	BaseURL string `yaml:"baseURL"`

	Cache struct {
		Dir string   `yaml:"dir"`
		TTL duration `yaml:"ttl"`
	} `yaml:"cache"`

	Fetch struct {
		Timeout     duration `yaml:"timeout"`
		MaxAttempts int      `yaml:"maxAttempts"`
	} `yaml:"fetch"`

	SectionCap int `yaml:"sectionCap"`
	Workers    int `yaml:"workers"`

	Output struct {
		Dir    string `yaml:"dir"`
		Format string `yaml:"format"`
	} `yaml:"output"`

	UseQueryParser bool `yaml:"useQueryParser"`
	Verbose        bool `yaml:"verbose"`
}

// LoadConfigFile reads the YAML file at path. A missing file with
// required=false is not an error and yields a zero FileConfig.
func LoadConfigFile(path string, required bool) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return fc, nil
		}
		return fc, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

// Merge layers fc over base: set file values win over base defaults.
func Merge(base Config, fc FileConfig) Config {
	out := base
	if fc.BaseURL != "" {
		out.BaseURL = fc.BaseURL
	}
	if fc.Cache.Dir != "" {
		out.CacheDir = fc.Cache.Dir
	}
	if fc.Cache.TTL > 0 {
		out.CacheTTL = time.Duration(fc.Cache.TTL)
	}
	if fc.Fetch.Timeout > 0 {
		out.Timeout = time.Duration(fc.Fetch.Timeout)
	}
	if fc.Fetch.MaxAttempts > 0 {
		out.MaxAttempts = fc.Fetch.MaxAttempts
	}
	if fc.SectionCap > 0 {
		out.SectionCap = fc.SectionCap
	}
	if fc.Workers > 0 {
		out.Workers = fc.Workers
	}
	if fc.Output.Dir != "" {
		out.OutputDir = fc.Output.Dir
	}
	if fc.Output.Format != "" {
		out.Format = fc.Output.Format
	}
	if fc.UseQueryParser {
		out.UseQueryParser = true
	}
	if fc.Verbose {
		out.Verbose = true
	}
	return out
}
