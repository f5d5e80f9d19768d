package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"

	"github.com/fwojciec/readerize"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the config file read from the working directory.
const DefaultConfigPath = ".readerize.yaml"

// Config holds settings read from the YAML config file. Command-line flags
// take precedence over it.
type Config struct {
	PositiveKeywords     []string `yaml:"positive_keywords"`
	NegativeKeywords     []string `yaml:"negative_keywords"`
	MinArticleLength     int      `yaml:"min_article_length"`
	MinArticlePercentage float64  `yaml:"min_article_percentage"`
	MaxPages             int      `yaml:"max_pages"`
	UserAgent            string   `yaml:"user_agent"`
}

// LoadConfig reads the config file at path. A missing file yields an empty
// Config unless required is set. Unknown keys are rejected.
func LoadConfig(path string, required bool) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, readerize.Errorf(readerize.EINVALID, "invalid config %s: %v", path, err)
	}
	return cfg, nil
}
