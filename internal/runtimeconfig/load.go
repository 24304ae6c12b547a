package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvBaseURL    = "FOLIO_BASE_URL"
	EnvContentDir = "FOLIO_CONTENT_DIR"
	EnvOutputDir  = "FOLIO_OUTPUT_DIR"
	EnvLogLevel   = "FOLIO_LOG_LEVEL"
)

// DefaultConfigFile is read when no explicit path is given.
const DefaultConfigFile = "folio.yaml"

// Load reads a YAML config file over DefaultConfig. A missing file at the
// default location is not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("folio config: read %s: %w", path, err)
	}
	if err := Decode(bytes.NewReader(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("folio config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode strictly decodes YAML into cfg; unknown keys are rejected and
// absent keys keep their current value.
func Decode(r io.Reader, cfg *Config) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// LoadDotEnv loads .env style files into the process environment without
// replacing variables that are already set. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("folio config: load %s: %w", file, err)
		}
	}
	return nil
}

// ApplyEnv overlays FOLIO_* variables found through lookup, usually
// os.LookupEnv.
func ApplyEnv(cfg Config, lookup func(string) (string, bool)) Config {
	if lookup == nil {
		return cfg
	}
	set := func(key string, target *string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}
	set(EnvBaseURL, &cfg.Site.URL)
	set(EnvContentDir, &cfg.Content.Dir)
	set(EnvOutputDir, &cfg.Generator.OutputDir)
	set(EnvLogLevel, &cfg.Logging.Level)
	return cfg
}
