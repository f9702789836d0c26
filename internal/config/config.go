// Package config resolves exporter settings from defaults, an optional YAML
// config file and NAVISEXPORT_* environment variables, in that order of
// precedence. Command-line flags override on top in main.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/daabcontech/navisexport/internal/infra/tablefs"
)

// DefaultFileName is the config file picked up from the working directory
// when no explicit path is given.
const DefaultFileName = "navisexport.yaml"

type Config struct {
	OutputDir   string `yaml:"output_dir"`
	CSVName     string `yaml:"csv_name"`
	StreamTrace bool   `yaml:"stream_trace"`
}

func Default() Config {
	return Config{
		OutputDir: ".",
		CSVName:   tablefs.DefaultTableName,
	}
}

// Load resolves the configuration. A .env file in the working directory is
// folded into the environment first, so NAVISEXPORT_* variables can live
// there too.
func Load(configPath string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	path := configPath
	if path == "" {
		if _, err := os.Stat(DefaultFileName); err == nil {
			path = DefaultFileName
		}
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv("NAVISEXPORT_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("NAVISEXPORT_CSV_NAME"); v != "" {
		cfg.CSVName = v
	}
	if v := os.Getenv("NAVISEXPORT_STREAM_TRACE"); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("invalid NAVISEXPORT_STREAM_TRACE=%q: %w", v, err)
		}
		cfg.StreamTrace = b
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output dir must not be empty")
	}
	name := strings.TrimSpace(c.CSVName)
	if name == "" {
		return fmt.Errorf("csv name must not be empty")
	}
	if filepath.Base(name) != name {
		return fmt.Errorf("csv name must be a bare file name: %q", name)
	}
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		return fmt.Errorf("csv name must end in .csv: %q", name)
	}
	return nil
}
