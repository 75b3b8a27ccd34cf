package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ConfigFileNames are probed, in order, inside the data directory.
var ConfigFileNames = []string{"timedpad.yaml", "timedpad.yml", "timedpad.toml"}

// EnvPrefix prefixes every environment override, e.g. TIMEDPAD_ADAPTER.
const EnvPrefix = "TIMEDPAD_"

// Config is the on-disk session configuration. Zero values mean "use the
// built-in default".
type Config struct {
	Adapter     string `yaml:"adapter,omitempty" toml:"adapter,omitempty" validate:"omitempty,oneof=fs bolt redis couchdb memory"`
	URI         string `yaml:"uri,omitempty" toml:"uri,omitempty"`
	Key         string `yaml:"key,omitempty" toml:"key,omitempty" validate:"omitempty,max=128"`
	Format      string `yaml:"format,omitempty" toml:"format,omitempty" validate:"omitempty,oneof=json yaml yml"`
	ReadOnly    bool   `yaml:"read_only,omitempty" toml:"read_only,omitempty"`
	RedisPrefix string `yaml:"redis_prefix,omitempty" toml:"redis_prefix,omitempty"`
	CouchDB     string `yaml:"couch_db,omitempty" toml:"couch_db,omitempty" validate:"omitempty,lowercase"`
	TimeLayout  string `yaml:"time_layout,omitempty" toml:"time_layout,omitempty"`
	DateLayout  string `yaml:"date_layout,omitempty" toml:"date_layout,omitempty"`
	LogFile     string `yaml:"log_file,omitempty" toml:"log_file,omitempty"`
}

var validate = validator.New()

// LoadConfig reads dir/.env, then the config file (path, or the first of
// ConfigFileNames found in dir), then TIMEDPAD_* overrides, and validates
// the result. Missing files are not an error.
func LoadConfig(dir, path string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env: %w", err)
	}

	if path == "" {
		for _, name := range ConfigFileNames {
			if hasFile(dir, name) {
				path = filepath.Join(dir, name)
				break
			}
		}
	}
	if path != "" {
		if err := readConfigFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Options translates the config into platform options.
func (c Config) Options() []Option {
	opts := []Option{
		WithAdapter(c.Adapter),
		WithFormat(c.Format),
	}
	if c.Key != "" {
		opts = append(opts, WithKey(c.Key))
	}
	if c.ReadOnly {
		opts = append(opts, WithReadOnly(true))
	}
	if c.RedisPrefix != "" {
		opts = append(opts, WithRedisPrefix(c.RedisPrefix))
	}
	if c.CouchDB != "" {
		opts = append(opts, WithCouchDatabase(c.CouchDB))
	}
	if c.TimeLayout != "" || c.DateLayout != "" {
		opts = append(opts, WithLayouts(c.TimeLayout, c.DateLayout))
	}
	return opts
}

// Save writes the config as YAML or TOML depending on the file extension.
func (c Config) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		data, err = toml.Marshal(c)
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		return fmt.Errorf("unsupported config extension: %s", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func readConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config extension: %s", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"ADAPTER":      &c.Adapter,
		"URI":          &c.URI,
		"KEY":          &c.Key,
		"FORMAT":       &c.Format,
		"REDIS_PREFIX": &c.RedisPrefix,
		"COUCH_DB":     &c.CouchDB,
		"TIME_LAYOUT":  &c.TimeLayout,
		"DATE_LAYOUT":  &c.DateLayout,
		"LOG_FILE":     &c.LogFile,
	}
	for name, field := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*field = v
		}
	}

	if v, ok := os.LookupEnv(EnvPrefix + "READ_ONLY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sREAD_ONLY: %w", EnvPrefix, err)
		}
		c.ReadOnly = b
	}
	return nil
}
