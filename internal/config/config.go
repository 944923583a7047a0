package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/designkb/internal/bm25"
)

// Data drivers.
const (
	DriverEmbed = "embed" // built-in knowledge bases compiled into the binary
	DriverDir   = "dir"   // CSV files in a directory on disk
	DriverRedis = "redis" // CSV blobs in Redis/Valkey
)

// Config holds the designkb configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Data     DataConfig     `yaml:"data"`
	Database DatabaseConfig `yaml:"database"`
	Search   SearchConfig   `yaml:"search"`
	Registry RegistryConfig `yaml:"registry"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DataConfig selects where knowledge-base CSV files are read from.
type DataConfig struct {
	Driver    string `yaml:"driver"` // embed, dir, redis (default: embed)
	Dir       string `yaml:"dir"`
	KeyPrefix string `yaml:"key_prefix"`
}

// DatabaseConfig holds Redis connection settings for the redis data driver.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds ranking parameters and result limits.
// K1 and B are pointers because zero is a meaningful value for both.
type SearchConfig struct {
	K1                *float64 `yaml:"k1"`
	B                 *float64 `yaml:"b"`
	DefaultMaxResults int      `yaml:"default_max_results"`
	MaxResultsLimit   int      `yaml:"max_results_limit"`
}

// Params returns the BM25 parameters.
func (s SearchConfig) Params() bm25.Params {
	p := bm25.DefaultParams()
	if s.K1 != nil {
		p.K1 = *s.K1
	}
	if s.B != nil {
		p.B = *s.B
	}
	return p
}

// RegistryConfig points at an optional YAML registry that replaces the built-in domains.
type RegistryConfig struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	var cfg Config
	cfg.HTTP.Port = 8080
	cfg.ApplyDefaults()
	return cfg
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A missing file yields an error matching fs.ErrNotExist.
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, expanding ${VAR} references first.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Data.Driver == "" {
		c.Data.Driver = DriverEmbed
	}
	if c.Data.KeyPrefix == "" {
		c.Data.KeyPrefix = "designkb:source:"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Search.DefaultMaxResults <= 0 {
		c.Search.DefaultMaxResults = 3
	}
	if c.Search.MaxResultsLimit <= 0 {
		c.Search.MaxResultsLimit = 50
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Data.Driver {
	case DriverEmbed:
	case DriverDir:
		if c.Data.Dir == "" {
			return fmt.Errorf("data.dir is required for driver %q", DriverDir)
		}
	case DriverRedis:
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for driver %q", DriverRedis)
		}
	default:
		return fmt.Errorf("data.driver must be %q, %q or %q, got %q", DriverEmbed, DriverDir, DriverRedis, c.Data.Driver)
	}
	if err := c.Search.Params().Validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if c.Search.DefaultMaxResults > c.Search.MaxResultsLimit {
		return fmt.Errorf("search.default_max_results (%d) exceeds search.max_results_limit (%d)",
			c.Search.DefaultMaxResults, c.Search.MaxResultsLimit)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

