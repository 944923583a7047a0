package designkb

import (
	"io/fs"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	fsys fs.FS

	redisAddrs []string
	password   string
	keyPrefix  string

	registryPath string

	k1, b *float64

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithDataDir reads knowledge-base CSV files from a directory instead of the built-in data.
func WithDataDir(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.fsys = os.DirFS(dir)
	})
}

// WithFS reads knowledge-base CSV files from any fs.FS.
func WithFS(fsys fs.FS) Option {
	return optionFunc(func(c *clientConfig) {
		c.fsys = fsys
	})
}

// WithRedis reads knowledge-base CSV blobs from Redis or Valkey.
// Populate it with `designkb seed`.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.redisAddrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix overrides the Redis key prefix of data-source blobs.
// Default: "designkb:source:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithRegistry replaces the built-in domains with a YAML registry file.
func WithRegistry(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.registryPath = path
	})
}

// WithBM25 sets the ranking parameters. Defaults: k1=1.5, b=0.75.
func WithBM25(k1, b float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.k1 = &k1
		c.b = &b
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
