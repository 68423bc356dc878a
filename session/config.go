package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/wippyai/datapin/errors"
)

// Config configures a session.
type Config struct {
	// Logger, when set, is installed in every package of the library.
	// Loggers are process-wide: the last session created with a Logger
	// decides where every session logs.
	Logger *zap.Logger

	// Local is true when the engine runs on this machine and shares its
	// filesystem. File values need a local engine.
	Local bool

	// StagingDir is the parent directory for staged and received files.
	// Empty means a temporary directory removed on Close. Only valid for
	// local engines.
	StagingDir string

	// Metrics, when set, receives engine call metrics. Like Logger the
	// collectors are process-wide: the last session created with Metrics
	// records the calls of every session, and sessions created without
	// Metrics leave the current collectors in place.
	Metrics prometheus.Registerer

	// DialOptions are passed to the gRPC client by Dial.
	DialOptions []grpc.DialOption
}

// DefaultConfig returns the configuration for a local engine.
func DefaultConfig() Config {
	return Config{Local: true}
}

// Option modifies a Config.
type Option func(*Config)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithLocal sets whether the engine shares this machine's filesystem.
func WithLocal(local bool) Option {
	return func(c *Config) { c.Local = local }
}

// WithStagingDir sets the staging directory.
func WithStagingDir(dir string) Option {
	return func(c *Config) { c.StagingDir = dir }
}

// WithMetrics registers engine call metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Config) { c.Metrics = reg }
}

// WithDialOptions adds gRPC dial options.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(c *Config) { c.DialOptions = append(c.DialOptions, opts...) }
}

func buildConfig(opts []Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Validate checks the configuration for contradictions.
func (c Config) Validate() error {
	if !c.Local && c.StagingDir != "" {
		return errors.InvalidArgument(errors.PhaseValidate, []string{"StagingDir"},
			"a staging directory needs a local engine")
	}
	return nil
}
