package logger

import (
	"log/slog"
	"strings"
)

// Config selects the handler and the attributes stamped on every record
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// ForEnvironment returns the defaults for env: JSON at info level in
// production, text with source locations everywhere else
func ForEnvironment(env string) Config {
	if env == EnvironmentProduction {
		return Config{
			Level:       LogLevelInfo,
			Format:      LogFormatJSON,
			ServiceName: DefaultServiceName,
			Version:     DefaultVersion,
			Environment: env,
		}
	}
	if env == "" {
		env = EnvironmentDev
	}
	return Config{
		Level:       LogLevelDebug,
		Format:      LogFormatText,
		ServiceName: DefaultServiceName,
		Version:     DefaultVersion,
		Environment: env,
		AddSource:   true,
	}
}

// NewConfig builds a config from explicit values. Empty strings take the
// environment's default.
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	cfg := ForEnvironment(environment)
	cfg.Level = orDefault(level, cfg.Level)
	cfg.Format = orDefault(format, cfg.Format)
	cfg.ServiceName = orDefault(serviceName, cfg.ServiceName)
	cfg.Version = orDefault(version, cfg.Version)
	cfg.AddSource = addSource
	return cfg
}

// DefaultConfig is used before configuration has been read
func DefaultConfig() Config {
	cfg := ForEnvironment(EnvironmentDev)
	cfg.Level = LogLevelInfo
	cfg.AddSource = false
	return cfg
}

// LogLevel parses Level; anything unrecognised is info
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

func (c Config) baseAttributes() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
