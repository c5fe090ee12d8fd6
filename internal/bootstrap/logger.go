package bootstrap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/SlotGuard_Go/internal/config"
	"github.com/osse101/SlotGuard_Go/internal/logger"
)

// SetupLogger installs the process logger from cfg. With cfg.LogDir set,
// output is also written to a timestamped file in that directory and older
// session logs are pruned. The returned closer must be closed on exit.
func SetupLogger(cfg *config.Config) (io.Closer, error) {
	return setupLogger(cfg, os.Stdout, time.Now())
}

func setupLogger(cfg *config.Config, stdout io.Writer, now time.Time) (io.Closer, error) {
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"
	lcfg := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, addSource)

	out := stdout
	var closer io.Closer = nopCloser{}
	var path string
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgCreateLogsDir, err)
		}
		cleanupLogs(cfg.LogDir, LogFileRetentionCount)

		path = filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, now.Format(LogFileTimestampFormat)))
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgOpenLogFile, err)
		}
		out = io.MultiWriter(stdout, f)
		closer = f
	}

	logger.InitLoggerWithWriter(lcfg, out)

	logger.Info(LogMsgStarting,
		LogFieldEnvironment, cfg.Environment,
		LogFieldLogLevel, cfg.LogLevel,
		LogFieldLogFormat, cfg.LogFormat,
		LogFieldVersion, cfg.Version,
		LogFieldLogFile, path)

	return closer, nil
}

// cleanupLogs removes the oldest session logs so at most keep remain.
// Names embed a sortable timestamp, so lexical order is age order.
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			names = append(names, entry.Name())
		}
	}
	if len(names) <= keep {
		return
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			fmt.Fprintf(os.Stderr, "failed to delete old log file %s: %v\n", name, err)
		}
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
