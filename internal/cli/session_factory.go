package cli

import (
	"fmt"
	"log/slog"

	"github.com/BenKalegin/clouddiagram-sub004"
	"github.com/BenKalegin/clouddiagram-sub004/internal/config"
	"github.com/BenKalegin/clouddiagram-sub004/internal/logging"
	"github.com/BenKalegin/clouddiagram-sub004/internal/scenario"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/observability"
)

// loaded is a session with a script replayed into it.
type loaded struct {
	session *clouddiagram.Session
	metrics *observability.Metrics
	script  *scenario.Script
	logger  *slog.Logger
}

// createSession builds a session from the config file and the CLI flags.
// The --metrics flag turns metrics on even when the config does not.
func createSession(opts Options) (*clouddiagram.Session, *observability.Metrics, *slog.Logger, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}
	if opts.Metrics {
		cfg.Metrics = true
	}

	logger := logging.NewNop()
	if opts.Debug || opts.ConfigPath != "" {
		if logger, err = cfg.Logger(); err != nil {
			return nil, nil, nil, err
		}
	}

	var metrics *observability.Metrics
	if cfg.Metrics {
		metrics = observability.New()
	}
	return clouddiagram.New(cfg.SessionOptions(logger, metrics)...), metrics, logger, nil
}

// load creates a session and replays the script at opts.ScriptPath.
// A failing step is returned together with the partially built session.
func load(opts Options) (*loaded, error) {
	script, err := scenario.Load(opts.ScriptPath)
	if err != nil {
		return nil, err
	}
	s, metrics, logger, err := createSession(opts)
	if err != nil {
		return nil, err
	}
	l := &loaded{session: s, metrics: metrics, script: script, logger: logger}
	if err := scenario.NewRunner(s, logger).Run(script); err != nil {
		return l, fmt.Errorf("scenario %q failed: %w", opts.ScriptPath, err)
	}
	return l, nil
}
