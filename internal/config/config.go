// Package config loads editing-session settings from YAML and the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BenKalegin/clouddiagram-sub004"
	"github.com/BenKalegin/clouddiagram-sub004/internal/logging"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/domain"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/model"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/observability"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. CLOUDDIAGRAM_HISTORY_SIZE.
const EnvPrefix = "CLOUDDIAGRAM_"

// Config holds the settings of an editing session.
type Config struct {
	HistorySize int     `yaml:"history_size" mapstructure:"history_size"`
	LogLevel    string  `yaml:"log_level" mapstructure:"log_level"`
	LogFormat   string  `yaml:"log_format" mapstructure:"log_format"`
	Scale       float64 `yaml:"scale" mapstructure:"scale"`
	TranslateX  float64 `yaml:"translate_x" mapstructure:"translate_x"`
	TranslateY  float64 `yaml:"translate_y" mapstructure:"translate_y"`
	// IDPrefix switches cell ids from UUIDs to prefix+sequence when set.
	IDPrefix string `yaml:"id_prefix" mapstructure:"id_prefix"`
	Metrics  bool   `yaml:"metrics" mapstructure:"metrics"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		HistorySize: domain.DefaultHistorySize,
		LogLevel:    "info",
		LogFormat:   string(logging.FormatText),
		Scale:       1,
	}
}

// Load reads path (when not empty) over the defaults, then applies
// environment overrides. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := Decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Decode merges a YAML document onto cfg. Scalars are converted leniently
// ("2" for an int is accepted).
func Decode(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse yaml: %w", err)
	}
	if raw == nil {
		return nil
	}
	return decodeMap(raw, cfg)
}

func decodeMap(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// applyEnv overrides fields from CLOUDDIAGRAM_<KEY> variables.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	raw := make(map[string]any)
	for _, key := range []string{"history_size", "log_level", "log_format", "scale", "translate_x", "translate_y", "id_prefix", "metrics"} {
		if v, ok := lookup(EnvPrefix + strings.ToUpper(key)); ok {
			raw[key] = v
		}
	}
	if len(raw) == 0 {
		return nil
	}
	if err := decodeMap(raw, cfg); err != nil {
		return fmt.Errorf("invalid environment override: %w", err)
	}
	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %s", strconv.FormatFloat(c.Scale, 'g', -1, 64))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return err
	}
	return nil
}

// SessionOptions converts the settings into session options. metrics is
// attached only when Metrics is enabled; logger may be nil.
func (c Config) SessionOptions(logger *slog.Logger, metrics *observability.Metrics) []clouddiagram.Option {
	opts := []clouddiagram.Option{
		clouddiagram.WithHistorySize(c.HistorySize),
		clouddiagram.WithScale(c.Scale),
		clouddiagram.WithTranslate(c.TranslateX, c.TranslateY),
	}
	if logger != nil {
		opts = append(opts, clouddiagram.WithLogger(logger))
	}
	if c.IDPrefix != "" {
		opts = append(opts, clouddiagram.WithIDGenerator(model.SequentialIDs(c.IDPrefix)))
	}
	if c.Metrics && metrics != nil {
		opts = append(opts, clouddiagram.WithMetrics(metrics))
	}
	return opts
}

// Logger builds the logger described by LogLevel and LogFormat.
func (c Config) Logger() (*slog.Logger, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		return nil, err
	}
	return logging.New(level, format), nil
}
