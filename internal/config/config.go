package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Source names accepted in Config.Source.
const (
	SourceLocal      = "local"
	SourceS3         = "s3"
	SourceCloudWatch = "cloudwatch"
)

// Config holds where job logs live and how the tool logs.
type Config struct {
	TorqueHome string // directory of daily job logs for the local source
	Source     string // local, s3 or cloudwatch
	S3Bucket   string
	S3Prefix   string
	LogGroup   string // CloudWatch log group for the cloudwatch source
	Region     string
	Profile    string
	LogLevel   string
	LogPretty  bool
}

const (
	defaultConfigPath = "~/.config/showjobs/config.toml"
	defaultTorqueHome = "/opt/torque_job_logs"
	defaultLogLevel   = "warn"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		TorqueHome: defaultTorqueHome,
		Source:     SourceLocal,
		LogLevel:   defaultLogLevel,
		LogPretty:  true,
	}
}

// Load reads the TOML config at path (or the default location when path is
// empty), falling back to defaults when the file is missing, then applies
// environment overrides. Call Validate once every override is applied.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		applyEnv(&cfg)
		return cfg, nil
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		TorqueHome string `toml:"torque_home"`
		Source     string `toml:"source"`
		S3Bucket   string `toml:"s3_bucket"`
		S3Prefix   string `toml:"s3_prefix"`
		LogGroup   string `toml:"log_group"`
		Region     string `toml:"region"`
		Profile    string `toml:"profile"`
		LogLevel   string `toml:"log_level"`
		LogPretty  *bool  `toml:"log_pretty"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.TorqueHome); v != "" {
		cfg.TorqueHome = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.Source); v != "" {
		cfg.Source = strings.ToLower(v)
	}
	cfg.S3Bucket = strings.TrimSpace(raw.S3Bucket)
	cfg.S3Prefix = strings.TrimSpace(raw.S3Prefix)
	cfg.LogGroup = strings.TrimSpace(raw.LogGroup)
	cfg.Region = strings.TrimSpace(raw.Region)
	cfg.Profile = strings.TrimSpace(raw.Profile)
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if raw.LogPretty != nil {
		cfg.LogPretty = *raw.LogPretty
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Validate checks that the selected source has what it needs.
func (c Config) Validate() error {
	switch c.Source {
	case SourceLocal:
		if c.TorqueHome == "" {
			return errors.New("config: torque_home is required for the local source")
		}
	case SourceS3:
		if c.S3Bucket == "" {
			return errors.New("config: s3_bucket is required for the s3 source")
		}
	case SourceCloudWatch:
		if c.LogGroup == "" {
			return errors.New("config: log_group is required for the cloudwatch source")
		}
	default:
		return fmt.Errorf("config: unknown source %q", c.Source)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("TORQUE_HOME_DIR")); v != "" {
		cfg.TorqueHome = mustExpand(v)
	}
	if v := strings.TrimSpace(os.Getenv("SHOWJOBS_SOURCE")); v != "" {
		cfg.Source = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("AWS_REGION")); v != "" {
		cfg.Region = v
	}
	if v := strings.TrimSpace(os.Getenv("AWS_PROFILE")); v != "" && cfg.Profile == "" {
		cfg.Profile = v
	}
	if v := strings.TrimSpace(os.Getenv("SHOWJOBS_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
