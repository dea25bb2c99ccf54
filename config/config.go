package config

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	"github.com/jmgilman/go/gscript/errors"
	"github.com/jmgilman/go/gscript/exec"
)

// Config holds gscript settings.
type Config struct {
	Policy  PolicyConfig      `toml:"policy" yaml:"policy" json:"policy,omitempty"`
	Launch  LaunchConfig      `toml:"launch" yaml:"launch" json:"launch,omitempty"`
	Env     map[string]string `toml:"env" yaml:"env" json:"env,omitempty"`
	EnvFile string            `toml:"env_file" yaml:"env_file" json:"env_file,omitempty"`
	Logging LoggingConfig     `toml:"logging" yaml:"logging" json:"logging,omitempty"`
}

// PolicyConfig holds execution policy settings.
type PolicyConfig struct {
	RaiseOnFatal  bool   `toml:"raise_on_fatal" yaml:"raise_on_fatal" json:"raise_on_fatal,omitempty"`
	CaptureStderr bool   `toml:"capture_stderr" yaml:"capture_stderr" json:"capture_stderr,omitempty"`
	DefaultMode   string `toml:"default_mode" yaml:"default_mode" json:"default_mode,omitempty"`
}

// LaunchConfig holds settings applied to every tool launch.
type LaunchConfig struct {
	Encoding   string `toml:"encoding" yaml:"encoding" json:"encoding,omitempty"`
	StreamMode string `toml:"stream_mode" yaml:"stream_mode" json:"stream_mode,omitempty"`
	Dir        string `toml:"dir" yaml:"dir" json:"dir,omitempty"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level" json:"level,omitempty"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Policy: PolicyConfig{DefaultMode: "raise"},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadOption configures Load.
type LoadOption func(*loader)

type loader struct {
	fs      billy.Basic
	environ exec.Env
}

// WithFilesystem sets the filesystem files are read from. Defaults to the
// host's.
func WithFilesystem(fs billy.Basic) LoadOption {
	return func(l *loader) {
		l.fs = fs
	}
}

// WithEnviron sets the variables GSCRIPT_* overrides are read from.
// Defaults to the host environment.
func WithEnviron(env exec.Env) LoadOption {
	return func(l *loader) {
		l.environ = env
	}
}

// Load reads the settings file at path, applies environment overrides and
// the env file it names, and validates the result. An empty path loads the
// defaults with overrides applied.
func Load(ctx context.Context, path string, opts ...LoadOption) (*Config, error) {
	l := loader{fs: osfs.Default}
	for _, opt := range opts {
		opt(&l)
	}

	cfg := Default()
	if path != "" {
		data, err := util.ReadFile(l.fs, path)
		if err != nil {
			return nil, errors.WrapWithContext(err, errors.CodeConfigLoadFailed, "failed to read config file", map[string]interface{}{
				"path": path,
			})
		}
		if err := decode(ctx, path, data, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg, l.environ); err != nil {
		return nil, err
	}

	if cfg.EnvFile != "" {
		envPath := cfg.EnvFile
		if path != "" && !filepath.IsAbs(envPath) {
			envPath = filepath.Join(filepath.Dir(path), envPath)
		}
		vars, err := LoadEnvFile(l.fs, envPath)
		if err != nil {
			return nil, err
		}
		// Variables set in the config file win over the env file.
		merged := make(map[string]string, len(vars)+len(cfg.Env))
		for k, v := range vars {
			merged[k] = v
		}
		for k, v := range cfg.Env {
			merged[k] = v
		}
		cfg.Env = merged
	}

	if err := Validate(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(ctx context.Context, path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return decodeError(err, path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return errors.WithContext(
				errors.Newf(errors.CodeInvalidConfig, "unknown config key %s", undecoded[0]),
				"path", path,
			)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return decodeError(err, path)
		}
	case ".cue":
		return decodeCUE(ctx, path, data, cfg)
	default:
		return errors.WithContext(
			errors.Newf(errors.CodeInvalidConfig, "unsupported config file extension %q", ext),
			"path", path,
		)
	}
	return nil
}

func decodeError(err error, path string) error {
	return errors.WrapWithContext(err, errors.CodeInvalidConfig, "failed to parse config file", map[string]interface{}{
		"path": path,
	})
}
