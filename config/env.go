package config

import (
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/joho/godotenv"

	"github.com/jmgilman/go/gscript/errors"
	"github.com/jmgilman/go/gscript/exec"
)

// Environment variables that override file settings.
const (
	EnvRaiseOnFatal  = "GSCRIPT_RAISE_ON_FATAL"
	EnvCaptureStderr = "GSCRIPT_CAPTURE_STDERR"
	EnvErrors        = "GSCRIPT_ERRORS"
	EnvEncoding      = "GSCRIPT_ENCODING"
	EnvStreamMode    = "GSCRIPT_STREAM_MODE"
	EnvLogLevel      = "GSCRIPT_LOG_LEVEL"
)

// LoadEnvFile reads a dotenv file into an Env.
func LoadEnvFile(fs billy.Basic, path string) (exec.Env, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeConfigLoadFailed, "failed to open env file", map[string]interface{}{
			"path": path,
		})
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeConfigLoadFailed, "failed to parse env file", map[string]interface{}{
			"path": path,
		})
	}
	return exec.Env(vars), nil
}

// applyEnv overrides cfg with GSCRIPT_* variables found in environ.
func applyEnv(cfg *Config, environ exec.Env) error {
	if err := envBool(environ, EnvRaiseOnFatal, &cfg.Policy.RaiseOnFatal); err != nil {
		return err
	}
	if err := envBool(environ, EnvCaptureStderr, &cfg.Policy.CaptureStderr); err != nil {
		return err
	}
	envString(environ, EnvErrors, &cfg.Policy.DefaultMode)
	envString(environ, EnvEncoding, &cfg.Launch.Encoding)
	envString(environ, EnvStreamMode, &cfg.Launch.StreamMode)
	envString(environ, EnvLogLevel, &cfg.Logging.Level)
	return nil
}

func envString(environ exec.Env, key string, dst *string) {
	if v, ok := environ.Lookup(key); ok {
		*dst = strings.ToLower(strings.TrimSpace(v))
	}
}

func envBool(environ exec.Env, key string, dst *bool) error {
	v, ok := environ.Lookup(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return errors.WrapWithContext(err, errors.CodeInvalidConfig, "invalid boolean", map[string]interface{}{
			"variable": key,
			"value":    v,
		})
	}
	*dst = b
	return nil
}
