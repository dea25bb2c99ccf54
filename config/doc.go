// Package config loads gscript settings from a file and the environment.
//
// Settings files may be TOML, YAML or CUE, chosen by extension. Every file
// is checked against the same CUE schema, so an unknown error-handling mode
// or stream mode is rejected regardless of format:
//
//	# gscript.toml
//	env_file = ".env"
//
//	[policy]
//	raise_on_fatal = true
//	default_mode = "status"
//
//	[launch]
//	encoding = "latin1"
//
// GSCRIPT_* environment variables override file values. Apply turns a
// Config into policy state settings and script.Session options.
package config
