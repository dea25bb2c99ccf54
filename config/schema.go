package config

import (
	"context"
	_ "embed"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/jmgilman/go/gscript/errors"
)

//go:embed schema.cue
var schemaSource []byte

// schema compiles the config schema and returns its #Config definition.
func schema(cueCtx *cue.Context) (cue.Value, error) {
	v := cueCtx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		return cue.Value{}, errors.Wrap(err, errors.CodeInternal, "config schema is invalid")
	}
	return v.LookupPath(cue.ParsePath("#Config")), nil
}

// Validate checks cfg against the config schema.
func Validate(ctx context.Context, cfg *Config) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.CodeInvalidConfig, "context cancelled")
	}

	cueCtx := cuecontext.New()
	def, err := schema(cueCtx)
	if err != nil {
		return err
	}

	data := cueCtx.Encode(cfg)
	if err := data.Err(); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to encode config")
	}
	if err := def.Unify(data).Validate(cue.Concrete(true), cue.All()); err != nil {
		return validationError(err, "")
	}
	return nil
}

// decodeCUE evaluates a CUE settings file against the schema and decodes
// it into cfg. Fields absent from the file keep their current values.
func decodeCUE(ctx context.Context, path string, data []byte, cfg *Config) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.CodeInvalidConfig, "context cancelled")
	}

	cueCtx := cuecontext.New()
	def, err := schema(cueCtx)
	if err != nil {
		return err
	}

	v := cueCtx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return validationError(err, path)
	}

	unified := def.Unify(v)
	if err := unified.Validate(cue.Concrete(true), cue.All()); err != nil {
		return validationError(err, path)
	}
	if err := unified.Decode(cfg); err != nil {
		return validationError(err, path)
	}
	return nil
}

func validationError(err error, path string) error {
	ctx := map[string]interface{}{
		"details": cueerrors.Details(err, nil),
	}
	if path != "" {
		ctx["path"] = path
	}
	return errors.WrapWithContext(err, errors.CodeInvalidConfig, "invalid config", ctx)
}
