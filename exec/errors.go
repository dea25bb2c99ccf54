package exec

import (
	"fmt"

	"github.com/jmgilman/go/gscript/errors"
)

func launchFailed(err error, name, path string) error {
	return errors.WrapWithContext(err, errors.CodeLaunchFailed, fmt.Sprintf("failed to start %s", name), map[string]interface{}{
		"executable": name,
		"path":       path,
	})
}

func noArgs() error {
	return errors.New(errors.CodeInvalidInput, "no executable given")
}

func notFound(name string) error {
	return errors.WithContext(
		errors.Newf(errors.CodeExecutableNotFound, "cannot find the executable %s", name),
		"executable", name,
	)
}
