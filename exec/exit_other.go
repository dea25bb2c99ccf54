//go:build !unix

package exec

import "os"

func exitCode(state *os.ProcessState) int {
	return state.ExitCode()
}
