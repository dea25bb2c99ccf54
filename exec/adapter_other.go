//go:build !windows

package exec

// DefaultAdapter returns the adapter for the host platform.
func DefaultAdapter() Adapter {
	return NativeAdapter{}
}
