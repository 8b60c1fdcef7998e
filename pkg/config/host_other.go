//go:build !linux && !darwin

package config

// KernelInfo returns the running kernel's identification.
func KernelInfo() string {
	return "unknown"
}
