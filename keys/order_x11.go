//go:build !linux && !darwin && !windows

package keys

var autoOrder = []string{BackendX11}
