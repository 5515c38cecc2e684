//go:build !linux && !darwin

package focus

// foregroundPID is not implemented on this platform; volume stays full.
func foregroundPID() (int, bool) {
	return 0, false
}
