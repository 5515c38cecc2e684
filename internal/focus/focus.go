// Package focus estimates whether the terminal that invoked the hook is
// in the foreground, and attenuates playback volume when it is not.
// Detection is purely advisory: any failure resolves to full volume.
package focus

// backgroundFactor scales volume when the invoking terminal is not the
// foreground window.
const backgroundFactor = 0.6

// Factor returns the attenuation factor for the terminal identified by
// terminalPID: 1.0 when foreground or undetectable, less when backgrounded.
func Factor(terminalPID int) float64 {
	if terminalPID <= 0 {
		return 1.0
	}
	fg, ok := foregroundPID()
	if !ok {
		return 1.0
	}
	if fg == terminalPID {
		return 1.0
	}
	return backgroundFactor
}

// Volume applies the focus factor to a base volume.
func Volume(base float64, terminalPID int) float64 {
	return base * Factor(terminalPID)
}
