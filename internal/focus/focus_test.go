package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFactor_UnknownTerminalIsFullVolume(t *testing.T) {
	assert.InDelta(t, 1.0, Factor(0), 1e-9)
	assert.InDelta(t, 1.0, Factor(-1), 1e-9)
}

func TestVolume_AppliesFactorToBase(t *testing.T) {
	// With no detectable terminal the factor is 1.0, so the base passes through.
	assert.InDelta(t, 0.5, Volume(0.5, 0), 1e-9)
}
