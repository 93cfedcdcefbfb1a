package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyOverlaysOnlyNonZeroFields(t *testing.T) {
	base := DefaultSettings()
	overlay := Settings{SizeUpgradeThreshold: 32}

	merged := base.Apply(overlay)

	assert.Equal(t, 32, merged.SizeUpgradeThreshold)
	assert.Equal(t, base.OffsetUpgradeThreshold, merged.OffsetUpgradeThreshold)
	assert.Equal(t, base.TimeWindowSize, merged.TimeWindowSize)
}

func TestDefaultSettingsMatchTrackerDefaults(t *testing.T) {
	d := DefaultSettings()
	assert.Equal(t, 16, d.SizeUpgradeThreshold)
	assert.Equal(t, 24, d.OffsetUpgradeThreshold)
}
