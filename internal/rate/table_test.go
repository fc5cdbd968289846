package rate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		tier Tier
		want float64
	}{
		{"low", TierLow, 2.5},
		{"medium", TierMedium, 8},
		{"high", TierHigh, 15},
		{"unknown falls back to medium", Tier("TURBO"), 8},
		{"empty falls back to medium", Tier(""), 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Lookup(tt.tier), 1e-9)
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, TierLow, Normalize(Tier("low")))
	assert.Equal(t, TierMedium, Normalize(Tier(" Medium ")))
	assert.Equal(t, TierHigh, Normalize(Tier("HIGH")))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(TierLow))
	assert.True(t, Valid(TierMedium))
	assert.True(t, Valid(TierHigh))
	assert.False(t, Valid(Tier("low")))
	assert.False(t, Valid(Tier("EXTREME")))
	assert.False(t, Valid(Tier("")))
}

func TestIdleRateConstant(t *testing.T) {
	assert.InDelta(t, 1.5, IdleRate, 1e-9)
}
