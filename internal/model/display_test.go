package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in       string
		expected Direction
		flag     string
		wantErr  bool
	}{
		{"left", DirectionLeft, "--left-of", false},
		{"right", DirectionRight, "--right-of", false},
		{"above", DirectionAbove, "--above", false},
		{"below", DirectionBelow, "--below", false},
		{"Left", "", "", true},
		{"", "", "", true},
		{"behind", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDirection(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
			assert.Equal(t, tt.flag, d.Flag())
		})
	}
}

func TestConfig_Lookup(t *testing.T) {
	laptop := Display{Name: "laptop", Port: "eDP-1"}
	external := Display{Name: "external", Port: "HDMI-1"}
	cfg := &Config{
		Displays: map[string]Display{"laptop": laptop, "external": external},
		Layouts: []Layout{
			{Name: "solo", Settings: []DisplaySetting{{Display: laptop, Resolution: "1920x1080", Rate: "60"}}},
			{Name: "dock", Settings: []DisplaySetting{
				{Display: laptop, Resolution: "1920x1080", Rate: "60"},
				{Display: external, Resolution: "2560x1440", Rate: "144"},
			}},
		},
	}

	assert.Equal(t, []string{"solo", "dock"}, cfg.LayoutNames())
	assert.Equal(t, []string{"external", "laptop"}, cfg.DisplayNames())

	dock, ok := cfg.Layout("dock")
	require.True(t, ok)
	assert.Equal(t, []string{"eDP-1", "HDMI-1"}, dock.Ports())

	_, ok = cfg.Layout("missing")
	assert.False(t, ok)
}

func TestConfig_NilSafe(t *testing.T) {
	var cfg *Config
	_, ok := cfg.Layout("any")
	assert.False(t, ok)
	assert.Nil(t, cfg.LayoutNames())
	assert.Nil(t, cfg.DisplayNames())
}
