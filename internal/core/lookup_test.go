package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/dpswitch/internal/model"
)

var (
	laptop   = model.Display{Name: "laptop", Port: "eDP-1"}
	external = model.Display{Name: "external", Port: "HDMI-A-0"}
	beamer   = model.Display{Name: "beamer", Port: "DP-2"}
)

func testLayouts() []model.Layout {
	return []model.Layout{
		{Name: "mobile", Settings: []model.DisplaySetting{
			{Display: laptop, Resolution: "1920x1080", Rate: "60", Primary: true},
		}},
		{Name: "dock", Settings: []model.DisplaySetting{
			{Display: laptop, Resolution: "1920x1080", Rate: "60"},
			{Display: external, Resolution: "2560x1440", Rate: "59.94", Primary: true,
				Position: &model.Position{Direction: model.DirectionRight, Reference: laptop}},
		}},
		{Name: "docked-beamer", Settings: []model.DisplaySetting{
			{Display: external, Resolution: "2560x1440", Rate: "60", Primary: true},
			{Display: beamer, Resolution: "1280x720", Rate: "60"},
		}},
	}
}

func TestLookupByName(t *testing.T) {
	layouts := testLayouts()

	t.Run("found", func(t *testing.T) {
		result := LookupByName(layouts, "dock")
		require.NotNil(t, result)
		assert.Len(t, result.Settings, 2)
	})

	t.Run("case sensitive", func(t *testing.T) {
		assert.Nil(t, LookupByName(layouts, "Dock"))
	})

	t.Run("empty slice", func(t *testing.T) {
		assert.Nil(t, LookupByName(nil, "dock"))
	})
}

func TestLookupByIndex(t *testing.T) {
	layouts := testLayouts()

	t.Run("valid index 1", func(t *testing.T) {
		result := LookupByIndex(layouts, 1)
		require.NotNil(t, result)
		assert.Equal(t, "mobile", result.Name)
	})

	t.Run("valid index 3", func(t *testing.T) {
		result := LookupByIndex(layouts, 3)
		require.NotNil(t, result)
		assert.Equal(t, "docked-beamer", result.Name)
	})

	t.Run("index 0 out of bounds", func(t *testing.T) {
		assert.Nil(t, LookupByIndex(layouts, 0))
	})

	t.Run("index past end", func(t *testing.T) {
		assert.Nil(t, LookupByIndex(layouts, 4))
	})
}

func TestLookupByPrefix(t *testing.T) {
	layouts := testLayouts()

	result := LookupByPrefix(layouts, "MOB")
	require.NotNil(t, result)
	assert.Equal(t, "mobile", result.Name)

	assert.Nil(t, LookupByPrefix(layouts, "dock"), "ambiguous prefix")
	assert.Nil(t, LookupByPrefix(layouts, "x"))
	assert.Nil(t, LookupByPrefix(layouts, ""))
}

func TestResolve(t *testing.T) {
	layouts := testLayouts()

	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr string
	}{
		{name: "exact name beats prefix", arg: "dock", want: "dock"},
		{name: "index", arg: "2", want: "dock"},
		{name: "unique prefix", arg: "docked", want: "docked-beamer"},
		{name: "index out of range", arg: "9", wantErr: "out of range (1-3)"},
		{name: "unknown", arg: "office", wantErr: `layout "office" not found (available: mobile, dock, docked-beamer)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Resolve(layouts, tt.arg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.Name)
		})
	}
}
