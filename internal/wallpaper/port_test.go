package wallpaper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFitMode(t *testing.T) {
	tests := []struct {
		in      string
		want    FitMode
		wantErr bool
	}{
		{"fill", FitFill, false},
		{"fit", FitFit, false},
		{"stretch", FitStretch, false},
		{"center", FitCenter, false},
		{"tile", FitTile, false},
		{"", FitFill, false},
		{"zoom", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFitMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFitModeRoundTrip(t *testing.T) {
	for _, mode := range []FitMode{FitFill, FitFit, FitStretch, FitCenter, FitTile} {
		got, err := ParseFitMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}
}

func TestCommandPortBuildArgs(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{
			name:     "placeholder substituted",
			template: "feh --bg-fill %s",
			want:     []string{"feh", "--bg-fill", "/tmp/w.png"},
		},
		{
			name:     "no placeholder appends",
			template: "swaybg -i",
			want:     []string{"swaybg", "-i", "/tmp/w.png"},
		},
		{
			name:     "placeholder inside argument",
			template: `gsettings set org.gnome.desktop.background picture-uri file://%s`,
			want: []string{
				"gsettings", "set", "org.gnome.desktop.background",
				"picture-uri", "file:///tmp/w.png",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port, err := NewCommandPort(tt.template)
			require.NoError(t, err)
			assert.Equal(t, tt.want, port.buildArgs("/tmp/w.png"))
		})
	}
}

func TestNewCommandPortRejectsEmpty(t *testing.T) {
	_, err := NewCommandPort("   ")
	assert.Error(t, err)
}

func TestCommandPortSingleVirtualMonitor(t *testing.T) {
	port, err := NewCommandPort("feh --bg-fill %s")
	require.NoError(t, err)

	monitors, err := port.Monitors()
	require.NoError(t, err)
	require.Len(t, monitors, 1)
	assert.Equal(t, 1920, monitors[0].PixelWidth)
	assert.Equal(t, 1080, monitors[0].PixelHeight)

	port.Width, port.Height = 2560, 1440
	monitors, err = port.Monitors()
	require.NoError(t, err)
	assert.Equal(t, 2560, monitors[0].PixelWidth)
}
