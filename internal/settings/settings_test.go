package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versepaper/versepaper/internal/effect"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, "blobs", s.Effect)
	assert.Equal(t, int64(0), s.Seed)
	assert.Equal(t, 30, s.RefreshMinutes)
	assert.True(t, s.Watermark)
	require.NoError(t, s.Validate())

	// The default background comes from the traditional palette.
	_, ok := effect.FindTraditional(s.Background)
	assert.True(t, ok, "default background not in palette")
}

func TestEnsureSeedRunsOnce(t *testing.T) {
	s := Default()
	calls := 0
	entropy := func() int64 { calls++; return 1234 }

	require.True(t, s.EnsureSeed(entropy))
	assert.Equal(t, int64(1234), s.Seed)
	assert.Equal(t, effect.PickTraditional(1234).Hex, s.Background)

	// Second call is a no-op: the seed is already pinned.
	require.False(t, s.EnsureSeed(entropy))
	assert.Equal(t, 1, calls)
}

func TestEnsureSeedNeverZero(t *testing.T) {
	s := Default()
	require.True(t, s.EnsureSeed(func() int64 { return 0 }))
	assert.NotZero(t, s.Seed)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults valid", func(s *Settings) {}, false},
		{"wave effect", func(s *Settings) { s.Effect = "wave" }, false},
		{"unknown effect", func(s *Settings) { s.Effect = "sparkles" }, true},
		{"unknown orientation", func(s *Settings) { s.Layout.Orientation = "diagonal" }, true},
		{"empty orientation defaults", func(s *Settings) { s.Layout.Orientation = "" }, false},
		{"negative font size", func(s *Settings) { s.Layout.FontSize = -2 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	s := Default()
	s.Seed = 42
	s.Variation = 0.5
	s.DarkTheme = true
	s.WallpaperCommand = "feh --bg-fill %s"
	require.NoError(t, Save(path, s))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestLoadMissingFieldsFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 7\neffect: bubbles\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.Seed)
	assert.Equal(t, "bubbles", s.Effect)
	// Unspecified fields keep their defaults.
	assert.Equal(t, 30, s.RefreshMinutes)
	assert.Equal(t, "vertical", s.Layout.Orientation)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("effect: sparkles\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestStoreUpdateNotifiesSubscribers(t *testing.T) {
	st := NewStore(Default())

	var got []Settings
	st.Subscribe(func(s Settings) { got = append(got, s) })

	st.Update(func(s *Settings) { s.Variation = 0.25 })
	st.Update(func(s *Settings) { s.DarkTheme = true })

	require.Len(t, got, 2)
	assert.Equal(t, 0.25, got[0].Variation)
	assert.True(t, got[1].DarkTheme)
	assert.Equal(t, 0.25, got[1].Variation)

	snap := st.Get()
	assert.True(t, snap.DarkTheme)
}
