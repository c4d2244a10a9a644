package config

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	loader := NewLoader("testdata")

	cfg, err := loader.Load("sceneflow.yaml")
	require.NoError(t, err)

	assert.Equal(t, "boot", cfg.Engine.BootstrapScene)
	assert.Equal(t, "high", cfg.Engine.BackgroundLoadingPriority)

	require.Len(t, cfg.LoadingScreens, 2)
	assert.Equal(t, "fade", cfg.LoadingScreens[0].ID)
	assert.Equal(t, 500*time.Millisecond, cfg.LoadingScreens[0].MinDisplayTime.Duration())
	assert.Equal(t, 20, cfg.LoadingScreens[0].AnimationFrames)
	assert.Equal(t, 1500*time.Millisecond, cfg.LoadingScreens[1].MinDisplayTime.Duration())

	require.Len(t, cfg.Scenes, 2)
	menu, ok := cfg.Scene("menu")
	require.True(t, ok)
	assert.True(t, menu.Cache)
	assert.Equal(t, 30, menu.LoadFrames)

	level1, ok := cfg.Scene("level1")
	require.True(t, ok)
	assert.False(t, level1.Cache)
	assert.Equal(t, "level", level1.Kind)

	_, ok = cfg.Scene("missing")
	assert.False(t, ok)
}

func TestLoader_Load_Missing(t *testing.T) {
	loader := NewLoader("testdata")

	_, err := loader.Load("nope.yaml")
	assert.Error(t, err)
}

func TestLoader_Load_InvalidDuration(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yaml": &fstest.MapFile{Data: []byte(
			"loading_screens:\n  - id: fade\n    min_display_time: soon\n",
		)},
	}

	_, err := NewFSLoader(fsys).Load("bad.yaml")
	assert.Error(t, err)
}

func TestLoader_Load_DuplicateIDs(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "duplicate loading screen",
			yaml: "loading_screens:\n  - id: fade\n  - id: fade\n",
		},
		{
			name: "duplicate scene",
			yaml: "scenes:\n  - id: menu\n  - id: menu\n",
		},
		{
			name: "empty scene id",
			yaml: "scenes:\n  - kind: level\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"bad.yaml": &fstest.MapFile{Data: []byte(tt.yaml)},
			}
			_, err := NewFSLoader(fsys).Load("bad.yaml")
			assert.Error(t, err)
		})
	}
}
