// Package config loads sceneflow application configuration from YAML:
// engine settings, loading screen definitions, and scene definitions.
package config

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration to parse Go duration strings from YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("failed to parse duration %q: %v", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// EngineConfig holds engine-level settings.
type EngineConfig struct {
	// BootstrapScene is the scene the engine starts with; it is unloaded on
	// the first push onto an empty stack.
	BootstrapScene string `yaml:"bootstrap_scene"`
	// BackgroundLoadingPriority is one of low, normal, high.
	BackgroundLoadingPriority string `yaml:"background_loading_priority"`
}

// LoadingScreenConfig defines one registered loading screen.
type LoadingScreenConfig struct {
	ID string `yaml:"id"`
	// Kind selects the screen implementation, e.g. "fade" or "progress".
	Kind string `yaml:"kind"`
	// MinDisplayTime is the floor on how long the screen stays open.
	MinDisplayTime Duration `yaml:"min_display_time"`
	// AnimationFrames is how many frames the open/close animations take.
	AnimationFrames int `yaml:"animation_frames"`
}

// SceneConfig defines one scene known to the demo engine.
type SceneConfig struct {
	ID string `yaml:"id"`
	// Kind selects the scene implementation.
	Kind string `yaml:"kind"`
	// Cache keeps the scene loaded while buried by a later push.
	Cache bool `yaml:"cache"`
	// LoadFrames is how many frames the simulated load takes.
	LoadFrames int `yaml:"load_frames"`
}

type Config struct {
	Engine         EngineConfig          `yaml:"engine"`
	LoadingScreens []LoadingScreenConfig `yaml:"loading_screens"`
	Scenes         []SceneConfig         `yaml:"scenes"`
}

// Scene returns the scene definition with the given id.
func (c *Config) Scene(id string) (SceneConfig, bool) {
	for _, sc := range c.Scenes {
		if sc.ID == id {
			return sc, true
		}
	}
	return SceneConfig{}, false
}

func (c *Config) validate() error {
	screens := make(map[string]bool)
	for _, sc := range c.LoadingScreens {
		if sc.ID == "" {
			return fmt.Errorf("loading screen with empty id")
		}
		if screens[sc.ID] {
			return fmt.Errorf("duplicate loading screen id %s", sc.ID)
		}
		screens[sc.ID] = true
	}
	scenes := make(map[string]bool)
	for _, sc := range c.Scenes {
		if sc.ID == "" {
			return fmt.Errorf("scene with empty id")
		}
		if scenes[sc.ID] {
			return fmt.Errorf("duplicate scene id %s", sc.ID)
		}
		scenes[sc.ID] = true
	}
	return nil
}

// Loader loads configuration files through an fs.FS.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a config loader rooted at basePath.
func NewLoader(basePath string) *Loader {
	return &Loader{fsys: os.DirFS(basePath)}
}

// NewFSLoader creates a config loader over fsys.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Load reads and validates the named YAML config file.
func (l *Loader) Load(name string) (*Config, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", name, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", name, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %v", name, err)
	}

	return &cfg, nil
}
