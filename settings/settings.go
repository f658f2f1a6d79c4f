// Package settings persists what a viewer last showed: the effect config and
// viewer toggles. Storage goes through gdata; without it the manager keeps
// settings in memory only.
package settings

import (
	"fmt"

	"github.com/gekko3d/particlefx"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

type Settings struct {
	Effect particlefx.Config `yaml:"effect"`
	Debug  bool              `yaml:"debug"`
	Paused bool              `yaml:"paused"`
}

func Default() Settings {
	return Settings{Effect: particlefx.DefaultConfig()}
}

type Manager struct {
	store    *gdata.Manager // nil means memory-only
	settings Settings
	logger   particlefx.Logger
}

// Open opens storage for appName. If storage cannot be opened the manager
// still works but Save does nothing.
func Open(appName string, logger particlefx.Logger) *Manager {
	if logger == nil {
		logger = particlefx.NewNopLogger()
	}
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warnf("Settings storage unavailable: %v (memory only)", err)
		store = nil
	}
	return NewManager(store, logger)
}

// NewManager loads saved settings from store, falling back to defaults.
func NewManager(store *gdata.Manager, logger particlefx.Logger) *Manager {
	if logger == nil {
		logger = particlefx.NewNopLogger()
	}
	m := &Manager{store: store, settings: Default(), logger: logger}
	if err := m.Load(); err != nil {
		logger.Warnf("Failed to load settings: %v (using defaults)", err)
	}
	return m
}

// Persistent reports whether Save reaches storage.
func (m *Manager) Persistent() bool { return m.store != nil }

func (m *Manager) Load() error {
	if m.store == nil || !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		m.settings = Default()
		return nil
	}
	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		m.settings = Default()
		return fmt.Errorf("load settings: %w", err)
	}

	loaded := Default()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		m.settings = Default()
		return fmt.Errorf("unmarshal settings: %w", err)
	}
	if err := loaded.Effect.Validate(); err != nil {
		m.settings = Default()
		return fmt.Errorf("saved effect: %w", err)
	}
	if !loaded.Effect.Type.Known() {
		loaded.Effect.Type = particlefx.DefaultConfig().Type
	}
	m.settings = loaded
	m.logger.Debugf("Settings loaded")
	return nil
}

func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	m.logger.Debugf("Settings saved")
	return nil
}

func (m *Manager) Settings() Settings { return m.settings }

// SetEffect stores cfg. Call Save to persist.
func (m *Manager) SetEffect(cfg particlefx.Config) {
	m.settings.Effect = cfg
}

func (m *Manager) SetDebug(enabled bool) { m.settings.Debug = enabled }
func (m *Manager) SetPaused(paused bool) { m.settings.Paused = paused }
