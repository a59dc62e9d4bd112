// Package config manages the on-disk settings drafter reads at startup:
// default planning parameters, where drafts live, and how playback should
// happen. Shape and persistence are unchanged from the KVM switcher this
// project grew out of; the payload is entirely new.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"drafter/internal/wordnav"
)

// PlannerSettings is the on-disk mirror of planner.Config: separated so
// the config package does not need to import internal/planner, and so
// zero-value JSON fields (an omitted key) can be told apart from an
// explicit zero.
type PlannerSettings struct {
	WPMMin                       float64 `json:"wpm_min"`
	WPMMax                       float64 `json:"wpm_max"`
	ErrorRatePerWord             float64 `json:"error_rate_per_word"`
	WordVariantShare             float64 `json:"word_variant_share"`
	ImmediateFixRate             float64 `json:"immediate_fix_rate"`
	WordNavProfile               string  `json:"word_nav_profile"`
	MaxOutstandingErrors         int     `json:"max_outstanding_errors"`
	StopCorrectionsAfterProgress float64 `json:"stop_corrections_after_progress"`
	ReviewPauseMsMin             uint64  `json:"review_pause_ms_min"`
	ReviewPauseMsMax             uint64  `json:"review_pause_ms_max"`
	NoRevision                   bool    `json:"no_revision"`
}

// Config is drafter's whole on-disk configuration.
type Config struct {
	// Planner holds the default plan-generation parameters, overridable
	// per-invocation by CLI flags.
	Planner PlannerSettings `json:"planner"`

	// General contains settings outside the planner itself.
	General GeneralConfig `json:"general"`
}

// GeneralConfig contains settings outside plan generation.
type GeneralConfig struct {
	// DraftsDir is where the tray launcher looks for .txt drafts.
	DraftsDir string `json:"drafts_dir"`

	// PlaybackBackend selects a playback.Backend by name ("uinput" is
	// the only one wired for real; anything else is rejected at
	// startup).
	PlaybackBackend string `json:"playback_backend"`

	// MonitorEnabled turns the WebSocket trace server on during
	// playback.
	MonitorEnabled bool `json:"monitor_enabled"`

	// MonitorAddr is the address the monitor server listens on.
	MonitorAddr string `json:"monitor_addr"`

	// TrayEnabled starts the systray launcher instead of a one-shot CLI
	// run.
	TrayEnabled bool `json:"tray_enabled"`

	// AbortHotkey is the global hotkey that cancels an in-progress
	// playback (e.g. "Ctrl+Alt+Shift+Esc").
	AbortHotkey string `json:"abort_hotkey,omitempty"`

	// PhraseProviderAddr is the remote rephrase service's address, if
	// phrase alternatives are in use.
	PhraseProviderAddr string `json:"phrase_provider_addr,omitempty"`
}

// DefaultConfig returns a new Config with sensible defaults, mirroring
// planner.DefaultConfig's numbers so a fresh config.json and a bare
// planner.DefaultConfig() agree.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Planner: PlannerSettings{
			WPMMin:                       40.0,
			WPMMax:                       60.0,
			ErrorRatePerWord:             0.05,
			WordVariantShare:             0.35,
			ImmediateFixRate:             0.35,
			WordNavProfile:               wordnav.Chrome.String(),
			MaxOutstandingErrors:         4,
			StopCorrectionsAfterProgress: 0.88,
			ReviewPauseMsMin:             1200,
			ReviewPauseMsMax:             2600,
			NoRevision:                   false,
		},
		General: GeneralConfig{
			DraftsDir:       filepath.Join(home, "Drafts"),
			PlaybackBackend: "uinput",
			MonitorEnabled:  false,
			MonitorAddr:     "127.0.0.1:8787",
			TrayEnabled:     false,
			AbortHotkey:     "Ctrl+Alt+Shift+Esc",
		},
	}
}

// Manager handles loading and saving configuration.
type Manager struct {
	mu         sync.Mutex
	configPath string
	config     *Config
	onChanged  func()
}

// NewManager creates a new configuration manager backed by the default
// per-OS config path.
func NewManager() (*Manager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	return &Manager{
		configPath: configPath,
		config:     DefaultConfig(),
	}, nil
}

func getConfigPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "drafter")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "drafter")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config", "drafter")
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Load reads the configuration from disk. A missing file is not an error:
// the manager keeps its defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, m.config); err != nil {
		return err
	}
	if m.onChanged != nil {
		m.onChanged()
	}
	return nil
}

// Save writes the configuration to disk.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.configPath, data, 0644)
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

// Set replaces the current configuration.
func (m *Manager) Set(cfg *Config) {
	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()
	if m.onChanged != nil {
		m.onChanged()
	}
}

// RegisterChangeCallback registers a function to be called when the
// configuration changes via Load or Set.
func (m *Manager) RegisterChangeCallback(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChanged = fn
}
