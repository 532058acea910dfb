package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kokistudios/swipe/internal/gesture"
	"github.com/kokistudios/swipe/internal/provision"
)

// DeckConfig holds deck sizing.
type DeckConfig struct {
	TotalCards int `yaml:"total_cards"`
}

// GestureConfig holds drag thresholds and animation timings.
type GestureConfig struct {
	SwipeRatio         float64 `yaml:"swipe_ratio"`
	AffordanceDistance float64 `yaml:"affordance_distance"`
	RotationPerPixel   float64 `yaml:"rotation_per_pixel"`
	CommitRotation     float64 `yaml:"commit_rotation"`
	CommitMS           int     `yaml:"commit_ms"`
	CancelMS           int     `yaml:"cancel_ms"`
	AxisLock           bool    `yaml:"axis_lock"`
}

// ProviderConfig holds the image source used to provision decks.
type ProviderConfig struct {
	BaseURL    string `yaml:"base_url"`
	QueryParam string `yaml:"query_param"`
}

// ExportConfig holds where summary artifacts are written.
type ExportConfig struct {
	Directory string `yaml:"directory,omitempty"`
}

// Config holds swipe configuration.
type Config struct {
	Version  string         `yaml:"version"`
	Deck     DeckConfig     `yaml:"deck"`
	Gesture  GestureConfig  `yaml:"gesture"`
	Provider ProviderConfig `yaml:"provider"`
	Export   ExportConfig   `yaml:"export,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	g := gesture.DefaultConfig()
	return Config{
		Version: "1",
		Deck: DeckConfig{
			TotalCards: 10,
		},
		Gesture: GestureConfig{
			SwipeRatio:         g.SwipeRatio,
			AffordanceDistance: g.AffordanceDistance,
			RotationPerPixel:   g.RotationPerPixel,
			CommitRotation:     g.CommitRotation,
			CommitMS:           int(g.CommitDuration / time.Millisecond),
			CancelMS:           int(g.CancelDuration / time.Millisecond),
			AxisLock:           g.AxisLock,
		},
		Provider: ProviderConfig{
			BaseURL:    provision.DefaultBaseURL,
			QueryParam: provision.DefaultQueryParam,
		},
	}
}

// GestureSettings converts the gesture section into controller settings.
func (c Config) GestureSettings() gesture.Config {
	g := gesture.DefaultConfig()
	g.SwipeRatio = c.Gesture.SwipeRatio
	g.AffordanceDistance = c.Gesture.AffordanceDistance
	g.RotationPerPixel = c.Gesture.RotationPerPixel
	g.CommitRotation = c.Gesture.CommitRotation
	g.CommitDuration = time.Duration(c.Gesture.CommitMS) * time.Millisecond
	g.CancelDuration = time.Duration(c.Gesture.CancelMS) * time.Millisecond
	g.AxisLock = c.Gesture.AxisLock
	return g
}

// Validate reports the first setting that cannot drive a deck.
func (c Config) Validate() error {
	if c.Deck.TotalCards < 1 {
		return fmt.Errorf("deck.total_cards must be at least 1, got %d", c.Deck.TotalCards)
	}
	if err := c.GestureSettings().Validate(); err != nil {
		return fmt.Errorf("gesture: %w", err)
	}
	if _, err := provision.NewURL(c.Provider.BaseURL, c.Provider.QueryParam); err != nil {
		return fmt.Errorf("provider: %w", err)
	}
	return nil
}

// Store represents a loaded SWIPE_HOME.
type Store struct {
	Home   string
	Config Config
}

// Issue represents a health check finding.
type Issue struct {
	Severity string // "warning" or "error"
	Message  string
}

// Home returns the SWIPE_HOME path, respecting the SWIPE_HOME env var.
func Home() string {
	if h := os.Getenv("SWIPE_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".swipe")
	}
	return filepath.Join(home, ".swipe")
}

// Init creates the SWIPE_HOME directory structure.
func Init(home string, force bool) error {
	if _, err := os.Stat(home); err == nil && !force {
		return fmt.Errorf("SWIPE_HOME already exists at %s (use --force to reinitialize)", home)
	}

	for _, d := range []string{home, filepath.Join(home, "exports")} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", d, err)
		}
	}

	s := &Store{Home: home, Config: DefaultConfig()}
	return s.SaveConfig()
}

// Load reads and validates an existing SWIPE_HOME.
// Missing config fields are filled from defaults.
func Load(home string) (*Store, error) {
	cfgPath := filepath.Join(home, "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read SWIPE_HOME config at %s: %w", cfgPath, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config.yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config.yaml: %w", err)
	}
	return &Store{Home: home, Config: cfg}, nil
}

// LoadOrDefault loads home when it has a config and otherwise returns an
// in-memory store with defaults, so swipe works before `swipe init`.
func LoadOrDefault(home string) (*Store, error) {
	if _, err := os.Stat(filepath.Join(home, "config.yaml")); os.IsNotExist(err) {
		return &Store{Home: home, Config: DefaultConfig()}, nil
	}
	return Load(home)
}

// SaveConfig writes the current config to config.yaml.
func (s *Store) SaveConfig() error {
	data, err := yaml.Marshal(s.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	cfgPath := filepath.Join(s.Home, "config.yaml")
	if err := os.WriteFile(cfgPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ConfigKeys lists the keys accepted by SetConfigValue.
var ConfigKeys = []string{
	"deck.total_cards",
	"gesture.swipe_ratio",
	"gesture.affordance_distance",
	"gesture.rotation_per_pixel",
	"gesture.commit_rotation",
	"gesture.commit_ms",
	"gesture.cancel_ms",
	"gesture.axis_lock",
	"provider.base_url",
	"provider.query_param",
	"export.directory",
}

// SetConfigValue sets a config value by dot-path key (e.g. "deck.total_cards").
// The whole config is validated before it is saved.
func (s *Store) SetConfigValue(key, value string) error {
	next := s.Config
	switch key {
	case "deck.total_cards":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("deck.total_cards must be a positive integer")
		}
		next.Deck.TotalCards = n
	case "gesture.swipe_ratio":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 || f >= 1 {
			return fmt.Errorf("gesture.swipe_ratio must be a number between 0 and 1")
		}
		next.Gesture.SwipeRatio = f
	case "gesture.affordance_distance":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("gesture.affordance_distance must be a positive number")
		}
		next.Gesture.AffordanceDistance = f
	case "gesture.rotation_per_pixel":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("gesture.rotation_per_pixel must be a number")
		}
		next.Gesture.RotationPerPixel = f
	case "gesture.commit_rotation":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("gesture.commit_rotation must be a number")
		}
		next.Gesture.CommitRotation = f
	case "gesture.commit_ms":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("gesture.commit_ms must be a non-negative integer")
		}
		next.Gesture.CommitMS = n
	case "gesture.cancel_ms":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("gesture.cancel_ms must be a non-negative integer")
		}
		next.Gesture.CancelMS = n
	case "gesture.axis_lock":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("gesture.axis_lock must be true or false")
		}
		next.Gesture.AxisLock = b
	case "provider.base_url":
		next.Provider.BaseURL = value
	case "provider.query_param":
		next.Provider.QueryParam = value
	case "export.directory":
		next.Export.Directory = value
	default:
		return fmt.Errorf("unknown config key: %s\nValid keys: %v", key, ConfigKeys)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	s.Config = next
	return s.SaveConfig()
}

// Path resolves a path within SWIPE_HOME.
func (s *Store) Path(parts ...string) string {
	all := append([]string{s.Home}, parts...)
	return filepath.Join(all...)
}

// ExportDir is where summary sheets go: the configured directory, or
// SWIPE_HOME/exports.
func (s *Store) ExportDir() string {
	if s.Config.Export.Directory != "" {
		return s.Config.Export.Directory
	}
	return s.Path("exports")
}

// CheckHealth verifies SWIPE_HOME structure integrity.
func CheckHealth(home string) []Issue {
	var issues []Issue

	p := filepath.Join(home, "exports")
	info, err := os.Stat(p)
	if err != nil {
		issues = append(issues, Issue{"warning", fmt.Sprintf("missing directory: %s", p)})
	} else if !info.IsDir() {
		issues = append(issues, Issue{"error", fmt.Sprintf("expected directory but found file: %s", p)})
	}

	cfgPath := filepath.Join(home, "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		issues = append(issues, Issue{"error", fmt.Sprintf("cannot read config.yaml: %v", err)})
		return issues
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		issues = append(issues, Issue{"error", fmt.Sprintf("config.yaml is not valid YAML: %v", err)})
		return issues
	}
	if err := cfg.Validate(); err != nil {
		issues = append(issues, Issue{"error", fmt.Sprintf("config.yaml: %v", err)})
	}

	return issues
}

// FixIssues attempts to repair simple issues in SWIPE_HOME.
func FixIssues(home string) []string {
	var fixed []string

	p := filepath.Join(home, "exports")
	if _, err := os.Stat(p); err != nil {
		if err := os.MkdirAll(p, 0755); err == nil {
			fixed = append(fixed, "recreated missing directory: exports")
		}
	}

	cfgPath := filepath.Join(home, "config.yaml")
	if _, err := os.Stat(cfgPath); err != nil {
		s := &Store{Home: home, Config: DefaultConfig()}
		if s.SaveConfig() == nil {
			fixed = append(fixed, "recreated missing config.yaml with defaults")
		}
	}

	return fixed
}
