package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestInit(t *testing.T) {
	tmp := t.TempDir()
	home := filepath.Join(tmp, ".swipe")

	if err := Init(home, false); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(home, "exports"))
	if err != nil {
		t.Error("expected exports directory to exist")
	} else if !info.IsDir() {
		t.Error("expected exports to be a directory")
	}

	if _, err := os.Stat(filepath.Join(home, "config.yaml")); err != nil {
		t.Error("expected config.yaml to exist")
	}

	// Second init should fail without force
	if err := Init(home, false); err == nil {
		t.Error("expected error on duplicate init")
	}

	if err := Init(home, true); err != nil {
		t.Errorf("expected force init to succeed: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmp := t.TempDir()
	home := filepath.Join(tmp, ".swipe")
	Init(home, false)

	s, err := Load(home)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Home != home {
		t.Errorf("expected Home=%s, got %s", home, s.Home)
	}
}

func TestLoadOrDefault_NoHome(t *testing.T) {
	home := filepath.Join(t.TempDir(), "missing")
	s, err := LoadOrDefault(home)
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if s.Config.Deck.TotalCards != 10 {
		t.Errorf("expected defaults, got total_cards=%d", s.Config.Deck.TotalCards)
	}
	if _, err := os.Stat(home); !os.IsNotExist(err) {
		t.Error("LoadOrDefault must not create the home")
	}
}

func TestPath(t *testing.T) {
	s := &Store{Home: "/tmp/.swipe"}
	got := s.Path("exports", "a.png")
	want := filepath.Join("/tmp/.swipe", "exports", "a.png")
	if got != want {
		t.Errorf("Path() = %s, want %s", got, want)
	}
}

func TestExportDir(t *testing.T) {
	s := &Store{Home: "/tmp/.swipe", Config: DefaultConfig()}
	if got := s.ExportDir(); got != filepath.Join("/tmp/.swipe", "exports") {
		t.Errorf("ExportDir() = %s", got)
	}
	s.Config.Export.Directory = "/srv/cats"
	if got := s.ExportDir(); got != "/srv/cats" {
		t.Errorf("ExportDir() = %s, want /srv/cats", got)
	}
}

func TestCheckHealth(t *testing.T) {
	tmp := t.TempDir()
	home := filepath.Join(tmp, ".swipe")
	Init(home, false)

	issues := CheckHealth(home)
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}

	os.RemoveAll(filepath.Join(home, "exports"))
	issues = CheckHealth(home)
	if len(issues) == 0 {
		t.Error("expected issues after removing exports dir")
	}
}

func TestCheckHealth_InvalidValues(t *testing.T) {
	tmp := t.TempDir()
	home := filepath.Join(tmp, ".swipe")
	Init(home, false)
	os.WriteFile(filepath.Join(home, "config.yaml"), []byte("gesture:\n  swipe_ratio: 2\n"), 0644)

	issues := CheckHealth(home)
	if len(issues) != 1 || issues[0].Severity != "error" {
		t.Errorf("expected one error, got %v", issues)
	}
}

func TestHomeEnvVar(t *testing.T) {
	t.Setenv("SWIPE_HOME", "/custom/path")
	if got := Home(); got != "/custom/path" {
		t.Errorf("Home() = %s, want /custom/path", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Deck.TotalCards != 10 {
		t.Errorf("expected total_cards 10, got %d", cfg.Deck.TotalCards)
	}
	if cfg.Gesture.SwipeRatio != 0.25 {
		t.Errorf("expected swipe_ratio 0.25, got %v", cfg.Gesture.SwipeRatio)
	}
	if cfg.Provider.BaseURL != "https://cataas.com/cat" {
		t.Errorf("unexpected base_url %s", cfg.Provider.BaseURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestGestureSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gesture.CommitMS = 500
	cfg.Gesture.AxisLock = false
	g := cfg.GestureSettings()
	if g.CommitDuration != 500*time.Millisecond {
		t.Errorf("commit duration = %v", g.CommitDuration)
	}
	if g.AxisLock {
		t.Error("axis lock should be off")
	}
	if g.AxisSlop != 4 {
		t.Errorf("axis slop should keep its default, got %v", g.AxisSlop)
	}
}

func TestLoadMergesDefaults(t *testing.T) {
	tmp := t.TempDir()
	home := filepath.Join(tmp, ".swipe")
	Init(home, false)

	os.WriteFile(filepath.Join(home, "config.yaml"), []byte("version: \"1\"\ndeck:\n  total_cards: 3\n"), 0644)

	s, err := Load(home)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Config.Deck.TotalCards != 3 {
		t.Errorf("expected total_cards 3, got %d", s.Config.Deck.TotalCards)
	}
	if s.Config.Gesture.CommitMS != 300 {
		t.Errorf("expected default commit_ms, got %d", s.Config.Gesture.CommitMS)
	}
	if !s.Config.Gesture.AxisLock {
		t.Error("expected default axis_lock true")
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	tmp := t.TempDir()
	home := filepath.Join(tmp, ".swipe")
	Init(home, false)
	os.WriteFile(filepath.Join(home, "config.yaml"), []byte("deck:\n  total_cards: 0\n"), 0644)

	if _, err := Load(home); err == nil {
		t.Error("expected error for total_cards 0")
	}
}

func TestSetConfigValue(t *testing.T) {
	tmp := t.TempDir()
	home := filepath.Join(tmp, ".swipe")
	Init(home, false)
	s, _ := Load(home)

	if err := s.SetConfigValue("deck.total_cards", "5"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetConfigValue("gesture.axis_lock", "false"); err != nil {
		t.Fatal(err)
	}
	if s.Config.Deck.TotalCards != 5 {
		t.Errorf("expected updated total, got %d", s.Config.Deck.TotalCards)
	}

	// Reload and verify persistence
	s2, _ := Load(home)
	if s2.Config.Deck.TotalCards != 5 || s2.Config.Gesture.AxisLock {
		t.Errorf("config not persisted: %+v", s2.Config)
	}
}

func TestSetConfigValue_Invalid(t *testing.T) {
	tmp := t.TempDir()
	home := filepath.Join(tmp, ".swipe")
	Init(home, false)
	s, _ := Load(home)

	cases := []struct{ key, value string }{
		{"nonexistent.key", "value"},
		{"deck.total_cards", "notanumber"},
		{"deck.total_cards", "0"},
		{"gesture.swipe_ratio", "1"},
		{"gesture.swipe_ratio", "0"},
		{"gesture.commit_ms", "-1"},
		{"gesture.axis_lock", "maybe"},
		{"provider.base_url", "not a url"},
	}
	for _, tc := range cases {
		if err := s.SetConfigValue(tc.key, tc.value); err == nil {
			t.Errorf("SetConfigValue(%q, %q): expected error", tc.key, tc.value)
		}
	}
	if s.Config.Provider.BaseURL != "https://cataas.com/cat" {
		t.Error("a rejected value must not change the config")
	}
}

func TestFixIssues(t *testing.T) {
	tmp := t.TempDir()
	home := filepath.Join(tmp, ".swipe")
	Init(home, false)

	os.RemoveAll(filepath.Join(home, "exports"))
	os.Remove(filepath.Join(home, "config.yaml"))

	fixed := FixIssues(home)
	if len(fixed) != 2 {
		t.Errorf("expected two fixes, got %v", fixed)
	}
	if issues := CheckHealth(home); len(issues) != 0 {
		t.Errorf("expected healthy home after fixes, got %v", issues)
	}
}
