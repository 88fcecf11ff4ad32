package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"gopkg.in/yaml.v3"
)

// resetGlobal clears the lazy-loaded singleton so each test sees a
// fresh load.
func resetGlobal() {
	fileMutex.Lock()
	defer fileMutex.Unlock()
	globalSettingsOnce = sync.Once{}
	globalSettings = nil
	globalSettingsErr = nil
}

func TestGetConfigDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	want := filepath.Join("/tmp/xdg-test", appName)
	if dir != want {
		t.Errorf("GetConfigDir() = %q, want %q", dir, want)
	}
}

func TestLoadReturnsDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetGlobal()

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if settings.Version != 1 {
		t.Errorf("Version = %d, want 1", settings.Version)
	}
	if settings.Server == nil || settings.Server.Port != 8080 {
		t.Errorf("Server = %+v, want default port 8080", settings.Server)
	}
	if settings.Session == nil || settings.Session.MaxAgeHours != 24 {
		t.Errorf("Session = %+v, want 24h ceiling", settings.Session)
	}
	if settings.Preferences == nil || settings.Preferences.Locale != "fr" {
		t.Errorf("Preferences = %+v, want locale fr", settings.Preferences)
	}
}

func TestSaveAndReload(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetGlobal()

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	settings.Preferences.Locale = "nl"
	settings.Server.Port = 9000
	if err := settings.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if reloaded.Preferences.Locale != "nl" {
		t.Errorf("Locale = %q after reload, want nl", reloaded.Preferences.Locale)
	}
	if reloaded.Server.Port != 9000 {
		t.Errorf("Port = %d after reload, want 9000", reloaded.Server.Port)
	}
}

func TestSaveWritesHeaderComment(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetGlobal()

	settings := NewSettings()
	if err := settings.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "# Rentwizard Configuration File") {
		t.Error("saved file is missing the header comment")
	}

	// The header must not break YAML parsing.
	var round Settings
	if err := yaml.Unmarshal(data, &round); err != nil {
		t.Fatalf("saved file does not parse: %v", err)
	}
	if round.Version != 1 {
		t.Errorf("round-tripped Version = %d", round.Version)
	}
}

func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	resetGlobal()

	configDir := filepath.Join(dir, appName)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, configFile), []byte("version: 99\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() accepted an unsupported config version")
	}
}

func TestLoadFillsOmittedSections(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	resetGlobal()

	configDir := filepath.Join(dir, appName)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		t.Fatal(err)
	}
	partial := "version: 1\npreferences:\n  locale: en\n"
	if err := os.WriteFile(filepath.Join(configDir, configFile), []byte(partial), 0600); err != nil {
		t.Fatal(err)
	}

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if settings.Preferences.Locale != "en" {
		t.Errorf("Locale = %q, want en", settings.Preferences.Locale)
	}
	if settings.Lookup == nil || settings.Lookup.BaseURL == "" {
		t.Error("omitted lookup section was not filled with defaults")
	}
	if settings.Session == nil || settings.Session.DebounceMs != 1000 {
		t.Errorf("Session = %+v, want default debounce", settings.Session)
	}
}

func TestSessionDirPrefersConfigured(t *testing.T) {
	settings := NewSettings()
	settings.Session.Dir = "/var/lib/rentwizard"

	dir, err := settings.SessionDir()
	if err != nil {
		t.Fatalf("SessionDir() error = %v", err)
	}
	if dir != "/var/lib/rentwizard" {
		t.Errorf("SessionDir() = %q", dir)
	}
}

func TestSessionDirFallsBackToDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/data-test")

	settings := NewSettings()
	dir, err := settings.SessionDir()
	if err != nil {
		t.Fatalf("SessionDir() error = %v", err)
	}
	if dir == "" {
		t.Error("SessionDir() returned an empty fallback")
	}
}
