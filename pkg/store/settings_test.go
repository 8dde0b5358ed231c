package store

import (
	"testing"

	"tableflip.dev/penpal/pkg/gemini"
)

func newSettings(t *testing.T) *Settings {
	t.Helper()
	s, err := LoadSettings(&testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	return s
}

func TestAPIKeyRoundTrip(t *testing.T) {
	s := newSettings(t)

	if got := s.APIKey(); got != "" {
		t.Errorf("APIKey() on fresh store = %q, want empty", got)
	}
	if err := s.SetAPIKey("  sk-secret \n"); err != nil {
		t.Fatalf("SetAPIKey() error = %v", err)
	}
	if got := s.APIKey(); got != "sk-secret" {
		t.Errorf("APIKey() = %q, want trimmed sk-secret", got)
	}
	if err := s.ClearAPIKey(); err != nil {
		t.Fatalf("ClearAPIKey() error = %v", err)
	}
	if got := s.APIKey(); got != "" {
		t.Errorf("APIKey() after clear = %q, want empty", got)
	}
	// Clearing twice is fine.
	if err := s.ClearAPIKey(); err != nil {
		t.Errorf("second ClearAPIKey() error = %v", err)
	}
}

func TestModelSelection(t *testing.T) {
	s := newSettings(t)

	if got := s.Model(); got != gemini.DefaultModel {
		t.Errorf("Model() unset = %q, want default", got)
	}
	if err := s.SetModel("pro"); err != nil {
		t.Fatalf("SetModel(pro) error = %v", err)
	}
	if got := s.Model(); got != "pro" {
		t.Errorf("Model() = %q, want pro", got)
	}
	if err := s.SetModel("turbo"); err == nil {
		t.Error("SetModel(turbo) should reject unknown key")
	}
	// The stored selection survives the rejected write.
	if got := s.Model(); got != "pro" {
		t.Errorf("Model() after rejected set = %q, want pro", got)
	}
}

func TestCollapsePrefs(t *testing.T) {
	s := newSettings(t)

	if got := s.CollapsePrefs(); len(got) != 0 {
		t.Errorf("CollapsePrefs() fresh = %v, want empty", got)
	}
	if err := s.SetCollapsePref("1700000000000_analysis", true); err != nil {
		t.Fatalf("SetCollapsePref() error = %v", err)
	}
	if err := s.SetCollapsePref("1700000000000_comments", false); err != nil {
		t.Fatalf("SetCollapsePref() error = %v", err)
	}
	prefs := s.CollapsePrefs()
	if !prefs["1700000000000_analysis"] || prefs["1700000000000_comments"] {
		t.Errorf("CollapsePrefs() = %v", prefs)
	}
}

func TestSettingsClear(t *testing.T) {
	s := newSettings(t)
	if err := s.SetAPIKey("sk"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetModel("pro"); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if s.APIKey() != "" {
		t.Error("API key survived Clear")
	}
	if s.Model() != gemini.DefaultModel {
		t.Error("model selection survived Clear")
	}
}
