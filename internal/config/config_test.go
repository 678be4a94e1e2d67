package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.ListenAddr == "" {
		t.Fatalf("listen addr must have a default")
	}
	if cfg.RecentLimit <= 0 {
		t.Fatalf("recent limit must default to a positive value, got %d", cfg.RecentLimit)
	}
}

func TestParseIntOrIgnoresGarbage(t *testing.T) {
	t.Setenv("NOTES_RECENT_LIMIT", "not-a-number")
	if got := parseIntOr("NOTES_RECENT_LIMIT", 20); got != 20 {
		t.Fatalf("got %d want fallback 20", got)
	}
	t.Setenv("NOTES_RECENT_LIMIT", "-3")
	if got := parseIntOr("NOTES_RECENT_LIMIT", 20); got != 20 {
		t.Fatalf("negative values must fall back, got %d", got)
	}
	t.Setenv("NOTES_RECENT_LIMIT", "50")
	if got := parseIntOr("NOTES_RECENT_LIMIT", 20); got != 50 {
		t.Fatalf("got %d want 50", got)
	}
}
