package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	if cfg.DataDir != "./data" {
		t.Errorf("expected default data dir, got %q", cfg.DataDir)
	}
	if cfg.Format != "docx" {
		t.Errorf("expected default format docx, got %q", cfg.Format)
	}
	if cfg.PairPolicy != "either" {
		t.Errorf("expected default policy either, got %q", cfg.PairPolicy)
	}
	if !cfg.ExtAllowed(".txt") || !cfg.ExtAllowed(".pdf") {
		t.Errorf("expected .txt and .pdf allowed by default, got %v", cfg.AllowedExts)
	}
	if cfg.ExtAllowed(".csv") {
		t.Errorf(".csv must not be allowed by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OUTPUT_FORMAT", "pdf")
	t.Setenv("PAIR_POLICY", "both")
	t.Setenv("ALLOWED_EXTS", "txt, MD ,.pdf")
	t.Setenv("JOB_TTL", "10m")

	cfg := Load()
	if cfg.Format != "pdf" {
		t.Errorf("expected pdf, got %q", cfg.Format)
	}
	if cfg.PairPolicy != "both" {
		t.Errorf("expected both, got %q", cfg.PairPolicy)
	}
	for _, ext := range []string{".txt", ".md", ".pdf"} {
		if !cfg.ExtAllowed(ext) {
			t.Errorf("expected %s allowed, got %v", ext, cfg.AllowedExts)
		}
	}
	if cfg.JobTTL != 10*time.Minute {
		t.Errorf("expected 10m TTL, got %v", cfg.JobTTL)
	}
}

func TestValidate_BadValues(t *testing.T) {
	cfg := Load()
	cfg.Format = "epub"
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected error for unknown format")
	}

	cfg = Load()
	cfg.PairPolicy = "any"
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected error for unknown policy")
	}
}

func TestValidateServer_RequiresAPIKey(t *testing.T) {
	cfg := Load()
	cfg.APIKey = ""
	if err := cfg.ValidateServer(); err == nil {
		t.Errorf("expected error for missing api key")
	}
	cfg.APIKey = "secret"
	if err := cfg.ValidateServer(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
