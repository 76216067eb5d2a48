package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Directories
	DataDir   string
	AssetDir  string
	OutputDir string
	LogoPath  string

	// Output
	Format string // "docx" or "pdf"

	// Pairing
	PairPolicy string // "either" or "both"

	// Input filtering
	AllowedExts []string

	// PDF extraction
	PDFFallbackPdftotext bool

	// HTTP service
	Port   string
	APIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		DataDir:   envOr("DATA_DIR", "./data"),
		AssetDir:  envOr("ASSET_DIR", "./asset"),
		OutputDir: envOr("OUTPUT_DIR", "./output"),
		LogoPath:  os.Getenv("LOGO_PATH"),

		Format:     envOr("OUTPUT_FORMAT", "docx"),
		PairPolicy: envOr("PAIR_POLICY", "either"),

		AllowedExts: envList("ALLOWED_EXTS", []string{".txt", ".pdf"}),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		Port:   envOr("PORT", "8090"),
		APIKey: os.Getenv("BOOKPILER_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 50),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.LogoPath == "" && cfg.AssetDir != "" {
		cfg.LogoPath = filepath.Join(cfg.AssetDir, "logo.png")
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR is required")
	}
	if c.Format != "docx" && c.Format != "pdf" {
		return fmt.Errorf("OUTPUT_FORMAT must be docx or pdf, got %q", c.Format)
	}
	if c.PairPolicy != "either" && c.PairPolicy != "both" {
		return fmt.Errorf("PAIR_POLICY must be either or both, got %q", c.PairPolicy)
	}
	if len(c.AllowedExts) == 0 {
		return fmt.Errorf("ALLOWED_EXTS must list at least one extension")
	}
	return nil
}

// ValidateServer adds the checks only the HTTP service needs.
func (c Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.APIKey == "" {
		return fmt.Errorf("BOOKPILER_API_KEY is required")
	}
	return nil
}

// ExtAllowed reports whether a (lowercased, dotted) extension is eligible.
func (c Config) ExtAllowed(ext string) bool {
	for _, e := range c.AllowedExts {
		if e == ext {
			return true
		}
	}
	return false
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, ".") {
			part = "." + part
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
