package app

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime configuration for the application. Values are
// resolved flag > config file > default before New is called.
type Config struct {
	// BaseURL is the course root page holding the lab cards.
	BaseURL string

	// CacheDir holds the on-disk store; CacheTTL expires its entries.
	// NoCache bypasses reads but still writes fresh results.
	CacheDir string
	CacheTTL time.Duration
	NoCache  bool

	// Transport knobs.
	Timeout     time.Duration
	MaxAttempts int

	// SectionCap bounds per-lab section discovery.
	SectionCap int

	// Workers bounds the lab-level fan-out of generate-week/generate-all.
	// Section discovery inside one lab is always sequential.
	Workers int

	// OutputDir and Format steer the renderers.
	OutputDir string
	Format    string

	// UseQueryParser selects the goquery-backed normalizer, which prunes
	// nav/footer boilerplate before extraction.
	UseQueryParser bool

	Verbose bool
}

// DefaultBaseURL is the course site this tool was written for.
const DefaultBaseURL = "https://codelabs.cs.pdx.edu/cs475/"

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		CacheDir:    defaultCacheDir(),
		CacheTTL:    24 * time.Hour,
		Timeout:     30 * time.Second,
		MaxAttempts: 3,
		SectionCap:  50,
		Workers:     4,
		OutputDir:   "output",
		Format:      "md",
	}
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "labgen")
	}
	return ".labgen-cache"
}
