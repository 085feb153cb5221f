// Package cli implements the labgen command surface with Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gensec-labs/labgen/internal/app"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Flag variables shared across commands.
var (
	flagConfig    string
	flagBaseURL   string
	flagCacheDir  string
	flagNoCache   bool
	flagVerbose   bool
	flagFormat    string
	flagOutputDir string
)

var rootCmd = &cobra.Command{
	Use:   "labgen",
	Short: "labgen extracts lab deliverables into fill-in templates",
	Long: `labgen walks a codelab-style course site, pulls out the deliverable
questions from each lab, and writes per-lab answer templates in
Markdown, HTML, or PDF.

Examples:
  labgen list
  labgen generate 1.3
  labgen generate-week 2 --format pdf
  labgen generate-all -d ./templates`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	// Environment variables seed the flag defaults, so explicit flags
	// still win over them.
	pf.StringVar(&flagConfig, "config", os.Getenv("LABGEN_CONFIG"), "path to a YAML config file (default labgen.yaml if present)")
	pf.StringVar(&flagBaseURL, "base-url", os.Getenv("LABGEN_BASE_URL"), "course index URL")
	pf.StringVar(&flagCacheDir, "cache-dir", os.Getenv("LABGEN_CACHE_DIR"), "directory for cached pages and assembled labs")
	pf.BoolVar(&flagNoCache, "no-cache", false, "bypass the cache for this run")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	pf.StringVarP(&flagFormat, "format", "f", "", "output format: md, html, or pdf")
	pf.StringVarP(&flagOutputDir, "output-dir", "d", "", "directory for generated templates")
}

// buildApp resolves config in flag > file > default order and wires the
// application.
func buildApp() (*app.App, error) {
	cfg := app.Defaults()

	path := flagConfig
	required := path != ""
	if path == "" {
		path = "labgen.yaml"
	}
	fc, err := app.LoadConfigFile(path, required)
	if err != nil {
		return nil, err
	}
	cfg = app.Merge(cfg, fc)

	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	if flagCacheDir != "" {
		cfg.CacheDir = flagCacheDir
	}
	if flagNoCache {
		cfg.NoCache = true
	}
	if flagVerbose {
		cfg.Verbose = true
	}
	if flagFormat != "" {
		cfg.Format = flagFormat
	}
	if flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}
	return app.New(cfg), nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "labgen:", err)
		os.Exit(1)
	}
}
