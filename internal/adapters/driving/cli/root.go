// Package cli implements the aio command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configfile "github.com/bricsin4u/AIO-research/internal/adapters/driven/config/file"
	"github.com/bricsin4u/AIO-research/internal/adapters/driven/narrative/html"
	"github.com/bricsin4u/AIO-research/internal/adapters/driven/storage/sqlite"
	"github.com/bricsin4u/AIO-research/internal/adapters/driven/transport/httpx"
	"github.com/bricsin4u/AIO-research/internal/adapters/driven/trust"
	"github.com/bricsin4u/AIO-research/internal/core/domain"
	"github.com/bricsin4u/AIO-research/internal/core/ports/driven"
	"github.com/bricsin4u/AIO-research/internal/core/ports/driving"
	"github.com/bricsin4u/AIO-research/internal/core/services"
	"github.com/bricsin4u/AIO-research/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Shared engine state, wired once per invocation.
var (
	configDir   string
	verboseFlag bool

	engineConfig     domain.Config
	retrieverService driving.RetrieverService
	keyStore         *trust.FileKeyStore
	envelopeCache    driven.EnvelopeCache
)

var rootCmd = &cobra.Command{
	Use:   "aio",
	Short: "AIO-aware web content retrieval",
	Long: `aio retrieves clean, verifiable, machine-readable content for a URL.

It discovers a site's structured AIO endpoint (Link header, <link> tag,
robots.txt directive, or the conventional default path), verifies the
document's integrity, and assembles a content envelope. Sites without
structured content fall back to best-effort extraction from raw HTML.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupEngine,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose pipeline logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.aio)")
}

// setupEngine wires the adapters and core services before any command runs.
func setupEngine(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	store, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	engineConfig = cfg

	transport := httpx.NewClient(
		httpx.WithTimeout(cfg.Timeout()),
		httpx.WithUserAgent(cfg.UserAgent),
		httpx.WithRate(cfg.RequestsPerSecond),
	)

	keyDir := ""
	if configDir != "" {
		keyDir = configDir + "/keys"
	}
	keyStore, err = trust.NewFileKeyStore(keyDir)
	if err != nil {
		return fmt.Errorf("opening key store: %w", err)
	}

	if cfg.CacheEnabled {
		cacheDir := ""
		if configDir != "" {
			cacheDir = configDir + "/data"
		}
		cache, err := sqlite.NewCache(cacheDir, cfg.CacheTTL())
		if err != nil {
			return fmt.Errorf("opening envelope cache: %w", err)
		}
		envelopeCache = cache
	}

	retrieverService = services.NewRetriever(transport, html.New(), keyStore, envelopeCache, cfg)
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
