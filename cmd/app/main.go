package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	"webextractor/config"
	"webextractor/internal/app/crawler"
	"webextractor/internal/app/extractor"
	"webextractor/internal/app/handlers"
	"webextractor/internal/app/requester"
	"webextractor/internal/usecase"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	verbose    bool
	maxPages   int
	maxRetries int
	appTimeout int
	outputDir  string
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "webextractor <target url> [<level>]",
		Short: "Crawl a site and extract emails, names, phone numbers, HTML comments and links",
		Long: `webextractor explores the pages of a single web site and extracts from them:
emails, names, HTML comments, telephone numbers and same-site links.

<level> is the path depth at which to stop fetching pages. When omitted the
entire site is scanned.

Example:
  webextractor https://targetSite.htb 3`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
	}
	cmd.Flags().StringVar(&f.configPath, "config-path", "config/config.toml", "path to config file in .toml format")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "development logging at debug level")
	cmd.Flags().IntVar(&f.maxPages, "max-pages", -1, "stop after fetching this many pages (0 = no cap, -1 = config value)")
	cmd.Flags().IntVar(&f.maxRetries, "max-retries", 0, "attempts per page (0 = config value)")
	cmd.Flags().IntVar(&f.appTimeout, "timeout", -1, "overall crawl deadline in seconds (0 = none, -1 = config value)")
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", "", "directory for the report file (default config value)")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cmd *cobra.Command, args []string, f flags) error {
	logger, err := newLogger(f.verbose)
	if err != nil {
		return eris.Wrap(err, "can't initialize logger")
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := loadConfig(args, f, logger)
	if err != nil {
		return err
	}

	var r usecase.Requester = requester.NewRequester(time.Duration(cfg.ReqTimeout)*time.Second, cfg.UserAgent, logger, nil)
	var cr usecase.Crawler = crawler.NewCrawler(r, extractor.NewExtractor(logger), logger, crawler.Options{
		MaxDepth:   cfg.MaxDepth,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: time.Duration(cfg.RetryDelay) * time.Second,
		MaxPages:   cfg.MaxPages,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if cfg.AppTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.AppTimeout)*time.Second)
		defer cancel()
	}

	go watchSignals(ctx, cancel, cr, logger)

	res, err := cr.Crawl(ctx, cfg.URL)
	if err != nil {
		// Partial results are still reported.
		logger.Warn("crawl stopped early", zap.Error(err))
	}
	st := cr.Stats()
	logger.Info("crawl stats",
		zap.Int("analyzed", st.Analyzed),
		zap.Int("skipped", st.Skipped),
		zap.Int("exhausted", st.Exhausted),
		zap.Int("max_frontier", st.MaxFrontier),
	)

	fmt.Fprint(cmd.OutOrStdout(), "\n\n")
	if _, err := handlers.ProcessResult(cmd.OutOrStdout(), cfg.OutputDir, cfg.URL, res, logger); err != nil {
		logger.Error("can't write report", zap.Error(err))
		return err
	}
	return nil
}

// loadConfig layers defaults, the config file, flags and positional args.
func loadConfig(args []string, f flags, logger *zap.Logger) (*config.Config, error) {
	cfg, found, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Debug("can't find configs file. using default values", zap.String("path", f.configPath))
	}

	cfg.URL = args[0]
	if len(args) > 1 {
		level, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			return nil, eris.Wrapf(err, "level %q is not an integer", args[1])
		}
		cfg.MaxDepth = int32(level)
	}
	if f.maxPages >= 0 {
		cfg.MaxPages = f.maxPages
	}
	if f.maxRetries > 0 {
		cfg.MaxRetries = f.maxRetries
	}
	if f.appTimeout >= 0 {
		cfg.AppTimeout = f.appTimeout
	}
	if f.outputDir != "" {
		cfg.OutputDir = f.outputDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// watchSignals cancels the crawl on SIGINT and raises the depth limit by 2
// on SIGUSR1.
func watchSignals(ctx context.Context, cancel func(), cr usecase.Crawler, logger *zap.Logger) {
	sigIntCh := make(chan os.Signal, 1)
	signal.Notify(sigIntCh, syscall.SIGINT, syscall.SIGTERM)
	sigUsr1Ch := make(chan os.Signal, 1)
	signal.Notify(sigUsr1Ch, syscall.SIGUSR1)
	defer signal.Stop(sigIntCh)
	defer signal.Stop(sigUsr1Ch)

	for {
		select {
		case <-ctx.Done():
			logger.Debug("context done in signal watcher")
			return
		case <-sigIntCh:
			cancel()
			logger.Info("sigint detected. program shutdown")
		case <-sigUsr1Ch:
			cr.IncMaxDepth(2)
			logger.Info("sigusr1 detected, depth limit raised")
		}
	}
}
