// cmd/lexscrapexter/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/valpere/LexScrapexter/internal/antidetect"
	"github.com/valpere/LexScrapexter/internal/browser"
	"github.com/valpere/LexScrapexter/internal/config"
	apperrors "github.com/valpere/LexScrapexter/internal/errors"
	"github.com/valpere/LexScrapexter/internal/monitoring"
	"github.com/valpere/LexScrapexter/internal/output"
	"github.com/valpere/LexScrapexter/internal/scraper"
	"github.com/valpere/LexScrapexter/internal/utils"
)

// Version information (set by build flags)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

var errorService = apperrors.NewService()

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch command := os.Args[1]; command {
	case "run":
		if len(os.Args) < 3 {
			fmt.Fprintf(os.Stderr, "Error: config file required\n")
			fmt.Fprintf(os.Stderr, "Usage: lexscrapexter run <config.yaml>\n")
			os.Exit(1)
		}
		errorService = errorService.WithVerbose(hasFlag("-v") || hasFlag("--verbose"))
		if err := runJob(os.Args[2]); err != nil {
			fmt.Fprint(os.Stderr, errorService.FormatErrorForCLI(err))
			os.Exit(errorService.GetExitCode(err))
		}

	case "validate":
		if len(os.Args) < 3 {
			fmt.Fprintf(os.Stderr, "Error: config file required\n")
			fmt.Fprintf(os.Stderr, "Usage: lexscrapexter validate <config.yaml>\n")
			os.Exit(1)
		}
		if err := validateJob(os.Args[2]); err != nil {
			fmt.Fprint(os.Stderr, errorService.FormatErrorForCLI(err))
			os.Exit(errorService.GetExitCode(err))
		}

	case "template":
		if err := printTemplate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "version", "--version":
		printVersion()

	case "help", "--help", "-h":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command '%s'\n", command)
		printUsage()
		os.Exit(1)
	}
}

// runJob wires the whole run: config, browser, enricher, sinks, metrics, and
// the engine. SIGINT/SIGTERM cancel the run; whatever was already written
// stays on disk.
func runJob(configFile string) error {
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		return err
	}

	logger := utils.NewLogger().WithField("job", cfg.Name)
	logger.Infof("starting run against %s", cfg.StartURL())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := monitoring.Default()

	if cfg.Browser.UserAgent == "" {
		cfg.Browser.UserAgent = antidetect.NewUserAgentRotator(nil).GetRandom()
	}

	var client *browser.Client
	err = errorService.ExecuteWithRetry(ctx, func() error {
		var launchErr error
		client, launchErr = browser.NewClient(ctx, cfg.BrowserProfile())
		return launchErr
	}, "browser launch")
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	defer client.Close()

	sink, err := output.NewDatasetSink(cfg.Output.Format, cfg.Output.File)
	if err != nil {
		return err
	}
	defer sink.Close()

	artifacts, err := output.NewArtifactStore(cfg.Output.ArtifactDir)
	if err != nil {
		return err
	}

	var enricher *scraper.ProfileEnricher
	if cfg.Enrichment.Enabled {
		enricher = scraper.NewProfileEnricher(scraper.EnricherConfig{
			Concurrency: cfg.Enrichment.Concurrency,
			BatchPause:  cfg.Enrichment.BatchPause.Std(),
			Timeout:     cfg.Enrichment.Timeout.Std(),
			RateLimit:   cfg.Enrichment.RateLimit,
		}, metrics, logger)
	}

	engine := scraper.NewEngine(scraper.EngineConfig{
		StartURL:       cfg.StartURL(),
		MaxRecords:     cfg.Limits.MaxRecords,
		MaxPages:       cfg.Limits.MaxPages,
		Concurrency:    cfg.Limits.Concurrency,
		PageRate:       cfg.Limits.PageRate,
		EnrichProfiles: cfg.Enrichment.Enabled,
		UserAgent:      cfg.Browser.UserAgent,
	}, client, enricher, sink, artifacts, metrics, logger)

	if cfg.Metrics.ListenAddress != "" {
		server := monitoring.NewServer(cfg.Metrics.ListenAddress, engine.Status)
		serverErrs := server.Start()
		go func() {
			if err := <-serverErrs; err != nil {
				logger.Errorf("metrics server failed, continuing without it: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(shutdownCtx)
		}()
		logger.Infof("metrics listening on %s", cfg.Metrics.ListenAddress)
	}

	if err := engine.Run(ctx); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	navStats := client.Stats()
	logger.WithFields(map[string]interface{}{
		"pages_loaded":  navStats.PagesLoaded,
		"nav_errors":    navStats.Errors,
		"avg_load_time": navStats.AvgLoadTime.String(),
	}).Info("browser session closed")

	records, pages, blocked, method, _ := engineStats(engine)
	fmt.Printf("Run complete: %d records from %d pages (method %s, %d blocked profiles). Results in %s\n",
		records, pages, method, blocked, cfg.Output.File)
	return nil
}

func engineStats(engine *scraper.Engine) (records, pages, blocked int, method string, ok bool) {
	status := engine.Status()
	records, _ = status["records_emitted"].(int)
	pages, _ = status["pages_processed"].(int)
	blocked, _ = status["blocked_profiles"].(int)
	method, _ = status["dominant_method"].(string)
	return records, pages, blocked, method, true
}

func validateJob(configFile string) error {
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Configuration file '%s' is valid\n", configFile)
	fmt.Printf("  Name: %s\n", cfg.Name)
	fmt.Printf("  Start URL: %s\n", cfg.StartURL())
	fmt.Printf("  Output: %s (%s)\n", cfg.Output.File, cfg.Output.Format)
	return nil
}

func printTemplate() error {
	template := config.GenerateTemplate()
	data, err := yaml.Marshal(template)
	if err != nil {
		return fmt.Errorf("failed to marshal template: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

// hasFlag checks if a flag is present in command line arguments
func hasFlag(flag string) bool {
	for _, arg := range os.Args {
		if arg == flag {
			return true
		}
	}
	return false
}

func printUsage() {
	fmt.Println("LexScrapexter - Attorney Directory Scraper")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  lexscrapexter run <config.yaml>        Run a scraping job")
	fmt.Println("  lexscrapexter validate <config.yaml>   Validate a job configuration")
	fmt.Println("  lexscrapexter template                 Print a starter configuration")
	fmt.Println("  lexscrapexter version                  Show version information")
	fmt.Println("  lexscrapexter help                     Show this help message")
}

func printVersion() {
	fmt.Printf("LexScrapexter %s\n", version)
	fmt.Printf("Build time: %s\n", buildTime)
	fmt.Printf("Git commit: %s\n", gitCommit)
}
