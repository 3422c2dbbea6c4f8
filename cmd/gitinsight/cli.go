package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/viant/gitinsight/assistant"
	"github.com/viant/gitinsight/config"
	"github.com/viant/gitinsight/insight"
	"github.com/viant/gitinsight/repository"
	"github.com/viant/gitinsight/server"
	"github.com/viant/gitinsight/tree"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type rootOptions struct {
	configURL string
	envFile   string
	logLevel  string
}

func newRootCommand() *cobra.Command {
	options := &rootOptions{}
	rootCommand := &cobra.Command{
		Use:           "gitinsight",
		Short:         "Explore GitHub repositories and ask questions about them",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCommand.PersistentFlags().StringVar(&options.configURL, "config", "", "configuration YAML URL (file://, mem://, s3://, ...)")
	rootCommand.PersistentFlags().StringVar(&options.envFile, "env-file", ".env", "dotenv file loaded into the environment")
	rootCommand.PersistentFlags().StringVar(&options.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCommand.AddCommand(newServeCommand(options), newFetchCommand(options))
	return rootCommand
}

func newServeCommand(options *rootOptions) *cobra.Command {
	var port int
	var staticDir string
	serveCommand := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			cfg, err := loadConfig(command.Context(), options)
			if err != nil {
				return err
			}
			if command.Flags().Changed("port") {
				cfg.Port = port
			}
			if command.Flags().Changed("static") {
				cfg.StaticDir = staticDir
			}
			logger := newLogger(cfg.LogLevel)
			analyzer, err := newAnalyzer(cfg, logger)
			if err != nil {
				return err
			}
			model := assistant.New(cfg.Assistant(), assistant.WithLogger(logger))
			if !model.Configured() {
				logger.Warn("OPENAI_API_KEY is not set, chat and explain endpoints are disabled")
			}
			if cfg.GitHub.Token == "" {
				logger.Warn("GITHUB_TOKEN is not set, hosting API rate limits are low")
			}
			return serve(command.Context(), server.New(cfg, analyzer, model, logger).HTTPServer(), logger)
		},
	}
	serveCommand.Flags().IntVar(&port, "port", 3000, "listening port")
	serveCommand.Flags().StringVar(&staticDir, "static", "", "UI static files directory")
	return serveCommand
}

func newFetchCommand(options *rootOptions) *cobra.Command {
	var indent bool
	fetchCommand := &cobra.Command{
		Use:   "fetch <url|owner/repo>",
		Short: "Fetch a repository tree and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			owner, name, err := repository.ParseURL(arguments[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig(command.Context(), options)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.LogLevel)
			analyzer, err := newAnalyzer(cfg, logger)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(command.Context(), cfg.Timeouts.Analyze.Duration())
			defer cancel()
			report, err := analyzer.Analyze(ctx, owner, name)
			if err != nil {
				return fmt.Errorf("failed to fetch %v/%v: %w", owner, name, err)
			}
			if fingerprint, err := report.Files.Fingerprint(); err == nil {
				logger.Info("fetched", "repository", report.FullName, "files", report.Files.FileCount(), "fingerprint", fingerprint)
			}
			encoder := json.NewEncoder(command.OutOrStdout())
			if indent {
				encoder.SetIndent("", "  ")
			}
			return encoder.Encode(report)
		},
	}
	fetchCommand.Flags().BoolVar(&indent, "indent", false, "indent JSON output")
	return fetchCommand
}

func loadConfig(ctx context.Context, options *rootOptions) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if options.configURL != "" {
		var err error
		if cfg, err = config.Load(ctx, options.configURL); err != nil {
			return nil, err
		}
	}
	if err := config.LoadDotEnv(options.envFile); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if options.logLevel != "" {
		cfg.LogLevel = options.logLevel
	}
	return cfg, cfg.Validate()
}

func newAnalyzer(cfg *config.Config, logger *slog.Logger) (*insight.Service, error) {
	client, err := repository.NewGitHub(cfg.Repository())
	if err != nil {
		return nil, err
	}
	return insight.New(client, insight.WithLogger(logger), insight.WithFetcherOptions(tree.WithMaxFileSize(cfg.MaxFileSize))), nil
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// serve runs the server until ctx is done or an interrupt is received
func serve(ctx context.Context, httpServer *http.Server, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
