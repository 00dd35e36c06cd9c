package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/samvad-hq/samvad-headlines/internal/app"
	"github.com/samvad-hq/samvad-headlines/internal/config"
	"github.com/samvad-hq/samvad-headlines/internal/domain"
	"github.com/samvad-hq/samvad-headlines/internal/logger"
)

type rootOptions struct {
	cfgFile string
	v       *viper.Viper
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: config.New()}

	root := &cobra.Command{
		Use:   "reader",
		Short: "Terminal news reader for a headlines API",
		Long: `reader browses top headlines, category sections and full-text search
results from a NewsAPI-compatible provider.

Example usage:
  reader                                  # interactive reader, top headlines
  reader fetch --category science         # print one page and exit
  reader fetch --query election --page 2`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().String("api-key", "", "headlines provider API key (env NEWS_API_KEY)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().Bool("no-images", false, "skip image preloading")

	_ = opts.v.BindPFlag("news_api_key", root.PersistentFlags().Lookup("api-key"))
	_ = opts.v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newBrowseCmd(opts), newFetchCmd(opts))
	return root
}

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactive reader (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, opts)
		},
	}
}

func newFetchCmd(opts *rootOptions) *cobra.Command {
	var (
		query    string
		category string
		page     int
	)
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Print one page of results as a table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := domain.ParseCategory(category)
			if err != nil {
				return err
			}
			return withReader(cmd, opts, func(ctx context.Context, r *app.Reader) error {
				return r.FetchOnce(ctx, domain.QueryState{Query: query, Category: cat, Page: page}, cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "free-text search (takes priority over --category)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category: business, entertainment, health, science, sports, technology")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number, starting at 1")
	return cmd
}

func runBrowse(cmd *cobra.Command, opts *rootOptions) error {
	return withReader(cmd, opts, func(ctx context.Context, r *app.Reader) error {
		return r.Browse(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	})
}

// withReader loads config, starts logging and runs fn with a signal-aware context.
func withReader(cmd *cobra.Command, opts *rootOptions, fn func(context.Context, *app.Reader) error) error {
	if noImages, _ := cmd.Flags().GetBool("no-images"); noImages {
		opts.v.Set("preload_images", false)
	}

	cfg, err := config.Load(opts.v, opts.cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("reader starting", "config", cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := app.NewReader(cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize reader", "error", err)
		return err
	}

	return fn(ctx, r)
}
