package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"profile-summary/internal/config"
	"profile-summary/internal/display"
	"profile-summary/internal/github"
	"profile-summary/internal/linguist"
	"profile-summary/internal/source"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

type options struct {
	configPath     string
	format         string
	output         string
	apiURL         string
	perPage        int
	workers        int
	requestTimeout time.Duration
	deadline       time.Duration
	useCache       bool
	maxAge         time.Duration
	skipForks      bool
	strict         bool
	verbose        bool
	highlight      string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		display.DisplayError(err.Error())
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "profile-summary [username] [accessToken]",
		Short: "Summarize a GitHub user's languages and recent activity",
		Long: `profile-summary aggregates the language breakdown, commit averages,
commits of the last 7 days and issues closed in the last 30 days across every
repository a GitHub user owns.

Authentication:
  Pass the token as the second argument, set GITHUB_TOKEN in the environment
  or in a .env file. Unauthenticated requests are heavily rate limited.`,
		Example: `  profile-summary octocat
  profile-summary octocat ghp_xxx --format json
  profile-summary octocat --cache --max-age 24h --highlight go`,
		Args:          cobra.RangeArgs(0, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a TOML config file")
	flags.StringVarP(&opts.format, "format", "f", config.DefaultFormat, "Output format: table, json")
	flags.StringVarP(&opts.output, "output", "o", config.DefaultOutputPath, "Snapshot file written after every live fetch")
	flags.StringVar(&opts.apiURL, "api-url", "", "GitHub API root (GitHub Enterprise)")
	flags.IntVar(&opts.perPage, "per-page", config.DefaultPerPage, "Page size for paginated requests (1-100)")
	flags.IntVar(&opts.workers, "workers", config.DefaultMaxWorkers, "Maximum repositories fetched concurrently")
	flags.DurationVar(&opts.requestTimeout, "request-timeout", config.DefaultRequestTimeout, "Timeout of a single API request")
	flags.DurationVar(&opts.deadline, "deadline", config.DefaultDeadline, "Timeout of the whole fetch (0 disables it)")
	flags.BoolVar(&opts.useCache, "cache", false, "Serve the snapshot when it is fresh and belongs to the user")
	flags.DurationVar(&opts.maxAge, "max-age", 0, "Oldest snapshot accepted with --cache (0 accepts any age)")
	flags.BoolVar(&opts.skipForks, "skip-forks", false, "Leave forked repositories out")
	flags.BoolVar(&opts.strict, "strict", false, "Fail when any repository cannot be fetched")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&opts.highlight, "highlight", "", "Highlight one language in the table output")

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	applyFlags(cmd, opts, cfg, args)

	if cfg.Username == "" {
		cfg.Username, err = promptUsername(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if cfg.Username == "" {
		return fmt.Errorf("a GitHub username is required")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.Verbose)}))
	slog.SetDefault(logger)

	if cfg.Token == "" {
		display.DisplayWarning("No GitHub token configured, requests are unauthenticated and heavily rate limited")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	data, err := newDataSource(ctx, cfg, logger)
	if err != nil {
		return err
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = fmt.Sprintf(" Summarizing @%s...", cfg.Username)
	s.Start()

	result, err := data.Load(ctx, cfg.Username)
	s.Stop()

	if err != nil {
		return fmt.Errorf("failed to summarize profile: %w", err)
	}
	display.DisplaySuccess(fmt.Sprintf("Summarized %d languages for @%s", len(result.Languages), result.User.Login))
	if len(result.Skipped) > 0 {
		display.DisplayWarning(fmt.Sprintf("%d repositories skipped", len(result.Skipped)))
	}

	selection := &display.Selection{}
	if cfg.Highlight != "" {
		selection.Toggle(cfg.Highlight)
	}

	formatter := display.NewFormatter(cfg.Format, cmd.OutOrStdout()).WithSelection(selection)
	if err := formatter.Display(result); err != nil {
		return fmt.Errorf("failed to display summary: %w", err)
	}
	return nil
}

// applyFlags lets positional arguments and explicitly set flags override the
// loaded configuration.
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config, args []string) {
	if len(args) > 0 {
		cfg.Username = args[0]
	}
	if len(args) > 1 {
		cfg.Token = args[1]
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("output") {
		cfg.OutputPath = opts.output
	}
	if flags.Changed("api-url") {
		cfg.APIURL = opts.apiURL
	}
	if flags.Changed("per-page") {
		cfg.PerPage = opts.perPage
	}
	if flags.Changed("workers") {
		cfg.MaxWorkers = opts.workers
	}
	if flags.Changed("request-timeout") {
		cfg.RequestTimeout = opts.requestTimeout
	}
	if flags.Changed("deadline") {
		cfg.Deadline = opts.deadline
	}
	if flags.Changed("cache") {
		cfg.UseCache = opts.useCache
	}
	if flags.Changed("max-age") {
		cfg.MaxAge = opts.maxAge
	}
	if flags.Changed("skip-forks") {
		cfg.SkipForks = opts.skipForks
	}
	if flags.Changed("strict") {
		cfg.Strict = opts.strict
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if flags.Changed("highlight") {
		cfg.Highlight = opts.highlight
	}
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func promptUsername(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "GitHub username: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read username: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func newDataSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (source.DataSource, error) {
	languages := linguist.New()

	client := github.NewClient(ctx, cfg.Token, cfg.RequestTimeout, cfg.PerPage)
	if cfg.APIURL != "" {
		var err error
		httpClient := github.NewHTTPClient(ctx, cfg.Token, cfg.RequestTimeout)
		client, err = github.NewClientWithBaseURL(httpClient, cfg.APIURL, cfg.PerPage)
		if err != nil {
			return nil, err
		}
	}

	live := &source.LiveFetch{
		Profiles:  client,
		Collector: github.NewCollector(client, cfg.MaxWorkers, cfg.Strict, logger),
		Lookup:    languages,
		Now:       time.Now,
		SkipForks: cfg.SkipForks,
		Deadline:  cfg.Deadline,
		Logger:    logger,
	}
	return source.Select(cfg.UseCache, cfg.OutputPath, cfg.MaxAge, live, time.Now, logger), nil
}
