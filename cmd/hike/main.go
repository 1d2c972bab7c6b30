package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vidyasagar/hike/internal/app"
	"github.com/vidyasagar/hike/internal/command"
	"github.com/vidyasagar/hike/internal/logging"
	"github.com/vidyasagar/hike/internal/storage"
	"github.com/vidyasagar/hike/internal/theme"
	"github.com/vidyasagar/hike/internal/version"
	"github.com/vidyasagar/hike/internal/watcher"
)

func main() {
	var (
		configPath string
		themeName  string
		debug      bool
	)

	rootCmd := &cobra.Command{
		Use:   "hike [location]",
		Short: "A terminal Markdown viewer",
		Long: `hike views Markdown from local files, directories, URLs and forges
such as GitHub, GitLab, Codeberg and Bitbucket.

Examples:
  hike README.md
  hike ~/notes
  hike https://example.com/guide.md
  hike gh charmbracelet/glamour
  hike gl owner/repo:main docs/index.md`,
		Version:      version.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return errors.New("stdout is not a terminal")
			}
			return run(configPath, themeName, debug, args)
		},
	}
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to config.yaml")
	rootCmd.Flags().StringVar(&themeName, "theme", "", fmt.Sprintf("color theme (%s)", strings.Join(theme.List(), ", ")))
	rootCmd.Flags().BoolVar(&debug, "debug", false, "write debug logs")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configPath, themeName string, debug bool, args []string) error {
	cfg, err := storage.LoadConfig(configPath)
	if cfg == nil {
		return err
	}
	if themeName != "" {
		if !slices.Contains(theme.List(), themeName) {
			return fmt.Errorf("unknown theme %q, available: %s", themeName, strings.Join(theme.List(), ", "))
		}
		cfg.Theme = themeName
	}

	stateDir, dirErr := storage.StateDir()
	if dirErr != nil {
		return dirErr
	}
	logger := logging.NewOrNop(stateDir, debug)
	defer logger.Sync()
	if err != nil {
		logger.Warn("writing default config", zap.String("path", cfg.Path()), zap.Error(err))
	}
	logger.Info("starting", zap.String("version", version.Version))

	opts := app.Options{
		Config:  cfg,
		Logger:  logger,
		History: storage.NewHistoryFile(stateDir),
		Watcher: watcher.New(watcher.WithLogger(logger.Named("watcher"))),
	}

	if dataDir, err := storage.DataDir(); err != nil {
		logger.Warn("no data directory, bookmarks disabled", zap.Error(err))
	} else if db, err := storage.OpenDB(dataDir); err != nil {
		logger.Warn("opening bookmarks database", zap.Error(err))
	} else {
		defer db.Close()
		opts.Bookmarks = storage.NewBookmarkStore(db)
	}

	entries, err := opts.History.Load()
	if err != nil {
		logger.Warn("loading history", zap.String("path", opts.History.Path()), zap.Error(err))
	}
	opts.Entries = entries

	if len(args) > 0 {
		req, err := command.Parse(strings.Join(args, " "))
		if err != nil {
			return err
		}
		opts.Initial = req
	}

	p := tea.NewProgram(app.New(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", zap.Error(err))
		return err
	}
	return nil
}
