package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/lepinkainen/imagesorter/config"
	"github.com/lepinkainen/imagesorter/logging"
	"github.com/lepinkainen/imagesorter/pool"
	"github.com/lepinkainen/imagesorter/triage"
	"github.com/lepinkainen/imagesorter/types"
	"github.com/lepinkainen/imagesorter/ui"
)

// SortCmd runs the interactive triage screen over the configured directory.
type SortCmd struct {
	Config string `help:"Path to the configuration file" default:"config.toml" type:"path"`
	PoolFlags
}

// Run loads the configuration, starts the worker pool and hands control to the TUI.
// The pool is always shut down before returning, even when the user quits early.
func (cmd *SortCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	if appCtx != nil {
		version = appCtx.Version
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("sort needs an interactive terminal")
	}

	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	if err := cmd.PoolFlags.apply(cfg); err != nil {
		return err
	}

	mapping, err := cfg.Mapping()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file
	logFile, err := logging.OpenFile(cfg.LogFile())
	if err != nil {
		return err
	}
	defer logFile.Close()

	log, err := logging.New(logFile, cfg.Logging.Level)
	if err != nil {
		return err
	}
	log = log.With().Str("version", version).Logger()

	cat, workers, err := buildCatalog(cfg.Dir, cfg.Workers, log)
	if err != nil {
		return err
	}

	p := pool.Start(cat, pool.Options{
		Workers:       workers,
		QueueCapacity: cfg.QueueCapacity,
		Preparer: pool.ImagePreparer{
			MaxWidth:  cfg.Display.MaxWidth,
			MaxHeight: cfg.Display.MaxHeight,
		},
		Logger: &log,
	})

	log.Info().
		Str("dir", cfg.Dir).
		Int("images", cat.Len()).
		Int("workers", p.Workers()).
		Msg("starting sort session")

	sorter := triage.New(cat, p, mapping, triage.WithLogger(log))
	program := tea.NewProgram(ui.NewSorterModel(sorter, version), tea.WithAltScreen())
	_, runErr := program.Run()

	// Blocked workers are released by the shutdown
	if err := p.Shutdown(); err != nil {
		log.Error().Err(err).Msg("worker pool failed")
	}

	count, total := sorter.Progress()
	log.Info().
		Int("handled", count).
		Int("total", total).
		Int("failed", p.Dropped()).
		Bool("quit", sorter.QuitRequested()).
		Msg("sort session ended")

	if runErr != nil {
		return fmt.Errorf("terminal UI failed: %w", runErr)
	}

	if sorter.Finished() {
		fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("✅ Sorted %d of %d images", count, total)))
	} else {
		fmt.Println(ui.InfoStyle.Render(fmt.Sprintf("Stopped after %d of %d images", count, total)))
	}
	if dropped := p.Dropped(); dropped > 0 {
		fmt.Println(ui.WarningStyle.Render(fmt.Sprintf("⚠️  %d image(s) could not be decoded, see %s", dropped, cfg.LogFile())))
	}
	return nil
}
