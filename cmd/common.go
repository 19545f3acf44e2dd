package cmd

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lepinkainen/imagesorter/catalog"
	"github.com/lepinkainen/imagesorter/config"
	"github.com/lepinkainen/imagesorter/pool"
	"github.com/lepinkainen/imagesorter/types"
	"github.com/lepinkainen/imagesorter/ui"
	"github.com/lepinkainen/imagesorter/utils"
)

// PoolFlags are the worker pool overrides shared by the commands that decode images
type PoolFlags struct {
	Workers int `help:"Number of parallel decoders (0 uses the config value)" default:"0"`
	Queue   int `help:"Prepared images buffered ahead of the consumer (0 uses the config value)" default:"0"`
}

// apply copies non-zero flag values over the config and revalidates it
func (f PoolFlags) apply(cfg *config.Config) error {
	if f.Workers < 0 {
		return fmt.Errorf("--workers must not be negative")
	}
	if f.Workers > 0 {
		cfg.Workers = f.Workers
	}
	if f.Queue < 0 {
		return fmt.Errorf("--queue must not be negative")
	}
	if f.Queue > 0 {
		cfg.QueueCapacity = f.Queue
	}
	return cfg.Validate()
}

func loggerFrom(appCtx *types.AppContext) zerolog.Logger {
	if appCtx == nil {
		return zerolog.Nop()
	}
	return appCtx.Logger
}

// buildCatalog scans dir and resolves the decoder count for it. Network
// mounts default to a single worker unless workers is set explicitly.
func buildCatalog(dir string, workers int, log zerolog.Logger) (*catalog.Catalog, int, error) {
	cat, err := catalog.Build(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build image catalog: %w", err)
	}

	resolved := utils.DecodeWorkers(dir, workers, pool.DefaultWorkers())
	if workers <= 0 && resolved == 1 && utils.IsNetworkDrive(dir) {
		log.Info().
			Str("dir", dir).
			Msg("network drive detected, using 1 worker")
	}

	return cat, resolved, nil
}

// header is the title line printed by the headless commands
func header(appCtx *types.AppContext) string {
	version := types.DefaultVersion
	if appCtx != nil && appCtx.Version != "" {
		version = appCtx.Version
	}
	return ui.HeaderStyle.Render(fmt.Sprintf("Image Sorter %s", version))
}
