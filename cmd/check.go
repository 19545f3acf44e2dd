package cmd

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/lepinkainen/imagesorter/catalog"
	"github.com/lepinkainen/imagesorter/config"
	"github.com/lepinkainen/imagesorter/pool"
	"github.com/lepinkainen/imagesorter/types"
	"github.com/lepinkainen/imagesorter/ui"
)

// CheckCmd decodes every image in the directory without moving anything and
// reports the ones that cannot be displayed.
type CheckCmd struct {
	Directory string `arg:"" name:"directory" help:"Directory to check (defaults to dir from the config)" type:"existingdir" optional:""`
	Config    string `help:"Path to the configuration file" default:"config.toml" type:"path"`
	PoolFlags
}

// Progress receives one tick per processed image. *progressbar.ProgressBar satisfies it.
type Progress interface {
	Add(n int) error
}

// DecodeFailure is an image the pool could not prepare
type DecodeFailure struct {
	Path string
	Err  error
}

// Run executes the check and returns an error when any image failed to decode
func (cmd *CheckCmd) Run(appCtx *types.AppContext) error {
	log := loggerFrom(appCtx)

	dir, workers, queueCap, err := cmd.resolve()
	if err != nil {
		return err
	}

	cat, workers, err := buildCatalog(dir, workers, log)
	if err != nil {
		return err
	}

	fmt.Println(header(appCtx))
	fmt.Println(ui.InfoStyle.Render(fmt.Sprintf("Checking %d images in %s...", cat.Len(), dir)))

	bar := progressbar.NewOptions(cat.Len(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("decoding"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	failures, err := CheckImages(cat, pool.Options{Workers: workers, QueueCapacity: queueCap, Logger: &log}, bar)
	if err != nil {
		return err
	}
	_ = bar.Finish()

	if len(failures) == 0 {
		fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("✅ All %d images decoded", cat.Len())))
		return nil
	}

	for _, f := range failures {
		fmt.Println(ui.ErrorStyle.Render(fmt.Sprintf("❌ %s: %v", filepath.Base(f.Path), f.Err)))
	}
	return fmt.Errorf("%d of %d images failed to decode", len(failures), cat.Len())
}

// resolve picks the directory and pool settings. An explicit directory means
// the config file is optional.
func (cmd *CheckCmd) resolve() (dir string, workers, queueCap int, err error) {
	cfg := config.Default()
	if cmd.Directory == "" {
		loaded, err := config.Load(cmd.Config)
		if err != nil {
			return "", 0, 0, err
		}
		cfg = *loaded
	} else {
		cfg.Dir = cmd.Directory
	}

	if cmd.Workers < 0 || cmd.Queue < 0 {
		return "", 0, 0, fmt.Errorf("--workers and --queue must not be negative")
	}
	if cmd.Workers > 0 {
		cfg.Workers = cmd.Workers
	}
	if cmd.Queue > 0 {
		cfg.QueueCapacity = cmd.Queue
	}
	return cfg.Dir, cfg.Workers, cfg.QueueCapacity, nil
}

// CheckImages runs the catalog through a worker pool at full resolution and
// returns the failures sorted by path. progress may be nil.
func CheckImages(cat *catalog.Catalog, opts pool.Options, progress Progress) ([]DecodeFailure, error) {
	var (
		mu       sync.Mutex
		failures []DecodeFailure
	)

	decode := pool.ImagePreparer{}
	opts.Preparer = pool.PreparerFunc(func(path string) (image.Image, error) {
		img, err := decode.Prepare(path)
		if err != nil {
			mu.Lock()
			failures = append(failures, DecodeFailure{Path: path, Err: err})
			mu.Unlock()
		}
		if progress != nil {
			_ = progress.Add(1)
		}
		return img, err
	})

	p := pool.Start(cat, opts)
	for {
		if _, ok := p.Get(); !ok {
			break
		}
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	sort.Slice(failures, func(i, j int) bool { return failures[i].Path < failures[j].Path })
	return failures, nil
}
