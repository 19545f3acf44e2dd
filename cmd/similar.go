package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/corona10/goimagehash"
	"github.com/schollz/progressbar/v3"

	"github.com/lepinkainen/imagesorter/catalog"
	"github.com/lepinkainen/imagesorter/pool"
	"github.com/lepinkainen/imagesorter/types"
	"github.com/lepinkainen/imagesorter/ui"
)

// hashSize bounds the images fed to the hasher. The perceptual hash works on
// a 64x64 downscale, so full resolution buys nothing.
const hashSize = 256

// SimilarCmd finds perceptually similar images in a directory. It is useful
// before sorting to spot near duplicates that would end up in different places.
type SimilarCmd struct {
	Directory string `arg:"" name:"directory" help:"Directory to scan" type:"existingdir" default:"."`
	Threshold int    `help:"Hamming distance threshold for similarity (0-64)" default:"10"`
	PoolFlags
}

// SimilarPair is two images within the distance threshold
type SimilarPair struct {
	A, B     string
	Distance int
}

// Run hashes every image through the worker pool and prints the pairs within
// the threshold (lower distance = more similar).
func (cmd *SimilarCmd) Run(appCtx *types.AppContext) error {
	log := loggerFrom(appCtx)

	if cmd.Threshold < 0 || cmd.Threshold > 64 {
		return fmt.Errorf("--threshold must be between 0 and 64, got %d", cmd.Threshold)
	}
	if cmd.Workers < 0 || cmd.Queue < 0 {
		return fmt.Errorf("--workers and --queue must not be negative")
	}

	cat, workers, err := buildCatalog(cmd.Directory, cmd.Workers, log)
	if err != nil {
		return err
	}
	fmt.Println(header(appCtx))
	if cat.Len() < 2 {
		fmt.Printf("%s\n", ui.ErrorStyle.Render("❌ Need at least 2 images to compare"))
		return nil
	}

	fmt.Printf("%s\n", ui.InfoStyle.Render(fmt.Sprintf("Calculating perceptual hashes for %d images...", cat.Len())))

	bar := progressbar.NewOptions(cat.Len(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("hashing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	hashes, err := HashImages(cat, pool.Options{Workers: workers, QueueCapacity: cmd.Queue, Logger: &log}, bar)
	if err != nil {
		return err
	}
	_ = bar.Finish()

	if skipped := cat.Len() - len(hashes); skipped > 0 {
		fmt.Printf("⚠️  %d image(s) could not be decoded, skipping\n", skipped)
	}

	fmt.Printf("\n%s\n", ui.InfoStyle.Render(fmt.Sprintf("Comparing %d images for similarity (threshold: %d):", len(hashes), cmd.Threshold)))

	pairs := FindSimilar(cat, hashes, cmd.Threshold)
	if len(pairs) == 0 {
		fmt.Printf("%s\n", ui.SuccessStyle.Render("✅ No similar images found within threshold"))
		return nil
	}

	for _, pair := range pairs {
		fmt.Printf("🎯 Similar (distance %d): %s ↔ %s\n", pair.Distance, filepath.Base(pair.A), filepath.Base(pair.B))
	}
	return nil
}

// HashImages computes a perceptual hash for every image the pool manages to
// decode, keyed by catalog index. progress may be nil.
func HashImages(cat *catalog.Catalog, opts pool.Options, progress Progress) (map[int]*goimagehash.ImageHash, error) {
	opts.Preparer = pool.ImagePreparer{MaxWidth: hashSize, MaxHeight: hashSize}

	log := opts.Logger
	p := pool.Start(cat, opts)

	hashes := make(map[int]*goimagehash.ImageHash, cat.Len())
	for {
		task, ok := p.Get()
		if !ok {
			break
		}
		hash, err := goimagehash.PerceptionHash(task.Image)
		if err != nil {
			if log != nil {
				log.Warn().Err(err).Str("path", cat.Path(task.Index)).Msg("failed to hash image")
			}
		} else {
			hashes[task.Index] = hash
		}
		if progress != nil {
			_ = progress.Add(1)
		}
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	// Decode failures never reach the queue but still count towards the total
	if progress != nil && p.Dropped() > 0 {
		_ = progress.Add(p.Dropped())
	}
	return hashes, nil
}

// FindSimilar compares every pair of hashes and returns the ones within
// threshold, closest first
func FindSimilar(cat *catalog.Catalog, hashes map[int]*goimagehash.ImageHash, threshold int) []SimilarPair {
	indices := make([]int, 0, len(hashes))
	for i := range hashes {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	var pairs []SimilarPair
	for x := 0; x < len(indices); x++ {
		for y := x + 1; y < len(indices); y++ {
			a, b := indices[x], indices[y]
			distance, err := hashes[a].Distance(hashes[b])
			if err != nil {
				continue
			}
			if distance <= threshold {
				pairs = append(pairs, SimilarPair{A: cat.Path(a), B: cat.Path(b), Distance: distance})
			}
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Distance < pairs[j].Distance })
	return pairs
}
