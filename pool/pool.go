// Package pool decodes catalog images in parallel and hands the results to a
// single consumer through a bounded queue.
package pool

import (
	"errors"
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lepinkainen/imagesorter/catalog"
)

// DefaultQueueCapacity is the number of prepared images buffered ahead of the consumer
const DefaultQueueCapacity = 7

// DefaultWorkers returns the number of CPUs minus one, but at least one
func DefaultWorkers() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}

// Options configures a Pool. Zero values select the defaults.
type Options struct {
	Workers       int
	QueueCapacity int
	Preparer      Preparer
	Logger        *zerolog.Logger
}

// Pool owns the worker goroutines and the queue they feed.
//
// Tasks arrive in completion order, not catalog order. A Task's Index is its
// only identity.
type Pool struct {
	catalog  *catalog.Catalog
	preparer Preparer
	log      zerolog.Logger

	queue  *Queue
	cursor Cursor
	group  errgroup.Group

	workers  int
	dropped  atomic.Int64
	enqueued atomic.Int64
	finished chan struct{}
	err      error
}

// Start spawns the workers and returns immediately
func Start(cat *catalog.Catalog, opts Options) *Pool {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers()
	}
	if opts.QueueCapacity <= 0 {
		opts.QueueCapacity = DefaultQueueCapacity
	}
	if opts.Preparer == nil {
		opts.Preparer = ImagePreparer{}
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	p := &Pool{
		catalog:  cat,
		preparer: opts.Preparer,
		log:      log.With().Str("component", "pool").Logger(),
		queue:    NewQueue(opts.QueueCapacity),
		workers:  opts.Workers,
		finished: make(chan struct{}),
	}

	p.log.Debug().
		Int("workers", opts.Workers).
		Int("queue_capacity", opts.QueueCapacity).
		Int("images", cat.Len()).
		Msg("starting worker pool")

	for i := 0; i < opts.Workers; i++ {
		workerID := i
		p.group.Go(func() error {
			return p.work(workerID)
		})
	}

	// Once every worker has returned nothing can Put anymore, so the queue is
	// sealed and the consumer sees a disconnect after draining it.
	go func() {
		p.err = p.group.Wait()
		p.queue.seal()
		close(p.finished)
	}()

	return p
}

// work is the loop run by each worker. It returns nil when the cursor runs
// past the catalog and ErrReceiverClosed when the receiver has gone away.
func (p *Pool) work(workerID int) error {
	total := p.catalog.Len()

	for {
		// Without this a run of failing decodes would keep claiming after Shutdown
		if p.queue.closed() {
			p.log.Debug().Int("worker", workerID).Msg("receiver closed, worker exiting")
			return ErrReceiverClosed
		}

		idx := p.cursor.Claim()
		if idx >= total {
			return nil
		}

		path := p.catalog.Path(idx)
		img, err := p.preparer.Prepare(path)
		if err != nil {
			// The index is dropped for good, it is never retried
			p.dropped.Add(1)
			p.log.Warn().
				Err(err).
				Int("worker", workerID).
				Int("index", idx).
				Str("path", path).
				Msg("failed to prepare image")
			continue
		}

		if err := p.queue.Put(Task{Index: idx, Image: img}); err != nil {
			p.log.Debug().Int("worker", workerID).Msg("receiver closed, worker exiting")
			return err
		}
		p.enqueued.Add(1)
	}
}

// Get blocks until the next Task is available. It returns false once all
// workers are done and the queue is drained, or after Shutdown.
func (p *Pool) Get() (Task, bool) {
	return p.queue.Get()
}

// Queue returns the queue the workers publish into
func (p *Pool) Queue() *Queue { return p.queue }

// Workers returns the number of worker goroutines
func (p *Pool) Workers() int { return p.workers }

// Total returns the catalog length
func (p *Pool) Total() int { return p.catalog.Len() }

// Dropped returns how many indices failed to prepare so far
func (p *Pool) Dropped() int { return int(p.dropped.Load()) }

// Enqueued returns how many Tasks the workers have published so far
func (p *Pool) Enqueued() int { return int(p.enqueued.Load()) }

// Done is closed once every worker has exited
func (p *Pool) Done() <-chan struct{} { return p.finished }

// Wait blocks until every worker has exited. It returns ErrReceiverClosed
// when the workers stopped early because the receiver was closed, and nil
// once the whole catalog was processed.
func (p *Pool) Wait() error {
	<-p.finished
	return p.err
}

// Shutdown drops the receiving end and blocks until every worker has returned.
// A worker in the middle of decoding finishes that image first, so Shutdown
// takes as long as the slowest outstanding decode. Stopping early is the point
// of Shutdown, so ErrReceiverClosed is not reported.
func (p *Pool) Shutdown() error {
	p.queue.CloseReceiver()
	<-p.finished
	p.log.Debug().
		Int("enqueued", p.Enqueued()).
		Int("dropped", p.Dropped()).
		Msg("worker pool stopped")
	if errors.Is(p.err, ErrReceiverClosed) {
		return nil
	}
	return p.err
}
