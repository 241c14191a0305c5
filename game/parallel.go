package game

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/warren/config"
)

// defaultParallelThreshold is the minimum item count to use parallel
// processing. Below this, single-threaded is faster due to goroutine overhead.
const defaultParallelThreshold = 64

// workChunk represents a range of items for a worker to process.
type workChunk struct {
	start, end int
	fn         func(start, end int)
}

// parallelScheduler splits phases across a persistent worker pool.
// Fallible phases (commit) run through an errgroup bounded to the same
// worker count so the first error stops the step.
type parallelScheduler struct {
	numWorkers int
	threshold  int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelScheduler(workers, threshold int) *parallelScheduler {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if threshold < 0 {
		threshold = defaultParallelThreshold
	}
	return &parallelScheduler{
		numWorkers: workers,
		threshold:  threshold,
	}
}

func (p *parallelScheduler) name() string { return config.SchedulerParallel }

func (p *parallelScheduler) concurrent(n int) bool {
	return n >= p.threshold && n > 1 && p.numWorkers > 1
}

// startWorkers launches persistent worker goroutines.
func (p *parallelScheduler) startWorkers() {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stop signals all workers to exit and waits for them.
func (p *parallelScheduler) stop() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelScheduler) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			chunk.fn(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// chunkSize splits n items evenly across the workers.
func (p *parallelScheduler) chunkSize(n int) int {
	return (n + p.numWorkers - 1) / p.numWorkers
}

// forEach dispatches fn over [0, n) to the worker pool.
func (p *parallelScheduler) forEach(n int, fn func(start, end int)) {
	if n == 0 {
		return
	}
	if !p.concurrent(n) {
		fn(0, n)
		return
	}

	// Ensure workers are running
	if !p.running {
		p.startWorkers()
	}

	size := p.chunkSize(n)

	// Dispatch chunks to workers
	chunksDispatched := 0
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		p.workChan <- workChunk{start: start, end: end, fn: fn}
		chunksDispatched++
	}

	// Wait for all chunks to complete
	for i := 0; i < chunksDispatched; i++ {
		<-p.doneChan
	}
}

// forEachErr runs fn over [0, n) and returns the first error.
func (p *parallelScheduler) forEachErr(n int, fn func(start, end int) error) error {
	if n == 0 {
		return nil
	}
	if !p.concurrent(n) {
		return fn(0, n)
	}

	var g errgroup.Group
	g.SetLimit(p.numWorkers)

	size := p.chunkSize(n)
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		g.Go(func() error {
			return fn(start, end)
		})
	}
	return g.Wait()
}
