package game

import "github.com/pthm-cable/warren/config"

// scheduler runs index ranges of a step phase. Callers split work so that
// ranges never write shared state except through locked appends.
type scheduler interface {
	name() string
	// concurrent reports whether a phase over n items may run ranges in
	// parallel, so callers pick locked or unlocked appends.
	concurrent(n int) bool
	forEach(n int, fn func(start, end int))
	forEachErr(n int, fn func(start, end int) error) error
	stop()
}

// sequentialScheduler runs every phase on the calling goroutine.
type sequentialScheduler struct{}

func (sequentialScheduler) name() string { return config.SchedulerSequential }

func (sequentialScheduler) concurrent(int) bool { return false }

func (sequentialScheduler) forEach(n int, fn func(start, end int)) {
	if n > 0 {
		fn(0, n)
	}
}

func (sequentialScheduler) forEachErr(n int, fn func(start, end int) error) error {
	if n == 0 {
		return nil
	}
	return fn(0, n)
}

func (sequentialScheduler) stop() {}
