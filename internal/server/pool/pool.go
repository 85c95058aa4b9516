package pool

import (
	"golang.org/x/sync/errgroup"
)

// Pool runs submitted tasks on at most Size goroutines simultaneously. It owns the lifetime
// of whatever a task is given: once submitted, the caller must not touch it anymore.
type Pool struct {
	group errgroup.Group
	size  int
}

// New returns a pool of the given capacity. Capacity less than 1 is treated as 1.
func New(size int) *Pool {
	if size < 1 {
		size = 1
	}

	p := &Pool{size: size}
	p.group.SetLimit(size)

	return p
}

// Submit schedules the task. If all the workers are busy, the call blocks until one of
// them is released.
func (p *Pool) Submit(task func()) {
	p.group.Go(func() error {
		task()
		return nil
	})
}

// TrySubmit schedules the task only if there's a free worker right now.
func (p *Pool) TrySubmit(task func()) bool {
	return p.group.TryGo(func() error {
		task()
		return nil
	})
}

// Wait blocks until all the submitted tasks are done.
func (p *Pool) Wait() {
	_ = p.group.Wait()
}

func (p *Pool) Size() int {
	return p.size
}
