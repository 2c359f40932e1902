package engine

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the number of remote calls one comparison runs at once.
const DefaultWorkers = 4

// stage runs independent remote calls on a bounded pool and joins them.
// With a limit of 1 the calls run one after another in submission order.
//
// Calls do not cancel each other. Wait reports the error of the earliest
// submitted failing call whatever the worker count.
type stage struct {
	g    errgroup.Group
	ctx  context.Context
	errs []*error
}

func newStage(ctx context.Context, workers int) *stage {
	if workers < 1 {
		workers = 1
	}
	s := &stage{ctx: ctx}
	s.g.SetLimit(workers)
	return s
}

// Go schedules fn. It blocks while the pool is full. Go must be called from a
// single goroutine.
func (s *stage) Go(fn func(ctx context.Context) error) {
	slot := new(error)
	s.errs = append(s.errs, slot)
	s.g.Go(func() error {
		*slot = fn(s.ctx)
		return nil
	})
}

// Wait blocks until every scheduled call returned and yields the first error in
// submission order.
func (s *stage) Wait() error {
	s.g.Wait()
	for _, err := range s.errs {
		if *err != nil {
			return *err
		}
	}
	return nil
}
