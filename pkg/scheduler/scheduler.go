package scheduler

import (
	"context"
	"fmt"
	"sync"
)

// Work is a unit of work run by the scheduler.
type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

// Future holds the result of a scheduled Work.
type Future[T any] struct {
	c      chan Result[T]
	cancel context.CancelFunc
}

// C returns the channel the result is delivered on. It receives exactly once.
func (f *Future[T]) C() <-chan Result[T] {
	return f.c
}

// Stop cancels the context passed to the work.
func (f *Future[T]) Stop() {
	f.cancel()
}

// Wait blocks until the work is done or ctx is cancelled. In the latter case
// the work is stopped.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case r := <-f.c:
		return r.Data, r.Err
	case <-ctx.Done():
		f.Stop()
		var none T
		return none, ctx.Err()
	}
}

type workRequest[T any] struct {
	fn     Work[T]
	c      chan Result[T]
	ctx    context.Context
	cancel context.CancelFunc
}

// Scheduler runs work on a fixed number of workers, in FIFO order.
type Scheduler[T any] struct {
	workQueue  []workRequest[T]
	mu         sync.Mutex
	cond       *sync.Cond
	closed     bool
	wg         sync.WaitGroup
	mainCtx    context.Context
	mainCancel context.CancelFunc
}

func NewScheduler[T any](nbWorkers int) *Scheduler[T] {
	if nbWorkers < 1 {
		nbWorkers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler[T]{
		mainCtx:    ctx,
		mainCancel: cancel,
	}
	s.cond = sync.NewCond(&s.mu)

	s.wg.Add(nbWorkers)
	for range nbWorkers {
		go s.worker()
	}
	return s
}

// AddWork queues w. Work added after Close resolves with context.Canceled.
func (s *Scheduler[T]) AddWork(w Work[T]) *Future[T] {
	c := make(chan Result[T], 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		c <- Result[T]{Err: context.Canceled}
		return &Future[T]{c: c, cancel: func() {}}
	}

	ctx, cancel := context.WithCancel(s.mainCtx)
	s.workQueue = append(s.workQueue, workRequest[T]{fn: w, c: c, ctx: ctx, cancel: cancel})
	s.cond.Signal()

	return &Future[T]{c: c, cancel: cancel}
}

// Close cancels queued and running work and waits for the workers to return.
func (s *Scheduler[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mainCancel()
	s.cond.Broadcast()
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Scheduler[T]) worker() {
	defer s.wg.Done()

	for {
		s.mu.Lock()
		for len(s.workQueue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if len(s.workQueue) == 0 {
			s.mu.Unlock()
			return
		}
		r := s.workQueue[0]
		s.workQueue = s.workQueue[1:]
		s.mu.Unlock()

		s.execute(r)
	}
}

func (s *Scheduler[T]) execute(r workRequest[T]) {
	defer r.cancel()

	if err := r.ctx.Err(); err != nil {
		r.c <- Result[T]{Err: err}
		return
	}

	defer func() {
		if p := recover(); p != nil {
			r.c <- Result[T]{Err: fmt.Errorf("worker panicked: %v", p)}
		}
	}()

	v, err := r.fn(r.ctx)
	r.c <- Result[T]{Data: v, Err: err}
}
