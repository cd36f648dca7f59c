// Package wpool is a small bounded worker pool, adapted from the teacher's
// internal/worker.go: a tomb-supervised set of goroutines draining a task
// channel. Where the teacher's pool ran `func(t *tomb.Tomb, task any) error`
// against TCP connections, venex's pool runs parameterless closures — it is
// used to dispatch the deferred stop-order resubmissions of spec.md §4.4 off
// the goroutine that is still holding the originating book's lock.
package wpool

import (
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

const defaultTaskChanSize = 256

// Task is a unit of deferred work.
type Task func()

// Pool is a fixed-size set of workers draining a shared task channel, exactly
// the teacher's WorkerPool shape generalized from `chan net.Conn` to
// `chan Task`.
type Pool struct {
	n     int
	tasks chan Task
	t     *tomb.Tomb
}

// New starts a pool of size workers supervised by t. t should be the same
// tomb the owning component uses for its own lifecycle, so pool workers die
// with it.
func New(t *tomb.Tomb, size int) *Pool {
	p := &Pool{
		n:     size,
		tasks: make(chan Task, defaultTaskChanSize),
		t:     t,
	}
	for i := 0; i < size; i++ {
		t.Go(p.worker)
	}
	return p
}

// Dispatch enqueues task for a worker to run. If the pool's task channel is
// full, Dispatch blocks — callers that must not block under a lock should
// not hold one across Dispatch.
func (p *Pool) Dispatch(task Task) {
	select {
	case <-p.t.Dying():
	case p.tasks <- task:
	}
}

func (p *Pool) worker() error {
	for {
		select {
		case <-p.t.Dying():
			return nil
		case task := <-p.tasks:
			runTask(task)
		}
	}
}

// runTask isolates a single task so a panicking task logs and dies without
// taking the worker goroutine down with it, mirroring the teacher's
// per-connection isolation in handleConnection.
func runTask(task Task) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("wpool: task panicked")
		}
	}()
	task()
}
