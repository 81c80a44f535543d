package tasks

import "sync"

// Executor schedules a unit of work off the caller's path. Submit reports
// whether the task was accepted; once submitted a task runs to completion or
// failure on its own, with no cancellation and no result observed by the caller.
type Executor interface {
	Submit(task func()) bool
}

// Pool runs submitted tasks on a fixed set of worker goroutines behind a
// bounded queue.
type Pool struct {
	ch        chan func()
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewPool starts workers goroutines draining a queue of size queueSize.
func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}

	p := &Pool{
		ch:   make(chan func(), queueSize),
		done: make(chan struct{}),
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.run()
	}

	return p
}

func (p *Pool) run() {
	defer p.wg.Done()

	for {
		select {
		case task := <-p.ch:
			task()
		case <-p.done:
			for {
				select {
				case task := <-p.ch:
					task()
				default:
					return
				}
			}
		}
	}
}

// Submit enqueues a task, blocking while the queue is full. It returns false
// once the pool has been closed.
func (p *Pool) Submit(task func()) bool {
	if p == nil || task == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
	}
	select {
	case p.ch <- task:
		return true
	case <-p.done:
		return false
	}
}

// Close stops accepting tasks, drains the queue and waits for the workers.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() {
		close(p.done)
		p.wg.Wait()
	})
}

// Sync runs every submitted task inline on the caller's goroutine. Tests use it
// to observe scheduling deterministically.
type Sync struct {
	// Submitted counts tasks accepted, including ones suppressed by Defer.
	Submitted int
	// Defer holds tasks instead of running them until Flush is called.
	Defer   bool
	pending []func()
}

// Submit runs (or defers) the task immediately.
func (s *Sync) Submit(task func()) bool {
	if task == nil {
		return false
	}
	s.Submitted++
	if s.Defer {
		s.pending = append(s.pending, task)
		return true
	}
	task()
	return true
}

// Flush runs any deferred tasks in submission order.
func (s *Sync) Flush() {
	pending := s.pending
	s.pending = nil
	for _, task := range pending {
		task()
	}
}
