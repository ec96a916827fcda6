package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool. Jobs must be independent
// of each other: the pool gives no ordering or fairness guarantees.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a job produces. A non-nil Err marks the job failed;
// the pool itself never cancels sibling jobs on failure.
type Result interface {
	Err() error
}

// Pool runs jobs across a fixed number of goroutines. Usage is
// submit-all, await-all: Start, Submit every job, then Wait for the
// collected results. A collector goroutine drains results while jobs
// are still being submitted, so the job count may exceed the channel
// buffers without blocking anyone. Collected results arrive in
// completion order, not submission order; callers that care about
// order carry an index inside their Result.
type Pool struct {
	size        int
	jobs        chan Job
	results     chan Result
	collected   []Result
	collectDone chan struct{}
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	once        sync.Once
}

// NewPool creates a pool with the given number of workers.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		size:        size,
		jobs:        make(chan Job, size*2),
		results:     make(chan Result, size*2),
		collectDone: make(chan struct{}),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start launches the worker goroutines and the result collector.
func (p *Pool) Start() {
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run()
	}
	go p.collect()
}

// collect owns p.collected until collectDone is closed.
func (p *Pool) collect() {
	defer close(p.collectDone)
	for res := range p.results {
		p.collected = append(p.collected, res)
	}
}

func (p *Pool) run() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			res := job.Execute(p.ctx)
			select {
			case p.results <- res:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. It blocks when the queue is full and is a no-op
// after Shutdown.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Wait closes the queue, waits for the workers to drain it, and
// returns every result produced.
func (p *Pool) Wait() []Result {
	close(p.jobs)
	p.wg.Wait()
	p.closeResults()
	<-p.collectDone
	return p.collected
}

// Shutdown stops the pool without waiting for queued jobs.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
	<-p.collectDone
}

func (p *Pool) closeResults() {
	p.once.Do(func() {
		close(p.results)
	})
}
