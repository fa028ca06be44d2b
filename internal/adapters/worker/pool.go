// Package worker runs indexed jobs on a bounded set of goroutines.
package worker

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/okian/wclscrape/pkg/logger"
	"github.com/okian/wclscrape/pkg/metrics"
)

// Pool runs at most workerCount jobs at a time. Jobs are handed out in index
// order; callers keep results ordered by writing into slot i.
type Pool struct {
	workerCount int
	logger      logger.Logger
	metrics     *metrics.Manager
}

// NewPool creates a pool. A workerCount below 1 is treated as 1.
func NewPool(workerCount int, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	p := &Pool{
		workerCount: workerCount,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Size returns the configured worker count.
func (p *Pool) Size() int { return p.workerCount }

// Run executes job for every index in [0, n) and returns when all are done.
// Jobs still run after ctx is canceled so every slot gets filled; they see
// the canceled ctx and are expected to fail fast.
func (p *Pool) Run(ctx context.Context, n int, job func(ctx context.Context, i int)) {
	if n <= 0 {
		return
	}

	workers := p.workerCount
	if workers > n {
		workers = n
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go p.work(ctx, "worker-"+strconv.Itoa(w), jobs, job, &wg)
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

func (p *Pool) work(ctx context.Context, name string, jobs <-chan int, job func(ctx context.Context, i int), wg *sync.WaitGroup) {
	defer wg.Done()
	log := p.logger.Named(name)

	for i := range jobs {
		start := time.Now()
		p.metrics.AddWorkerActive(1)
		job(ctx, i)
		p.metrics.AddWorkerActive(-1)
		log.Debug(ctx, "job finished", logger.Int("job", i), logger.Int64("latency_ms", time.Since(start).Milliseconds()))
	}
}
