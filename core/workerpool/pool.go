package workerpool

import (
	"context"
	"sync"
	"time"

	"auction-aggregator/core/metrics"

	"golang.org/x/time/rate"
)

// Config controls the width and pacing of a pool.
type Config struct {
	// Workers is the maximum number of jobs in flight.
	Workers int `mapstructure:"concurrency" default:"16"`
	// RatePerSecond caps job starts per second. Zero disables rate limiting.
	RatePerSecond float64 `mapstructure:"rate_per_second" default:"0"`
	// TimeoutSeconds bounds a single job. Zero means no per-job timeout.
	TimeoutSeconds int `mapstructure:"job_timeout_seconds" default:"30"`
}

// Pool runs jobs for one external provider with a fixed number of workers.
type Pool struct {
	name    string
	workers int
	limiter *rate.Limiter
	timeout time.Duration
	metrics *metrics.Metrics
}

// Result is the outcome of one job. Results are returned in job order.
type Result[R any] struct {
	Value    R
	Err      error
	Duration time.Duration
}

// New creates a pool. m may be nil.
func New(name string, cfg Config, m *metrics.Metrics) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 16
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), workers)
	}

	var timeout time.Duration
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	return &Pool{
		name:    name,
		workers: workers,
		limiter: limiter,
		timeout: timeout,
		metrics: m,
	}
}

// Name returns the provider name the pool was created for.
func (p *Pool) Name() string {
	return p.name
}

// Workers returns the pool width.
func (p *Pool) Workers() int {
	return p.workers
}

// Run executes fn for every job with at most p.Workers() jobs in flight.
// A failing job never cancels its siblings; its error is reported in its Result.
func Run[J any, R any](ctx context.Context, p *Pool, jobs []J, fn func(ctx context.Context, job J) (R, error)) []Result[R] {
	results := make([]Result[R], len(jobs))
	if len(jobs) == 0 {
		return results
	}

	workers := p.workers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	indexCh := make(chan int, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexCh {
				// Each worker owns the slots it writes, so results needs no lock.
				results[i] = runOne(ctx, p, jobs[i], fn)
			}
		}()
	}

	for i := range jobs {
		indexCh <- i
	}
	close(indexCh)
	wg.Wait()

	return results
}

func runOne[J any, R any](ctx context.Context, p *Pool, job J, fn func(ctx context.Context, job J) (R, error)) Result[R] {
	var res Result[R]
	start := time.Now()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			res.Err = err
			return res
		}
	}

	jobCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	res.Value, res.Err = fn(jobCtx, job)
	res.Duration = time.Since(start)
	p.metrics.ObserveFetch(p.name, res.Err, res.Duration)

	return res
}
