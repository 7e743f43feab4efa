// SPDX-License-Identifier: MIT

package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/hiercluster/cluster"
	"github.com/katalvlaran/hiercluster/distance"
)

// ErrNilCalculator is returned by NewRunner without a calculator.
var ErrNilCalculator = errors.New("batch: nil distance calculator")

// DefaultWorkers bounds concurrent jobs when WithWorkers is not given.
const DefaultWorkers = 4

// Job is one entity set to cluster.
type Job struct {
	Name string
	IDs  []string
}

// Result is the outcome of one Job.
type Result struct {
	Job string
	// Root is the final cluster; nil when the run stopped early or failed.
	Root *cluster.Node
	// Clusters are the clusters left when the run stopped.
	Clusters []*cluster.Node
	// Iterations is the number of merges performed.
	Iterations int
	Elapsed    time.Duration
	Err        error
}

// Runner clusters jobs concurrently. Safe for concurrent use if the
// calculator is.
type Runner struct {
	calc        distance.Calculator
	workers     int
	iterations  int
	clusterOpts []cluster.Option
	log         zerolog.Logger
	runID       string
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers bounds concurrent jobs. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("batch: WithWorkers(%d): need at least one worker", n))
	}

	return func(r *Runner) { r.workers = n }
}

// WithIterations stops each job after k merges; 0 (default) clusters to a
// single root. Panics if k < 0.
func WithIterations(k int) Option {
	if k < 0 {
		panic(fmt.Sprintf("batch: WithIterations(%d): must be >= 0", k))
	}

	return func(r *Runner) { r.iterations = k }
}

// WithClusterOptions passes options to every Clusterer.
func WithClusterOptions(opts ...cluster.Option) Option {
	return func(r *Runner) { r.clusterOpts = append(r.clusterOpts, opts...) }
}

// WithLogger sets the progress logger. The default discards.
// Workers log concurrently, so the logger's writer must be safe for
// concurrent use; wrap plain buffers with zerolog.SyncWriter.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// NewRunner returns a Runner with a fresh run ID.
func NewRunner(calc distance.Calculator, opts ...Option) (*Runner, error) {
	if calc == nil {
		return nil, ErrNilCalculator
	}
	r := &Runner{
		calc:    calc,
		workers: DefaultWorkers,
		log:     zerolog.Nop(),
		runID:   uuid.New().String(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With().Str("run", r.runID).Str("calculator", calc.Kind().String()).Logger()

	return r, nil
}

// RunID identifies this runner in logs.
func (r *Runner) RunID() string { return r.runID }

// Run clusters every job and returns one Result per job, in job order.
// Job failures land in Result.Err. The returned error is non-nil only when
// ctx was cancelled; jobs not started by then carry ctx.Err().
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	r.log.Info().Int("jobs", len(jobs)).Int("workers", r.workers).Msg("batch started")

	for i := range jobs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Job: jobs[i].Name, Err: err}
				return nil
			}
			results[i] = r.runOne(jobs[i])
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	r.log.Info().Int("jobs", len(jobs)).Int("failed", failed).Msg("batch finished")

	return results, ctx.Err()
}

func (r *Runner) runOne(job Job) Result {
	start := time.Now()
	res := Result{Job: job.Name}
	log := r.log.With().Str("job", job.Name).Int("entities", len(job.IDs)).Logger()

	c, err := cluster.New(job.IDs, r.calc, r.clusterOpts...)
	if err != nil {
		res.Err = err
		res.Elapsed = time.Since(start)
		log.Warn().Err(err).Msg("job failed")
		return res
	}

	if r.iterations > 0 {
		_, err = c.ClusterToIteration(r.iterations)
		res.Root = c.Root()
	} else {
		res.Root, err = c.ClusterToSingle()
	}
	res.Clusters = c.Clusters()
	res.Iterations = c.Iteration()
	res.Err = err
	res.Elapsed = time.Since(start)

	if err != nil {
		log.Warn().Err(err).Msg("job failed")
	} else {
		log.Debug().Int("iterations", res.Iterations).Dur("elapsed", res.Elapsed).Msg("job clustered")
	}

	return res
}

// Summary is a one-line human description of res.
func (res Result) Summary() string {
	switch {
	case res.Err != nil:
		return fmt.Sprintf("%s: error: %v", res.Job, res.Err)
	case res.Root != nil:
		return fmt.Sprintf("%s: %d elements, %d merges, root %s at %.2f",
			res.Job, res.Root.ElementCount(), res.Iterations, res.Root.Name(), res.Root.Distance())
	}

	return fmt.Sprintf("%s: %d clusters after %d merges", res.Job, len(res.Clusters), res.Iterations)
}
