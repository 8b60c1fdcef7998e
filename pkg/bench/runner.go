package bench

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"GraphBench/pkg/profiling"
	"GraphBench/pkg/results"
	"GraphBench/pkg/sampling"
	"GraphBench/pkg/store"
)

// ErrEmptySeries marks an average taken over zero samples. That is a
// measurement error to surface, never a zero to return.
var ErrEmptySeries = errors.New("bench: empty sample series")

// Result holds one measured benchmark execution.
type Result struct {
	Workload string
	Database string
	// Duration is the wall time of the real run, Overhead that of the
	// suppressed dry run, both in seconds. Corrected = Duration - Overhead
	// and may be negative when the overhead estimate exceeded the real run;
	// it is reported as measured, not clamped.
	Duration  float64
	Overhead  float64
	Corrected float64
	Series    []sampling.Sample
}

// Runner orchestrates benchmark executions: a suppressed dry run to measure
// the fixed call overhead, then the real run with background profiling.
type Runner struct {
	interval  time.Duration
	window    time.Duration
	outputDir string
	logger    *log.Logger

	// now is injectable so duration arithmetic is testable with fixed
	// timings.
	now func() time.Time
}

// NewRunner creates a runner. interval spaces profiler ticks, window is the
// per-PID CPU measurement window, outputDir receives the .bench files.
func NewRunner(interval, window time.Duration, outputDir string, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		interval:  interval,
		window:    window,
		outputDir: outputDir,
		logger:    logger,
		now:       time.Now,
	}
}

// RunOnce measures one workload execution against one store.
//
// The suppressed pass runs the same workload with the same parameters, so
// systematic fixed costs (loop setup, query formatting) cancel out of the
// corrected duration.
func (r *Runner) RunOnce(ctx context.Context, w Workload, st store.Store, p Params) (*Result, error) {
	r.logger.Printf("starting benchmark %s with %s", w.Name, st.Name())

	overhead, err := r.timeSuppressed(ctx, w, st, p)
	if err != nil {
		return nil, err
	}
	r.logger.Printf("overhead is %.6fs", overhead)

	pids, err := st.Pids()
	if err != nil {
		// Degraded mode: the run proceeds, the series just reads zero.
		r.logger.Printf("pid discovery for %s failed: %v", st.Name(), err)
		pids = nil
	}

	prof := profiling.New(pids, r.interval, r.window, r.logger)
	if err := prof.Start(); err != nil {
		return nil, err
	}

	start := r.now()
	runErr := w.Run(ctx, st, p)
	duration := r.now().Sub(start).Seconds()
	prof.Stop()

	if runErr != nil {
		return nil, fmt.Errorf("workload %s on %s: %w", w.Name, st.Name(), runErr)
	}

	corrected := duration - overhead
	if corrected < 0 {
		r.logger.Printf("corrected duration is negative (%.6fs): overhead estimate exceeded the real run", corrected)
	}
	r.logger.Printf("benchmark %s with %s finished in %.6fs", w.Name, st.Name(), corrected)

	return &Result{
		Workload:  w.Name,
		Database:  st.Name(),
		Duration:  duration,
		Overhead:  overhead,
		Corrected: corrected,
		Series:    prof.Series(),
	}, nil
}

// timeSuppressed times a dry run of the workload with backend I/O
// suppressed. Suppression is released on every exit path before any
// workload failure propagates.
func (r *Runner) timeSuppressed(ctx context.Context, w Workload, st store.Store, p Params) (float64, error) {
	st.SetSuppressed(true)
	defer st.SetSuppressed(false)

	start := r.now()
	if err := w.Run(ctx, st, p); err != nil {
		return 0, fmt.Errorf("suppressed run of %s on %s: %w", w.Name, st.Name(), err)
	}
	return r.now().Sub(start).Seconds(), nil
}

// RunAndSave measures a workload and persists its sample series as a
// _Time,CPU,Memory table.
func (r *Runner) RunAndSave(ctx context.Context, w Workload, st store.Store, p Params) (*Result, string, error) {
	res, err := r.RunOnce(ctx, w, st, p)
	if err != nil {
		return nil, "", err
	}

	n := len(res.Series)
	elapsed := make([]float64, n)
	cpu := make([]float64, n)
	mem := make([]float64, n)
	for i, s := range res.Series {
		elapsed[i] = s.Elapsed
		cpu[i] = s.CPUPercent
		mem[i] = s.MemoryBytes
	}

	name := res.Workload + "_" + res.Database
	path, err := results.Write(r.outputDir, name, []string{"_Time", "CPU", "Memory"}, [][]float64{elapsed, cpu, mem})
	if err != nil {
		return nil, "", err
	}
	r.logger.Printf("saving data to %s", path)
	return res, path, nil
}

// Averages returns the arithmetic means of a series' CPU and memory fields.
func Averages(series []sampling.Sample) (cpu, mem float64, err error) {
	if len(series) == 0 {
		return 0, 0, ErrEmptySeries
	}
	for _, s := range series {
		cpu += s.CPUPercent
		mem += s.MemoryBytes
	}
	n := float64(len(series))
	return cpu / n, mem / n, nil
}
