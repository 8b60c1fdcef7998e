// Package profiling runs the process sampler on a repeating background
// schedule while the foreground goroutine executes a benchmark workload.
package profiling

import (
	"fmt"
	"log"
	"sync"
	"time"

	"GraphBench/pkg/sampling"
)

// State tracks the profiler lifecycle. A profiler runs at most once:
// Idle -> Running -> Stopped, no restart.
type State int

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Profiler owns the sampled series for one benchmark run. The sampling loop
// is the only writer; the series may be read only after Stop has returned.
type Profiler struct {
	pids     []int32
	interval time.Duration
	logger   *log.Logger

	// collect produces one aggregate sample. Injectable for tests.
	collect func() sampling.Sample

	mu      sync.Mutex
	state   State
	stop    chan struct{}
	done    chan struct{}
	started time.Time
	samples []sampling.Sample
}

// New creates a profiler for the given set of PIDs. An empty set is a
// reportable misconfiguration, not a fatal error: the profiler still runs
// and the series degrades to zero readings.
func New(pids []int32, interval, window time.Duration, logger *log.Logger) *Profiler {
	if logger == nil {
		logger = log.Default()
	}
	if len(pids) == 0 {
		logger.Printf("profiler: no PIDs to sample, readings will be zero")
	}

	p := &Profiler{
		pids:     pids,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	sampler := sampling.New(window)
	p.collect = func() sampling.Sample { return sampler.Collect(p.pids) }
	return p
}

// Start spawns the sampling loop. Valid only from the Idle state.
func (p *Profiler) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Idle {
		return fmt.Errorf("profiler: cannot start from %s state", p.state)
	}
	p.state = Running
	p.started = time.Now()
	go p.run()

	p.logger.Printf("profiler started for pids %v", p.pids)
	return nil
}

// Stop signals the sampling loop and blocks until it has exited. After Stop
// returns no further samples are appended, so Series is race-free. Stop
// latency is bounded by at most one sampling window: a measurement already
// in flight finishes, the loop checks the signal at tick boundaries.
func (p *Profiler) Stop() {
	p.mu.Lock()
	if p.state != Running {
		p.mu.Unlock()
		return
	}
	p.state = Stopped
	p.mu.Unlock()

	close(p.stop)
	<-p.done
	p.logger.Printf("profiler stopped after %d samples", len(p.samples))
}

// State returns the current lifecycle state.
func (p *Profiler) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Series returns the sampled series. Only valid after Stop has returned.
func (p *Profiler) Series() []sampling.Sample {
	return p.samples
}

func (p *Profiler) run() {
	defer close(p.done)

	for {
		select {
		case <-p.stop:
			return
		default:
		}

		s := p.collect()
		s.Elapsed = time.Since(p.started).Seconds()
		p.samples = append(p.samples, s)

		// Additive spacing: the sleep does not account for the time the
		// measurement itself consumed, so successive samples are spaced by
		// at least the interval, not exactly.
		select {
		case <-p.stop:
			return
		case <-time.After(p.interval):
		}
	}
}
