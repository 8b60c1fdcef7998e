// Package sampling measures aggregate CPU and memory usage for a set of OS
// processes.
package sampling

import (
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// Sample is one measurement point. CPUPercent and MemoryBytes are sums over
// every PID in the set, not averages: multi-process database engines are
// accounted in aggregate.
type Sample struct {
	Elapsed     float64
	CPUPercent  float64
	MemoryBytes float64
}

// probeFunc measures a single PID. CPU usage is observed over the window (a
// blocking measurement); memory is an instantaneous resident-set read.
// Injectable for tests.
type probeFunc func(pid int32, window time.Duration) (cpu float64, rss uint64, err error)

// Sampler produces aggregate samples for a set of PIDs.
type Sampler struct {
	window time.Duration
	probe  probeFunc
}

// New creates a sampler with the given CPU measurement window.
func New(window time.Duration) *Sampler {
	return &Sampler{window: window, probe: gopsutilProbe}
}

// Window returns the configured CPU measurement window.
func (s *Sampler) Window() time.Duration { return s.window }

// Collect measures every PID concurrently and sums the readings. One
// goroutine per PID, joined before the sample is finalized: total wall time
// stays close to the window regardless of PID count, where sampling each PID
// in turn would stretch the profiler's schedule by a factor of len(pids).
// A PID that has exited contributes zero; process lifetime is outside our
// control and never a fatal condition.
func (s *Sampler) Collect(pids []int32) Sample {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		sample Sample
	)

	wg.Add(len(pids))
	for _, pid := range pids {
		go func(pid int32) {
			defer wg.Done()
			cpu, rss, err := s.probe(pid, s.window)
			if err != nil {
				return
			}
			mu.Lock()
			sample.CPUPercent += cpu
			sample.MemoryBytes += float64(rss)
			mu.Unlock()
		}(pid)
	}
	wg.Wait()

	return sample
}

func gopsutilProbe(pid int32, window time.Duration) (float64, uint64, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return 0, 0, err
	}

	cpu, err := p.Percent(window)
	if err != nil {
		return 0, 0, err
	}

	var rss uint64
	if info, err := p.MemoryInfo(); err == nil && info != nil {
		rss = info.RSS
	}
	return cpu, rss, nil
}
