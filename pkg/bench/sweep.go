package bench

import (
	"context"
	"fmt"

	"GraphBench/pkg/results"
	"GraphBench/pkg/store"
)

// Sweep holds the results of running one workload across a list of values
// for a single varying parameter. The four slices are index-aligned and
// preserve the input value order.
type Sweep struct {
	Workload  string
	Database  string
	Param     string
	Values    []float64
	AvgCPU    []float64
	AvgMemory []float64
	Duration  []float64
}

// RunSweep runs the workload once per value, substituting each value for the
// named parameter in an otherwise fixed parameter set. Persistence happens
// once at the end via SaveSweep, not per iteration. An unrecognized
// parameter name fails before the first run.
func (r *Runner) RunSweep(ctx context.Context, w Workload, st store.Store, p Params, param string, values []int) (*Sweep, error) {
	apply, err := paramSetter(param)
	if err != nil {
		return nil, err
	}

	sw := &Sweep{
		Workload: w.Name,
		Database: st.Name(),
		Param:    param,
	}

	for _, v := range values {
		q := p
		apply(&q, v)

		res, err := r.RunOnce(ctx, w, st, q)
		if err != nil {
			return nil, err
		}

		cpu, mem, err := Averages(res.Series)
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%d: %w", param, v, err)
		}

		sw.Values = append(sw.Values, float64(v))
		sw.AvgCPU = append(sw.AvgCPU, cpu)
		sw.AvgMemory = append(sw.AvgMemory, mem)
		sw.Duration = append(sw.Duration, res.Corrected)
	}

	return sw, nil
}

// SaveSweep persists a sweep as a _<param>,CPU,Memory,Duration table.
func (r *Runner) SaveSweep(sw *Sweep) (string, error) {
	headers := []string{"_" + sw.Param, "CPU", "Memory", "Duration"}
	columns := [][]float64{sw.Values, sw.AvgCPU, sw.AvgMemory, sw.Duration}

	name := sw.Workload + "_" + sw.Database
	path, err := results.Write(r.outputDir, name, headers, columns)
	if err != nil {
		return "", err
	}
	r.logger.Printf("saving sweep data to %s", path)
	return path, nil
}

func paramSetter(name string) (func(*Params, int), error) {
	switch name {
	case "size":
		return func(p *Params, v int) { p.Size = v }, nil
	case "hops":
		return func(p *Params, v int) { p.Hops = v }, nil
	default:
		return nil, fmt.Errorf("bench: unknown sweep parameter %q (valid: size, hops)", name)
	}
}
