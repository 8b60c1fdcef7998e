package cmd

import (
	"context"
	"log"

	"GraphBench/pkg/bench"
)

// Sweep runs one workload across a list of values for a single parameter
// and persists one row per value.
func Sweep(args []string) {
	cfg, _ := InitCmd("sweep", args)

	values, err := cfg.SweepValueInts()
	if err != nil {
		log.Fatalf("Invalid sweep values: %v", err)
	}

	workloads := selectedWorkloads(cfg)
	if len(workloads) != 1 {
		log.Fatalf("Sweep needs exactly one workload, got %d", len(workloads))
	}
	w := workloads[0]

	ctx := context.Background()
	stores := openStores(ctx, cfg)
	defer closeStores(ctx, stores)

	runner := bench.NewRunner(cfg.Interval, cfg.Window, cfg.OutputDir, log.Default())
	params := benchParams(cfg)

	for _, st := range stores {
		if !cfg.NoClear {
			if err := st.Clear(ctx); err != nil {
				log.Fatalf("Could not clear %s: %v", st.Name(), err)
			}
		}

		sw, err := runner.RunSweep(ctx, w, st, params, cfg.SweepParam, values)
		if err != nil {
			log.Printf("sweep %s with %s failed: %v", w.Name, st.Name(), err)
			continue
		}
		path, err := runner.SaveSweep(sw)
		if err != nil {
			log.Printf("saving sweep %s with %s failed: %v", w.Name, st.Name(), err)
			continue
		}
		log.Printf("wrote %s", path)
	}
}
