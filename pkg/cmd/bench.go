package cmd

import (
	"context"
	"log"

	"GraphBench/pkg/bench"
)

// Bench runs the selected workloads against every selected database, one
// .bench file per workload/database pair.
func Bench(args []string) {
	cfg, _ := InitCmd("bench", args)

	ctx := context.Background()
	stores := openStores(ctx, cfg)
	defer closeStores(ctx, stores)

	runner := bench.NewRunner(cfg.Interval, cfg.Window, cfg.OutputDir, log.Default())
	params := benchParams(cfg)
	workloads := selectedWorkloads(cfg)

	for _, st := range stores {
		if !cfg.NoClear {
			if err := st.Clear(ctx); err != nil {
				log.Fatalf("Could not clear %s: %v", st.Name(), err)
			}
		}

		for _, w := range workloads {
			// A failed workload aborts its own run only; remaining pairs
			// still execute and their result files stay valid.
			if _, path, err := runner.RunAndSave(ctx, w, st, params); err != nil {
				log.Printf("benchmark %s with %s failed: %v", w.Name, st.Name(), err)
			} else {
				log.Printf("wrote %s", path)
			}
		}
	}
}
