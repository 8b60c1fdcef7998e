// Package cmd implements the harness subcommands.
package cmd

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"GraphBench/pkg/bench"
	"GraphBench/pkg/config"
	"GraphBench/pkg/store"
)

// InitCmd parses flags for a subcommand, validates the configuration and
// wires up logging. Returns the config and the remaining positional args.
func InitCmd(name string, args []string) (*config.Config, []string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cfg := config.New()
	config.GetFlags(fs, cfg)
	fs.Parse(args)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	setupLogging(cfg)
	log.Printf("run %s on %s (%s)", cfg.RunID, cfg.Hostname, config.KernelInfo())

	return cfg, fs.Args()
}

func setupLogging(cfg *config.Config) {
	if cfg.LogFile == "" {
		return
	}
	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("cannot open log file %s: %v", cfg.LogFile, err)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stderr, file))
}

// openStores connects every selected backend. A backend that cannot be
// reached is a fatal configuration problem: partial comparisons are worse
// than no run.
func openStores(ctx context.Context, cfg *config.Config) []store.Store {
	var stores []store.Store

	for _, name := range cfg.DatabaseList() {
		var (
			st  store.Store
			err error
		)
		switch name {
		case "neo4j":
			st, err = store.NewNeo4j(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
		case "arango":
			st, err = store.NewArango(ctx, cfg.ArangoEndpoint, cfg.ArangoUser, cfg.ArangoPassword)
		case "memgraph":
			st, err = store.NewMemgraph(ctx, cfg.MemgraphURI, cfg.MemgraphUser, cfg.MemgraphPassword)
		}
		if err != nil {
			closeStores(ctx, stores)
			log.Fatalf("Could not connect to %s: %v", name, err)
		}
		log.Printf("connected to %s", st.Name())
		stores = append(stores, st)
	}

	return stores
}

func closeStores(ctx context.Context, stores []store.Store) {
	for _, st := range stores {
		if err := st.Close(ctx); err != nil {
			log.Printf("error closing %s: %v", st.Name(), err)
		}
	}
}

func benchParams(cfg *config.Config) bench.Params {
	return bench.Params{
		Size:      cfg.Size,
		Hops:      cfg.Hops,
		IdleTime:  cfg.IdleTime,
		NodesPath: cfg.NodesPath,
		EdgesPath: cfg.EdgesPath,
	}
}

// selectedWorkloads resolves the configured workload names, failing fast on
// an unknown name before anything touches a database.
func selectedWorkloads(cfg *config.Config) []bench.Workload {
	names := cfg.WorkloadList()
	if len(names) == 1 && names[0] == "all" {
		names = bench.Names()
	}

	workloads := make([]bench.Workload, len(names))
	for i, name := range names {
		w, ok := bench.Lookup(name)
		if !ok {
			log.Fatalf("Unknown workload %q (valid: %v)", name, bench.Names())
		}
		workloads[i] = w
	}
	return workloads
}
