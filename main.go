package main

import (
	"fmt"
	"os"

	"GraphBench/pkg/cmd"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "bench", "b":
		cmd.Bench(args)
	case "sweep", "sw":
		cmd.Sweep(args)
	case "graph", "g":
		cmd.Graph(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`GraphBench - Graph database benchmark harness

Usage:
  graphbench <command> [flags]

Commands:
  bench, b        Run workloads and record CPU/memory/duration
  sweep, sw       Run one workload across a list of parameter values
  graph, g        Render .bench result files as HTML charts
  help            Show this help

Selection Flags:
  -databases string    Backends to drive: neo4j, arango, memgraph (default all)
  -workloads string    Workloads to run, or 'all'
                       (add_single_node, add_single_edge, get_single_node,
                        nodes_within_hops, shortest_path, load_database, idle)

Workload Flags:
  -size int            Operation count per workload (default 1000)
  -hops int            Traversal depth for nodes_within_hops (default 2)
  -idle-time duration  Idle baseline duration (default 10s)
  -nodes string        Node CSV for load_database
  -edges string        Edge CSV for load_database

Measurement Flags:
  -interval duration   Sleep between profiler ticks (default 100ms)
  -window duration     Per-PID CPU measurement window (default 1s)

Sweep Flags:
  -param string        Parameter to vary: size, hops (default size)
  -values string       Comma-separated values, e.g. 100,1000,10000

Output Flags:
  -output-dir string   Directory for .bench files (default Results)
  -graph-output string HTML output for the graph command
  -log-file string     Log file in addition to stderr (default benchmark.log)

Connection Flags:
  -neo4j-uri, -neo4j-user, -neo4j-password
  -arango-endpoint, -arango-user, -arango-password
  -memgraph-uri, -memgraph-user, -memgraph-password

Examples:
  # Insertion and lookup benchmarks against all backends
  graphbench bench -size 10000

  # Sweep node insertion over sizes
  graphbench sweep -workloads add_single_node -param size -values 100,1000,10000

  # Compare two recorded runs
  graphbench graph Results/add_single_node_NEO4j_*.bench Results/add_single_node_ArangoDB_*.bench
`)
}
