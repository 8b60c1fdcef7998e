// Package config holds the harness configuration shared by the subcommands.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default values for the measurement schedule. The sampling window matches
// the blocking CPU measurement of one profiler tick; the interval is the
// additional sleep between ticks.
const (
	DefaultInterval  = 100 * time.Millisecond
	DefaultWindow    = time.Second
	DefaultOutputDir = "Results"
	DefaultSize      = 1000
	DefaultHops      = 2
)

// Config carries every flag-settable option.
type Config struct {
	// Measurement schedule
	Interval time.Duration
	Window   time.Duration

	// Workload parameters
	Size      int
	Hops      int
	IdleTime  time.Duration
	NodesPath string
	EdgesPath string

	// Selection
	Databases string
	Workloads string

	// Sweep
	SweepParam  string
	SweepValues string

	// Backend endpoints
	Neo4jURI         string
	Neo4jUser        string
	Neo4jPassword    string
	ArangoEndpoint   string
	ArangoUser       string
	ArangoPassword   string
	MemgraphURI      string
	MemgraphUser     string
	MemgraphPassword string

	// Output
	OutputDir   string
	GraphOutput string
	LogFile     string
	NoClear     bool

	// Run identity, carried in every log line's context
	RunID    string
	Hostname string
}

// New creates a Config with defaults matching a local single-host setup.
func New() *Config {
	hostname, _ := os.Hostname()

	return &Config{
		Interval:       DefaultInterval,
		Window:         DefaultWindow,
		Size:           DefaultSize,
		Hops:           DefaultHops,
		IdleTime:       10 * time.Second,
		Databases:      "neo4j,arango,memgraph",
		Workloads:      "add_single_node,add_single_edge,get_single_node",
		SweepParam:     "size",
		Neo4jURI:       "bolt://localhost:7687",
		Neo4jUser:      "neo4j",
		Neo4jPassword:  "1234",
		ArangoEndpoint: "http://localhost:8529",
		ArangoUser:     "root",
		ArangoPassword: "arango",
		MemgraphURI:    "bolt://localhost:7688",
		OutputDir:      DefaultOutputDir,
		GraphOutput:    "benchmarks.html",
		LogFile:        "benchmark.log",
		RunID:          uuid.NewString(),
		Hostname:       hostname,
	}
}

// GetFlags registers every option on the flag set.
func GetFlags(fs *flag.FlagSet, cfg *Config) {
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "Sleep between profiler ticks")
	fs.DurationVar(&cfg.Window, "window", cfg.Window, "Per-PID CPU measurement window")
	fs.IntVar(&cfg.Size, "size", cfg.Size, "Workload size (operation count)")
	fs.IntVar(&cfg.Hops, "hops", cfg.Hops, "Traversal depth for nodes_within_hops")
	fs.DurationVar(&cfg.IdleTime, "idle-time", cfg.IdleTime, "Duration of the idle baseline workload")
	fs.StringVar(&cfg.NodesPath, "nodes", cfg.NodesPath, "Node CSV for load_database")
	fs.StringVar(&cfg.EdgesPath, "edges", cfg.EdgesPath, "Edge CSV for load_database")
	fs.StringVar(&cfg.Databases, "databases", cfg.Databases, "Comma-separated backends (neo4j, arango, memgraph)")
	fs.StringVar(&cfg.Workloads, "workloads", cfg.Workloads, "Comma-separated workloads, or 'all'")
	fs.StringVar(&cfg.SweepParam, "param", cfg.SweepParam, "Sweep parameter name (size, hops)")
	fs.StringVar(&cfg.SweepValues, "values", cfg.SweepValues, "Comma-separated sweep values")
	fs.StringVar(&cfg.Neo4jURI, "neo4j-uri", cfg.Neo4jURI, "Neo4j Bolt URI")
	fs.StringVar(&cfg.Neo4jUser, "neo4j-user", cfg.Neo4jUser, "Neo4j username")
	fs.StringVar(&cfg.Neo4jPassword, "neo4j-password", cfg.Neo4jPassword, "Neo4j password")
	fs.StringVar(&cfg.ArangoEndpoint, "arango-endpoint", cfg.ArangoEndpoint, "ArangoDB HTTP endpoint")
	fs.StringVar(&cfg.ArangoUser, "arango-user", cfg.ArangoUser, "ArangoDB username")
	fs.StringVar(&cfg.ArangoPassword, "arango-password", cfg.ArangoPassword, "ArangoDB password")
	fs.StringVar(&cfg.MemgraphURI, "memgraph-uri", cfg.MemgraphURI, "Memgraph Bolt URI")
	fs.StringVar(&cfg.MemgraphUser, "memgraph-user", cfg.MemgraphUser, "Memgraph username")
	fs.StringVar(&cfg.MemgraphPassword, "memgraph-password", cfg.MemgraphPassword, "Memgraph password")
	fs.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "Directory for .bench result files")
	fs.StringVar(&cfg.GraphOutput, "graph-output", cfg.GraphOutput, "HTML output file for the graph command")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Log file (empty for stderr only)")
	fs.BoolVar(&cfg.NoClear, "no-clear", cfg.NoClear, "Skip clearing each database before benchmarking")
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Interval < time.Millisecond {
		return fmt.Errorf("interval must be at least 1ms, got %v", c.Interval)
	}
	if c.Window < 10*time.Millisecond {
		return fmt.Errorf("window must be at least 10ms, got %v", c.Window)
	}
	if c.Size < 1 {
		return fmt.Errorf("size must be positive, got %d", c.Size)
	}
	if c.Hops < 1 {
		return fmt.Errorf("hops must be positive, got %d", c.Hops)
	}

	for _, db := range c.DatabaseList() {
		switch db {
		case "neo4j", "arango", "memgraph":
		default:
			return fmt.Errorf("unknown database %q (valid: neo4j, arango, memgraph)", db)
		}
	}

	if c.SweepValues != "" {
		if _, err := c.SweepValueInts(); err != nil {
			return err
		}
	}
	return nil
}

// DatabaseList returns the selected backend names.
func (c *Config) DatabaseList() []string {
	return splitList(c.Databases)
}

// WorkloadList returns the selected workload names.
func (c *Config) WorkloadList() []string {
	return splitList(c.Workloads)
}

// SweepValueInts parses the sweep value list.
func (c *Config) SweepValueInts() ([]int, error) {
	parts := splitList(c.SweepValues)
	if len(parts) == 0 {
		return nil, fmt.Errorf("no sweep values given")
	}

	values := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid sweep value %q: %w", p, err)
		}
		values[i] = v
	}
	return values, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
