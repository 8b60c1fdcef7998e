// Package store provides the graph database capability the benchmarks run
// against. Each backend translates the abstract operations into its native
// query language and executes them over a live connection.
package store

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// Store is the capability set the benchmark core depends on. Read results
// are discarded: the harness measures cost, not correctness of answers.
type Store interface {
	AddNode(ctx context.Context, id int, labels []string, properties map[string]string) error
	AddEdge(ctx context.Context, src, dst string, labels []string, properties map[string]string) error
	GetSingleNode(ctx context.Context, labels []string, properties map[string]string) error
	NodesWithinHops(ctx context.Context, id string, hops int) error
	ShortestPath(ctx context.Context, src, dst string) error
	LoadDatabase(ctx context.Context, nodesPath, edgesPath string) error
	Clear(ctx context.Context) error

	// Pids resolves the set of processes charged for this database's resource
	// usage. Callable repeatedly; the profiler calls it once per run.
	Pids() ([]int32, error)

	// SetSuppressed toggles no-op mode: while suppressed every operation
	// still formats its query but performs no network I/O, so the fixed
	// call overhead of a workload can be measured in isolation.
	SetSuppressed(bool)

	Name() string
	Close(ctx context.Context) error
}

// suppressible holds the two-state suppression toggle embedded in every
// backend. It is mutated by the orchestrator and read by the backend, both
// on the foreground goroutine, so no locking is needed.
type suppressible struct {
	suppressed bool
}

func (s *suppressible) SetSuppressed(v bool) { s.suppressed = v }

func (s *suppressible) Suppressed() bool { return s.suppressed }

// csvHeader reads the first line of a CSV file and returns its column names.
// Backends use it to build bulk-load queries from the dataset's own schema.
func csvHeader(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("store: read header of %s: %w", path, err)
		}
		return nil, fmt.Errorf("store: %s is empty", path)
	}

	fields := strings.Split(strings.TrimSpace(scanner.Text()), ",")
	if len(fields) == 1 && fields[0] == "" {
		return nil, fmt.Errorf("store: %s has an empty header", path)
	}
	return fields, nil
}
