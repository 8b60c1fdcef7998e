// Package bench defines the benchmark workloads and the orchestrator that
// measures them with overhead correction and background profiling.
package bench

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"GraphBench/pkg/store"
)

// Params carries the knobs a workload reads. A sweep varies exactly one of
// them while the rest stay fixed.
type Params struct {
	Size      int
	Hops      int
	IdleTime  time.Duration
	NodesPath string
	EdgesPath string
}

// Workload is a fixed benchmark procedure executed against a store. The
// same procedure runs twice per measurement (suppressed, then real), so it
// must be deterministic in its sequence of capability calls.
type Workload struct {
	Name string
	Run  func(ctx context.Context, st store.Store, p Params) error
}

// AddSingleNode inserts Size nodes one at a time.
var AddSingleNode = Workload{
	Name: "add_single_node",
	Run: func(ctx context.Context, st store.Store, p Params) error {
		for i := 0; i < p.Size; i++ {
			if err := st.AddNode(ctx, i, []string{"test"}, testProps(i)); err != nil {
				return err
			}
		}
		return nil
	},
}

// AddSingleEdge chains Size-1 edges between consecutively numbered nodes.
var AddSingleEdge = Workload{
	Name: "add_single_edge",
	Run: func(ctx context.Context, st store.Store, p Params) error {
		for i := 0; i < p.Size-1; i++ {
			err := st.AddEdge(ctx, strconv.Itoa(i), strconv.Itoa(i+1), []string{"test"}, testProps(i))
			if err != nil {
				return err
			}
		}
		return nil
	},
}

// GetSingleNode performs Size point lookups by property.
var GetSingleNode = Workload{
	Name: "get_single_node",
	Run: func(ctx context.Context, st store.Store, p Params) error {
		for i := 0; i < p.Size; i++ {
			if err := st.GetSingleNode(ctx, []string{"test"}, testProps(i)); err != nil {
				return err
			}
		}
		return nil
	},
}

// NodesWithinHops runs Size neighborhood traversals at the configured depth.
var NodesWithinHops = Workload{
	Name: "nodes_within_hops",
	Run: func(ctx context.Context, st store.Store, p Params) error {
		for i := 0; i < p.Size; i++ {
			if err := st.NodesWithinHops(ctx, strconv.Itoa(i), p.Hops); err != nil {
				return err
			}
		}
		return nil
	},
}

// ShortestPath queries Size paths from node 0 to each numbered node.
var ShortestPath = Workload{
	Name: "shortest_path",
	Run: func(ctx context.Context, st store.Store, p Params) error {
		for i := 1; i <= p.Size; i++ {
			if err := st.ShortestPath(ctx, "0", strconv.Itoa(i)); err != nil {
				return err
			}
		}
		return nil
	},
}

// LoadDatabase bulk-loads the configured node and edge files once.
var LoadDatabase = Workload{
	Name: "load_database",
	Run: func(ctx context.Context, st store.Store, p Params) error {
		if p.NodesPath == "" || p.EdgesPath == "" {
			return fmt.Errorf("bench: load_database requires node and edge file paths")
		}
		return st.LoadDatabase(ctx, p.NodesPath, p.EdgesPath)
	},
}

// Idle issues no capability calls at all; it measures the databases'
// resting CPU and memory footprint as a baseline.
var Idle = Workload{
	Name: "idle",
	Run: func(ctx context.Context, st store.Store, p Params) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.IdleTime):
			return nil
		}
	},
}

var workloads = []Workload{
	AddSingleNode,
	AddSingleEdge,
	GetSingleNode,
	NodesWithinHops,
	ShortestPath,
	LoadDatabase,
	Idle,
}

// Lookup returns a workload by name.
func Lookup(name string) (Workload, bool) {
	for _, w := range workloads {
		if w.Name == name {
			return w, true
		}
	}
	return Workload{}, false
}

// Names lists all registered workload names.
func Names() []string {
	names := make([]string, len(workloads))
	for i, w := range workloads {
		names[i] = w.Name
	}
	return names
}

func testProps(i int) map[string]string {
	return map[string]string{"name": fmt.Sprintf("test%d", i)}
}
