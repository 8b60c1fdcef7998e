package bench

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"testing"
	"time"

	"GraphBench/pkg/results"
	"GraphBench/pkg/sampling"
	"GraphBench/pkg/store"
)

// fakeStore records how often its operations actually execute. Like a real
// backend, every call formats work regardless, but only unsuppressed calls
// count as I/O.
type fakeStore struct {
	suppressed bool
	ioCount    int
	runErr     error
}

func (f *fakeStore) exec() error {
	if f.runErr != nil {
		return f.runErr
	}
	if !f.suppressed {
		f.ioCount++
	}
	return nil
}

func (f *fakeStore) AddNode(ctx context.Context, id int, labels []string, properties map[string]string) error {
	return f.exec()
}

func (f *fakeStore) AddEdge(ctx context.Context, src, dst string, labels []string, properties map[string]string) error {
	return f.exec()
}

func (f *fakeStore) GetSingleNode(ctx context.Context, labels []string, properties map[string]string) error {
	return f.exec()
}

func (f *fakeStore) NodesWithinHops(ctx context.Context, id string, hops int) error {
	return f.exec()
}

func (f *fakeStore) ShortestPath(ctx context.Context, src, dst string) error {
	return f.exec()
}

func (f *fakeStore) LoadDatabase(ctx context.Context, nodesPath, edgesPath string) error {
	return f.exec()
}

func (f *fakeStore) Clear(ctx context.Context) error { return f.exec() }

func (f *fakeStore) Pids() ([]int32, error) { return nil, nil }

func (f *fakeStore) SetSuppressed(v bool) { f.suppressed = v }

func (f *fakeStore) Name() string { return "FakeDB" }

func (f *fakeStore) Close(ctx context.Context) error { return nil }

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testRunner(t *testing.T) *Runner {
	t.Helper()
	return NewRunner(time.Millisecond, time.Millisecond, t.TempDir(), quietLogger())
}

// scriptedClock returns the given instants in order from r.now.
func scriptedClock(t *testing.T, instants ...time.Time) func() time.Time {
	t.Helper()
	i := 0
	return func() time.Time {
		if i >= len(instants) {
			t.Fatalf("clock read %d times; scripted only %d", i+1, len(instants))
		}
		v := instants[i]
		i++
		return v
	}
}

func TestRunOnceCorrectedDuration(t *testing.T) {
	r := testRunner(t)
	base := time.Unix(1000, 0)
	// Suppressed run takes 10ms, real run 50ms.
	r.now = scriptedClock(t,
		base,
		base.Add(10*time.Millisecond),
		base.Add(100*time.Millisecond),
		base.Add(150*time.Millisecond),
	)

	st := &fakeStore{}
	res, err := r.RunOnce(context.Background(), AddSingleNode, st, Params{Size: 3})
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}

	if math.Abs(res.Overhead-0.01) > 1e-12 {
		t.Errorf("Overhead = %v; want 0.01", res.Overhead)
	}
	if math.Abs(res.Duration-0.05) > 1e-12 {
		t.Errorf("Duration = %v; want 0.05", res.Duration)
	}
	if math.Abs(res.Corrected-0.04) > 1e-12 {
		t.Errorf("Corrected = %v; want 0.04", res.Corrected)
	}
	if res.Workload != "add_single_node" || res.Database != "FakeDB" {
		t.Errorf("result labeled %s/%s; want add_single_node/FakeDB", res.Workload, res.Database)
	}
}

func TestRunOnceNegativeCorrectedNotClamped(t *testing.T) {
	r := testRunner(t)
	base := time.Unix(1000, 0)
	// Overhead estimate 50ms exceeds the 10ms real run.
	r.now = scriptedClock(t,
		base,
		base.Add(50*time.Millisecond),
		base.Add(100*time.Millisecond),
		base.Add(110*time.Millisecond),
	)

	res, err := r.RunOnce(context.Background(), AddSingleNode, &fakeStore{}, Params{Size: 1})
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if math.Abs(res.Corrected-(-0.04)) > 1e-12 {
		t.Errorf("Corrected = %v; want -0.04 reported as measured", res.Corrected)
	}
}

func TestSuppressedRunDoesNoIO(t *testing.T) {
	r := testRunner(t)
	st := &fakeStore{}

	overhead, err := r.timeSuppressed(context.Background(), AddSingleNode, st, Params{Size: 10})
	if err != nil {
		t.Fatalf("timeSuppressed failed: %v", err)
	}
	if overhead < 0 {
		t.Errorf("overhead = %v; want non-negative", overhead)
	}
	if st.ioCount != 0 {
		t.Errorf("suppressed run performed %d I/O operations; want 0", st.ioCount)
	}
	if st.suppressed {
		t.Errorf("suppression still set after timeSuppressed returned")
	}
}

func TestSuppressionRestoredAfterWorkloadError(t *testing.T) {
	r := testRunner(t)
	st := &fakeStore{runErr: errors.New("connection reset")}

	_, err := r.timeSuppressed(context.Background(), AddSingleNode, st, Params{Size: 1})
	if err == nil {
		t.Fatalf("expected workload error to propagate")
	}
	if st.suppressed {
		t.Errorf("suppression leaked past a failed dry run")
	}
}

func TestRunOnceRealRunCountsIO(t *testing.T) {
	r := testRunner(t)
	st := &fakeStore{}

	if _, err := r.RunOnce(context.Background(), AddSingleNode, st, Params{Size: 5}); err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	// Only the real run's 5 inserts count; the dry run is suppressed.
	if st.ioCount != 5 {
		t.Errorf("ioCount = %d; want 5", st.ioCount)
	}
}

func TestRunAndSaveWritesSeries(t *testing.T) {
	r := testRunner(t)

	sleeper := Workload{
		Name: "sleeper",
		Run: func(ctx context.Context, _ store.Store, _ Params) error {
			time.Sleep(20 * time.Millisecond)
			return nil
		},
	}

	res, path, err := r.RunAndSave(context.Background(), sleeper, &fakeStore{}, Params{})
	if err != nil {
		t.Fatalf("RunAndSave failed: %v", err)
	}
	if len(res.Series) == 0 {
		t.Fatalf("no samples recorded over a 20ms run at 1ms intervals")
	}

	table, err := results.Read(path)
	if err != nil {
		t.Fatalf("reading %s failed: %v", path, err)
	}
	name, x, err := table.XAxis()
	if err != nil {
		t.Fatalf("XAxis failed: %v", err)
	}
	if name != "Time" {
		t.Errorf("x-axis = %q; want Time", name)
	}
	if len(x) != len(res.Series) {
		t.Errorf("file has %d rows; result has %d samples", len(x), len(res.Series))
	}
}

func TestRunSweepAlignment(t *testing.T) {
	r := testRunner(t)

	var sizes []int
	sleeper := Workload{
		Name: "sleeper",
		Run: func(ctx context.Context, _ store.Store, p Params) error {
			sizes = append(sizes, p.Size)
			time.Sleep(20 * time.Millisecond)
			return nil
		},
	}

	values := []int{3, 1, 2}
	sw, err := r.RunSweep(context.Background(), sleeper, &fakeStore{}, Params{Size: 99}, "size", values)
	if err != nil {
		t.Fatalf("RunSweep failed: %v", err)
	}

	if len(sw.Values) != 3 || len(sw.AvgCPU) != 3 || len(sw.AvgMemory) != 3 || len(sw.Duration) != 3 {
		t.Fatalf("slice lengths = %d/%d/%d/%d; want 3 each",
			len(sw.Values), len(sw.AvgCPU), len(sw.AvgMemory), len(sw.Duration))
	}
	for i, want := range values {
		if sw.Values[i] != float64(want) {
			t.Errorf("Values[%d] = %v; want %d (input order preserved)", i, sw.Values[i], want)
		}
	}
	// Each value substitutes into the fixed parameter set twice per run,
	// once suppressed and once real.
	want := []int{3, 3, 1, 1, 2, 2}
	if len(sizes) != len(want) {
		t.Fatalf("workload ran %d times; want %d", len(sizes), len(want))
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("run %d used size %d; want %d", i, sizes[i], want[i])
		}
	}
}

func TestSaveSweepHeaders(t *testing.T) {
	r := testRunner(t)
	sw := &Sweep{
		Workload:  "add_single_node",
		Database:  "FakeDB",
		Param:     "size",
		Values:    []float64{100, 1000},
		AvgCPU:    []float64{10, 20},
		AvgMemory: []float64{1024, 2048},
		Duration:  []float64{0.5, 5},
	}

	path, err := r.SaveSweep(sw)
	if err != nil {
		t.Fatalf("SaveSweep failed: %v", err)
	}

	table, err := results.Read(path)
	if err != nil {
		t.Fatalf("reading %s failed: %v", path, err)
	}
	name, x, err := table.XAxis()
	if err != nil {
		t.Fatalf("XAxis failed: %v", err)
	}
	if name != "size" {
		t.Errorf("x-axis = %q; want size", name)
	}
	if len(x) != 2 || x[0] != 100 || x[1] != 1000 {
		t.Errorf("x values = %v; want [100 1000]", x)
	}
	if d, ok := table.Column("Duration"); !ok || len(d) != 2 || d[1] != 5 {
		t.Errorf("Duration column = %v (ok=%v); want [0.5 5]", d, ok)
	}
}

func TestRunSweepUnknownParam(t *testing.T) {
	r := testRunner(t)

	_, err := r.RunSweep(context.Background(), AddSingleNode, &fakeStore{}, Params{}, "latency", []int{1})
	if err == nil {
		t.Errorf("expected error for unknown sweep parameter")
	}
}

func TestAveragesEmptySeries(t *testing.T) {
	_, _, err := Averages(nil)
	if !errors.Is(err, ErrEmptySeries) {
		t.Errorf("err = %v; want ErrEmptySeries", err)
	}
}

func TestAverages(t *testing.T) {
	series := []sampling.Sample{
		{CPUPercent: 10, MemoryBytes: 100},
		{CPUPercent: 20, MemoryBytes: 300},
	}
	cpu, mem, err := Averages(series)
	if err != nil {
		t.Fatalf("Averages failed: %v", err)
	}
	if cpu != 15 {
		t.Errorf("cpu = %v; want 15", cpu)
	}
	if mem != 200 {
		t.Errorf("mem = %v; want 200", mem)
	}
}
