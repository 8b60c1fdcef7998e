package store

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// maxAncestorDepth bounds the parent-chain walk during discovery.
const maxAncestorDepth = 16

// Discovery filters the live process list into the set of PIDs considered
// part of one database instance. A zero Discovery matches nothing.
type Discovery struct {
	// Name matches the process executable name exactly.
	Name string
	// AncestorName matches any process in the parent chain by name.
	AncestorName string
	// CmdlineContains matches a substring of the full command line.
	CmdlineContains string
}

type procEntry struct {
	pid       int32
	name      string
	cmdline   string
	ancestors []string
}

// Discover resolves the PIDs matching a discovery filter. The set is resolved
// once per profiling session and not refreshed if the target restarts.
func Discover(d Discovery) ([]int32, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("store: list processes: %w", err)
	}

	var pids []int32
	for _, p := range procs {
		e := procEntry{pid: p.Pid}
		e.name, _ = p.Name()

		if d.CmdlineContains != "" {
			e.cmdline, _ = p.Cmdline()
		}
		if d.AncestorName != "" {
			for pp, err := p.Parent(); err == nil && pp != nil && len(e.ancestors) < maxAncestorDepth; pp, err = pp.Parent() {
				name, nameErr := pp.Name()
				if nameErr != nil {
					break
				}
				e.ancestors = append(e.ancestors, name)
			}
		}

		if matches(d, e) {
			pids = append(pids, e.pid)
		}
	}
	return pids, nil
}

func matches(d Discovery, e procEntry) bool {
	if d.Name == "" && d.AncestorName == "" && d.CmdlineContains == "" {
		return false
	}
	if d.Name != "" && e.name != d.Name {
		return false
	}
	if d.CmdlineContains != "" && !strings.Contains(e.cmdline, d.CmdlineContains) {
		return false
	}
	if d.AncestorName != "" {
		found := false
		for _, a := range e.ancestors {
			if a == d.AncestorName {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
