package store

import "testing"

func TestMatchesZeroDiscovery(t *testing.T) {
	e := procEntry{pid: 1, name: "neo4j", cmdline: "java -cp neo4j"}
	if matches(Discovery{}, e) {
		t.Errorf("zero discovery matched %q; a zero spec must match nothing", e.name)
	}
}

func TestMatchesByName(t *testing.T) {
	d := Discovery{Name: "arangod"}

	if !matches(d, procEntry{name: "arangod"}) {
		t.Errorf("name match failed for arangod")
	}
	if matches(d, procEntry{name: "arangosh"}) {
		t.Errorf("name match is exact; arangosh must not match arangod")
	}
}

func TestMatchesByCmdline(t *testing.T) {
	d := Discovery{Name: "java", CmdlineContains: "neo4j"}

	e := procEntry{name: "java", cmdline: "/usr/bin/java -cp /opt/neo4j/lib ..."}
	if !matches(d, e) {
		t.Errorf("cmdline match failed for %q", e.cmdline)
	}

	other := procEntry{name: "java", cmdline: "/usr/bin/java -jar kafka.jar"}
	if matches(d, other) {
		t.Errorf("unrelated java process matched the neo4j spec")
	}
}

func TestMatchesByAncestor(t *testing.T) {
	d := Discovery{AncestorName: "memgraph"}

	if !matches(d, procEntry{name: "worker", ancestors: []string{"supervisor", "memgraph"}}) {
		t.Errorf("ancestor match failed")
	}
	if matches(d, procEntry{name: "worker", ancestors: []string{"systemd"}}) {
		t.Errorf("matched without the required ancestor")
	}
	if matches(d, procEntry{name: "worker"}) {
		t.Errorf("matched with an empty parent chain")
	}
}

func TestMatchesAllFiltersRequired(t *testing.T) {
	d := Discovery{Name: "java", AncestorName: "systemd", CmdlineContains: "neo4j"}

	e := procEntry{
		name:      "java",
		cmdline:   "java neo4j",
		ancestors: []string{"systemd"},
	}
	if !matches(d, e) {
		t.Errorf("entry satisfying all filters did not match")
	}

	e.cmdline = "java kafka"
	if matches(d, e) {
		t.Errorf("entry failing one filter still matched")
	}
}

func TestSuppressibleToggle(t *testing.T) {
	var s suppressible
	if s.Suppressed() {
		t.Errorf("new suppressible starts suppressed")
	}
	s.SetSuppressed(true)
	if !s.Suppressed() {
		t.Errorf("SetSuppressed(true) not observed")
	}
	s.SetSuppressed(false)
	if s.Suppressed() {
		t.Errorf("SetSuppressed(false) not observed")
	}
}
