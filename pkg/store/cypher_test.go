package store

import "testing"

func TestCypherCreateNode(t *testing.T) {
	got := cypherCreateNode(0, []string{"test"}, map[string]string{"name": "test0"})
	want := `CREATE (n:test {id: "0", name: "test0"})`
	if got != want {
		t.Errorf("cypherCreateNode = %q; want %q", got, want)
	}
}

func TestCypherCreateNodeMultipleLabels(t *testing.T) {
	got := cypherCreateNode(7, []string{"person", "employee"}, nil)
	want := `CREATE (n:person:employee {id: "7"})`
	if got != want {
		t.Errorf("cypherCreateNode = %q; want %q", got, want)
	}
}

func TestCypherPropsSorted(t *testing.T) {
	// Map iteration order must not leak into the query text.
	props := map[string]string{"zeta": "1", "alpha": "2", "mid": "3"}
	want := `alpha: "2", mid: "3", zeta: "1"`
	for i := 0; i < 20; i++ {
		if got := cypherProps(props); got != want {
			t.Fatalf("cypherProps = %q; want %q", got, want)
		}
	}
}

func TestCypherCreateEdge(t *testing.T) {
	got := cypherCreateEdge("0", "1", []string{"test"}, map[string]string{"name": "test0"})
	want := `MATCH (a), (b) WHERE a.id = "0" AND b.id = "1" CREATE (a)-[:test {name: "test0"}]->(b)`
	if got != want {
		t.Errorf("cypherCreateEdge = %q; want %q", got, want)
	}
}

func TestCypherMatchNode(t *testing.T) {
	got := cypherMatchNode([]string{"test"}, map[string]string{"name": "test3"})
	want := `MATCH (n:test {name: "test3"}) RETURN n`
	if got != want {
		t.Errorf("cypherMatchNode = %q; want %q", got, want)
	}
}

func TestCypherWithinHops(t *testing.T) {
	got := cypherWithinHops("5", 2)
	want := `MATCH (n {id: "5"})-[*1..2]-(m) RETURN DISTINCT m`
	if got != want {
		t.Errorf("cypherWithinHops = %q; want %q", got, want)
	}
}

func TestCypherShortestPath(t *testing.T) {
	got := cypherShortestPath("0", "9")
	want := `MATCH (a {id: "0"}), (b {id: "9"}) MATCH p = shortestPath((a)-[*]-(b)) RETURN p`
	if got != want {
		t.Errorf("cypherShortestPath = %q; want %q", got, want)
	}
}

func TestCypherShortestPathBFS(t *testing.T) {
	got := cypherShortestPathBFS("0", "9")
	want := `MATCH p = (a {id: "0"})-[*BFS]-(b {id: "9"}) RETURN p`
	if got != want {
		t.Errorf("cypherShortestPathBFS = %q; want %q", got, want)
	}
}

func TestCypherLoadNodes(t *testing.T) {
	got := cypherLoadNodes("nodes.csv", []string{"id", "name"})
	want := `LOAD CSV WITH HEADERS FROM 'file:///nodes.csv' AS row CREATE (n { id: row.id, name: row.name })`
	if got != want {
		t.Errorf("cypherLoadNodes = %q; want %q", got, want)
	}
}

func TestMemgraphLoadNodes(t *testing.T) {
	got := memgraphLoadNodes("/data/nodes.csv", []string{"id", "name"})
	want := `LOAD CSV FROM "/data/nodes.csv" WITH HEADER AS row CREATE (n { id: row.id, name: row.name })`
	if got != want {
		t.Errorf("memgraphLoadNodes = %q; want %q", got, want)
	}
}
