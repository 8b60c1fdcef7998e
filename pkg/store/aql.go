package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// AQL query construction for the ArangoDB backend. Nodes live in the "nodes"
// document collection, edges in the "edges" edge collection; labels have no
// direct AQL equivalent and are carried only by the property filters, as in
// the document model.

func aqlProps(properties map[string]string) string {
	keys := make([]string, 0, len(properties))
	for k := range properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %q", k, properties[k])
	}
	return strings.Join(parts, ", ")
}

func aqlInsertNode(id int, properties map[string]string) string {
	merged := make(map[string]string, len(properties)+1)
	for k, v := range properties {
		merged[k] = v
	}
	merged["id"] = strconv.Itoa(id)
	return fmt.Sprintf("INSERT {%s} INTO nodes", aqlProps(merged))
}

func aqlInsertEdge(src, dst string, properties map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FOR a IN nodes FILTER a.id == %q FOR b IN nodes FILTER b.id == %q ", src, dst)
	b.WriteString("INSERT { _from: a._id, _to: b._id, ")
	b.WriteString(aqlProps(properties))
	b.WriteString("} INTO edges")
	return b.String()
}

func aqlMatchNode(properties map[string]string) string {
	keys := make([]string, 0, len(properties))
	for k := range properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	filters := make([]string, len(keys))
	for i, k := range keys {
		filters[i] = fmt.Sprintf("n.%s == %q", k, properties[k])
	}
	return fmt.Sprintf("FOR n IN nodes FILTER %s RETURN n", strings.Join(filters, " AND "))
}

func aqlWithinHops(id string, hops int) string {
	return fmt.Sprintf("FOR a IN nodes FILTER a.id == %q "+
		"FOR v IN 1..%d ANY a edges RETURN DISTINCT v", id, hops)
}

func aqlShortestPath(src, dst string) string {
	return fmt.Sprintf("FOR a IN nodes FILTER a.id == %q FOR b IN nodes FILTER b.id == %q "+
		"FOR v IN ANY SHORTEST_PATH a TO b edges RETURN v", src, dst)
}

func aqlClearCollection(name string) string {
	return fmt.Sprintf("FOR n IN %s REMOVE n IN %s", name, name)
}

// aqlBulkInsertNodes inserts rows bound as @rows into the nodes collection.
func aqlBulkInsertNodes() string {
	return "FOR row IN @rows INSERT row INTO nodes"
}

// aqlBulkInsertEdges resolves src/dst ids against the nodes collection and
// inserts the remaining row fields as edge properties.
func aqlBulkInsertEdges() string {
	return "FOR row IN @rows " +
		"FOR a IN nodes FILTER a.id == row.src " +
		"FOR b IN nodes FILTER b.id == row.dst " +
		`INSERT MERGE({ _from: a._id, _to: b._id }, UNSET(row, "src", "dst")) INTO edges`
}
