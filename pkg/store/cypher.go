package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Cypher query construction shared by the Bolt-speaking backends (Neo4j and
// Memgraph). Property values are rendered as quoted strings in sorted key
// order so a query for given arguments is deterministic.

func cypherProps(properties map[string]string) string {
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

func cypherCreateNode(id int, labels []string, properties map[string]string) string {
	merged := make(map[string]string, len(properties)+1)
	for k, v := range properties {
		merged[k] = v
	}
	merged["id"] = strconv.Itoa(id)

	var b strings.Builder
	b.WriteString("CREATE (n")
	if len(labels) > 0 {
		b.WriteString(":" + strings.Join(labels, ":"))
	}
	b.WriteString(" {")
	b.WriteString(cypherProps(merged))
	b.WriteString("})")
	return b.String()
}

func cypherCreateEdge(src, dst string, labels []string, properties map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MATCH (a), (b) WHERE a.id = %q AND b.id = %q CREATE (a)-[:", src, dst)
	b.WriteString(strings.Join(labels, ":"))
	b.WriteString(" {")
	b.WriteString(cypherProps(properties))
	b.WriteString("}]->(b)")
	return b.String()
}

func cypherMatchNode(labels []string, properties map[string]string) string {
	var b strings.Builder
	b.WriteString("MATCH (n")
	if len(labels) > 0 {
		b.WriteString(":" + strings.Join(labels, ":"))
	}
	b.WriteString(" {")
	b.WriteString(cypherProps(properties))
	b.WriteString("}) RETURN n")
	return b.String()
}

func cypherWithinHops(id string, hops int) string {
	return fmt.Sprintf("MATCH (n {id: %q})-[*1..%d]-(m) RETURN DISTINCT m", id, hops)
}

// cypherShortestPath uses Neo4j's shortestPath() function.
func cypherShortestPath(src, dst string) string {
	return fmt.Sprintf("MATCH (a {id: %q}), (b {id: %q}) MATCH p = shortestPath((a)-[*]-(b)) RETURN p", src, dst)
}

// cypherShortestPathBFS uses Memgraph's breadth-first expansion syntax.
func cypherShortestPathBFS(src, dst string) string {
	return fmt.Sprintf("MATCH p = (a {id: %q})-[*BFS]-(b {id: %q}) RETURN p", src, dst)
}

// cypherLoadNodes bulk-loads nodes server-side from a CSV whose header names
// the node properties.
func cypherLoadNodes(path string, properties []string) string {
	assignments := make([]string, len(properties))
	for i, p := range properties {
		assignments[i] = fmt.Sprintf("%s: row.%s", p, p)
	}
	return fmt.Sprintf("LOAD CSV WITH HEADERS FROM 'file:///%s' AS row CREATE (n { %s })",
		path, strings.Join(assignments, ", "))
}

// cypherLoadEdges bulk-loads edges from a CSV with src and dst columns; the
// remaining header fields become the relationship type.
func cypherLoadEdges(path string, properties []string) string {
	return fmt.Sprintf("LOAD CSV WITH HEADERS FROM 'file:///%s' AS row "+
		"MATCH (a), (b) WHERE a.id = row.src AND b.id = row.dst CREATE (a)-[:%s]->(b)",
		path, strings.Join(properties, ":"))
}

// memgraphLoadNodes and memgraphLoadEdges use Memgraph's LOAD CSV clause,
// which takes a plain filesystem path instead of a file URL.
func memgraphLoadNodes(path string, properties []string) string {
	assignments := make([]string, len(properties))
	for i, p := range properties {
		assignments[i] = fmt.Sprintf("%s: row.%s", p, p)
	}
	return fmt.Sprintf("LOAD CSV FROM %q WITH HEADER AS row CREATE (n { %s })",
		path, strings.Join(assignments, ", "))
}

func memgraphLoadEdges(path string, properties []string) string {
	return fmt.Sprintf("LOAD CSV FROM %q WITH HEADER AS row "+
		"MATCH (a {id: row.src}), (b {id: row.dst}) CREATE (a)-[:%s]->(b)",
		path, strings.Join(properties, ":"))
}
