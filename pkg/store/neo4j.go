package store

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4j drives a native graph database over Bolt, translating benchmark
// operations into Cypher.
type Neo4j struct {
	suppressible
	driver    neo4j.DriverWithContext
	discovery Discovery
}

// NewNeo4j connects to a Neo4j server and verifies connectivity up front so
// a misconfigured endpoint fails the whole run instead of the first workload.
func NewNeo4j(ctx context.Context, uri, username, password string) (*Neo4j, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4j: create driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("neo4j: verify connectivity: %w", err)
	}

	return &Neo4j{
		driver: driver,
		// The JVM process owns the resource usage; the cmdline filter keeps
		// other Java services out of the set.
		discovery: Discovery{Name: "java", CmdlineContains: "neo4j"},
	}, nil
}

func (s *Neo4j) Name() string { return "NEO4j" }

func (s *Neo4j) AddNode(ctx context.Context, id int, labels []string, properties map[string]string) error {
	return s.query(ctx, cypherCreateNode(id, labels, properties))
}

func (s *Neo4j) AddEdge(ctx context.Context, src, dst string, labels []string, properties map[string]string) error {
	return s.query(ctx, cypherCreateEdge(src, dst, labels, properties))
}

func (s *Neo4j) GetSingleNode(ctx context.Context, labels []string, properties map[string]string) error {
	return s.query(ctx, cypherMatchNode(labels, properties))
}

func (s *Neo4j) NodesWithinHops(ctx context.Context, id string, hops int) error {
	return s.query(ctx, cypherWithinHops(id, hops))
}

func (s *Neo4j) ShortestPath(ctx context.Context, src, dst string) error {
	return s.query(ctx, cypherShortestPath(src, dst))
}

func (s *Neo4j) LoadDatabase(ctx context.Context, nodesPath, edgesPath string) error {
	nodeProps, err := csvHeader(nodesPath)
	if err != nil {
		return err
	}
	edgeProps, err := csvHeader(edgesPath)
	if err != nil {
		return err
	}

	if err := s.query(ctx, cypherLoadNodes(nodesPath, nodeProps)); err != nil {
		return err
	}
	return s.query(ctx, cypherLoadEdges(edgesPath, edgeProps))
}

func (s *Neo4j) Clear(ctx context.Context) error {
	return s.query(ctx, "MATCH (n) DETACH DELETE n")
}

func (s *Neo4j) Pids() ([]int32, error) {
	return Discover(s.discovery)
}

func (s *Neo4j) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// query executes a Cypher statement and drains its result. While suppressed
// the statement has already been formatted but no I/O happens.
func (s *Neo4j) query(ctx context.Context, q string) error {
	if s.Suppressed() {
		return nil
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.Run(ctx, q, nil)
	if err != nil {
		return fmt.Errorf("neo4j: run query: %w", err)
	}
	if _, err := result.Consume(ctx); err != nil {
		return fmt.Errorf("neo4j: consume result: %w", err)
	}
	return nil
}
