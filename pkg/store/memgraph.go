package store

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Memgraph drives the multi-model graph engine over Bolt. Most operations
// share the Cypher builders with the Neo4j backend; shortest path and bulk
// load use Memgraph's own syntax (*BFS expansion, LOAD CSV clause).
type Memgraph struct {
	suppressible
	driver    neo4j.DriverWithContext
	discovery Discovery
}

// NewMemgraph connects to a Memgraph server via the Bolt driver.
func NewMemgraph(ctx context.Context, uri, username, password string) (*Memgraph, error) {
	auth := neo4j.NoAuth()
	if username != "" {
		auth = neo4j.BasicAuth(username, password, "")
	}

	driver, err := neo4j.NewDriverWithContext(uri, auth)
	if err != nil {
		return nil, fmt.Errorf("memgraph: create driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("memgraph: verify connectivity: %w", err)
	}

	return &Memgraph{
		driver:    driver,
		discovery: Discovery{Name: "memgraph"},
	}, nil
}

func (s *Memgraph) Name() string { return "Memgraph" }

func (s *Memgraph) AddNode(ctx context.Context, id int, labels []string, properties map[string]string) error {
	return s.query(ctx, cypherCreateNode(id, labels, properties))
}

func (s *Memgraph) AddEdge(ctx context.Context, src, dst string, labels []string, properties map[string]string) error {
	return s.query(ctx, cypherCreateEdge(src, dst, labels, properties))
}

func (s *Memgraph) GetSingleNode(ctx context.Context, labels []string, properties map[string]string) error {
	return s.query(ctx, cypherMatchNode(labels, properties))
}

func (s *Memgraph) NodesWithinHops(ctx context.Context, id string, hops int) error {
	return s.query(ctx, cypherWithinHops(id, hops))
}

func (s *Memgraph) ShortestPath(ctx context.Context, src, dst string) error {
	return s.query(ctx, cypherShortestPathBFS(src, dst))
}

func (s *Memgraph) LoadDatabase(ctx context.Context, nodesPath, edgesPath string) error {
	nodeProps, err := csvHeader(nodesPath)
	if err != nil {
		return err
	}
	edgeProps, err := csvHeader(edgesPath)
	if err != nil {
		return err
	}

	if err := s.query(ctx, memgraphLoadNodes(nodesPath, nodeProps)); err != nil {
		return err
	}
	return s.query(ctx, memgraphLoadEdges(edgesPath, edgeProps))
}

func (s *Memgraph) Clear(ctx context.Context) error {
	return s.query(ctx, "MATCH (n) DETACH DELETE n")
}

func (s *Memgraph) Pids() ([]int32, error) {
	return Discover(s.discovery)
}

func (s *Memgraph) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *Memgraph) query(ctx context.Context, q string) error {
	if s.Suppressed() {
		return nil
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.Run(ctx, q, nil)
	if err != nil {
		return fmt.Errorf("memgraph: run query: %w", err)
	}
	if _, err := result.Consume(ctx); err != nil {
		return fmt.Errorf("memgraph: consume result: %w", err)
	}
	return nil
}
