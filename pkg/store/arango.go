package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	driver "github.com/arangodb/go-driver"
	arangohttp "github.com/arangodb/go-driver/http"
)

const (
	arangoDatabase = "benchmark"
	arangoNodes    = "nodes"
	arangoEdges    = "edges"
)

// Arango drives the document/graph store, translating benchmark operations
// into AQL against a dedicated benchmark database with nodes and edges
// collections, created on first connect.
type Arango struct {
	suppressible
	db        driver.Database
	discovery Discovery
}

// NewArango connects to an ArangoDB server and ensures the benchmark
// database and its collections exist.
func NewArango(ctx context.Context, endpoint, username, password string) (*Arango, error) {
	conn, err := arangohttp.NewConnection(arangohttp.ConnectionConfig{
		Endpoints: []string{endpoint},
	})
	if err != nil {
		return nil, fmt.Errorf("arango: create connection: %w", err)
	}

	client, err := driver.NewClient(driver.ClientConfig{
		Connection:     conn,
		Authentication: driver.BasicAuthentication(username, password),
	})
	if err != nil {
		return nil, fmt.Errorf("arango: create client: %w", err)
	}

	db, err := ensureDatabase(ctx, client)
	if err != nil {
		return nil, err
	}
	if err := ensureCollection(ctx, db, arangoNodes, nil); err != nil {
		return nil, err
	}
	edgeOpts := &driver.CreateCollectionOptions{Type: driver.CollectionTypeEdge}
	if err := ensureCollection(ctx, db, arangoEdges, edgeOpts); err != nil {
		return nil, err
	}

	return &Arango{
		db:        db,
		discovery: Discovery{Name: "arangod"},
	}, nil
}

func ensureDatabase(ctx context.Context, client driver.Client) (driver.Database, error) {
	exists, err := client.DatabaseExists(ctx, arangoDatabase)
	if err != nil {
		return nil, fmt.Errorf("arango: check database: %w", err)
	}
	if exists {
		db, err := client.Database(ctx, arangoDatabase)
		if err != nil {
			return nil, fmt.Errorf("arango: open database: %w", err)
		}
		return db, nil
	}

	db, err := client.CreateDatabase(ctx, arangoDatabase, nil)
	if err != nil {
		return nil, fmt.Errorf("arango: create database: %w", err)
	}
	return db, nil
}

func ensureCollection(ctx context.Context, db driver.Database, name string, opts *driver.CreateCollectionOptions) error {
	exists, err := db.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("arango: check collection %s: %w", name, err)
	}
	if exists {
		return nil
	}
	if _, err := db.CreateCollection(ctx, name, opts); err != nil {
		return fmt.Errorf("arango: create collection %s: %w", name, err)
	}
	return nil
}

func (s *Arango) Name() string { return "ArangoDB" }

func (s *Arango) AddNode(ctx context.Context, id int, labels []string, properties map[string]string) error {
	// Labels have no collection-level equivalent here; they ride along only
	// through the property filters of the lookup queries.
	return s.query(ctx, aqlInsertNode(id, properties), nil)
}

func (s *Arango) AddEdge(ctx context.Context, src, dst string, labels []string, properties map[string]string) error {
	return s.query(ctx, aqlInsertEdge(src, dst, properties), nil)
}

func (s *Arango) GetSingleNode(ctx context.Context, labels []string, properties map[string]string) error {
	return s.query(ctx, aqlMatchNode(properties), nil)
}

func (s *Arango) NodesWithinHops(ctx context.Context, id string, hops int) error {
	return s.query(ctx, aqlWithinHops(id, hops), nil)
}

func (s *Arango) ShortestPath(ctx context.Context, src, dst string) error {
	return s.query(ctx, aqlShortestPath(src, dst), nil)
}

func (s *Arango) LoadDatabase(ctx context.Context, nodesPath, edgesPath string) error {
	nodeRows, err := readCSVRows(nodesPath)
	if err != nil {
		return err
	}
	edgeRows, err := readCSVRows(edgesPath)
	if err != nil {
		return err
	}

	if err := s.query(ctx, aqlBulkInsertNodes(), map[string]interface{}{"rows": nodeRows}); err != nil {
		return err
	}
	return s.query(ctx, aqlBulkInsertEdges(), map[string]interface{}{"rows": edgeRows})
}

func (s *Arango) Clear(ctx context.Context) error {
	if err := s.query(ctx, aqlClearCollection(arangoNodes), nil); err != nil {
		return err
	}
	return s.query(ctx, aqlClearCollection(arangoEdges), nil)
}

func (s *Arango) Pids() ([]int32, error) {
	return Discover(s.discovery)
}

func (s *Arango) Close(ctx context.Context) error {
	return nil
}

func (s *Arango) query(ctx context.Context, q string, bindVars map[string]interface{}) error {
	if s.Suppressed() {
		return nil
	}

	cursor, err := s.db.Query(ctx, q, bindVars)
	if err != nil {
		return fmt.Errorf("arango: run query: %w", err)
	}
	return cursor.Close()
}

// readCSVRows loads a headered CSV into one document per row, keyed by the
// header fields.
func readCSVRows(path string) ([]map[string]interface{}, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("store: read header of %s: %w", path, err)
	}

	var rows []map[string]interface{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("store: read %s: %w", path, err)
		}
		row := make(map[string]interface{}, len(header))
		for i, h := range header {
			if i < len(record) {
				row[h] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
