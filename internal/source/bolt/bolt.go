// Package bolt reads graph data straight from Neo4j over Bolt.
package bolt

import (
	"context"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"eunify/internal/domain"
	"eunify/internal/errors"
)

// Runner executes a Cypher statement and buffers the result
type Runner interface {
	Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error)
	Verify(ctx context.Context) error
	Close(ctx context.Context) error
}

// Config configures the Neo4j connection
type Config struct {
	URI      string
	Username string
	Password string
	Database string
	Limit    int // max rows per preset; zero means 500
}

// Executor is the driver-backed Runner
type Executor struct {
	driver neo4j.DriverWithContext
	dbName string
}

// NewExecutor creates a driver for cfg. The connection is not verified.
func NewExecutor(cfg Config) (*Executor, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, errors.Wrap(err, "create neo4j driver")
	}
	return &Executor{driver: driver, dbName: cfg.Database}, nil
}

// Run executes query with automatic session and transaction handling
func (e *Executor) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	res, err := neo4j.ExecuteQuery(ctx, e.driver, query, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(e.dbName))
	if err != nil {
		return nil, errors.Wrap(err, "execute cypher")
	}
	return res, nil
}

// Verify checks connectivity
func (e *Executor) Verify(ctx context.Context) error {
	return e.driver.VerifyConnectivity(ctx)
}

// Close shuts the driver down
func (e *Executor) Close(ctx context.Context) error {
	return e.driver.Close(ctx)
}

const (
	allQuery = `MATCH (n) OPTIONAL MATCH (n)-[r]->(m) RETURN n, r, m LIMIT $limit`

	typedQuery = `MATCH (n) WHERE any(l IN labels(n) WHERE toLower(l) IN $types)
OPTIONAL MATCH (n)-[r]->(m) RETURN n, r, m LIMIT $limit`
)

// Source maps Neo4j nodes and relationships onto graph snapshots
type Source struct {
	runner Runner
	uri    string
	limit  int
	logger *zap.SugaredLogger
}

// New creates a source over runner
func New(runner Runner, cfg Config, logger *zap.SugaredLogger) *Source {
	limit := cfg.Limit
	if limit <= 0 {
		limit = 500
	}
	return &Source{runner: runner, uri: cfg.URI, limit: limit, logger: logger.Named("source.bolt")}
}

// LoadPreset matches the preset's vertex types and their outgoing edges
func (s *Source) LoadPreset(ctx context.Context, preset domain.Preset) (*domain.GraphData, error) {
	query := allQuery
	params := map[string]any{"limit": s.limit}
	if len(preset.VertexTypes) > 0 {
		query = typedQuery
		params["types"] = preset.VertexTypes
	}

	res, err := s.runner.Run(ctx, query, params)
	if err != nil {
		return nil, errors.Wrapf(err, "load preset %s", preset.Key)
	}

	data := domain.NewGraphData()
	seenNodes := make(map[string]bool)
	seenEdges := make(map[string]bool)

	for _, rec := range res.Records {
		for _, val := range rec.Values {
			switch v := val.(type) {
			case neo4j.Node:
				if !seenNodes[v.ElementId] {
					data.AddVertex(vertexOf(v))
					seenNodes[v.ElementId] = true
				}
			case neo4j.Relationship:
				if !seenEdges[v.ElementId] {
					data.AddEdge(edgeOf(v))
					seenEdges[v.ElementId] = true
				}
			}
		}
	}

	s.logger.Debugw("Loaded preset", "preset", preset.Key, "vertices", len(data.Vertices), "edges", len(data.Edges))
	return data, nil
}

// Execute runs a Cypher statement. Single-column rows return the column
// value; wider rows return a map keyed by column. Nodes become
// {id, label, ...props} so the result can be reshaped.
func (s *Source) Execute(ctx context.Context, query string) (any, error) {
	res, err := s.runner.Run(ctx, query, nil)
	if err != nil {
		return nil, errors.WithDetail(errors.Wrap(err, "execute query"), err.Error())
	}

	rows := make([]any, 0, len(res.Records))
	for _, rec := range res.Records {
		if len(rec.Values) == 1 {
			rows = append(rows, plain(rec.Values[0]))
			continue
		}
		row := make(map[string]any, len(rec.Keys))
		for i, k := range rec.Keys {
			if i < len(rec.Values) {
				row[k] = plain(rec.Values[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Status reports whether the driver can reach the server
func (s *Source) Status(ctx context.Context) (domain.ConnectionStatus, error) {
	if err := s.runner.Verify(ctx); err != nil {
		s.logger.Debugw("Neo4j unreachable", "uri", s.uri, "error", err)
		return domain.ConnectionStatus{Connected: false, GremlinURL: s.uri}, nil
	}
	return domain.ConnectionStatus{Connected: true, GremlinURL: s.uri}, nil
}

// Close closes the driver
func (s *Source) Close() error {
	return s.runner.Close(context.Background())
}

func vertexOf(n neo4j.Node) domain.Vertex {
	t := ""
	if len(n.Labels) > 0 {
		t = strings.ToLower(n.Labels[0])
	}
	return domain.Vertex{
		ID:         n.ElementId,
		Label:      displayName(n.Props, t),
		Type:       t,
		Properties: domain.PropertiesOf(n.Props),
	}
}

func edgeOf(r neo4j.Relationship) domain.Edge {
	t := strings.ToLower(r.Type)
	return domain.Edge{
		ID:         r.ElementId,
		Source:     r.StartElementId,
		Target:     r.EndElementId,
		Label:      t,
		Type:       t,
		Properties: domain.PropertiesOf(r.Props),
	}
}

func displayName(props map[string]any, fallback string) string {
	for _, k := range []string{"name", "label", "title"} {
		if v, ok := props[k]; ok {
			if s := domain.ScalarOf(v).Text(); s != "" {
				return s
			}
		}
	}
	return fallback
}

func plain(v any) any {
	switch x := v.(type) {
	case neo4j.Node:
		m := make(map[string]any, len(x.Props)+2)
		for k, p := range x.Props {
			m[k] = p
		}
		m["id"] = x.ElementId
		if len(x.Labels) > 0 {
			m["label"] = strings.ToLower(x.Labels[0])
		}
		return m
	case neo4j.Relationship:
		m := make(map[string]any, len(x.Props)+4)
		for k, p := range x.Props {
			m[k] = p
		}
		m["id"] = x.ElementId
		m["label"] = strings.ToLower(x.Type)
		m["source"] = x.StartElementId
		m["target"] = x.EndElementId
		return m
	case neo4j.Path:
		out := make([]any, 0, len(x.Nodes))
		for _, n := range x.Nodes {
			out = append(out, plain(n))
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plain(e)
		}
		return out
	default:
		return v
	}
}
