package bolt

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"eunify/internal/domain"
	"eunify/internal/reshape"
)

type stubRunner struct {
	result    *neo4j.EagerResult
	err       error
	verifyErr error
	query     string
	params    map[string]any
}

func (s *stubRunner) Run(_ context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	s.query, s.params = query, params
	return s.result, s.err
}

func (s *stubRunner) Verify(context.Context) error { return s.verifyErr }

func (s *stubRunner) Close(context.Context) error { return nil }

var (
	caseNode = neo4j.Node{ElementId: "4:x:1", Labels: []string{"Case"}, Props: map[string]any{"name": "Case 1", "status": "Open"}}
	offNode  = neo4j.Node{ElementId: "4:x:2", Labels: []string{"Officer"}, Props: map[string]any{"caseload": int64(4)}}
	assigned = neo4j.Relationship{ElementId: "5:x:9", StartElementId: "4:x:2", EndElementId: "4:x:1", Type: "ASSIGNED_TO"}
)

func TestSource_LoadPreset(t *testing.T) {
	runner := &stubRunner{result: &neo4j.EagerResult{
		Keys: []string{"n", "r", "m"},
		Records: []*neo4j.Record{
			{Keys: []string{"n", "r", "m"}, Values: []any{offNode, assigned, caseNode}},
			{Keys: []string{"n", "r", "m"}, Values: []any{caseNode, nil, nil}},
		},
	}}
	src := New(runner, Config{URI: "neo4j://db:7687"}, zap.NewNop().Sugar())

	p, _ := domain.PresetByKey("officer_workload")
	data, err := src.LoadPreset(context.Background(), p)
	require.NoError(t, err)

	t.Run("deduplicates nodes", func(t *testing.T) {
		assert.Len(t, data.Vertices, 2)
	})

	t.Run("maps labels and names", func(t *testing.T) {
		v, ok := data.Vertex("4:x:1")
		require.True(t, ok)
		assert.Equal(t, "case", v.Type)
		assert.Equal(t, "Case 1", v.Label)

		o, _ := data.Vertex("4:x:2")
		assert.Equal(t, "officer", o.Label, "falls back to type")
	})

	t.Run("maps relationships", func(t *testing.T) {
		require.Len(t, data.Edges, 1)
		e := data.Edges[0]
		assert.Equal(t, "4:x:2", e.Source)
		assert.Equal(t, "assigned_to", e.Type)
	})

	t.Run("filters by preset types", func(t *testing.T) {
		assert.Equal(t, typedQuery, runner.query)
		assert.Equal(t, p.VertexTypes, runner.params["types"])
		assert.Equal(t, 500, runner.params["limit"])
	})
}

func TestSource_Execute(t *testing.T) {
	runner := &stubRunner{result: &neo4j.EagerResult{
		Keys:    []string{"n"},
		Records: []*neo4j.Record{{Keys: []string{"n"}, Values: []any{caseNode}}},
	}}
	src := New(runner, Config{}, zap.NewNop().Sugar())

	raw, err := src.Execute(context.Background(), "MATCH (n:Case) RETURN n")
	require.NoError(t, err)

	t.Run("nodes are reshapeable", func(t *testing.T) {
		data, _, err := reshape.Reshape(raw)
		require.NoError(t, err)
		require.Len(t, data.Vertices, 1)
		assert.Equal(t, "4:x:1", data.Vertices[0].ID)
		assert.Equal(t, "case", data.Vertices[0].Type)
	})

	t.Run("driver errors carry detail", func(t *testing.T) {
		runner.err = errors.New("Neo.ClientError.Statement.SyntaxError")
		_, err := src.Execute(context.Background(), "MATC")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SyntaxError")
	})
}

func TestSource_Status(t *testing.T) {
	runner := &stubRunner{}
	src := New(runner, Config{URI: "neo4j://db:7687"}, zap.NewNop().Sugar())

	st, err := src.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Connected)

	runner.verifyErr = errors.New("refused")
	st, err = src.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, st.Connected)
	assert.Equal(t, "neo4j://db:7687", st.GremlinURL)
}
