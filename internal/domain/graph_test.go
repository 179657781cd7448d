package domain

import "testing"

func sampleGraph() *GraphData {
	g := NewGraphData()
	a := NewVertex("a", "Case 1", "case")
	a.SetProperty("status", "Open")
	g.AddVertex(*a)
	g.AddVertex(*NewVertex("b", "Officer", "officer"))
	g.AddVertex(*NewVertex("c", "Case 2", "case"))
	g.AddEdge(*NewEdge("b", "a", "assigned_to"))
	return g
}

func TestNewEdge(t *testing.T) {
	t.Run("creates edge with generated ID", func(t *testing.T) {
		edge := NewEdge("n1", "n2", "owns")
		if edge.Source != "n1" || edge.Target != "n2" {
			t.Errorf("expected n1->n2, got %s->%s", edge.Source, edge.Target)
		}
		if edge.ID == "" {
			t.Error("expected ID to be generated")
		}
		if edge.Properties == nil {
			t.Error("expected Properties to be initialized")
		}
	})

	t.Run("direction changes the ID", func(t *testing.T) {
		if NewEdge("n1", "n2", "owns").ID == NewEdge("n2", "n1", "owns").ID {
			t.Error("expected reversed endpoints to generate different IDs")
		}
	})

	t.Run("same endpoints and type give same ID", func(t *testing.T) {
		if NewEdge("n1", "n2", "owns").ID != NewEdge("n1", "n2", "owns").ID {
			t.Error("expected deterministic IDs")
		}
	})
}

func TestGraphDataLookup(t *testing.T) {
	g := sampleGraph()

	t.Run("finds vertex", func(t *testing.T) {
		v, ok := g.Vertex("a")
		if !ok {
			t.Fatal("expected vertex a")
		}
		if s, _ := v.GetProperty("status"); s.Text() != "Open" {
			t.Errorf("expected status Open, got %s", s.Text())
		}
	})

	t.Run("missing vertex", func(t *testing.T) {
		if _, ok := g.Vertex("zz"); ok {
			t.Error("expected no vertex")
		}
	})

	t.Run("nil graph is empty", func(t *testing.T) {
		var nilGraph *GraphData
		if !nilGraph.IsEmpty() {
			t.Error("expected nil graph to be empty")
		}
		if _, ok := nilGraph.Edge("x"); ok {
			t.Error("expected no edge on nil graph")
		}
	})
}

func TestGraphDataClone(t *testing.T) {
	g := sampleGraph()
	c := g.Clone()
	c.Vertices[0].SetProperty("status", "Closed")

	if s, _ := g.Vertices[0].GetProperty("status"); s.Text() != "Open" {
		t.Errorf("expected original untouched, got %s", s.Text())
	}
}

func TestGraphDataStats(t *testing.T) {
	stats := sampleGraph().Stats()

	if stats.Vertices != 3 || stats.Edges != 1 {
		t.Fatalf("expected 3 vertices 1 edge, got %d/%d", stats.Vertices, stats.Edges)
	}
	if stats.VertexTypes[0].Type != "case" || stats.VertexTypes[0].Count != 2 {
		t.Errorf("expected case first with 2, got %+v", stats.VertexTypes[0])
	}
}
