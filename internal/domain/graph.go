package domain

import "sort"

// GraphData is one snapshot of the displayed graph. A new snapshot
// replaces the previous one entirely; snapshots are never merged.
type GraphData struct {
	Vertices []Vertex `json:"vertices" yaml:"vertices"`
	Edges    []Edge   `json:"edges" yaml:"edges"`
}

// NewGraphData creates an empty snapshot
func NewGraphData() *GraphData {
	return &GraphData{
		Vertices: make([]Vertex, 0),
		Edges:    make([]Edge, 0),
	}
}

// AddVertex appends a vertex
func (g *GraphData) AddVertex(v Vertex) {
	g.Vertices = append(g.Vertices, v)
}

// AddEdge appends an edge
func (g *GraphData) AddEdge(e Edge) {
	g.Edges = append(g.Edges, e)
}

// IsEmpty reports whether the snapshot has no vertices and no edges
func (g *GraphData) IsEmpty() bool {
	return g == nil || (len(g.Vertices) == 0 && len(g.Edges) == 0)
}

// VertexIDs returns the set of vertex IDs
func (g *GraphData) VertexIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(g.Vertices))
	for _, v := range g.Vertices {
		ids[v.ID] = struct{}{}
	}
	return ids
}

// Vertex finds a vertex by ID. With duplicate IDs the first wins.
func (g *GraphData) Vertex(id string) (*Vertex, bool) {
	if g == nil {
		return nil, false
	}
	for i := range g.Vertices {
		if g.Vertices[i].ID == id {
			return &g.Vertices[i], true
		}
	}
	return nil, false
}

// Edge finds an edge by ID
func (g *GraphData) Edge(id string) (*Edge, bool) {
	if g == nil {
		return nil, false
	}
	for i := range g.Edges {
		if g.Edges[i].ID == id {
			return &g.Edges[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy
func (g *GraphData) Clone() *GraphData {
	if g == nil {
		return NewGraphData()
	}
	out := &GraphData{
		Vertices: make([]Vertex, len(g.Vertices)),
		Edges:    make([]Edge, len(g.Edges)),
	}
	for i, v := range g.Vertices {
		out.Vertices[i] = v.Clone()
	}
	for i, e := range g.Edges {
		out.Edges[i] = e.Clone()
	}
	return out
}

// TypeCount is the number of elements sharing a type tag
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// GraphStats summarizes a snapshot
type GraphStats struct {
	Vertices    int         `json:"vertices"`
	Edges       int         `json:"edges"`
	VertexTypes []TypeCount `json:"vertex_types"`
	EdgeTypes   []TypeCount `json:"edge_types"`
}

// Stats counts vertices and edges per type, most frequent first
func (g *GraphData) Stats() GraphStats {
	if g == nil {
		return GraphStats{}
	}
	vt := make(map[string]int)
	for _, v := range g.Vertices {
		vt[v.Type]++
	}
	et := make(map[string]int)
	for _, e := range g.Edges {
		et[e.Type]++
	}
	return GraphStats{
		Vertices:    len(g.Vertices),
		Edges:       len(g.Edges),
		VertexTypes: sortedCounts(vt),
		EdgeTypes:   sortedCounts(et),
	}
}

func sortedCounts(m map[string]int) []TypeCount {
	out := make([]TypeCount, 0, len(m))
	for t, n := range m {
		out = append(out, TypeCount{Type: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}
