// Package codec reads and writes graph snapshots in the graph service's
// wire format:
//
//	{"nodes": [{"id", "label", "type", "properties"}],
//	 "edges": [{"id", "source", "target", "label", "type", "properties"}]}
//
// "vertices" is accepted as an alias for "nodes" on input.
package codec

import (
	"io"

	"eunify/internal/domain"
)

// Importer parses graph data from a format
type Importer interface {
	Parse(r io.Reader) (*domain.GraphData, error)
	Format() string
}

// Exporter writes graph data in a format
type Exporter interface {
	Export(data *domain.GraphData, w io.Writer) error
	Format() string
}

// ContentType returns the MIME type for a format
func ContentType(format string) string {
	switch format {
	case "yaml":
		return "application/x-yaml"
	default:
		return "application/json"
	}
}

type wireGraph struct {
	Nodes    []wireVertex `json:"nodes" yaml:"nodes"`
	Vertices []wireVertex `json:"vertices,omitempty" yaml:"vertices,omitempty"`
	Edges    []wireEdge   `json:"edges" yaml:"edges"`
}

type wireVertex struct {
	ID         any            `json:"id" yaml:"id"`
	Label      string         `json:"label" yaml:"label"`
	Type       string         `json:"type,omitempty" yaml:"type,omitempty"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

type wireEdge struct {
	ID         any            `json:"id,omitempty" yaml:"id,omitempty"`
	Source     any            `json:"source" yaml:"source"`
	Target     any            `json:"target" yaml:"target"`
	Label      string         `json:"label,omitempty" yaml:"label,omitempty"`
	Type       string         `json:"type,omitempty" yaml:"type,omitempty"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// toDomain converts the wire shape. Vertices without a type take their
// label as type; edges without an id get a generated one.
func (g *wireGraph) toDomain() *domain.GraphData {
	data := domain.NewGraphData()
	nodes := g.Nodes
	if len(nodes) == 0 {
		nodes = g.Vertices
	}
	for _, n := range nodes {
		t := n.Type
		if t == "" {
			t = n.Label
		}
		data.AddVertex(domain.Vertex{
			ID:         idText(n.ID),
			Label:      n.Label,
			Type:       t,
			Properties: domain.PropertiesOf(n.Properties),
		})
	}
	for _, e := range g.Edges {
		t := e.Type
		if t == "" {
			t = e.Label
		}
		label := e.Label
		if label == "" {
			label = t
		}
		edge := domain.Edge{
			ID:         idText(e.ID),
			Source:     idText(e.Source),
			Target:     idText(e.Target),
			Label:      label,
			Type:       t,
			Properties: domain.PropertiesOf(e.Properties),
		}
		if edge.ID == "" {
			edge.ID = edge.GenerateID()
		}
		data.AddEdge(edge)
	}
	return data
}

func fromDomain(data *domain.GraphData) *wireGraph {
	g := &wireGraph{
		Nodes: make([]wireVertex, 0, len(data.Vertices)),
		Edges: make([]wireEdge, 0, len(data.Edges)),
	}
	for _, v := range data.Vertices {
		g.Nodes = append(g.Nodes, wireVertex{
			ID:         v.ID,
			Label:      v.Label,
			Type:       v.Type,
			Properties: v.Properties.Plain(),
		})
	}
	for _, e := range data.Edges {
		g.Edges = append(g.Edges, wireEdge{
			ID:         e.ID,
			Source:     e.Source,
			Target:     e.Target,
			Label:      e.Label,
			Type:       e.Type,
			Properties: e.Properties.Plain(),
		})
	}
	return g
}

// idText accepts string or numeric ids
func idText(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return domain.ScalarOf(v).Text()
}
