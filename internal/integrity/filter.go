// Package integrity removes edges whose endpoints are not in the vertex set.
//
// Dropped edges are diagnostics, never errors: the pipeline continues with
// whatever survives.
package integrity

import (
	"go.uber.org/zap"

	"eunify/internal/domain"
)

// Drop describes one discarded edge
type Drop struct {
	EdgeID        string `json:"edge_id"`
	Source        string `json:"source"`
	Target        string `json:"target"`
	MissingSource bool   `json:"missing_source"`
	MissingTarget bool   `json:"missing_target"`
}

// Reason names the missing endpoint(s)
func (d Drop) Reason() string {
	switch {
	case d.MissingSource && d.MissingTarget:
		return "source and target missing"
	case d.MissingSource:
		return "source missing"
	default:
		return "target missing"
	}
}

// Result is the outcome of a filter pass
type Result struct {
	Edges   []domain.Edge
	Dropped []Drop
}

// Filter keeps the edges whose source and target both name a vertex.
// Order of surviving edges is preserved. Runs in O(V+E).
func Filter(vertices []domain.Vertex, edges []domain.Edge) Result {
	ids := make(map[string]struct{}, len(vertices))
	for _, v := range vertices {
		ids[v.ID] = struct{}{}
	}

	res := Result{Edges: make([]domain.Edge, 0, len(edges))}
	for _, e := range edges {
		_, hasSource := ids[e.Source]
		_, hasTarget := ids[e.Target]
		if hasSource && hasTarget {
			res.Edges = append(res.Edges, e)
			continue
		}
		res.Dropped = append(res.Dropped, Drop{
			EdgeID:        e.ID,
			Source:        e.Source,
			Target:        e.Target,
			MissingSource: !hasSource,
			MissingTarget: !hasTarget,
		})
	}
	return res
}

// Filterer runs Filter and logs one warning per dropped edge
type Filterer struct {
	logger *zap.SugaredLogger
}

// NewFilterer creates a logging filter
func NewFilterer(logger *zap.SugaredLogger) *Filterer {
	return &Filterer{logger: logger.Named("integrity")}
}

// Apply returns a new snapshot holding data's vertices and only its
// referentially sound edges. data itself is not modified.
func (f *Filterer) Apply(data *domain.GraphData) (*domain.GraphData, []Drop) {
	if data == nil {
		return domain.NewGraphData(), nil
	}
	res := Filter(data.Vertices, data.Edges)
	for _, d := range res.Dropped {
		f.logger.Warnw("Dropping edge with missing endpoint",
			"edge", d.EdgeID,
			"source", d.Source,
			"target", d.Target,
			"reason", d.Reason())
	}
	if len(res.Dropped) > 0 {
		f.logger.Infow("Integrity filter summary",
			"kept", len(res.Edges),
			"dropped", len(res.Dropped))
	}

	vertices := data.Vertices
	if vertices == nil {
		vertices = make([]domain.Vertex, 0)
	}
	return &domain.GraphData{Vertices: vertices, Edges: res.Edges}, res.Dropped
}
