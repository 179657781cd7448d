package domain

// SelectionKind identifies what is currently selected
type SelectionKind string

const (
	SelectionNone   SelectionKind = "none"
	SelectionVertex SelectionKind = "node"
	SelectionEdge   SelectionKind = "edge"
)

// Selection holds at most one selected element. Selecting a vertex
// clears any selected edge and vice versa.
type Selection struct {
	Vertex *Vertex `json:"node"`
	Edge   *Edge   `json:"edge"`
}

// NoSelection returns an empty selection
func NoSelection() Selection {
	return Selection{}
}

// SelectVertex returns a selection holding a copy of v
func SelectVertex(v Vertex) Selection {
	c := v.Clone()
	return Selection{Vertex: &c}
}

// SelectEdge returns a selection holding a copy of e
func SelectEdge(e Edge) Selection {
	c := e.Clone()
	return Selection{Edge: &c}
}

// Kind reports the selected element kind
func (s Selection) Kind() SelectionKind {
	switch {
	case s.Vertex != nil:
		return SelectionVertex
	case s.Edge != nil:
		return SelectionEdge
	default:
		return SelectionNone
	}
}

// ID returns the selected element's ID, or "" when nothing is selected
func (s Selection) ID() string {
	switch {
	case s.Vertex != nil:
		return s.Vertex.ID
	case s.Edge != nil:
		return s.Edge.ID
	default:
		return ""
	}
}
