package domain

// Vertex is a graph node as returned by the graph service
type Vertex struct {
	ID         string     `json:"id" yaml:"id"`
	Label      string     `json:"label" yaml:"label"`
	Type       string     `json:"type" yaml:"type"`
	Properties Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// NewVertex creates a vertex with an empty property bag
func NewVertex(id, label, vertexType string) *Vertex {
	return &Vertex{
		ID:         id,
		Label:      label,
		Type:       vertexType,
		Properties: make(Properties),
	}
}

// SetProperty sets a property value
func (v *Vertex) SetProperty(key string, value any) {
	if v.Properties == nil {
		v.Properties = make(Properties)
	}
	v.Properties[key] = ScalarOf(value)
}

// GetProperty gets a property value
func (v *Vertex) GetProperty(key string) (Scalar, bool) {
	if v.Properties == nil {
		return Null(), false
	}
	val, ok := v.Properties[key]
	return val, ok
}

// Clone returns a deep copy
func (v Vertex) Clone() Vertex {
	v.Properties = v.Properties.Clone()
	return v
}
