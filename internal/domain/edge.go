package domain

import (
	"crypto/sha256"
	"fmt"
)

// Edge is a directed relationship between two vertices
type Edge struct {
	ID         string     `json:"id" yaml:"id"`
	Source     string     `json:"source" yaml:"source"`
	Target     string     `json:"target" yaml:"target"`
	Label      string     `json:"label" yaml:"label"`
	Type       string     `json:"type" yaml:"type"`
	Properties Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// NewEdge creates an edge with a generated ID
func NewEdge(source, target, edgeType string) *Edge {
	edge := &Edge{
		Source:     source,
		Target:     target,
		Label:      edgeType,
		Type:       edgeType,
		Properties: make(Properties),
	}
	edge.ID = edge.GenerateID()
	return edge
}

// GenerateID derives a deterministic ID from the endpoints and type.
// Edges are directed, so reversed endpoints yield a different ID.
func (e *Edge) GenerateID() string {
	key := fmt.Sprintf("%s->%s:%s", e.Source, e.Target, e.Type)
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("e%x", hash[:8])
}

// SetProperty sets a property value
func (e *Edge) SetProperty(key string, value any) {
	if e.Properties == nil {
		e.Properties = make(Properties)
	}
	e.Properties[key] = ScalarOf(value)
}

// GetProperty gets a property value
func (e *Edge) GetProperty(key string) (Scalar, bool) {
	if e.Properties == nil {
		return Null(), false
	}
	val, ok := e.Properties[key]
	return val, ok
}

// Clone returns a deep copy
func (e Edge) Clone() Edge {
	e.Properties = e.Properties.Clone()
	return e
}
