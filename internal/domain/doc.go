// Package domain defines the core types of the E-Unify graph pipeline.
//
// The package has no infrastructure dependencies; sources, the session and
// the render adapter all speak in these types.
//
// # Core Types
//
// Vertex and Edge are the graph elements returned by the graph service.
// Each carries a Properties bag whose values are Scalar: a tagged union of
// string, number, boolean and null.
//
// GraphData is one complete snapshot. A snapshot is always replaced as a
// whole when new data arrives.
//
// Selection holds the single selected vertex or edge, never both.
//
// ConnectionStatus is the backend's advisory report on its database link.
//
// # Presets
//
// Preset is a named view of the graph backed by one backend endpoint. The
// catalog is closed; see Presets and PresetByKey.
package domain
