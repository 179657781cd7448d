// Package render converts graph snapshots into the element list, stylesheet
// and layout understood by the browser graph engine, and owns the single
// mounted engine instance.
package render

import (
	"eunify/internal/domain"
	"eunify/internal/style"
)

// Element groups
const (
	GroupNodes = "nodes"
	GroupEdges = "edges"
)

// Element is one entry of the engine's element list
type Element struct {
	Group string         `json:"group"`
	Data  map[string]any `json:"data"`
}

// StyleRule applies declarations to every element matching Selector
type StyleRule struct {
	Selector string         `json:"selector"`
	Style    map[string]any `json:"style"`
}

// Layout is the layout descriptor passed to the engine
type Layout struct {
	Name          string  `json:"name"`
	Directed      bool    `json:"directed"`
	Padding       int     `json:"padding"`
	SpacingFactor float64 `json:"spacingFactor"`
}

// LegendEntry is one row of the page legend
type LegendEntry struct {
	Type  string `json:"type"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

// Spec is everything the engine needs to draw one snapshot
type Spec struct {
	Elements []Element     `json:"elements"`
	Style    []StyleRule   `json:"style"`
	Layout   Layout        `json:"layout"`
	Legend   []LegendEntry `json:"legend"`
}

// Options tunes the layout descriptor
type Options struct {
	Padding       int
	SpacingFactor float64
}

// DefaultOptions returns the standard breadth-first spacing
func DefaultOptions() Options {
	return Options{Padding: 40, SpacingFactor: 1.75}
}

const (
	nodeWidth  = 140
	nodeHeight = 64

	edgeColor      = "#cbd5e1"
	highlightColor = "#f59e0b"
	borderColor    = "#1f2937"
	labelColor     = "#ffffff"
)

// Build converts a snapshot into an engine spec. It is pure: the same
// data and colors always yield the same spec.
func Build(data *domain.GraphData, colors style.Colorer, opts Options) Spec {
	if data == nil {
		data = domain.NewGraphData()
	}
	if opts.Padding <= 0 {
		opts.Padding = DefaultOptions().Padding
	}
	if opts.SpacingFactor <= 0 {
		opts.SpacingFactor = DefaultOptions().SpacingFactor
	}

	elements := make([]Element, 0, len(data.Vertices)+len(data.Edges))
	for _, v := range data.Vertices {
		d := flatten(v.Properties, 4)
		d["id"] = v.ID
		d["label"] = v.Label
		d["type"] = v.Type
		d["color"] = colors.Color(v.Type)
		elements = append(elements, Element{Group: GroupNodes, Data: d})
	}
	for _, e := range data.Edges {
		d := flatten(e.Properties, 5)
		d["id"] = e.ID
		d["label"] = e.Label
		d["type"] = e.Type
		d["source"] = e.Source
		d["target"] = e.Target
		elements = append(elements, Element{Group: GroupEdges, Data: d})
	}

	legend := make([]LegendEntry, 0)
	for _, tc := range data.Stats().VertexTypes {
		legend = append(legend, LegendEntry{Type: tc.Type, Color: colors.Color(tc.Type), Count: tc.Count})
	}

	return Spec{
		Elements: elements,
		Style:    Stylesheet(),
		Layout: Layout{
			Name:          "breadthfirst",
			Directed:      true,
			Padding:       opts.Padding,
			SpacingFactor: opts.SpacingFactor,
		},
		Legend: legend,
	}
}

func flatten(props domain.Properties, reserved int) map[string]any {
	d := make(map[string]any, len(props)+reserved)
	for k, v := range props {
		d[k] = v.Value()
	}
	return d
}

// Stylesheet returns the fixed rules for nodes, edges and their selected
// states. Node fill comes from each element's color field.
func Stylesheet() []StyleRule {
	return []StyleRule{
		{
			Selector: "node",
			Style: map[string]any{
				"shape":            "round-rectangle",
				"label":            "data(label)",
				"background-color": "data(color)",
				"width":            nodeWidth,
				"height":           nodeHeight,
				"border-width":     1,
				"border-color":     borderColor,
				"color":            labelColor,
				"font-size":        11,
				"text-valign":      "center",
				"text-halign":      "center",
				"text-wrap":        "wrap",
				"text-max-width":   nodeWidth,
			},
		},
		{
			Selector: "edge",
			Style: map[string]any{
				"width":              2,
				"line-color":         edgeColor,
				"target-arrow-color": edgeColor,
				"target-arrow-shape": "triangle",
				"curve-style":        "bezier",
				"label":              "data(label)",
				"font-size":          9,
				"text-rotation":      "autorotate",
			},
		},
		{
			Selector: "node:selected",
			Style: map[string]any{
				"border-width": 4,
				"border-color": highlightColor,
			},
		},
		{
			Selector: "edge:selected",
			Style: map[string]any{
				"width":              4,
				"line-color":         highlightColor,
				"target-arrow-color": highlightColor,
			},
		},
	}
}
