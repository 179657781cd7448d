package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eunify/internal/domain"
	"eunify/internal/style"
)

func testGraph() *domain.GraphData {
	return &domain.GraphData{
		Vertices: []domain.Vertex{
			{ID: "r1", Label: "Rule 7", Type: "policy_rule", Properties: domain.Properties{
				"severity": domain.String("high"),
				"id":       domain.String("shadowed"),
			}},
			{ID: "c1", Label: "Case 1", Type: "case"},
			{ID: "c2", Label: "Case 2", Type: "case"},
			{ID: "x1", Label: "Thing", Type: "mystery"},
		},
		Edges: []domain.Edge{
			{ID: "e1", Source: "c1", Target: "r1", Label: "evaluated_by", Type: "evaluated_by",
				Properties: domain.Properties{"weight": domain.Number(2)}},
		},
	}
}

func TestBuild(t *testing.T) {
	spec := Build(testGraph(), style.DefaultPalette(), DefaultOptions())

	t.Run("one element per vertex and edge", func(t *testing.T) {
		require.Len(t, spec.Elements, 5)
		assert.Equal(t, GroupNodes, spec.Elements[0].Group)
		assert.Equal(t, GroupEdges, spec.Elements[4].Group)
	})

	t.Run("node data carries color and flattened properties", func(t *testing.T) {
		d := spec.Elements[0].Data
		assert.Equal(t, "r1", d["id"], "reserved keys win over properties")
		assert.Equal(t, "Rule 7", d["label"])
		assert.Equal(t, "policy_rule", d["type"])
		assert.Equal(t, "#6366f1", d["color"])
		assert.Equal(t, "high", d["severity"])
	})

	t.Run("unknown type gets default color", func(t *testing.T) {
		assert.Equal(t, style.DefaultColor, spec.Elements[3].Data["color"])
	})

	t.Run("edge data carries endpoints", func(t *testing.T) {
		d := spec.Elements[4].Data
		assert.Equal(t, "c1", d["source"])
		assert.Equal(t, "r1", d["target"])
		assert.Equal(t, 2.0, d["weight"])
	})

	t.Run("breadth-first directed layout", func(t *testing.T) {
		assert.Equal(t, Layout{Name: "breadthfirst", Directed: true, Padding: 40, SpacingFactor: 1.75}, spec.Layout)
	})

	t.Run("stylesheet covers selected states", func(t *testing.T) {
		var selectors []string
		for _, r := range spec.Style {
			selectors = append(selectors, r.Selector)
		}
		assert.Equal(t, []string{"node", "edge", "node:selected", "edge:selected"}, selectors)
		assert.Equal(t, "data(color)", spec.Style[0].Style["background-color"])
		assert.Equal(t, "round-rectangle", spec.Style[0].Style["shape"])
		assert.Equal(t, "triangle", spec.Style[1].Style["target-arrow-shape"])
		assert.Equal(t, "autorotate", spec.Style[1].Style["text-rotation"])
	})

	t.Run("legend sorted by count", func(t *testing.T) {
		require.Len(t, spec.Legend, 3)
		assert.Equal(t, LegendEntry{Type: "case", Color: "#3b82f6", Count: 2}, spec.Legend[0])
	})

	t.Run("nil data and zero options", func(t *testing.T) {
		s := Build(nil, style.DefaultPalette(), Options{})
		assert.Empty(t, s.Elements)
		assert.Equal(t, 40, s.Layout.Padding)
	})
}

func TestParseCamera(t *testing.T) {
	for _, in := range []string{"zoom_in", "ZOOM_OUT", " fit "} {
		_, err := ParseCamera(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseCamera("spin")
	assert.Error(t, err)
}
