// Package static serves built-in demo data. It needs no backend and
// reports itself as disconnected.
package static

import (
	"bytes"
	"context"
	_ "embed"

	"go.uber.org/zap"

	"eunify/internal/codec"
	"eunify/internal/domain"
	"eunify/internal/errors"
	"eunify/internal/source"
)

//go:embed fixtures/graph.yaml
var fixture []byte

// Source serves fixture data
type Source struct {
	graph  *domain.GraphData
	logger *zap.SugaredLogger
}

// New parses the embedded fixture
func New(logger *zap.SugaredLogger) (*Source, error) {
	g, err := codec.NewYAMLCodec().Parse(bytes.NewReader(fixture))
	if err != nil {
		return nil, errors.Wrap(err, "load static fixture")
	}
	return &Source{graph: g, logger: logger.Named("source.static")}, nil
}

// LoadPreset returns the fixture subset for the preset
func (s *Source) LoadPreset(ctx context.Context, preset domain.Preset) (*domain.GraphData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := domain.PresetByKey(preset.Key); !ok {
		return nil, errors.NewNotFound("no static data for preset %q", preset.Key)
	}
	if len(preset.VertexTypes) == 0 {
		return s.graph.Clone(), nil
	}

	// edges are kept when either end is in view, so views carry edges
	// whose far end was filtered out
	include := make(map[string]bool, len(preset.VertexTypes))
	for _, t := range preset.VertexTypes {
		include[t] = true
	}

	out := domain.NewGraphData()
	ids := make(map[string]bool)
	for _, v := range s.graph.Vertices {
		if include[v.Type] {
			out.AddVertex(v.Clone())
			ids[v.ID] = true
		}
	}
	for _, e := range s.graph.Edges {
		if ids[e.Source] || ids[e.Target] {
			out.AddEdge(e.Clone())
		}
	}
	s.logger.Debugw("Served static preset", "preset", preset.Key, "vertices", len(out.Vertices), "edges", len(out.Edges))
	return out, nil
}

// Execute is not supported without a live backend
func (s *Source) Execute(ctx context.Context, query string) (any, error) {
	return nil, errors.WithHint(source.ErrLiveConnectionRequired,
		"Configure source.kind as rest or bolt to run traversals")
}

// Status always reports disconnected
func (s *Source) Status(ctx context.Context) (domain.ConnectionStatus, error) {
	return domain.ConnectionStatus{Connected: false}, nil
}

func (s *Source) Close() error { return nil }
