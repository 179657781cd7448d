package static

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"eunify/internal/domain"
	"eunify/internal/errors"
	"eunify/internal/integrity"
	"eunify/internal/source"
)

func newSource(t *testing.T) *Source {
	t.Helper()
	s, err := New(zap.NewNop().Sugar())
	require.NoError(t, err)
	return s
}

func TestSource_LoadPreset(t *testing.T) {
	s := newSource(t)
	ctx := context.Background()

	t.Run("every preset has data", func(t *testing.T) {
		for _, p := range domain.Presets() {
			data, err := s.LoadPreset(ctx, p)
			require.NoError(t, err, p.Key)
			assert.NotEmpty(t, data.Vertices, p.Key)
		}
	})

	t.Run("all includes a dangling edge", func(t *testing.T) {
		p, _ := domain.PresetByKey("all")
		data, err := s.LoadPreset(ctx, p)
		require.NoError(t, err)
		res := integrity.Filter(data.Vertices, data.Edges)
		require.Len(t, res.Dropped, 1)
		assert.Equal(t, "e-orphan-1", res.Dropped[0].EdgeID)
	})

	t.Run("subset views only carry listed types", func(t *testing.T) {
		p, _ := domain.PresetByKey("officer_workload")
		data, err := s.LoadPreset(ctx, p)
		require.NoError(t, err)
		for _, v := range data.Vertices {
			assert.Contains(t, []string{"officer", "field_office", "case"}, v.Type)
		}
	})

	t.Run("results are copies", func(t *testing.T) {
		p, _ := domain.PresetByKey("all")
		a, _ := s.LoadPreset(ctx, p)
		a.Vertices[0].SetProperty("status", "Tampered")
		b, _ := s.LoadPreset(ctx, p)
		got, _ := b.Vertices[0].GetProperty("status")
		assert.Equal(t, "Open", got.Text())
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, err := s.LoadPreset(ctx, domain.Preset{Key: "bogus"})
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestSource_ExecuteAndStatus(t *testing.T) {
	s := newSource(t)
	_, err := s.Execute(context.Background(), "g.V()")
	assert.True(t, errors.Is(err, source.ErrLiveConnectionRequired))

	st, err := s.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, st.Connected)
}
