package render

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"eunify/internal/domain"
	"eunify/internal/style"
)

func newTestAdapter() (*Adapter, *Headless) {
	eng := NewHeadless()
	return NewAdapter(eng, style.DefaultPalette(), DefaultOptions(), zap.NewNop().Sugar()), eng
}

func TestAdapter_Render(t *testing.T) {
	t.Run("destroys previous instance before mounting", func(t *testing.T) {
		a, eng := newTestAdapter()
		ctx := context.Background()

		require.NoError(t, a.Render(ctx, testGraph()))
		first := eng.Current()
		require.NoError(t, a.Render(ctx, testGraph()))

		assert.True(t, first.Destroyed())
		mounts, destroyed := eng.Counts()
		assert.Equal(t, 2, mounts)
		assert.Equal(t, 1, destroyed)
		assert.Equal(t, eng.Current().ID(), a.InstanceID())
	})

	t.Run("render clears selection", func(t *testing.T) {
		a, eng := newTestAdapter()
		require.NoError(t, a.Render(context.Background(), testGraph()))
		eng.Current().Emit(Tap{Target: TapNode, ID: "c1"})
		require.Equal(t, domain.SelectionVertex, a.Selection().Kind())

		require.NoError(t, a.Render(context.Background(), testGraph()))
		assert.Equal(t, domain.SelectionNone, a.Selection().Kind())
	})

	t.Run("mount failure leaves nothing mounted", func(t *testing.T) {
		a := NewAdapter(failingEngine{}, style.DefaultPalette(), DefaultOptions(), zap.NewNop().Sugar())
		err := a.Render(context.Background(), testGraph())
		assert.Error(t, err)
		assert.Equal(t, "", a.InstanceID())
		assert.ErrorIs(t, a.Camera(CameraFit), ErrNotMounted)
		assert.Empty(t, a.Spec().Elements, "spec of the failed snapshot must not be kept")
	})
}

type failingEngine struct{}

func (failingEngine) Mount(context.Context, Spec) (Instance, error) {
	return nil, errors.New("surface unavailable")
}

func TestAdapter_Selection(t *testing.T) {
	a, eng := newTestAdapter()
	require.NoError(t, a.Render(context.Background(), testGraph()))
	inst := eng.Current()

	var notified []domain.Selection
	a.OnSelect(func(s domain.Selection) { notified = append(notified, s) })

	t.Run("node tap selects vertex and clears edge", func(t *testing.T) {
		inst.Emit(Tap{Target: TapEdge, ID: "e1"})
		inst.Emit(Tap{Target: TapNode, ID: "c1"})

		sel := a.Selection()
		require.NotNil(t, sel.Vertex)
		assert.Nil(t, sel.Edge)
		assert.Equal(t, "Case 1", sel.Vertex.Label)
		assert.Equal(t, "c1", inst.Highlighted().ID())
	})

	t.Run("edge tap selects edge and clears vertex", func(t *testing.T) {
		inst.Emit(Tap{Target: TapEdge, ID: "e1"})
		sel := a.Selection()
		require.NotNil(t, sel.Edge)
		assert.Nil(t, sel.Vertex)
	})

	t.Run("background tap clears both", func(t *testing.T) {
		inst.Emit(Tap{Target: TapBackground})
		assert.Equal(t, domain.SelectionNone, a.Selection().Kind())
	})

	t.Run("unknown element is ignored", func(t *testing.T) {
		inst.Emit(Tap{Target: TapNode, ID: "c1"})
		inst.Emit(Tap{Target: TapNode, ID: "ghost"})
		assert.Equal(t, "c1", a.Selection().ID())
	})

	t.Run("every applied tap notifies", func(t *testing.T) {
		assert.Len(t, notified, 5)
	})

	t.Run("api tap reports missing element", func(t *testing.T) {
		err := a.Tap(Tap{Target: TapEdge, ID: "nope"})
		assert.Error(t, err)
		require.NoError(t, a.Tap(Tap{Target: TapEdge, ID: "e1"}))
		assert.Equal(t, domain.SelectionEdge, a.Selection().Kind())
	})
}

func TestAdapter_StaleTap(t *testing.T) {
	a, eng := newTestAdapter()
	require.NoError(t, a.Render(context.Background(), testGraph()))
	old := eng.Current()
	old.mu.Lock()
	staleHandler := old.handler
	old.mu.Unlock()

	require.NoError(t, a.Render(context.Background(), testGraph()))

	staleHandler(Tap{Target: TapNode, ID: "c1"})
	assert.Equal(t, domain.SelectionNone, a.Selection().Kind())

	old.Emit(Tap{Target: TapNode, ID: "c1"})
	assert.Equal(t, domain.SelectionNone, a.Selection().Kind())
}

func TestAdapter_Camera(t *testing.T) {
	a, eng := newTestAdapter()
	require.NoError(t, a.Render(context.Background(), testGraph()))

	require.NoError(t, a.Camera(CameraZoomIn))
	require.NoError(t, a.Camera(CameraFit))
	assert.Equal(t, []CameraCommand{CameraZoomIn, CameraFit}, eng.Current().CameraLog())

	require.NoError(t, a.Close())
	assert.ErrorIs(t, a.Camera(CameraZoomOut), ErrNotMounted)
}
