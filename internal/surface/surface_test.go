package surface

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"eunify/internal/domain"
	"eunify/internal/render"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var m Message
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.ClientCount() == n }, 2*time.Second, 5*time.Millisecond)
}

func TestHub(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(zap.NewNop().Sugar())
	srv := httptest.NewServer(hub)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { _ = hub.Run(ctx); close(done) }()

	defer func() {
		cancel()
		<-done
		srv.Close()
	}()

	conn := dial(t, srv)
	defer conn.Close()
	waitClients(t, hub, 1)

	spec := render.Spec{Elements: []render.Element{{Group: render.GroupNodes, Data: map[string]any{"id": "c1"}}}}
	inst, err := hub.Mount(context.Background(), spec)
	require.NoError(t, err)

	t.Run("mount is broadcast", func(t *testing.T) {
		m := read(t, conn)
		assert.Equal(t, OpMount, m.Op)
		assert.Equal(t, inst.ID(), m.Instance)
		require.NotNil(t, m.Spec)
		assert.Len(t, m.Spec.Elements, 1)
	})

	var mu sync.Mutex
	var taps []render.Tap
	inst.OnTap(func(tp render.Tap) {
		mu.Lock()
		taps = append(taps, tp)
		mu.Unlock()
	})
	tapCount := func() int {
		mu.Lock()
		defer mu.Unlock()
		return len(taps)
	}

	t.Run("taps reach the current instance", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(Message{Op: OpTap, Instance: inst.ID(), Target: render.TapNode, ID: "c1"}))
		assert.Eventually(t, func() bool { return tapCount() == 1 }, 2*time.Second, 5*time.Millisecond)
	})

	t.Run("highlight and camera are broadcast", func(t *testing.T) {
		require.NoError(t, inst.Highlight(domain.SelectVertex(domain.Vertex{ID: "c1"})))
		m := read(t, conn)
		assert.Equal(t, OpHighlight, m.Op)
		assert.Equal(t, "c1", m.Selection.ID)

		require.NoError(t, inst.Camera(render.CameraFit))
		m = read(t, conn)
		assert.Equal(t, OpCamera, m.Op)
		assert.Equal(t, "fit", m.Command)
	})

	t.Run("late joiner receives current mount and highlight", func(t *testing.T) {
		late := dial(t, srv)
		defer late.Close()
		m := read(t, late)
		assert.Equal(t, OpMount, m.Op)
		assert.Equal(t, inst.ID(), m.Instance)
		m = read(t, late)
		assert.Equal(t, OpHighlight, m.Op)
	})

	t.Run("destroy stops tap delivery", func(t *testing.T) {
		require.NoError(t, inst.Destroy())
		m := read(t, conn)
		assert.Equal(t, OpDestroy, m.Op)

		next, err := hub.Mount(context.Background(), render.Spec{})
		require.NoError(t, err)
		_ = read(t, conn)

		require.NoError(t, conn.WriteJSON(Message{Op: OpTap, Instance: inst.ID(), Target: render.TapNode, ID: "c1"}))
		require.NoError(t, conn.WriteJSON(Message{Op: OpTap, Instance: next.ID(), Target: render.TapBackground}))
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, 1, tapCount())
		assert.ErrorIs(t, inst.Camera(render.CameraFit), render.ErrNotMounted)
	})
}
