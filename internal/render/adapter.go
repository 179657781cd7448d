package render

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"eunify/internal/domain"
	"eunify/internal/errors"
	"eunify/internal/style"
)

// ErrNotMounted is returned by operations that need a live instance
var ErrNotMounted = errors.New("no graph is mounted")

// Adapter owns exactly one engine instance and the current selection.
// Every Render destroys the previous instance before mounting the next.
type Adapter struct {
	engine Engine
	colors style.Colorer
	opts   Options
	logger *zap.SugaredLogger

	mu        sync.Mutex
	instance  Instance
	data      *domain.GraphData
	spec      Spec
	selection domain.Selection

	onSelect func(domain.Selection)
}

// NewAdapter creates an adapter drawing on engine
func NewAdapter(engine Engine, colors style.Colorer, opts Options, logger *zap.SugaredLogger) *Adapter {
	return &Adapter{
		engine: engine,
		colors: colors,
		opts:   opts,
		logger: logger.Named("render"),
		data:   domain.NewGraphData(),
		spec:   Build(nil, colors, opts),
	}
}

// OnSelect sets the callback invoked after every selection change
func (a *Adapter) OnSelect(fn func(domain.Selection)) {
	a.mu.Lock()
	a.onSelect = fn
	a.mu.Unlock()
}

// Render replaces the displayed snapshot. The previous instance is
// destroyed first, so its tap handlers can no longer fire, and the
// selection is cleared.
func (a *Adapter) Render(ctx context.Context, data *domain.GraphData) error {
	if data == nil {
		data = domain.NewGraphData()
	}
	spec := Build(data, a.colors, a.opts)

	a.mu.Lock()
	a.teardownLocked()

	inst, err := a.engine.Mount(ctx, spec)
	if err != nil {
		// data and spec keep the last snapshot that mounted
		a.selection = domain.NoSelection()
		cb := a.onSelect
		a.mu.Unlock()
		a.notify(cb, domain.NoSelection())
		return errors.Wrap(err, "mount graph")
	}

	id := inst.ID()
	inst.OnTap(func(t Tap) { a.handleTap(id, t) })

	a.instance = inst
	a.data = data
	a.spec = spec
	a.selection = domain.NoSelection()
	cb := a.onSelect
	a.mu.Unlock()

	a.logger.Debugw("Mounted graph",
		"instance", id,
		"vertices", len(data.Vertices),
		"edges", len(data.Edges))
	a.notify(cb, domain.NoSelection())
	return nil
}

// Close destroys the current instance
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.teardownLocked()
	return nil
}

func (a *Adapter) teardownLocked() {
	if a.instance == nil {
		return
	}
	if err := a.instance.Destroy(); err != nil {
		a.logger.Warnw("Failed to destroy engine instance", "instance", a.instance.ID(), "error", err)
	}
	a.instance = nil
}

// handleTap applies a tap from the instance identified by instanceID.
// Taps from instances that have since been replaced are ignored.
func (a *Adapter) handleTap(instanceID string, t Tap) {
	a.mu.Lock()
	if a.instance == nil || a.instance.ID() != instanceID {
		a.mu.Unlock()
		a.logger.Debugw("Ignoring tap from stale instance", "instance", instanceID)
		return
	}
	sel, ok := a.resolveLocked(t)
	if !ok {
		a.mu.Unlock()
		a.logger.Debugw("Ignoring tap on unknown element", "target", t.Target, "id", t.ID)
		return
	}
	cb := a.applyLocked(sel)
	a.mu.Unlock()
	a.notify(cb, sel)
}

// Tap applies a tap to the current instance as if the user made it.
func (a *Adapter) Tap(t Tap) error {
	a.mu.Lock()
	sel, ok := a.resolveLocked(t)
	if !ok {
		a.mu.Unlock()
		return errors.NewNotFound("%s %q", t.Target, t.ID)
	}
	cb := a.applyLocked(sel)
	a.mu.Unlock()
	a.notify(cb, sel)
	return nil
}

func (a *Adapter) resolveLocked(t Tap) (domain.Selection, bool) {
	switch t.Target {
	case TapNode:
		if v, ok := a.data.Vertex(t.ID); ok {
			return domain.SelectVertex(*v), true
		}
	case TapEdge:
		if e, ok := a.data.Edge(t.ID); ok {
			return domain.SelectEdge(*e), true
		}
	case TapBackground:
		return domain.NoSelection(), true
	}
	return domain.Selection{}, false
}

func (a *Adapter) applyLocked(sel domain.Selection) func(domain.Selection) {
	a.selection = sel
	if a.instance != nil {
		if err := a.instance.Highlight(sel); err != nil {
			a.logger.Warnw("Failed to highlight selection", "selection", sel.ID(), "error", err)
		}
	}
	return a.onSelect
}

func (a *Adapter) notify(cb func(domain.Selection), sel domain.Selection) {
	if cb != nil {
		cb(sel)
	}
}

// Camera forwards a viewport command to the mounted instance
func (a *Adapter) Camera(cmd CameraCommand) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.instance == nil {
		return ErrNotMounted
	}
	return a.instance.Camera(cmd)
}

// Selection returns the current selection
func (a *Adapter) Selection() domain.Selection {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.selection
}

// Spec returns the spec of the current snapshot
func (a *Adapter) Spec() Spec {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.spec
}

// InstanceID returns the mounted instance's ID, or "" when none is mounted
func (a *Adapter) InstanceID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.instance == nil {
		return ""
	}
	return a.instance.ID()
}
