package render

import (
	"context"
	"fmt"
	"sync"

	"eunify/internal/domain"
)

// Headless is an Engine with no display. It keeps the last mounted spec
// for command-line rendering and lets callers inject taps.
type Headless struct {
	mu        sync.Mutex
	seq       int
	current   *HeadlessInstance
	mounts    int
	destroyed int
}

// NewHeadless creates a headless engine
func NewHeadless() *Headless {
	return &Headless{}
}

// Mount implements Engine
func (h *Headless) Mount(ctx context.Context, spec Spec) (Instance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	h.mounts++
	inst := &HeadlessInstance{id: fmt.Sprintf("headless-%d", h.seq), spec: spec, engine: h}
	h.current = inst
	return inst, nil
}

// Current returns the live instance, or nil
func (h *Headless) Current() *HeadlessInstance {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Counts returns how many instances were mounted and destroyed
func (h *Headless) Counts() (mounts, destroyed int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mounts, h.destroyed
}

// HeadlessInstance is one mount on a Headless engine
type HeadlessInstance struct {
	id     string
	spec   Spec
	engine *Headless

	mu        sync.Mutex
	handler   func(Tap)
	destroyed bool
	highlight domain.Selection
	camera    []CameraCommand
}

func (i *HeadlessInstance) ID() string { return i.id }

// Spec returns the mounted spec
func (i *HeadlessInstance) Spec() Spec { return i.spec }

func (i *HeadlessInstance) OnTap(handler func(Tap)) {
	i.mu.Lock()
	i.handler = handler
	i.mu.Unlock()
}

func (i *HeadlessInstance) Highlight(sel domain.Selection) error {
	i.mu.Lock()
	i.highlight = sel
	i.mu.Unlock()
	return nil
}

func (i *HeadlessInstance) Camera(cmd CameraCommand) error {
	i.mu.Lock()
	i.camera = append(i.camera, cmd)
	i.mu.Unlock()
	return nil
}

func (i *HeadlessInstance) Destroy() error {
	i.mu.Lock()
	if i.destroyed {
		i.mu.Unlock()
		return nil
	}
	i.destroyed = true
	i.handler = nil
	i.mu.Unlock()

	i.engine.mu.Lock()
	i.engine.destroyed++
	if i.engine.current == i {
		i.engine.current = nil
	}
	i.engine.mu.Unlock()
	return nil
}

// Emit delivers a tap as if the user clicked. Destroyed instances drop it.
func (i *HeadlessInstance) Emit(t Tap) {
	i.mu.Lock()
	h := i.handler
	i.mu.Unlock()
	if h != nil {
		h(t)
	}
}

// Highlighted returns the last highlighted selection
func (i *HeadlessInstance) Highlighted() domain.Selection {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.highlight
}

// CameraLog returns the camera commands received
func (i *HeadlessInstance) CameraLog() []CameraCommand {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]CameraCommand(nil), i.camera...)
}

// Destroyed reports whether Destroy was called
func (i *HeadlessInstance) Destroyed() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.destroyed
}
