package surface

import (
	"sync"

	"eunify/internal/domain"
	"eunify/internal/render"
)

type instance struct {
	id   string
	hub  *Hub
	spec render.Spec

	mu        sync.Mutex
	handler   func(render.Tap)
	highlight *SelectionRef
	destroyed bool
}

func (i *instance) ID() string { return i.id }

func (i *instance) OnTap(handler func(render.Tap)) {
	i.mu.Lock()
	i.handler = handler
	i.mu.Unlock()
}

func (i *instance) Highlight(sel domain.Selection) error {
	ref := &SelectionRef{Kind: sel.Kind(), ID: sel.ID()}
	i.mu.Lock()
	if i.destroyed {
		i.mu.Unlock()
		return nil
	}
	i.highlight = ref
	i.mu.Unlock()
	i.hub.broadcast(Message{Op: OpHighlight, Instance: i.id, Selection: ref})
	return nil
}

func (i *instance) Camera(cmd render.CameraCommand) error {
	i.mu.Lock()
	dead := i.destroyed
	i.mu.Unlock()
	if dead {
		return render.ErrNotMounted
	}
	i.hub.broadcast(Message{Op: OpCamera, Instance: i.id, Command: string(cmd)})
	return nil
}

func (i *instance) Destroy() error {
	i.mu.Lock()
	if i.destroyed {
		i.mu.Unlock()
		return nil
	}
	i.destroyed = true
	i.handler = nil
	i.mu.Unlock()
	i.hub.release(i)
	return nil
}

func (i *instance) deliver(t render.Tap) {
	i.mu.Lock()
	h := i.handler
	i.mu.Unlock()
	if h != nil {
		h(t)
	}
}

// replay returns the messages a late-joining surface needs
func (i *instance) replay() []Message {
	i.mu.Lock()
	defer i.mu.Unlock()
	msgs := []Message{{Op: OpMount, Instance: i.id, Spec: &i.spec}}
	if i.highlight != nil && i.highlight.Kind != domain.SelectionNone {
		msgs = append(msgs, Message{Op: OpHighlight, Instance: i.id, Selection: i.highlight})
	}
	return msgs
}
