package render

import (
	"context"
	"strings"

	"eunify/internal/domain"
	"eunify/internal/errors"
)

// TapTarget is what a user tapped on the canvas
type TapTarget string

const (
	TapNode       TapTarget = "node"
	TapEdge       TapTarget = "edge"
	TapBackground TapTarget = "background"
)

// Tap is a user click or touch reported by an engine instance
type Tap struct {
	Target TapTarget `json:"target"`
	ID     string    `json:"id,omitempty"`
}

// CameraCommand is a viewport operation passed straight to the engine
type CameraCommand string

const (
	CameraZoomIn  CameraCommand = "zoom_in"
	CameraZoomOut CameraCommand = "zoom_out"
	CameraFit     CameraCommand = "fit"
)

// ParseCamera validates a camera command name
func ParseCamera(s string) (CameraCommand, error) {
	switch c := CameraCommand(strings.ToLower(strings.TrimSpace(s))); c {
	case CameraZoomIn, CameraZoomOut, CameraFit:
		return c, nil
	default:
		return "", errors.NewInvalidRequest("unknown camera command %q", s)
	}
}

// Engine mounts specs onto a display surface
type Engine interface {
	Mount(ctx context.Context, spec Spec) (Instance, error)
}

// Instance is one mounted engine. After Destroy it must not deliver taps.
type Instance interface {
	ID() string
	OnTap(handler func(Tap))
	Highlight(sel domain.Selection) error
	Camera(cmd CameraCommand) error
	Destroy() error
}
