package style

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"eunify/internal/errors"
)

// Overrides is the on-disk palette extension
//
//	default: "#9ca3af"
//	types:
//	  policy_rule: "#4f46e5"
type Overrides struct {
	Default string            `yaml:"default"`
	Types   map[string]string `yaml:"types"`
}

// LoadOverrides reads an overrides file
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read palette %s", path)
	}
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, errors.Wrapf(err, "parse palette %s", path)
	}
	return &o, nil
}

// Apply extends base with the overrides
func (o *Overrides) Apply(base Palette) Palette {
	if o == nil {
		return base
	}
	p := base.With(o.Types)
	if o.Default != "" {
		p = p.WithDefault(o.Default)
	}
	return p
}

// Live is a palette that can be swapped while readers use it
type Live struct {
	base    Palette
	path    string
	current atomic.Pointer[Palette]
	logger  *zap.SugaredLogger
}

// NewLive creates a live palette over base, optionally backed by an
// overrides file. A missing or broken file leaves base in effect.
func NewLive(base Palette, path string, logger *zap.SugaredLogger) *Live {
	l := &Live{
		base:   base,
		path:   path,
		logger: logger.Named("style"),
	}
	l.current.Store(&base)
	if path != "" {
		if err := l.Reload(); err != nil {
			l.logger.Warnw("Palette overrides not applied", "path", path, "error", err)
		}
	}
	return l
}

// Color implements Colorer against the current palette
func (l *Live) Color(typeTag string) string {
	return l.Palette().Color(typeTag)
}

// Palette returns the palette currently in effect
func (l *Live) Palette() Palette {
	return *l.current.Load()
}

// Path returns the overrides file path, if any
func (l *Live) Path() string {
	return l.path
}

// Reload re-reads the overrides file. On error the current palette stays.
func (l *Live) Reload() error {
	o, err := LoadOverrides(l.path)
	if err != nil {
		return err
	}
	p := o.Apply(l.base)
	l.current.Store(&p)
	l.logger.Infow("Palette reloaded", "path", l.path, "types", len(p.table))
	return nil
}
