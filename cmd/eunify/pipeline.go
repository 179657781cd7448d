package main

import (
	"eunify/internal/config"
	"eunify/internal/errors"
	"eunify/internal/render"
	"eunify/internal/repository/sqlite"
	"eunify/internal/session"
	"eunify/internal/source"
	"eunify/internal/source/bolt"
	"eunify/internal/source/rest"
	"eunify/internal/source/static"
	"eunify/internal/style"
)

// pipeline is one fully wired session
type pipeline struct {
	source  source.Source
	palette *style.Live
	adapter *render.Adapter
	bus     *session.EventBus
	session *session.Session
	history *sqlite.Repository
}

// newSource builds the configured graph source
func (a *app) newSource() (source.Source, error) {
	switch a.cfg.Source.Kind {
	case config.SourceREST:
		c := a.cfg.Source.REST
		return rest.New(rest.Config{
			BaseURL:           c.BaseURL,
			Timeout:           c.Timeout,
			RequestsPerSecond: c.RequestsPerSecond,
			Burst:             c.Burst,
		}, a.log)
	case config.SourceBolt:
		c := a.cfg.Source.Bolt
		cfg := bolt.Config{
			URI:      c.URI,
			Username: c.Username,
			Password: c.Password,
			Database: c.Database,
			Limit:    c.Limit,
		}
		exec, err := bolt.NewExecutor(cfg)
		if err != nil {
			return nil, err
		}
		return bolt.New(exec, cfg, a.log), nil
	case config.SourceStatic:
		return static.New(a.log)
	default:
		return nil, errors.NewInvalidRequest("unknown source kind %q", a.cfg.Source.Kind)
	}
}

// newPipeline wires source, palette, adapter and session onto engine.
// withHistory opens the query history database when one is configured.
func (a *app) newPipeline(engine render.Engine, withHistory bool) (*pipeline, error) {
	src, err := a.newSource()
	if err != nil {
		return nil, errors.Wrap(err, "create source")
	}

	p := &pipeline{
		source:  src,
		palette: style.NewLive(style.DefaultPalette(), a.cfg.Style.PaletteFile, a.log),
		bus:     session.NewEventBus(),
	}
	p.adapter = render.NewAdapter(engine, p.palette, render.Options{
		Padding:       a.cfg.Render.Padding,
		SpacingFactor: a.cfg.Render.SpacingFactor,
	}, a.log)
	p.session = session.New(src, p.adapter, p.bus, a.log)

	if withHistory && a.cfg.History.Path != "" {
		repo, err := sqlite.New(a.cfg.History.Path)
		if err != nil {
			src.Close()
			return nil, errors.Wrap(err, "open query history")
		}
		p.history = repo
		p.session.SetHistory(repo)
	}
	return p, nil
}

// Close releases the source, the history database and the mounted instance
func (p *pipeline) Close() error {
	var errs []error
	if err := p.adapter.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := p.source.Close(); err != nil {
		errs = append(errs, err)
	}
	if p.history != nil {
		if err := p.history.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
