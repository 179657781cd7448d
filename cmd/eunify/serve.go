package main

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"eunify/internal/errors"
	"eunify/internal/handler"
	"eunify/internal/hub"
	"eunify/internal/session"
	"eunify/internal/surface"
	"eunify/internal/watcher"
)

//go:embed web/*
var webFS embed.FS

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the visualization server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	cmd.Flags().String("addr", "", "HTTP listen address")
	cmd.Flags().String("palette", "", "YAML file of type color overrides, reloaded on change")
	_ = a.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = a.v.BindPFlag("style.palette_file", cmd.Flags().Lookup("palette"))
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	log := a.log
	log.Infow("Starting E-Unify server", "source", a.cfg.Source.Kind, "addr", a.cfg.Server.Addr)

	surf := surface.NewHub(log)
	p, err := a.newPipeline(surf, true)
	if err != nil {
		return err
	}
	defer p.Close()

	sse := hub.New(log)
	events := make(chan session.Event, 256)
	p.bus.Subscribe(events)

	poller := session.NewStatusPoller(p.session, a.cfg.Status.PollInterval, log)

	mux := http.NewServeMux()
	handler.NewSessionHandler(p.session, log).Register(mux)
	mux.Handle("GET /events", sse)
	mux.Handle("GET /surface", surf)

	webContent, err := fs.Sub(webFS, "web")
	if err != nil {
		return errors.Wrap(err, "embedded web content")
	}
	mux.Handle("/", http.FileServer(http.FS(webContent)))

	// no write timeout: /events and /surface are long-lived streams
	server := &http.Server{
		Addr: a.cfg.Server.Addr,
		Handler: handler.Chain(mux,
			handler.Recover(log),
			handler.CORS,
			handler.Logger(log),
		),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return sse.Run(gctx) })
	g.Go(func() error { return sse.Forward(gctx, events) })
	g.Go(func() error { return surf.Run(gctx) })
	g.Go(func() error { return poller.Run(gctx) })

	if path := p.palette.Path(); path != "" {
		w := watcher.New(path, func() {
			if err := p.palette.Reload(); err != nil {
				log.Warnw("Palette reload failed", "path", path, "error", err)
				return
			}
			if err := p.session.Restyle(gctx); err != nil {
				log.Warnw("Restyle failed", "error", err)
			}
		}, log)
		g.Go(func() error { return w.Watch(gctx) })
	}

	g.Go(func() error {
		log.Infow("Server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Infow("Shutting down server")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Infow("Server stopped")
	return nil
}
