// Package session holds the state of one visualization page and runs the
// pipeline that changes it: fetch, filter, style, render.
//
// Every trigger that replaces the graph is stamped with a generation
// number. A response is applied only if no newer trigger has been issued
// since, so the graph always reflects the user's latest request.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"eunify/internal/console"
	"eunify/internal/domain"
	"eunify/internal/errors"
	"eunify/internal/failure"
	"eunify/internal/integrity"
	"eunify/internal/render"
	"eunify/internal/reshape"
	"eunify/internal/source"
)

// ErrSuperseded is returned when a newer trigger replaced the graph first
var ErrSuperseded = errors.New("superseded by a newer request")

// Origin identifiers for the displayed graph
const (
	OriginNone  = ""
	OriginQuery = "query"
)

// HistoryStore persists console executions
type HistoryStore interface {
	Record(ctx context.Context, rec *domain.QueryRecord) error
	Recent(ctx context.Context, limit int) ([]domain.QueryRecord, error)
}

// State is a consistent copy of the page state
type State struct {
	Graph      *domain.GraphData       `json:"graph"`
	Stats      domain.GraphStats       `json:"stats"`
	Origin     string                  `json:"origin"`
	Generation uint64                  `json:"generation"`
	Selection  domain.Selection        `json:"selection"`
	Loading    bool                    `json:"loading"`
	Banner     *failure.Banner         `json:"banner"`
	Status     domain.ConnectionStatus `json:"status"`
	Console    console.State           `json:"console"`
	Dropped    []integrity.Drop        `json:"dropped,omitempty"`
}

// Session orchestrates one page
type Session struct {
	source  source.Source
	filter  *integrity.Filterer
	adapter *render.Adapter
	bus     *EventBus
	history HistoryStore
	logger  *zap.SugaredLogger

	// serializes graph replacement so renders happen in generation order
	applyMu sync.Mutex

	mu       sync.Mutex
	graph    *domain.GraphData
	dropped  []integrity.Drop
	origin   string
	issued   uint64
	applied  uint64
	inFlight int
	banner   *failure.Banner
	status   domain.ConnectionStatus
	console  console.State
}

// New creates a session. history may be nil.
func New(src source.Source, adapter *render.Adapter, bus *EventBus, logger *zap.SugaredLogger) *Session {
	s := &Session{
		source:  src,
		filter:  integrity.NewFilterer(logger),
		adapter: adapter,
		bus:     bus,
		logger:  logger.Named("session"),
		graph:   domain.NewGraphData(),
	}
	adapter.OnSelect(s.publishSelection)
	return s
}

// SetHistory enables query history recording
func (s *Session) SetHistory(h HistoryStore) {
	s.history = h
}

// Presets returns the preset catalog
func (s *Session) Presets() []domain.Preset {
	return domain.Presets()
}

// LoadPreset fetches a preset and, unless superseded, replaces the graph
func (s *Session) LoadPreset(ctx context.Context, key string) error {
	preset, ok := domain.PresetByKey(key)
	if !ok {
		return errors.NewNotFound("preset %q", key)
	}

	gen := s.begin()
	defer s.end()

	s.logger.Infow("Loading preset", "preset", key, "generation", gen)
	data, err := s.source.LoadPreset(ctx, preset)
	if err != nil {
		f := failure.New(failure.CategoryFetch, err, preset.FailureMessage()).
			WithOperation("load_preset").
			WithContext("preset", key)
		return s.fail(gen, f)
	}
	return s.apply(ctx, gen, data, key)
}

// ExecuteQuery runs a raw traversal and stores the result in the console.
// The graph is not changed.
func (s *Session) ExecuteQuery(ctx context.Context, query string) (any, error) {
	if err := source.ValidateQuery(query); err != nil {
		return nil, err
	}

	s.enter()
	defer s.end()

	result, err := s.source.Execute(ctx, query)
	if err != nil {
		s.record(ctx, query, false, domain.OutcomeQueryFailed, 0, err)
		f := queryFailure(err, "execute", query)
		return nil, s.raise(f)
	}

	s.mu.Lock()
	s.console.LastQuery = query
	s.console.LastResult = result
	cs := s.console
	s.mu.Unlock()

	s.clearBanner()
	s.record(ctx, query, false, domain.OutcomeSuccess, 0, nil)
	s.bus.Publish(Event{Type: EventQueryExecuted, Payload: map[string]interface{}{"query": query, "visualize": false}})
	s.bus.Publish(Event{Type: EventConsoleChanged, Payload: cs})
	return result, nil
}

// ExecuteAndVisualize runs a traversal, reshapes the rows into vertices and
// replaces the graph. On success the console is closed.
func (s *Session) ExecuteAndVisualize(ctx context.Context, query string) (*reshape.Report, error) {
	if err := source.ValidateQuery(query); err != nil {
		return nil, err
	}

	gen := s.begin()
	defer s.end()

	result, err := s.source.Execute(ctx, query)
	if err != nil {
		s.record(ctx, query, true, domain.OutcomeQueryFailed, 0, err)
		return nil, s.fail(gen, queryFailure(err, "execute_visualize", query))
	}

	s.mu.Lock()
	s.console.LastQuery = query
	s.console.LastResult = result
	s.mu.Unlock()

	data, rep, err := reshape.Reshape(result)
	if err != nil {
		s.record(ctx, query, true, domain.OutcomeNotShowable, 0, err)
		f := failure.New(failure.CategoryReshape, err, "").
			WithOperation("execute_visualize").
			WithContext("elements", rep.Elements)
		return &rep, s.fail(gen, f)
	}
	if len(rep.DuplicateIDs) > 0 {
		s.logger.Warnw("Query result has duplicate vertex ids", "ids", rep.DuplicateIDs)
	}

	if err := s.apply(ctx, gen, data, OriginQuery); err != nil {
		return &rep, err
	}
	s.record(ctx, query, true, domain.OutcomeSuccess, rep.Extracted, nil)

	s.mu.Lock()
	s.console.Open = false
	cs := s.console
	s.mu.Unlock()
	s.bus.Publish(Event{Type: EventQueryExecuted, Payload: map[string]interface{}{"query": query, "visualize": true}})
	s.bus.Publish(Event{Type: EventConsoleChanged, Payload: cs})
	return &rep, nil
}

// RefreshStatus asks the source for its connection status. Failures are
// reported as disconnected and never raise the banner.
func (s *Session) RefreshStatus(ctx context.Context) domain.ConnectionStatus {
	st, err := s.source.Status(ctx)
	if err != nil {
		s.logger.Debugw("Status check failed", "error", err)
		s.mu.Lock()
		st = domain.ConnectionStatus{Connected: false, GremlinURL: s.status.GremlinURL}
		s.mu.Unlock()
	}

	s.mu.Lock()
	changed := st != s.status
	s.status = st
	s.mu.Unlock()

	if changed {
		s.bus.Publish(Event{Type: EventStatusUpdated, Payload: st})
	}
	return st
}

// DismissBanner clears the error banner
func (s *Session) DismissBanner() {
	s.clearBanner()
}

// SetConsoleOpen opens or closes the query console
func (s *Session) SetConsoleOpen(open bool) {
	s.mu.Lock()
	changed := s.console.Open != open
	s.console.Open = open
	cs := s.console
	s.mu.Unlock()
	if changed {
		s.bus.Publish(Event{Type: EventConsoleChanged, Payload: cs})
	}
}

// SelectVertex selects a vertex by id, as a node tap would
func (s *Session) SelectVertex(id string) error {
	return s.adapter.Tap(render.Tap{Target: render.TapNode, ID: id})
}

// SelectEdge selects an edge by id, as an edge tap would
func (s *Session) SelectEdge(id string) error {
	return s.adapter.Tap(render.Tap{Target: render.TapEdge, ID: id})
}

// ClearSelection clears the selection, as a background tap would
func (s *Session) ClearSelection() error {
	return s.adapter.Tap(render.Tap{Target: render.TapBackground})
}

// Camera forwards a viewport command
func (s *Session) Camera(cmd render.CameraCommand) error {
	return s.adapter.Camera(cmd)
}

// Snapshot returns a copy of the page state
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	var banner *failure.Banner
	if s.banner != nil {
		b := *s.banner
		banner = &b
	}
	return State{
		Graph:      s.graph.Clone(),
		Stats:      s.graph.Stats(),
		Origin:     s.origin,
		Generation: s.applied,
		Selection:  s.adapter.Selection(),
		Loading:    s.inFlight > 0,
		Banner:     banner,
		Status:     s.status,
		Console:    s.console,
		Dropped:    append([]integrity.Drop(nil), s.dropped...),
	}
}

// Graph returns a copy of the displayed graph
func (s *Session) Graph() *domain.GraphData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Clone()
}

// RenderSpec returns the spec currently mounted
func (s *Session) RenderSpec() render.Spec {
	return s.adapter.Spec()
}

// History returns recent console executions, newest first
func (s *Session) History(ctx context.Context, limit int) ([]domain.QueryRecord, error) {
	if s.history == nil {
		return []domain.QueryRecord{}, nil
	}
	return s.history.Recent(ctx, limit)
}

// Loading reports whether any trigger is in flight
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight > 0
}

// begin issues a new generation and marks a call in flight
func (s *Session) begin() uint64 {
	s.mu.Lock()
	s.issued++
	gen := s.issued
	s.mu.Unlock()
	s.enter()
	return gen
}

func (s *Session) enter() {
	s.mu.Lock()
	s.inFlight++
	first := s.inFlight == 1
	s.mu.Unlock()
	if first {
		s.bus.Publish(Event{Type: EventLoadingChanged, Payload: map[string]bool{"loading": true}})
	}
}

func (s *Session) end() {
	s.mu.Lock()
	s.inFlight--
	last := s.inFlight == 0
	s.mu.Unlock()
	if last {
		s.bus.Publish(Event{Type: EventLoadingChanged, Payload: map[string]bool{"loading": false}})
	}
}

func (s *Session) stale(gen uint64) bool {
	return gen < s.issued
}

// apply filters data and replaces the graph unless gen is stale
func (s *Session) apply(ctx context.Context, gen uint64, data *domain.GraphData, origin string) error {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	s.mu.Lock()
	if s.stale(gen) {
		latest := s.issued
		s.mu.Unlock()
		s.logger.Infow("Discarding stale response", "origin", origin, "generation", gen, "latest", latest)
		return ErrSuperseded
	}
	s.mu.Unlock()

	filtered, dropped := s.filter.Apply(data)

	// the new instance must mount even if the caller has gone away
	if err := s.adapter.Render(context.WithoutCancel(ctx), filtered); err != nil {
		f := failure.New(failure.CategoryInternal, err, "Failed to render graph").WithOperation("render")
		s.setBanner(f)
		return f
	}

	s.mu.Lock()
	s.graph = filtered
	s.dropped = dropped
	s.origin = origin
	s.applied = gen
	s.mu.Unlock()

	s.clearBanner()
	s.bus.Publish(Event{Type: EventGraphReplaced, Payload: map[string]interface{}{
		"origin":     origin,
		"generation": gen,
		"stats":      filtered.Stats(),
		"dropped":    len(dropped),
	}})
	s.logger.Infow("Graph replaced",
		"origin", origin,
		"generation", gen,
		"vertices", len(filtered.Vertices),
		"edges", len(filtered.Edges),
		"dropped_edges", len(dropped))
	return nil
}

// fail raises the banner for f unless gen is stale
func (s *Session) fail(gen uint64, f *failure.Failure) error {
	s.mu.Lock()
	stale := s.stale(gen)
	s.mu.Unlock()
	if stale {
		s.logger.Infow("Discarding stale failure", append(f.ToLogFields(), "generation", gen)...)
		return ErrSuperseded
	}
	return s.raise(f)
}

// raise logs f and shows it in the banner
func (s *Session) raise(f *failure.Failure) error {
	s.logger.Errorw("Pipeline failure", f.ToLogFields()...)
	s.setBanner(f)
	return f
}

// queryFailure prefers the backend's own explanation as the banner text
func queryFailure(err error, op, query string) *failure.Failure {
	return failure.New(failure.CategoryQuery, err, errors.FlattenDetails(err)).
		WithOperation(op).
		WithContext("query", query)
}

func (s *Session) setBanner(f *failure.Failure) {
	b := f.ToBanner()
	s.mu.Lock()
	s.banner = &b
	s.mu.Unlock()
	s.bus.Publish(Event{Type: EventBannerSet, Payload: b})
}

func (s *Session) clearBanner() {
	s.mu.Lock()
	had := s.banner != nil
	s.banner = nil
	s.mu.Unlock()
	if had {
		s.bus.Publish(Event{Type: EventBannerCleared})
	}
}

func (s *Session) publishSelection(sel domain.Selection) {
	switch sel.Kind() {
	case domain.SelectionVertex:
		s.bus.Publish(Event{Type: EventNodeSelected, Payload: sel.Vertex})
	case domain.SelectionEdge:
		s.bus.Publish(Event{Type: EventEdgeSelected, Payload: sel.Edge})
	default:
		s.bus.Publish(Event{Type: EventSelectionCleared})
	}
}

func (s *Session) record(ctx context.Context, query string, visualize bool, outcome domain.QueryOutcome, vertices int, err error) {
	if s.history == nil {
		return
	}
	rec := &domain.QueryRecord{
		Query:       query,
		Visualize:   visualize,
		Outcome:     outcome,
		VertexCount: vertices,
		ExecutedAt:  time.Now().UTC(),
	}
	if err != nil {
		rec.Error = err.Error()
	}
	if err := s.history.Record(context.WithoutCancel(ctx), rec); err != nil {
		s.logger.Warnw("Failed to record query history", "error", err)
	}
}

// Restyle re-renders the displayed graph so palette changes take effect.
// The selection is cleared, as with any render.
func (s *Session) Restyle(ctx context.Context) error {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	s.mu.Lock()
	g := s.graph
	s.mu.Unlock()

	if err := s.adapter.Render(context.WithoutCancel(ctx), g); err != nil {
		return errors.Wrap(err, "restyle")
	}
	s.bus.Publish(Event{Type: EventPaletteReloaded})
	return nil
}
