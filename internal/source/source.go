// Package source defines where graph snapshots and query results come from.
//
// Implementations live in subpackages: rest talks to the graph service's
// HTTP API, bolt queries Neo4j directly, and static serves built-in
// fixtures for demos and tests.
package source

import (
	"context"

	"eunify/internal/domain"
	"eunify/internal/errors"
)

// Source fetches graph data. A failed call is final; callers do not retry.
type Source interface {
	// LoadPreset fetches the snapshot for a named view
	LoadPreset(ctx context.Context, preset domain.Preset) (*domain.GraphData, error)

	// Execute runs a raw traversal and returns the decoded result as-is
	Execute(ctx context.Context, query string) (any, error)

	// Status reports the backend's database connection
	Status(ctx context.Context) (domain.ConnectionStatus, error)

	Close() error
}

// Kinds of source selectable in configuration
const (
	KindREST   = "rest"
	KindBolt   = "bolt"
	KindStatic = "static"
)

// ErrLiveConnectionRequired is returned by sources that cannot run raw queries
var ErrLiveConnectionRequired = errors.New("query execution requires a live graph connection")

// ValidateQuery rejects blank traversal strings
func ValidateQuery(q string) error {
	for _, r := range q {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return nil
		}
	}
	return errors.NewInvalidRequest("query is empty")
}
