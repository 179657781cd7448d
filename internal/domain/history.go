package domain

import "time"

// QueryOutcome classifies a console execution
type QueryOutcome string

const (
	OutcomeSuccess     QueryOutcome = "success"
	OutcomeQueryFailed QueryOutcome = "query_failed"
	OutcomeNotShowable QueryOutcome = "not_visualizable"
)

// QueryRecord is one entry of the console history
type QueryRecord struct {
	ID          int64        `json:"id"`
	Query       string       `json:"query"`
	Visualize   bool         `json:"visualize"`
	Outcome     QueryOutcome `json:"outcome"`
	VertexCount int          `json:"vertex_count"`
	Error       string       `json:"error,omitempty"`
	ExecutedAt  time.Time    `json:"executed_at"`
}
