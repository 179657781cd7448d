// Package failure classifies pipeline errors for the page banner and logs.
package failure

import (
	"time"

	"eunify/internal/errors"
)

// Category is the top-level failure class.
type Category string

const (
	// CategoryFetch covers preset loads that did not return data
	CategoryFetch Category = "fetch"

	// CategoryQuery covers raw traversal executions rejected by the backend
	CategoryQuery Category = "query"

	// CategoryReshape covers query output that produced no vertices
	CategoryReshape Category = "reshape"

	// CategoryInternal covers everything else
	CategoryInternal Category = "internal"
)

func (c Category) String() string {
	return string(c)
}

var defaultMessages = map[Category]string{
	CategoryFetch:    "Failed to load graph data",
	CategoryQuery:    "Query execution failed",
	CategoryReshape:  "Query result could not be visualized",
	CategoryInternal: "An internal error occurred",
}

// Failure is an error with the context needed to show it to a user.
type Failure struct {
	Err         error
	Category    Category
	Operation   string
	UserMessage string
	Context     map[string]interface{}
	Timestamp   time.Time
}

// New wraps err under category with a user-facing message.
func New(category Category, err error, userMsg string) *Failure {
	return &Failure{
		Err:         err,
		Category:    category,
		UserMessage: userMsg,
		Context:     make(map[string]interface{}),
		Timestamp:   time.Now(),
	}
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return f.Err.Error()
	}
	return f.ToUIMessage()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// WithOperation records which user action failed.
func (f *Failure) WithOperation(op string) *Failure {
	f.Operation = op
	return f
}

// WithContext adds a debugging key/value.
func (f *Failure) WithContext(key string, value interface{}) *Failure {
	f.Context[key] = value
	return f
}

// ToUIMessage returns the banner headline.
func (f *Failure) ToUIMessage() string {
	if f.UserMessage != "" {
		return f.UserMessage
	}
	if msg, ok := defaultMessages[f.Category]; ok {
		return msg
	}
	return "An error occurred"
}

// Detail returns the most specific explanation available: backend
// details first, then hints, then the wrapped error text.
func (f *Failure) Detail() string {
	if f.Err == nil {
		return ""
	}
	if d := errors.FlattenDetails(f.Err); d != "" {
		return d
	}
	if h := errors.FlattenHints(f.Err); h != "" {
		return h
	}
	return f.Err.Error()
}

// ToBanner converts the failure into the single page banner.
func (f *Failure) ToBanner() Banner {
	return Banner{
		Category: f.Category,
		Message:  f.ToUIMessage(),
		Detail:   f.Detail(),
		At:       f.Timestamp,
	}
}

// ToLogFields flattens the failure for logger.Errorw.
func (f *Failure) ToLogFields() []interface{} {
	fields := []interface{}{
		"error_category", f.Category,
		"error_message", f.Error(),
		"user_message", f.ToUIMessage(),
	}
	if f.Operation != "" {
		fields = append(fields, "operation", f.Operation)
	}
	for k, v := range f.Context {
		fields = append(fields, k, v)
	}
	return fields
}

// As extracts a *Failure from err, classifying anything else as internal.
func As(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return New(CategoryInternal, err, "")
}

// Banner is the dismissable page-level error notice. Only the latest one
// is shown; a new failure replaces it and a success clears it.
type Banner struct {
	Category Category  `json:"category"`
	Message  string    `json:"message"`
	Detail   string    `json:"detail,omitempty"`
	At       time.Time `json:"at"`
}
