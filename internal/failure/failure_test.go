package failure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"eunify/internal/errors"
)

func TestFailure_ToUIMessage(t *testing.T) {
	tests := []struct {
		name string
		f    *Failure
		want string
	}{
		{
			name: "custom message wins",
			f:    New(CategoryFetch, errors.New("dial tcp"), "Failed to load fraud detection"),
			want: "Failed to load fraud detection",
		},
		{
			name: "query falls back to generic text",
			f:    New(CategoryQuery, errors.New("boom"), ""),
			want: "Query execution failed",
		},
		{
			name: "unknown category",
			f:    New(Category("other"), nil, ""),
			want: "An error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.f.ToUIMessage())
		})
	}
}

func TestFailure_Detail(t *testing.T) {
	t.Run("prefers backend detail", func(t *testing.T) {
		err := errors.WithDetail(errors.New("status 400"), "No such property: foo")
		f := New(CategoryQuery, err, "")
		assert.Equal(t, "No such property: foo", f.Detail())
	})

	t.Run("uses hint when no detail", func(t *testing.T) {
		err := errors.WithHint(errors.New("no vertices"), "return elements with id and label")
		f := New(CategoryReshape, err, "")
		assert.Equal(t, "return elements with id and label", f.Detail())
	})

	t.Run("falls back to error text", func(t *testing.T) {
		f := New(CategoryFetch, errors.New("connection refused"), "")
		assert.Equal(t, "connection refused", f.Detail())
	})
}

func TestAs(t *testing.T) {
	t.Run("finds wrapped failure", func(t *testing.T) {
		inner := New(CategoryReshape, errors.New("x"), "y")
		got := As(errors.Wrap(inner, "outer"))
		assert.Same(t, inner, got)
	})

	t.Run("classifies plain errors as internal", func(t *testing.T) {
		got := As(errors.New("plain"))
		assert.Equal(t, CategoryInternal, got.Category)
	})
}

func TestFailure_ToLogFields(t *testing.T) {
	f := New(CategoryFetch, errors.New("x"), "Failed to load geospatial data").
		WithOperation("load_preset").
		WithContext("preset", "geospatial")

	fields := f.ToLogFields()
	assert.Contains(t, fields, "operation")
	assert.Contains(t, fields, "load_preset")
	assert.Contains(t, fields, "preset")
	assert.Contains(t, fields, "geospatial")
}
