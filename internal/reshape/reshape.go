// Package reshape turns raw traversal output into a vertex-only graph.
//
// Only array results whose elements are maps with both an id and a label
// can be shown. Typical shapes come from valueMap(true) or elementMap():
//
//	[{"id": "v1", "label": "case", "status": ["Open"]}]
//
// Edges are never inferred from the rows.
package reshape

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"eunify/internal/domain"
	"eunify/internal/errors"
)

const (
	keyID    = "id"
	keyLabel = "label"
)

var (
	// ErrNotArray is returned when the result is not a list of elements
	ErrNotArray = errors.New("query result is not an array")

	// ErrNoVertices is returned when no element carried both id and label
	ErrNoVertices = errors.New("query result contains no vertices")
)

// Report describes what a reshape pass found
type Report struct {
	Elements     int      `json:"elements"`
	Extracted    int      `json:"extracted"`
	Skipped      int      `json:"skipped"`
	DuplicateIDs []string `json:"duplicate_ids,omitempty"`
}

// Reshape extracts one vertex per element of raw that has both an id and a
// label. The vertex type is its label; every other field becomes a property
// after UnwrapFirst. Duplicate ids are passed through unchanged and listed
// in the report.
func Reshape(raw any) (*domain.GraphData, Report, error) {
	rows, ok := rowsOf(raw)
	if !ok {
		return nil, Report{}, errors.WithHint(
			errors.Wrapf(ErrNotArray, "got %s", describe(raw)),
			"Return a list of elements, for example g.V().limit(25).valueMap(true)")
	}

	rep := Report{Elements: len(rows)}
	data := domain.NewGraphData()
	seen := make(map[string]int, len(rows))

	for _, row := range rows {
		v, ok := vertexOf(row)
		if !ok {
			rep.Skipped++
			continue
		}
		seen[v.ID]++
		if seen[v.ID] == 2 {
			rep.DuplicateIDs = append(rep.DuplicateIDs, v.ID)
		}
		data.AddVertex(v)
	}
	rep.Extracted = len(data.Vertices)

	if rep.Extracted == 0 {
		return nil, rep, errors.WithHint(
			errors.Wrapf(ErrNoVertices, "%d elements without id and label", rep.Elements),
			"Use valueMap(true) or elementMap() so each element carries id and label")
	}
	return data, rep, nil
}

// UnwrapFirst collapses one level of list wrapping: a non-empty list
// becomes its first element and an empty list becomes nil. Any other value
// is returned unchanged.
func UnwrapFirst(v any) any {
	switch x := v.(type) {
	case []any:
		if len(x) == 0 {
			return nil
		}
		return x[0]
	case []string:
		if len(x) == 0 {
			return nil
		}
		return x[0]
	default:
		return v
	}
}

func rowsOf(raw any) ([]any, bool) {
	switch x := raw.(type) {
	case []any:
		return x, true
	case []map[string]any:
		rows := make([]any, len(x))
		for i, m := range x {
			rows[i] = m
		}
		return rows, true
	default:
		return nil, false
	}
}

func vertexOf(row any) (domain.Vertex, bool) {
	m, ok := row.(map[string]any)
	if !ok {
		return domain.Vertex{}, false
	}

	id := text(UnwrapFirst(m[keyID]))
	label := text(UnwrapFirst(m[keyLabel]))
	if id == "" || label == "" {
		return domain.Vertex{}, false
	}

	props := make(domain.Properties, len(m))
	for k, val := range m {
		if k == keyID || k == keyLabel {
			continue
		}
		props[k] = domain.ScalarOf(UnwrapFirst(val))
	}

	return domain.Vertex{
		ID:         id,
		Label:      label,
		Type:       label,
		Properties: props,
	}, true
}

// text renders id and label values; ids are often numeric
func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<63 {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		s := domain.ScalarOf(x)
		if s.Kind() == domain.KindString {
			// composites are not usable as ids
			if _, isMap := x.(map[string]any); isMap {
				return ""
			}
		}
		return s.Text()
	}
}

func describe(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case float64, int, int64:
		return "a number"
	default:
		return fmt.Sprintf("%T", raw)
	}
}
