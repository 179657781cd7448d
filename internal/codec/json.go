package codec

import (
	"encoding/json"
	"io"

	"eunify/internal/domain"
	"eunify/internal/errors"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports graph data from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.GraphData, error) {
	var g wireGraph
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	if err := decoder.Decode(&g); err != nil {
		return nil, errors.Wrap(err, "parse JSON graph")
	}
	return g.toDomain(), nil
}

// Export exports graph data to JSON
func (c *JSONCodec) Export(data *domain.GraphData, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(fromDomain(data)); err != nil {
		return errors.Wrap(err, "encode JSON graph")
	}
	return nil
}
