package codec

import (
	"io"

	"gopkg.in/yaml.v3"

	"eunify/internal/domain"
	"eunify/internal/errors"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse imports graph data from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.GraphData, error) {
	var g wireGraph
	if err := yaml.NewDecoder(r).Decode(&g); err != nil {
		return nil, errors.Wrap(err, "parse YAML graph")
	}
	return g.toDomain(), nil
}

// Export exports graph data to YAML
func (c *YAMLCodec) Export(data *domain.GraphData, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(fromDomain(data)); err != nil {
		return errors.Wrap(err, "encode YAML graph")
	}
	return encoder.Close()
}

// Exporters returns the available exporters keyed by format
func Exporters() map[string]Exporter {
	return map[string]Exporter{
		"json": NewJSONCodec(),
		"yaml": NewYAMLCodec(),
	}
}
