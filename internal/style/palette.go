// Package style maps vertex type tags to display colors.
package style

import (
	"strings"
)

const (
	// DefaultColor is used for any type not in the table
	DefaultColor = "#9ca3af"

	// PolicyRuleColor is indigo
	PolicyRuleColor = "#6366f1"
)

var defaultTable = map[string]string{
	// cases and people
	"case":         "#3b82f6",
	"applicant":    "#10b981",
	"beneficiary":  "#34d399",
	"petitioner":   "#059669",
	"person":       "#22c55e",
	"family":       "#84cc16",
	"employer":     "#0ea5e9",
	"sponsor":      "#06b6d4",
	"attorney":     "#14b8a6",
	"officer":      "#8b5cf6",
	"office":       "#a78bfa",
	"field_office": "#7c3aed",

	// documents and evidence
	"document":     "#f59e0b",
	"evidence":     "#fbbf24",
	"form":         "#d97706",
	"passport":     "#b45309",
	"visa":         "#ea580c",
	"certificate":  "#f97316",
	"verification": "#fb923c",

	// decisions and policy
	"decision":         "#ef4444",
	"policy":           "#4f46e5",
	"policy_rule":      PolicyRuleColor,
	"regulation":       "#4338ca",
	"compliance_check": "#818cf8",
	"benefit":          "#ec4899",
	"eligibility":      "#f472b6",

	// fraud and risk
	"fraud_indicator": "#dc2626",
	"alert":           "#b91c1c",
	"risk_score":      "#f43f5e",
	"risk_factor":     "#e11d48",
	"risk_model":      "#be123c",

	// place and time
	"location":      "#65a30d",
	"address":       "#4d7c0f",
	"port_of_entry": "#15803d",
	"country":       "#166534",
	"event":         "#0891b2",
	"timeline":      "#0e7490",

	// systems and data
	"system":         "#64748b",
	"interface":      "#475569",
	"dataset":        "#0284c7",
	"data_source":    "#0369a1",
	"transformation": "#075985",
	"record":         "#94a3b8",
	"quality_check":  "#a3e635",
	"quality_issue":  "#facc15",
	"identity":       "#2dd4bf",
	"match":          "#5eead4",

	// access control
	"user":       "#c084fc",
	"role":       "#a855f7",
	"permission": "#9333ea",
	"resource":   "#7e22ce",
}

// Palette is a read-only type-to-color table with a fallback color
type Palette struct {
	table    map[string]string
	fallback string
}

// DefaultPalette returns the built-in table
func DefaultPalette() Palette {
	return NewPalette(defaultTable, DefaultColor)
}

// NewPalette builds a palette from table. An empty fallback means DefaultColor.
func NewPalette(table map[string]string, fallback string) Palette {
	t := make(map[string]string, len(table))
	for k, v := range table {
		if v = strings.TrimSpace(v); v != "" {
			t[k] = v
		}
	}
	if strings.TrimSpace(fallback) == "" {
		fallback = DefaultColor
	}
	return Palette{table: t, fallback: strings.TrimSpace(fallback)}
}

// Color returns the color for a type tag. It never returns "".
func (p Palette) Color(typeTag string) string {
	if p.table == nil {
		return p.Default()
	}
	tag := strings.TrimSpace(typeTag)
	if c, ok := p.table[tag]; ok {
		return c
	}
	if c, ok := p.table[strings.ToLower(tag)]; ok {
		return c
	}
	return p.Default()
}

// Default returns the fallback color
func (p Palette) Default() string {
	if p.fallback == "" {
		return DefaultColor
	}
	return p.fallback
}

// With returns a copy extended with overrides
func (p Palette) With(overrides map[string]string) Palette {
	merged := make(map[string]string, len(p.table)+len(overrides))
	for k, v := range p.table {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return NewPalette(merged, p.fallback)
}

// WithDefault returns a copy with a different fallback color
func (p Palette) WithDefault(color string) Palette {
	return NewPalette(p.table, color)
}

// Table returns a copy of the explicit entries
func (p Palette) Table() map[string]string {
	out := make(map[string]string, len(p.table))
	for k, v := range p.table {
		out[k] = v
	}
	return out
}

// Colorer is anything that can color a type tag
type Colorer interface {
	Color(typeTag string) string
}
