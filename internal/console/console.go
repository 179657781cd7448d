// Package console holds the ad hoc query console's state and its palette
// of example traversals.
package console

// Example is a canned traversal offered in the console
type Example struct {
	Title       string `json:"title"`
	Query       string `json:"query"`
	Description string `json:"description"`
	Visualize   bool   `json:"visualize"`
}

var examples = []Example{
	{
		Title:       "Sample vertices",
		Query:       "g.V().limit(25).valueMap(true)",
		Description: "First 25 vertices with id and label",
		Visualize:   true,
	},
	{
		Title:       "Open cases",
		Query:       "g.V().hasLabel('case').has('status','Open').valueMap(true)",
		Description: "Cases whose status is Open",
		Visualize:   true,
	},
	{
		Title:       "Policy rules",
		Query:       "g.V().hasLabel('policy_rule').elementMap()",
		Description: "Every policy rule as an element map",
		Visualize:   true,
	},
	{
		Title:       "High risk scores",
		Query:       "g.V().hasLabel('risk_score').has('score', gt(0.8)).valueMap(true)",
		Description: "Risk scores above 0.8",
		Visualize:   true,
	},
	{
		Title:       "Officer caseloads",
		Query:       "g.V().hasLabel('officer').project('name','cases').by('name').by(out('assigned_to').count())",
		Description: "Case count per officer; tabular, not visualizable",
	},
	{
		Title:       "Count by label",
		Query:       "g.V().groupCount().by(label)",
		Description: "Vertex totals per label; returns a map",
	},
	{
		Title:       "Edge labels",
		Query:       "g.E().label().dedup()",
		Description: "Distinct relationship types",
	},
}

// Examples returns the example palette
func Examples() []Example {
	out := make([]Example, len(examples))
	copy(out, examples)
	return out
}

// State is the console as shown on the page
type State struct {
	Open       bool   `json:"open"`
	LastQuery  string `json:"last_query,omitempty"`
	LastResult any    `json:"last_result,omitempty"`
}
