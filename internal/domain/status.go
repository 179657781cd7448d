package domain

// ConnectionStatus is the backend's report of its link to the graph
// database. It is advisory and never blocks fetching.
type ConnectionStatus struct {
	Connected  bool   `json:"connected"`
	GremlinURL string `json:"gremlinUrl"`
}
