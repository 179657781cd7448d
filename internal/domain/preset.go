package domain

import "strings"

// Preset is a named, predefined graph view served by the backend
type Preset struct {
	Key         string `json:"key" yaml:"key"`
	Name        string `json:"name" yaml:"name"`
	Endpoint    string `json:"endpoint" yaml:"endpoint"`
	Description string `json:"description" yaml:"description"`

	// VertexTypes narrows the view for sources that filter locally.
	// Empty means every type.
	VertexTypes []string `json:"vertex_types,omitempty" yaml:"vertex_types,omitempty"`
}

// FailureMessage is the banner text shown when the preset cannot be loaded
func (p Preset) FailureMessage() string {
	return "Failed to load " + strings.ToLower(p.Name)
}

var presets = []Preset{
	{Key: "all", Name: "All Graph Data", Endpoint: "/graph/all",
		Description: "Every vertex and edge in the graph"},
	{Key: "immigration_case_network", Name: "Immigration Case Network", Endpoint: "/graph/immigration-case-network",
		Description: "Cases with their applicants, officers, documents and decisions",
		VertexTypes: []string{"case", "applicant", "beneficiary", "officer", "attorney", "passport", "certificate", "form", "decision"}},
	{Key: "case_networks", Name: "Case Networks", Endpoint: "/graph/case-networks",
		Description: "Cases linked through shared parties and evidence",
		VertexTypes: []string{"case", "applicant", "fraud_indicator", "address"}},
	{Key: "data_lineage", Name: "Data Lineage", Endpoint: "/graph/data-lineage",
		Description: "Source systems, datasets and the transformations between them",
		VertexTypes: []string{"system", "interface", "dataset", "transformation"}},
	{Key: "fraud_detection", Name: "Fraud Detection", Endpoint: "/graph/fraud-detection",
		Description: "Fraud indicators, alerts and the entities they implicate",
		VertexTypes: []string{"fraud_indicator", "alert", "case", "applicant", "address"}},
	{Key: "geospatial", Name: "Geospatial Data", Endpoint: "/graph/geospatial",
		Description: "Locations, addresses and ports of entry",
		VertexTypes: []string{"location", "address", "port_of_entry", "applicant"}},
	{Key: "applicant_relationships", Name: "Applicant Relationships", Endpoint: "/graph/applicant-relationships",
		Description: "Family, employer and sponsor relationships between applicants",
		VertexTypes: []string{"applicant", "beneficiary", "employer", "attorney"}},
	{Key: "document_provenance", Name: "Document Provenance", Endpoint: "/graph/document-provenance",
		Description: "Documents with their issuers, versions and verification events",
		VertexTypes: []string{"case", "passport", "certificate", "form", "verification"}},
	{Key: "policy_compliance", Name: "Policy Compliance", Endpoint: "/graph/policy-compliance",
		Description: "Policies, rules and the cases evaluated against them",
		VertexTypes: []string{"policy", "policy_rule", "compliance_check", "case"}},
	{Key: "officer_workload", Name: "Officer Workload", Endpoint: "/graph/officer-workload",
		Description: "Officers, offices and assigned cases",
		VertexTypes: []string{"officer", "field_office", "case"}},
	{Key: "entity_resolution", Name: "Entity Resolution", Endpoint: "/graph/entity-resolution",
		Description: "Candidate duplicate identities and their match evidence",
		VertexTypes: []string{"applicant", "identity", "match"}},
	{Key: "temporal_events", Name: "Temporal Events", Endpoint: "/graph/temporal-events",
		Description: "Case events ordered in time",
		VertexTypes: []string{"case", "event"}},
	{Key: "risk_scoring", Name: "Risk Scoring", Endpoint: "/graph/risk-scoring",
		Description: "Risk scores, models and contributing factors",
		VertexTypes: []string{"risk_score", "risk_factor", "risk_model", "case"}},
	{Key: "benefit_eligibility", Name: "Benefit Eligibility", Endpoint: "/graph/benefit-eligibility",
		Description: "Benefits, eligibility criteria and qualifying applicants",
		VertexTypes: []string{"benefit", "eligibility", "beneficiary", "case"}},
	{Key: "system_integration", Name: "System Integration", Endpoint: "/graph/system-integration",
		Description: "Systems, interfaces and data exchanges",
		VertexTypes: []string{"system", "interface"}},
	{Key: "access_control", Name: "Access Control", Endpoint: "/graph/access-control",
		Description: "Users, roles and permissions on protected resources",
		VertexTypes: []string{"user", "role", "permission", "officer"}},
	{Key: "data_quality", Name: "Data Quality", Endpoint: "/graph/data-quality",
		Description: "Quality checks, issues and affected records",
		VertexTypes: []string{"quality_check", "quality_issue", "dataset"}},
}

// Presets returns the preset catalog in display order
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetByKey looks up a preset
func PresetByKey(key string) (Preset, bool) {
	for _, p := range presets {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}
