package models

// Source reports which backend actually answered a store operation, so
// callers and tests can assert on provenance.
type Source string

const (
	SourceNeon     Source = "neon"
	SourceSupabase Source = "supabase"
	SourceSample   Source = "sample"
	SourceMemory   Source = "memory"
)

// BusinessList is the result of a business listing query. A populated
// Degraded field means the live backend failed and the sample dataset
// answered instead.
type BusinessList struct {
	Businesses []Business `json:"businesses"`
	Total      int        `json:"total"`
	Source     Source     `json:"source"`
	Degraded   string     `json:"error,omitempty"`
}

// IsDegraded reports whether the result was served by a fallback after a
// backend failure
func (l BusinessList) IsDegraded() bool {
	return l.Degraded != ""
}

// BusinessResult is the result of a single-business lookup. Business is nil
// when no record matched.
type BusinessResult struct {
	Business *Business `json:"business,omitempty"`
	Source   Source    `json:"source"`
	Degraded string    `json:"error,omitempty"`
}

// LeadList is the result of a lead query
type LeadList struct {
	Leads    []Lead `json:"leads"`
	Source   Source `json:"source"`
	Degraded string `json:"error,omitempty"`
}

// LeadCreateResult is the result of a successful lead capture
type LeadCreateResult struct {
	Lead    Lead   `json:"lead"`
	Source  Source `json:"source"`
	Message string `json:"message,omitempty"`
}

// LeadUpdateResult is the result of a successful lead status update
type LeadUpdateResult struct {
	Lead   Lead   `json:"lead"`
	Source Source `json:"source"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ConnectionStatus is the result of a liveness probe against the active
// backend. Used by operational tooling, not by page rendering.
type ConnectionStatus struct {
	Success bool   `json:"success"`
	Type    string `json:"type"`
	Time    string `json:"time,omitempty"`
	Error   string `json:"error,omitempty"`
}
