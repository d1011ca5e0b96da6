package models

import "time"

// Lead status workflow values. Transitions are intentionally unconstrained:
// any status may follow any other, matching how business owners actually
// work leads (a "lost" lead can be reopened).
const (
	LeadStatusNew       = "new"
	LeadStatusViewed    = "viewed"
	LeadStatusContacted = "contacted"
	LeadStatusWon       = "won"
	LeadStatusLost      = "lost"
)

// Lead timeline buckets
const (
	TimelineASAP        = "asap"
	TimelineWithinWeek  = "within_week"
	TimelineWithinMonth = "within_month"
	TimelineFlexible    = "flexible"
)

// Lead sources
const (
	LeadSourceWebsite      = "website"
	LeadSourceQuoteRequest = "quote_request"
)

// LeadStatuses lists every accepted workflow status
var LeadStatuses = []string{
	LeadStatusNew, LeadStatusViewed, LeadStatusContacted, LeadStatusWon, LeadStatusLost,
}

// ValidLeadStatus reports whether s is an accepted workflow status
func ValidLeadStatus(s string) bool {
	for _, v := range LeadStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Lead represents a customer's quote request, optionally targeted at
// specific businesses
type Lead struct {
	ID string `json:"id"`

	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`

	Zipcode string `json:"zipcode"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Street  string `json:"street,omitempty"`

	ServiceType        string `json:"service_type,omitempty"`
	ProjectDescription string `json:"project_description,omitempty"`
	Timeline           string `json:"timeline,omitempty"`
	Budget             string `json:"budget,omitempty"`

	// Empty BusinessIDs means broadcast to every matching business
	BusinessIDs []string `json:"business_ids,omitempty"`
	Category    string   `json:"category,omitempty"`

	Status string `json:"status"`
	Source string `json:"source"`

	// Contact fields stay masked to the viewing business until a
	// credit-consuming reveal is performed by the dealer portal.
	IsRevealed bool       `json:"is_revealed"`
	RevealedAt *time.Time `json:"revealed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LeadFilter narrows a lead query. BusinessID is a membership test against
// the lead's business_ids collection; status is an exact match.
type LeadFilter struct {
	BusinessID string `query:"business_id"`
	Status     string `query:"status" validate:"omitempty,oneof=new viewed contacted won lost"`
	Limit      int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset     int    `query:"offset" validate:"omitempty,min=0"`
}

// LeadInput carries fields for capturing a quote request
type LeadInput struct {
	ID string `json:"id,omitempty"`

	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty"`

	Zipcode string `json:"zipcode" validate:"required"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Street  string `json:"street,omitempty"`

	ServiceType        string `json:"service_type,omitempty"`
	ProjectDescription string `json:"project_description,omitempty"`
	Timeline           string `json:"timeline,omitempty" validate:"omitempty,oneof=asap within_week within_month flexible"`
	Budget             string `json:"budget,omitempty" validate:"omitempty,oneof=under_300 300_500 500_1000 over_1000 not_sure"`

	BusinessIDs []string `json:"business_ids,omitempty"`
	Category    string   `json:"category,omitempty"`

	Status string `json:"status,omitempty" validate:"omitempty,oneof=new viewed contacted won lost"`
	Source string `json:"source,omitempty"`
}
