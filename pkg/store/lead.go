package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/dumpsterly/dumpsterly-api/pkg/domain"
	"github.com/dumpsterly/dumpsterly-api/pkg/models"
	"github.com/dumpsterly/dumpsterly-api/pkg/phone"
)

var leadColumns = []string{
	"id", "name", "email", "phone", "zipcode", "city", "state", "street",
	"service_type", "project_description", "timeline", "budget",
	"business_ids", "category", "status", "source",
	"is_revealed", "revealed_at", "created_at", "updated_at",
}

// memoryLeads buffers captured leads when no database backend is
// configured, so the customer-facing quote flow never hard-fails.
type memoryLeads struct {
	mu    sync.RWMutex
	leads []models.Lead
}

func newMemoryLeads() *memoryLeads {
	return &memoryLeads{leads: []models.Lead{}}
}

func (m *memoryLeads) add(lead models.Lead) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads = append(m.leads, lead)
}

func (m *memoryLeads) list(filter models.LeadFilter) []models.Lead {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := []models.Lead{}
	for _, l := range m.leads {
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if filter.BusinessID != "" && !containsString(l.BusinessIDs, filter.BusinessID) {
			continue
		}
		matched = append(matched, l)
	}
	return matched
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// GetLeads lists quote requests matching the filter, newest first. Like all
// reads this never returns an error: backend failures degrade to the
// in-process lead buffer.
func (s *Store) GetLeads(ctx context.Context, filter models.LeadFilter) models.LeadList {
	if filter.Limit == 0 {
		filter.Limit = 50
	}

	if s.backend == BackendNone || s.db == nil {
		return models.LeadList{
			Leads:  s.mem.list(filter),
			Source: models.SourceMemory,
		}
	}

	leads, err := s.queryLeads(ctx, filter)
	if err != nil {
		s.log.Error("lead query failed, serving in-memory leads", "backend", s.backend, "error", err)
		return models.LeadList{
			Leads:    s.mem.list(filter),
			Source:   models.SourceMemory,
			Degraded: err.Error(),
		}
	}

	return models.LeadList{Leads: leads, Source: s.source()}
}

// CreateLead captures a quote request. Lead capture must never hard-fail the
// customer-facing flow: without a configured backend the lead is held in
// memory and the call still succeeds. A live backend that rejects the write
// is the one case that surfaces an error.
func (s *Store) CreateLead(ctx context.Context, input models.LeadInput) (*models.LeadCreateResult, error) {
	now := s.now().UTC()

	lead := models.Lead{
		ID:                 input.ID,
		Name:               input.Name,
		Email:              input.Email,
		Phone:              phone.NormalizeOrKeep(input.Phone),
		Zipcode:            input.Zipcode,
		City:               input.City,
		State:              models.NormalizeState(input.State),
		Street:             input.Street,
		ServiceType:        input.ServiceType,
		ProjectDescription: input.ProjectDescription,
		Timeline:           input.Timeline,
		Budget:             input.Budget,
		BusinessIDs:        input.BusinessIDs,
		Category:           input.Category,
		Status:             input.Status,
		Source:             input.Source,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if lead.ID == "" {
		lead.ID = newLeadID(now)
	}
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	if lead.Source == "" {
		lead.Source = models.LeadSourceWebsite
	}

	if s.backend == BackendNone || s.db == nil {
		s.mem.add(lead)
		return &models.LeadCreateResult{
			Lead:    lead,
			Source:  models.SourceMemory,
			Message: "Lead captured without database; configure a backend to persist leads",
		}, nil
	}

	query, args, err := s.builder.
		Insert("leads").
		Columns(leadColumns...).
		Values(
			lead.ID, lead.Name, lead.Email, lead.Phone, lead.Zipcode, lead.City, lead.State, lead.Street,
			lead.ServiceType, lead.ProjectDescription, lead.Timeline, lead.Budget,
			marshalJSON(lead.BusinessIDs), lead.Category, lead.Status, lead.Source,
			lead.IsRevealed, lead.RevealedAt, lead.CreatedAt, lead.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	start := time.Now()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.log.Error("lead insert failed", "error", err)
		return nil, domain.NewBackendError("create lead", err)
	}
	s.recordQuery("lead_insert", start)

	return &models.LeadCreateResult{Lead: lead, Source: s.source()}, nil
}

// UpdateLeadStatus moves a lead to a new workflow status. Transitions are
// not constrained: any status may follow any other.
func (s *Store) UpdateLeadStatus(ctx context.Context, id, status string) (*models.LeadUpdateResult, error) {
	if !models.ValidLeadStatus(status) {
		return nil, domain.NewValidationError("invalid lead status: " + status)
	}
	if s.backend == BackendNone || s.db == nil {
		return nil, domain.ErrNotConfigured
	}

	query, args, err := s.builder.
		Update("leads").
		Set("status", status).
		Set("updated_at", s.now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.log.Error("lead status update failed", "id", id, "error", err)
		return nil, domain.NewBackendError("update lead status", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, domain.NewNotFoundError("lead")
	}

	lead, err := s.queryLeadByID(ctx, id)
	if err != nil {
		return nil, domain.NewBackendError("load updated lead", err)
	}

	return &models.LeadUpdateResult{Lead: *lead, Source: s.source()}, nil
}

func (s *Store) queryLeads(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error) {
	defer s.recordQuery("lead_search", time.Now())

	q := s.builder.Select(leadColumns...).From("leads")

	if filter.Status != "" {
		q = q.Where(sq.Eq{"status": filter.Status})
	}
	if filter.BusinessID != "" {
		// Membership test against the jsonb business_ids array
		q = q.Where(sq.Expr("business_ids @> ?", string(marshalJSON([]string{filter.BusinessID}))))
	}

	q = q.OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []models.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

func (s *Store) queryLeadByID(ctx context.Context, id string) (*models.Lead, error) {
	defer s.recordQuery("lead_by_id", time.Now())

	query, args, err := s.builder.
		Select(leadColumns...).
		From("leads").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanLead(s.db.QueryRowContext(ctx, query, args...))
}

func scanLead(row rowScanner) (*models.Lead, error) {
	var (
		l           models.Lead
		phone       sql.NullString
		city        sql.NullString
		state       sql.NullString
		street      sql.NullString
		serviceType sql.NullString
		projectDesc sql.NullString
		timeline    sql.NullString
		budget      sql.NullString
		businessIDs []byte
		category    sql.NullString
		revealedAt  sql.NullTime
	)

	err := row.Scan(
		&l.ID, &l.Name, &l.Email, &phone, &l.Zipcode, &city, &state, &street,
		&serviceType, &projectDesc, &timeline, &budget,
		&businessIDs, &category, &l.Status, &l.Source,
		&l.IsRevealed, &revealedAt, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.Phone = phone.String
	l.City = city.String
	l.State = state.String
	l.Street = street.String
	l.ServiceType = serviceType.String
	l.ProjectDescription = projectDesc.String
	l.Timeline = timeline.String
	l.Budget = budget.String
	l.Category = category.String
	if revealedAt.Valid {
		t := revealedAt.Time
		l.RevealedAt = &t
	}
	if len(businessIDs) > 0 {
		_ = json.Unmarshal(businessIDs, &l.BusinessIDs)
	}

	return &l, nil
}

// newLeadID synthesizes a time+random composite identifier for backends
// that do not assign one
func newLeadID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return "lead_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + suffix
}
