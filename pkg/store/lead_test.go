package store

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dumpsterly/dumpsterly-api/pkg/domain"
	"github.com/dumpsterly/dumpsterly-api/pkg/models"
)

func leadRows(ids ...string) *sqlmock.Rows {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(leadColumns)
	for _, id := range ids {
		rows.AddRow(
			id, "Jamie Ortiz", "jamie@example.com", nil, "80202", "Denver", "CO", nil,
			"Dumpster Rental", nil, "asap", nil,
			[]byte(`["sample-1"]`), nil, "new", "website",
			false, nil, now, now,
		)
	}
	return rows
}

func TestCreateLead_NoBackendStillSucceeds(t *testing.T) {
	st := newSampleStore()

	result, err := st.CreateLead(context.Background(), models.LeadInput{
		Name:    "Jamie Ortiz",
		Email:   "jamie@example.com",
		Zipcode: "80202",
	})

	require.NoError(t, err, "lead capture must not fail without a database")
	assert.Equal(t, models.SourceMemory, result.Source)
	assert.NotEmpty(t, result.Message, "caller is told the lead was not persisted")
	assert.True(t, strings.HasPrefix(result.Lead.ID, "lead_"))
	assert.Equal(t, models.LeadStatusNew, result.Lead.Status)
	assert.Equal(t, models.LeadSourceWebsite, result.Lead.Source)
	assert.False(t, result.Lead.CreatedAt.IsZero())
}

func TestCreateLead_PhoneNormalizedToE164(t *testing.T) {
	st := newSampleStore()

	result, err := st.CreateLead(context.Background(), models.LeadInput{
		Name:    "Jamie Ortiz",
		Email:   "jamie@example.com",
		Phone:   "(303) 555-0142",
		Zipcode: "80202",
	})

	require.NoError(t, err)
	assert.Equal(t, "+13035550142", result.Lead.Phone)
}

func TestCreateLead_UnparseablePhoneKeptAndStillCaptured(t *testing.T) {
	st := newSampleStore()

	result, err := st.CreateLead(context.Background(), models.LeadInput{
		Name:    "Jamie Ortiz",
		Email:   "jamie@example.com",
		Phone:   "call after 5pm",
		Zipcode: "80202",
	})

	require.NoError(t, err, "a malformed callback number must not reject the lead")
	assert.Equal(t, "call after 5pm", result.Lead.Phone, "unparseable input is kept verbatim")
}

func TestCreateLead_MemoryBufferReadableAfterCapture(t *testing.T) {
	st := newSampleStore()

	created, err := st.CreateLead(context.Background(), models.LeadInput{
		Name:        "Jamie Ortiz",
		Email:       "jamie@example.com",
		Zipcode:     "80202",
		BusinessIDs: []string{"sample-1"},
	})
	require.NoError(t, err)

	list := st.GetLeads(context.Background(), models.LeadFilter{})

	assert.Equal(t, models.SourceMemory, list.Source)
	require.Len(t, list.Leads, 1)
	assert.Equal(t, created.Lead.ID, list.Leads[0].ID)
}

func TestCreateLead_PreservesExplicitFields(t *testing.T) {
	st := newSampleStore()

	result, err := st.CreateLead(context.Background(), models.LeadInput{
		ID:      "lead_custom",
		Name:    "Jamie Ortiz",
		Email:   "jamie@example.com",
		Zipcode: "80202",
		State:   "Florida",
		Status:  models.LeadStatusContacted,
		Source:  models.LeadSourceQuoteRequest,
	})

	require.NoError(t, err)
	assert.Equal(t, "lead_custom", result.Lead.ID)
	assert.Equal(t, "FL", result.Lead.State)
	assert.Equal(t, models.LeadStatusContacted, result.Lead.Status)
	assert.Equal(t, models.LeadSourceQuoteRequest, result.Lead.Source)
}

func TestCreateLead_Success(t *testing.T) {
	st, mock := newMockStore(t, BackendNeon)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO leads")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := st.CreateLead(context.Background(), models.LeadInput{
		Name:    "Jamie Ortiz",
		Email:   "jamie@example.com",
		Zipcode: "80202",
	})

	require.NoError(t, err)
	assert.Equal(t, models.SourceNeon, result.Source)
	assert.Empty(t, result.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateLead_InsertFailureIsNotFakedAsSuccess(t *testing.T) {
	st, mock := newMockStore(t, BackendSupabase)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO leads")).
		WillReturnError(errors.New("disk full"))

	result, err := st.CreateLead(context.Background(), models.LeadInput{
		Name:    "Jamie Ortiz",
		Email:   "jamie@example.com",
		Zipcode: "80202",
	})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, domain.IsBackend(err))
}

func TestGetLeads_BackendFailureDegradesToMemory(t *testing.T) {
	st, mock := newMockStore(t, BackendNeon)

	mock.ExpectQuery(regexp.QuoteMeta("FROM leads")).
		WillReturnError(errors.New("connection reset"))

	list := st.GetLeads(context.Background(), models.LeadFilter{})

	assert.Equal(t, models.SourceMemory, list.Source)
	assert.Contains(t, list.Degraded, "connection reset")
	assert.NotNil(t, list.Leads)
}

func TestGetLeads_BusinessIDMembership(t *testing.T) {
	st, mock := newMockStore(t, BackendNeon)

	mock.ExpectQuery(regexp.QuoteMeta(`business_ids @> $1 ORDER BY created_at DESC LIMIT 50 OFFSET 0`)).
		WithArgs(`["sample-1"]`).
		WillReturnRows(leadRows("lead_1"))

	list := st.GetLeads(context.Background(), models.LeadFilter{BusinessID: "sample-1"})

	assert.Equal(t, models.SourceNeon, list.Source)
	require.Len(t, list.Leads, 1)
	assert.Equal(t, []string{"sample-1"}, list.Leads[0].BusinessIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLeads_MemoryFilterMatchesSQLSemantics(t *testing.T) {
	st := newSampleStore()
	ctx := context.Background()

	_, err := st.CreateLead(ctx, models.LeadInput{
		Name: "A", Email: "a@example.com", Zipcode: "80202",
		BusinessIDs: []string{"sample-1", "sample-2"},
	})
	require.NoError(t, err)
	_, err = st.CreateLead(ctx, models.LeadInput{
		Name: "B", Email: "b@example.com", Zipcode: "78701",
		BusinessIDs: []string{"sample-3"},
		Status:      models.LeadStatusWon,
	})
	require.NoError(t, err)

	byBusiness := st.GetLeads(ctx, models.LeadFilter{BusinessID: "sample-2"})
	require.Len(t, byBusiness.Leads, 1)
	assert.Equal(t, "A", byBusiness.Leads[0].Name)

	byStatus := st.GetLeads(ctx, models.LeadFilter{Status: models.LeadStatusWon})
	require.Len(t, byStatus.Leads, 1)
	assert.Equal(t, "B", byStatus.Leads[0].Name)
}

func TestUpdateLeadStatus_InvalidStatus(t *testing.T) {
	st := newSampleStore()

	result, err := st.UpdateLeadStatus(context.Background(), "lead_1", "archived")

	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestUpdateLeadStatus_NoBackend(t *testing.T) {
	st := newSampleStore()

	result, err := st.UpdateLeadStatus(context.Background(), "lead_1", models.LeadStatusViewed)

	assert.Nil(t, result)
	assert.True(t, domain.IsNotConfigured(err))
}

func TestUpdateLeadStatus_AnyTransitionAllowed(t *testing.T) {
	st, mock := newMockStore(t, BackendNeon)

	// lost back to new is legal: owners reopen dead leads
	mock.ExpectExec(regexp.QuoteMeta("UPDATE leads SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM leads WHERE id = $1")).
		WithArgs("lead_1").
		WillReturnRows(leadRows("lead_1"))

	result, err := st.UpdateLeadStatus(context.Background(), "lead_1", models.LeadStatusNew)

	require.NoError(t, err)
	assert.Equal(t, "lead_1", result.Lead.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLeadStatus_NotFound(t *testing.T) {
	st, mock := newMockStore(t, BackendNeon)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE leads SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	result, err := st.UpdateLeadStatus(context.Background(), "missing", models.LeadStatusViewed)

	assert.Nil(t, result)
	assert.True(t, domain.IsNotFound(err))
}

func TestNewLeadID_Format(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	id := newLeadID(now)

	parts := strings.Split(id, "_")
	require.Len(t, parts, 3)
	assert.Equal(t, "lead", parts[0])
	assert.Equal(t, "1788091200000", parts[1])
	assert.Len(t, parts[2], 8)
}
