package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dumpsterly/dumpsterly-api/pkg/cache"
	"github.com/dumpsterly/dumpsterly-api/pkg/domain"
	"github.com/dumpsterly/dumpsterly-api/pkg/models"
)

func businessRows(ids ...string) *sqlmock.Rows {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(businessColumns)
	for _, id := range ids {
		rows.AddRow(
			id, "Acme Dumpsters", "Dumpster Rental", nil, nil, nil, nil,
			nil, "Denver", "CO", nil, nil, nil,
			4.5, 100, false, true, false, nil,
			nil, nil, nil, nil,
			[]byte(`["10 Yard Dumpster"]`), []byte(`["Denver"]`), []byte(`{}`),
			nil, nil, nil, now, now,
		)
	}
	return rows
}

func TestGetBusinesses_NoBackendServesSampleData(t *testing.T) {
	st := newSampleStore()

	list := st.GetBusinesses(context.Background(), models.BusinessFilter{})

	assert.Equal(t, models.SourceSample, list.Source)
	assert.Empty(t, list.Degraded, "sample mode is not degradation")
	assert.NotEmpty(t, list.Businesses)
	assert.Equal(t, len(list.Businesses), list.Total)
}

func TestGetBusinesses_BackendFailureDegradesToSample(t *testing.T) {
	st, mock := newMockStore(t, BackendNeon)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM businesses")).
		WillReturnError(errors.New("connection refused"))

	list := st.GetBusinesses(context.Background(), models.BusinessFilter{})

	assert.Equal(t, models.SourceSample, list.Source, "failed read must fall back to sample data")
	assert.Contains(t, list.Degraded, "connection refused")
	assert.NotEmpty(t, list.Businesses, "degraded response still carries data")
}

func TestGetBusinesses_FiltersBecomePlaceholders(t *testing.T) {
	st, mock := newMockStore(t, BackendNeon)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM businesses WHERE city = $1 AND state = $2")).
		WithArgs("Denver", "CO").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY is_featured DESC, rating DESC, reviews DESC LIMIT 20 OFFSET 0")).
		WithArgs("Denver", "CO").
		WillReturnRows(businessRows("b1"))

	list := st.GetBusinesses(context.Background(), models.BusinessFilter{City: "Denver", State: "CO"})

	assert.Equal(t, models.SourceNeon, list.Source)
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Businesses, 1)
	assert.Equal(t, "b1", list.Businesses[0].ID)
	assert.Equal(t, []string{"10 Yard Dumpster"}, list.Businesses[0].Services)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBusinesses_SearchUsesILike(t *testing.T) {
	st, mock := newMockStore(t, BackendSupabase)

	mock.ExpectQuery(regexp.QuoteMeta("(name ILIKE $1 OR description ILIKE $2 OR category ILIKE $3)")).
		WithArgs("%roll off%", "%roll off%", "%roll off%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY is_featured DESC, rating DESC, reviews DESC")).
		WithArgs("%roll off%", "%roll off%", "%roll off%").
		WillReturnRows(businessRows())

	list := st.GetBusinesses(context.Background(), models.BusinessFilter{Search: "roll off"})

	assert.Equal(t, models.SourceSupabase, list.Source)
	assert.Empty(t, list.Businesses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBusinesses_FullStateNameNormalized(t *testing.T) {
	st := newSampleStore()

	list := st.GetBusinesses(context.Background(), models.BusinessFilter{State: "Colorado"})

	assert.NotEmpty(t, list.Businesses, "full state name should match CO records")
	for _, b := range list.Businesses {
		assert.Equal(t, "CO", b.State)
	}
}

func TestGetBusinesses_OrderingFeaturedFirst(t *testing.T) {
	st := newSampleStore()

	list := st.GetBusinesses(context.Background(), models.BusinessFilter{})

	require.NotEmpty(t, list.Businesses)
	seenUnfeatured := false
	for _, b := range list.Businesses {
		if !b.IsFeatured {
			seenUnfeatured = true
		} else {
			assert.False(t, seenUnfeatured, "featured listings must precede unfeatured ones")
		}
	}

	// Highest-rated featured listing leads
	assert.Equal(t, "sample-1", list.Businesses[0].ID)
}

func TestGetBusinesses_PaginationAfterOrdering(t *testing.T) {
	st := newSampleStore()

	all := st.GetBusinesses(context.Background(), models.BusinessFilter{})
	page := st.GetBusinesses(context.Background(), models.BusinessFilter{Limit: 2, Offset: 2})

	require.True(t, len(all.Businesses) >= 4)
	assert.Equal(t, all.Total, page.Total, "total reflects the full match count")
	require.Len(t, page.Businesses, 2)
	assert.Equal(t, all.Businesses[2].ID, page.Businesses[0].ID)
}

func TestGetBusinessByID_NoRowIsNotDegraded(t *testing.T) {
	st, mock := newMockStore(t, BackendNeon)

	mock.ExpectQuery(regexp.QuoteMeta("FROM businesses WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(businessColumns))

	result := st.GetBusinessByID(context.Background(), "missing")

	assert.Nil(t, result.Business)
	assert.Equal(t, models.SourceNeon, result.Source)
	assert.Empty(t, result.Degraded, "an empty result set is a healthy answer")
}

func TestGetBusinessByID_FailureFallsBackToSample(t *testing.T) {
	st, mock := newMockStore(t, BackendNeon)

	mock.ExpectQuery(regexp.QuoteMeta("FROM businesses WHERE id = $1")).
		WithArgs("sample-1").
		WillReturnError(errors.New("timeout"))

	result := st.GetBusinessByID(context.Background(), "sample-1")

	require.NotNil(t, result.Business)
	assert.Equal(t, "sample-1", result.Business.ID)
	assert.Equal(t, models.SourceSample, result.Source)
	assert.Contains(t, result.Degraded, "timeout")
}

func TestGetBusinessByID_NoBackend(t *testing.T) {
	st := newSampleStore()

	result := st.GetBusinessByID(context.Background(), "sample-3")

	require.NotNil(t, result.Business)
	assert.Equal(t, "Lone Star Roll-Off", result.Business.Name)
	assert.Equal(t, models.SourceSample, result.Source)
}

type recordingMetrics struct {
	hits, misses int
	operations   []string
}

func (r *recordingMetrics) RecordDBQuery(operation string, _ time.Duration) {
	r.operations = append(r.operations, operation)
}
func (r *recordingMetrics) RecordCacheHit(string)  { r.hits++ }
func (r *recordingMetrics) RecordCacheMiss(string) { r.misses++ }

func TestGetBusinesses_RecordsCacheAndQueryMetrics(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	cacheClient, err := cache.NewClient("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { cacheClient.Close() })

	st := NewWithDB(BackendNeon, db, cacheClient, nil)
	rec := &recordingMetrics{}
	st.SetMetrics(rec)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM businesses")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY is_featured DESC")).
		WillReturnRows(businessRows("b1"))

	st.GetBusinesses(context.Background(), models.BusinessFilter{})
	st.GetBusinesses(context.Background(), models.BusinessFilter{})

	assert.Equal(t, 1, rec.misses, "first lookup misses and hits the database")
	assert.Equal(t, 1, rec.hits, "second lookup is answered from cache")
	assert.Contains(t, rec.operations, "business_search")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBusiness_NoBackendReturnsExplicitError(t *testing.T) {
	st := newSampleStore()

	b, err := st.CreateBusiness(context.Background(), models.BusinessInput{
		Name: "New Co", Category: "Dumpster Rental", City: "Denver", State: "CO",
	})

	assert.Nil(t, b, "writes are never faked against sample data")
	require.Error(t, err)
	assert.True(t, domain.IsNotConfigured(err))
	assert.Contains(t, err.Error(), "Database not configured")
}

func TestCreateBusiness_Success(t *testing.T) {
	st, mock := newMockStore(t, BackendNeon)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO businesses")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	b, err := st.CreateBusiness(context.Background(), models.BusinessInput{
		Name:       "New Co",
		Category:   "Dumpster Rental",
		City:       "Austin",
		State:      "Texas",
		OwnerEmail: "owner@example.com",
	})

	require.NoError(t, err)
	assert.Contains(t, b.ID, "biz_")
	assert.Equal(t, "TX", b.State, "state is normalized before insert")
	assert.True(t, b.IsClaimed, "an owner email makes the listing claimed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBusiness_OwnerPhoneNormalized(t *testing.T) {
	st, mock := newMockStore(t, BackendNeon)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO businesses")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	b, err := st.CreateBusiness(context.Background(), models.BusinessInput{
		Name:       "New Co",
		Category:   "Dumpster Rental",
		City:       "Denver",
		State:      "CO",
		OwnerPhone: "(303) 555-0142",
	})

	require.NoError(t, err)
	assert.Equal(t, "+13035550142", b.OwnerPhone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBusiness_InvalidOwnerPhoneRejected(t *testing.T) {
	st, mock := newMockStore(t, BackendNeon)

	b, err := st.CreateBusiness(context.Background(), models.BusinessInput{
		Name:       "New Co",
		Category:   "Dumpster Rental",
		City:       "Denver",
		State:      "CO",
		OwnerPhone: "call the yard",
	})

	assert.Nil(t, b)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet(), "rejected before any SQL runs")
}

func TestCreateBusiness_InsertFailureSurfaces(t *testing.T) {
	st, mock := newMockStore(t, BackendSupabase)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO businesses")).
		WillReturnError(errors.New("permission denied"))

	b, err := st.CreateBusiness(context.Background(), models.BusinessInput{
		Name: "New Co", Category: "Dumpster Rental", City: "Tampa", State: "FL",
	})

	assert.Nil(t, b)
	require.Error(t, err)
	assert.True(t, domain.IsBackend(err))
}

func TestUpdateBusiness_NoFields(t *testing.T) {
	st, _ := newMockStore(t, BackendNeon)

	b, err := st.UpdateBusiness(context.Background(), "b1", models.BusinessUpdate{})

	assert.Nil(t, b)
	require.Error(t, err)
	var derr *domain.DomainError
	require.True(t, domain.AsDomainError(err, &derr))
	assert.Equal(t, domain.ErrCodeBadRequest, derr.Code)
}

func TestUpdateBusiness_NotFound(t *testing.T) {
	st, mock := newMockStore(t, BackendNeon)

	name := "Renamed Co"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE businesses SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	b, err := st.UpdateBusiness(context.Background(), "missing", models.BusinessUpdate{Name: &name})

	assert.Nil(t, b)
	assert.True(t, domain.IsNotFound(err))
}

func TestUpdateBusiness_ReturnsFreshRecord(t *testing.T) {
	st, mock := newMockStore(t, BackendNeon)

	name := "Renamed Co"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE businesses SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM businesses WHERE id = $1")).
		WithArgs("b1").
		WillReturnRows(businessRows("b1"))

	b, err := st.UpdateBusiness(context.Background(), "b1", models.BusinessUpdate{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBusiness_ReadBackFailureIsBackendError(t *testing.T) {
	// The post-update read must not degrade: a failure here surfaces as an
	// error instead of returning sample data for a row that was written.
	st, mock := newMockStore(t, BackendNeon)

	name := "Renamed Co"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE businesses SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM businesses WHERE id = $1")).
		WithArgs("sample-1").
		WillReturnError(errors.New("connection reset"))

	b, err := st.UpdateBusiness(context.Background(), "sample-1", models.BusinessUpdate{Name: &name})

	assert.Nil(t, b, "a sample record must never stand in for the written row")
	require.Error(t, err)
	assert.True(t, domain.IsBackend(err))
	assert.False(t, domain.IsNotFound(err), "the row exists; only the read back failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBusiness_InvalidOwnerPhoneRejected(t *testing.T) {
	st, _ := newMockStore(t, BackendNeon)

	bad := "nope"
	b, err := st.UpdateBusiness(context.Background(), "b1", models.BusinessUpdate{OwnerPhone: &bad})

	assert.Nil(t, b)
	assert.True(t, domain.IsValidation(err))
}

func TestExpireFeaturedListings(t *testing.T) {
	st, mock := newMockStore(t, BackendNeon)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE businesses SET")).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := st.ExpireFeaturedListings(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestExpireFeaturedListings_NoBackendIsNoop(t *testing.T) {
	n, err := newSampleStore().ExpireFeaturedListings(context.Background())

	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestFeaturedNow(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name     string
		business models.Business
		want     bool
	}{
		{"flag set with future expiry", models.Business{IsFeatured: true, FeaturedUntil: &future}, true},
		{"flag set with past expiry", models.Business{IsFeatured: true, FeaturedUntil: &past}, false},
		{"flag set without expiry", models.Business{IsFeatured: true}, false},
		{"flag unset", models.Business{FeaturedUntil: &future}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.business.FeaturedNow(now))
		})
	}
}
