package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/dumpsterly/dumpsterly-api/pkg/domain"
	"github.com/dumpsterly/dumpsterly-api/pkg/models"
	"github.com/dumpsterly/dumpsterly-api/pkg/phone"
)

var businessColumns = []string{
	"id", "name", "category", "description", "website", "logo_url", "cover_image",
	"address", "city", "state", "zipcode", "latitude", "longitude",
	"rating", "reviews", "is_featured", "is_verified", "is_claimed", "featured_until",
	"price_range", "years_in_business", "license_number", "insurance",
	"services", "service_areas", "hours",
	"owner_name", "owner_email", "owner_phone", "created_at", "updated_at",
}

const businessCacheTTL = 5 * time.Minute

// GetBusinesses lists businesses matching the filter, featured listings
// first, then by rating and review count. Backend failures are logged and
// answered from the sample dataset; this method never returns an error.
func (s *Store) GetBusinesses(ctx context.Context, filter models.BusinessFilter) models.BusinessList {
	filter.State = models.NormalizeState(filter.State)
	if filter.Limit == 0 {
		filter.Limit = 20
	}

	if s.backend == BackendNone || s.db == nil {
		return s.sampleBusinessList(filter, "")
	}

	cacheKey := businessCacheKey(filter)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			var list models.BusinessList
			if err := json.Unmarshal([]byte(cached), &list); err == nil {
				s.recordCacheLookup("business_search", true)
				return list
			}
		}
		s.recordCacheLookup("business_search", false)
	}

	list, err := s.queryBusinesses(ctx, filter)
	if err != nil {
		s.log.Error("business query failed, serving sample data", "backend", s.backend, "error", err)
		return s.sampleBusinessList(filter, err.Error())
	}

	if s.cache != nil {
		if payload, err := json.Marshal(list); err == nil {
			_ = s.cache.Set(ctx, cacheKey, payload, businessCacheTTL)
		}
	}

	return list
}

// GetBusinessByID fetches a single listing. A nil Business with an empty
// Degraded field means no record matched; a populated Degraded field means
// the backend failed and the sample dataset answered.
func (s *Store) GetBusinessByID(ctx context.Context, id string) models.BusinessResult {
	if s.backend == BackendNone || s.db == nil {
		return models.BusinessResult{
			Business: sampleBusinessByID(id),
			Source:   models.SourceSample,
		}
	}

	b, err := s.queryBusinessByID(ctx, id)
	if err == sql.ErrNoRows {
		return models.BusinessResult{Source: s.source()}
	}
	if err != nil {
		s.log.Error("business lookup failed, serving sample data", "id", id, "error", err)
		return models.BusinessResult{
			Business: sampleBusinessByID(id),
			Source:   models.SourceSample,
			Degraded: err.Error(),
		}
	}

	return models.BusinessResult{Business: b, Source: s.source()}
}

// CreateBusiness inserts a new listing. There is no sample-data fallback for
// mutations: without a configured backend this returns an explicit error.
func (s *Store) CreateBusiness(ctx context.Context, input models.BusinessInput) (*models.Business, error) {
	if s.backend == BackendNone || s.db == nil {
		return nil, domain.ErrNotConfigured
	}

	if input.OwnerPhone != "" {
		normalized, err := phone.Normalize(input.OwnerPhone, "")
		if err != nil {
			return nil, domain.NewValidationError("invalid owner phone number")
		}
		input.OwnerPhone = normalized
	}

	now := s.now().UTC()
	b := models.Business{
		ID:              input.ID,
		Name:            input.Name,
		Category:        input.Category,
		Description:     input.Description,
		Website:         input.Website,
		LogoURL:         input.LogoURL,
		CoverImage:      input.CoverImage,
		Address:         input.Address,
		City:            input.City,
		State:           models.NormalizeState(input.State),
		Zipcode:         input.Zipcode,
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
		PriceRange:      input.PriceRange,
		YearsInBusiness: input.YearsInBusiness,
		LicenseNumber:   input.LicenseNumber,
		Insurance:       input.Insurance,
		Services:        input.Services,
		ServiceAreas:    input.ServiceAreas,
		Hours:           input.Hours,
		OwnerName:       input.OwnerName,
		OwnerEmail:      input.OwnerEmail,
		OwnerPhone:      input.OwnerPhone,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if b.ID == "" {
		b.ID = "biz_" + uuid.NewString()
	}
	// Claiming requires an owner identity
	b.IsClaimed = input.OwnerEmail != ""

	query, args, err := s.builder.
		Insert("businesses").
		Columns(businessColumns...).
		Values(
			b.ID, b.Name, b.Category, b.Description, b.Website, b.LogoURL, b.CoverImage,
			b.Address, b.City, b.State, b.Zipcode, b.Latitude, b.Longitude,
			b.Rating, b.Reviews, b.IsFeatured, b.IsVerified, b.IsClaimed, b.FeaturedUntil,
			b.PriceRange, b.YearsInBusiness, b.LicenseNumber, b.Insurance,
			marshalJSON(b.Services), marshalJSON(b.ServiceAreas), marshalJSON(b.Hours),
			b.OwnerName, b.OwnerEmail, b.OwnerPhone, b.CreatedAt, b.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	start := time.Now()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.log.Error("business insert failed", "error", err)
		return nil, domain.NewBackendError("create business", err)
	}
	s.recordQuery("business_insert", start)

	s.invalidateBusinessCache(ctx)
	return &b, nil
}

// UpdateBusiness applies a partial update and returns the fresh record
func (s *Store) UpdateBusiness(ctx context.Context, id string, update models.BusinessUpdate) (*models.Business, error) {
	if s.backend == BackendNone || s.db == nil {
		return nil, domain.ErrNotConfigured
	}

	if update.OwnerPhone != nil && *update.OwnerPhone != "" {
		normalized, err := phone.Normalize(*update.OwnerPhone, "")
		if err != nil {
			return nil, domain.NewValidationError("invalid owner phone number")
		}
		update.OwnerPhone = &normalized
	}

	set := businessSetMap(update)
	if len(set) == 0 {
		return nil, domain.NewBadRequestError("no fields to update")
	}
	set["updated_at"] = s.now().UTC()

	query, args, err := s.builder.
		Update("businesses").
		SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	start := time.Now()
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.log.Error("business update failed", "id", id, "error", err)
		return nil, domain.NewBackendError("update business", err)
	}
	s.recordQuery("business_update", start)
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, domain.NewNotFoundError("business")
	}

	s.invalidateBusinessCache(ctx)

	// Read back directly rather than through GetBusinessByID: a mutation
	// response must reflect the row that was written, never sample data.
	b, err := s.queryBusinessByID(ctx, id)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("business")
	}
	if err != nil {
		s.log.Error("failed loading updated business", "id", id, "error", err)
		return nil, domain.NewBackendError("load updated business", err)
	}
	return b, nil
}

// ExpireFeaturedListings clears the stored is_featured flag on listings
// whose featured window has passed. featured_until is the single source of
// truth; this sweep keeps the denormalized flag honest for ordering.
func (s *Store) ExpireFeaturedListings(ctx context.Context) (int64, error) {
	if s.backend == BackendNone || s.db == nil {
		return 0, nil
	}

	query, args, err := s.builder.
		Update("businesses").
		Set("is_featured", false).
		Set("updated_at", s.now().UTC()).
		Where(sq.Eq{"is_featured": true}).
		Where(sq.NotEq{"featured_until": nil}).
		Where(sq.Lt{"featured_until": s.now().UTC()}).
		ToSql()
	if err != nil {
		return 0, domain.NewInternalError(err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, domain.NewBackendError("expire featured listings", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	if n > 0 {
		s.invalidateBusinessCache(ctx)
	}
	return n, nil
}

func (s *Store) queryBusinesses(ctx context.Context, filter models.BusinessFilter) (models.BusinessList, error) {
	defer s.recordQuery("business_search", time.Now())

	conds := businessConds(filter)

	countQuery := s.builder.Select("COUNT(*)").From("businesses")
	for _, c := range conds {
		countQuery = countQuery.Where(c)
	}
	query, args, err := countQuery.ToSql()
	if err != nil {
		return models.BusinessList{}, err
	}

	var total int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return models.BusinessList{}, err
	}

	selectQuery := s.builder.Select(businessColumns...).From("businesses")
	for _, c := range conds {
		selectQuery = selectQuery.Where(c)
	}
	selectQuery = selectQuery.
		OrderBy("is_featured DESC", "rating DESC", "reviews DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	query, args, err = selectQuery.ToSql()
	if err != nil {
		return models.BusinessList{}, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return models.BusinessList{}, err
	}
	defer rows.Close()

	businesses := []models.Business{}
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return models.BusinessList{}, err
		}
		businesses = append(businesses, *b)
	}
	if err := rows.Err(); err != nil {
		return models.BusinessList{}, err
	}

	return models.BusinessList{
		Businesses: businesses,
		Total:      total,
		Source:     s.source(),
	}, nil
}

func (s *Store) queryBusinessByID(ctx context.Context, id string) (*models.Business, error) {
	defer s.recordQuery("business_by_id", time.Now())

	query, args, err := s.builder.
		Select(businessColumns...).
		From("businesses").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanBusiness(s.db.QueryRowContext(ctx, query, args...))
}

func businessConds(filter models.BusinessFilter) []sq.Sqlizer {
	var conds []sq.Sqlizer
	if filter.Category != "" {
		conds = append(conds, sq.Eq{"category": filter.Category})
	}
	if filter.City != "" {
		conds = append(conds, sq.Eq{"city": filter.City})
	}
	if filter.State != "" {
		conds = append(conds, sq.Eq{"state": filter.State})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"description": pattern},
			sq.ILike{"category": pattern},
		})
	}
	if filter.IsFeatured != nil {
		conds = append(conds, sq.Eq{"is_featured": *filter.IsFeatured})
	}
	if filter.IsVerified != nil {
		conds = append(conds, sq.Eq{"is_verified": *filter.IsVerified})
	}
	return conds
}

func businessSetMap(update models.BusinessUpdate) map[string]interface{} {
	set := map[string]interface{}{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Website != nil {
		set["website"] = *update.Website
	}
	if update.LogoURL != nil {
		set["logo_url"] = *update.LogoURL
	}
	if update.CoverImage != nil {
		set["cover_image"] = *update.CoverImage
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}
	if update.City != nil {
		set["city"] = *update.City
	}
	if update.State != nil {
		set["state"] = models.NormalizeState(*update.State)
	}
	if update.Zipcode != nil {
		set["zipcode"] = *update.Zipcode
	}
	if update.Rating != nil {
		set["rating"] = *update.Rating
	}
	if update.Reviews != nil {
		set["reviews"] = *update.Reviews
	}
	if update.IsFeatured != nil {
		set["is_featured"] = *update.IsFeatured
	}
	if update.IsVerified != nil {
		set["is_verified"] = *update.IsVerified
	}
	if update.IsClaimed != nil {
		set["is_claimed"] = *update.IsClaimed
	}
	if update.FeaturedUntil != nil {
		set["featured_until"] = *update.FeaturedUntil
	}
	if update.PriceRange != nil {
		set["price_range"] = *update.PriceRange
	}
	if update.YearsInBusiness != nil {
		set["years_in_business"] = *update.YearsInBusiness
	}
	if update.LicenseNumber != nil {
		set["license_number"] = *update.LicenseNumber
	}
	if update.Insurance != nil {
		set["insurance"] = *update.Insurance
	}
	if update.Services != nil {
		set["services"] = marshalJSON(*update.Services)
	}
	if update.ServiceAreas != nil {
		set["service_areas"] = marshalJSON(*update.ServiceAreas)
	}
	if update.Hours != nil {
		set["hours"] = marshalJSON(*update.Hours)
	}
	if update.OwnerName != nil {
		set["owner_name"] = *update.OwnerName
	}
	if update.OwnerEmail != nil {
		set["owner_email"] = *update.OwnerEmail
	}
	if update.OwnerPhone != nil {
		set["owner_phone"] = *update.OwnerPhone
	}
	return set
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBusiness(row rowScanner) (*models.Business, error) {
	var (
		b             models.Business
		description   sql.NullString
		website       sql.NullString
		logoURL       sql.NullString
		coverImage    sql.NullString
		address       sql.NullString
		zipcode       sql.NullString
		latitude      sql.NullFloat64
		longitude     sql.NullFloat64
		featuredUntil sql.NullTime
		priceRange    sql.NullString
		yearsInBiz    sql.NullInt64
		license       sql.NullString
		insurance     sql.NullString
		services      []byte
		serviceAreas  []byte
		hours         []byte
		ownerName     sql.NullString
		ownerEmail    sql.NullString
		ownerPhone    sql.NullString
	)

	err := row.Scan(
		&b.ID, &b.Name, &b.Category, &description, &website, &logoURL, &coverImage,
		&address, &b.City, &b.State, &zipcode, &latitude, &longitude,
		&b.Rating, &b.Reviews, &b.IsFeatured, &b.IsVerified, &b.IsClaimed, &featuredUntil,
		&priceRange, &yearsInBiz, &license, &insurance,
		&services, &serviceAreas, &hours,
		&ownerName, &ownerEmail, &ownerPhone, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Description = description.String
	b.Website = website.String
	b.LogoURL = logoURL.String
	b.CoverImage = coverImage.String
	b.Address = address.String
	b.Zipcode = zipcode.String
	if latitude.Valid {
		b.Latitude = &latitude.Float64
	}
	if longitude.Valid {
		b.Longitude = &longitude.Float64
	}
	if featuredUntil.Valid {
		t := featuredUntil.Time
		b.FeaturedUntil = &t
	}
	b.PriceRange = priceRange.String
	b.YearsInBusiness = int(yearsInBiz.Int64)
	b.LicenseNumber = license.String
	b.Insurance = insurance.String
	b.OwnerName = ownerName.String
	b.OwnerEmail = ownerEmail.String
	b.OwnerPhone = ownerPhone.String

	if len(services) > 0 {
		_ = json.Unmarshal(services, &b.Services)
	}
	if len(serviceAreas) > 0 {
		_ = json.Unmarshal(serviceAreas, &b.ServiceAreas)
	}
	if len(hours) > 0 {
		_ = json.Unmarshal(hours, &b.Hours)
	}

	return &b, nil
}

func (s *Store) source() models.Source {
	switch s.backend {
	case BackendNeon:
		return models.SourceNeon
	case BackendSupabase:
		return models.SourceSupabase
	default:
		return models.SourceSample
	}
}

// sortBusinesses orders in-memory results the same way the SQL path does:
// featured first, then rating, then review count, all descending.
func sortBusinesses(businesses []models.Business) {
	sort.SliceStable(businesses, func(i, j int) bool {
		a, b := businesses[i], businesses[j]
		if a.IsFeatured != b.IsFeatured {
			return a.IsFeatured
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.Reviews > b.Reviews
	})
}

func businessCacheKey(filter models.BusinessFilter) string {
	return fmt.Sprintf("businesses:search:%s:%s:%s:%s:%s:%s:%d:%d",
		filter.Category, filter.City, filter.State, filter.Search,
		boolPtrKey(filter.IsFeatured), boolPtrKey(filter.IsVerified),
		filter.Limit, filter.Offset)
}

func boolPtrKey(b *bool) string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("%t", *b)
}
