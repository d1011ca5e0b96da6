package domain

import (
	"context"
	"time"

	"github.com/dumpsterly/dumpsterly-api/pkg/models"
)

// BusinessRepository defines data access operations for business listings.
// Reads never return an error: backend failures degrade to the sample
// dataset with provenance and a degraded reason on the result.
type BusinessRepository interface {
	GetBusinesses(ctx context.Context, filter models.BusinessFilter) models.BusinessList
	GetBusinessByID(ctx context.Context, id string) models.BusinessResult
	CreateBusiness(ctx context.Context, input models.BusinessInput) (*models.Business, error)
	UpdateBusiness(ctx context.Context, id string, update models.BusinessUpdate) (*models.Business, error)
}

// LeadRepository defines data access operations for quote-request leads
type LeadRepository interface {
	GetLeads(ctx context.Context, filter models.LeadFilter) models.LeadList
	CreateLead(ctx context.Context, input models.LeadInput) (*models.LeadCreateResult, error)
	UpdateLeadStatus(ctx context.Context, id, status string) (*models.LeadUpdateResult, error)
}

// CacheRepository defines caching operations
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
}
