package models

import "time"

// DayHours describes one day of a business schedule
type DayHours struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// Business represents a service-provider listing
type Business struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
	CoverImage  string `json:"cover_image,omitempty"`

	Address   string   `json:"address,omitempty"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Zipcode   string   `json:"zipcode,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Rating  float64 `json:"rating"`
	Reviews int     `json:"reviews"`

	IsFeatured    bool       `json:"is_featured"`
	IsVerified    bool       `json:"is_verified"`
	IsClaimed     bool       `json:"is_claimed"`
	FeaturedUntil *time.Time `json:"featured_until,omitempty"`

	PriceRange      string              `json:"price_range,omitempty"`
	YearsInBusiness int                 `json:"years_in_business,omitempty"`
	LicenseNumber   string              `json:"license_number,omitempty"`
	Insurance       string              `json:"insurance,omitempty"`
	Services        []string            `json:"services,omitempty"`
	ServiceAreas    []string            `json:"service_areas,omitempty"`
	Hours           map[string]DayHours `json:"hours,omitempty"`

	OwnerName  string `json:"owner_name,omitempty"`
	OwnerEmail string `json:"owner_email,omitempty"`
	OwnerPhone string `json:"owner_phone,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeaturedNow reports whether the listing is currently featured. The stored
// is_featured flag alone is not trusted: featured status requires an
// unexpired featured_until timestamp.
func (b *Business) FeaturedNow(now time.Time) bool {
	return b.IsFeatured && b.FeaturedUntil != nil && b.FeaturedUntil.After(now)
}

// BusinessFilter narrows a business listing query. Category, city and state
// are exact matches; search is a case-insensitive substring over
// name/description/category. State accepts full names and normalizes them to
// two-letter codes at the boundary.
type BusinessFilter struct {
	Category   string `query:"category"`
	City       string `query:"city"`
	State      string `query:"state"`
	Search     string `query:"search"`
	IsFeatured *bool  `query:"is_featured"`
	IsVerified *bool  `query:"is_verified"`
	Limit      int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset     int    `query:"offset" validate:"omitempty,min=0"`
}

// BusinessInput carries fields for creating a business listing
type BusinessInput struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty" validate:"omitempty,url"`
	LogoURL     string `json:"logo_url,omitempty"`
	CoverImage  string `json:"cover_image,omitempty"`

	Address   string   `json:"address,omitempty"`
	City      string   `json:"city" validate:"required"`
	State     string   `json:"state" validate:"required"`
	Zipcode   string   `json:"zipcode,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	PriceRange      string              `json:"price_range,omitempty"`
	YearsInBusiness int                 `json:"years_in_business,omitempty"`
	LicenseNumber   string              `json:"license_number,omitempty"`
	Insurance       string              `json:"insurance,omitempty"`
	Services        []string            `json:"services,omitempty"`
	ServiceAreas    []string            `json:"service_areas,omitempty"`
	Hours           map[string]DayHours `json:"hours,omitempty"`

	OwnerName  string `json:"owner_name,omitempty"`
	OwnerEmail string `json:"owner_email,omitempty" validate:"omitempty,email"`
	OwnerPhone string `json:"owner_phone,omitempty"`
}

// BusinessUpdate carries optional fields for a partial listing update.
// Nil fields are left untouched.
type BusinessUpdate struct {
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	Website     *string `json:"website,omitempty" validate:"omitempty,url"`
	LogoURL     *string `json:"logo_url,omitempty"`
	CoverImage  *string `json:"cover_image,omitempty"`

	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	Zipcode *string `json:"zipcode,omitempty"`

	Rating  *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	Reviews *int     `json:"reviews,omitempty" validate:"omitempty,min=0"`

	IsFeatured    *bool      `json:"is_featured,omitempty"`
	IsVerified    *bool      `json:"is_verified,omitempty"`
	IsClaimed     *bool      `json:"is_claimed,omitempty"`
	FeaturedUntil *time.Time `json:"featured_until,omitempty"`

	PriceRange      *string              `json:"price_range,omitempty"`
	YearsInBusiness *int                 `json:"years_in_business,omitempty"`
	LicenseNumber   *string              `json:"license_number,omitempty"`
	Insurance       *string              `json:"insurance,omitempty"`
	Services        *[]string            `json:"services,omitempty"`
	ServiceAreas    *[]string            `json:"service_areas,omitempty"`
	Hours           *map[string]DayHours `json:"hours,omitempty"`

	OwnerName  *string `json:"owner_name,omitempty"`
	OwnerEmail *string `json:"owner_email,omitempty" validate:"omitempty,email"`
	OwnerPhone *string `json:"owner_phone,omitempty"`
}
