package store

import (
	"strings"
	"time"

	"github.com/dumpsterly/dumpsterly-api/pkg/models"
)

func ptr[T any](v T) *T { return &v }

var sampleCreatedAt = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// sampleBusinesses is the hand-authored zero-configuration dataset. It keeps
// directory pages rendering when no database backend is reachable.
var sampleBusinesses = []models.Business{
	{
		ID:              "sample-1",
		Name:            "Rocky Mountain Dumpster Rental",
		Category:        "Dumpster Rental",
		Description:     "Family-owned roll-off dumpster rental serving the Denver metro since 2009. Same-day delivery on 10-40 yard containers.",
		Website:         "https://rockymountaindumpsters.example.com",
		Address:         "4821 Brighton Blvd",
		City:            "Denver",
		State:           "CO",
		Zipcode:         "80216",
		Latitude:        ptr(39.7817),
		Longitude:       ptr(-104.9715),
		Rating:          4.9,
		Reviews:         312,
		IsFeatured:      true,
		IsVerified:      true,
		IsClaimed:       true,
		PriceRange:      "$$",
		YearsInBusiness: 15,
		Insurance:       "General liability, $2M",
		Services:        []string{"10 Yard Dumpster", "20 Yard Dumpster", "30 Yard Dumpster", "40 Yard Dumpster"},
		ServiceAreas:    []string{"Denver", "Aurora", "Lakewood", "80216", "80202"},
		Hours: map[string]models.DayHours{
			"monday": {Open: "07:00", Close: "18:00"}, "saturday": {Open: "08:00", Close: "14:00"},
			"sunday": {Closed: true},
		},
		OwnerName:  "Mike Herrera",
		OwnerEmail: "mike@rockymountaindumpsters.example.com",
		CreatedAt:  sampleCreatedAt,
		UpdatedAt:  sampleCreatedAt,
	},
	{
		ID:              "sample-2",
		Name:            "Mile High Waste Solutions",
		Category:        "Dumpster Rental",
		Description:     "Commercial and residential roll-off service. Construction debris, roofing tear-offs, estate cleanouts.",
		City:            "Denver",
		State:           "CO",
		Zipcode:         "80014",
		Rating:          4.7,
		Reviews:         189,
		IsVerified:      true,
		PriceRange:      "$$",
		YearsInBusiness: 8,
		Services:        []string{"15 Yard Dumpster", "20 Yard Dumpster", "30 Yard Dumpster"},
		ServiceAreas:    []string{"Denver", "Centennial", "Parker"},
		CreatedAt:       sampleCreatedAt,
		UpdatedAt:       sampleCreatedAt,
	},
	{
		ID:              "sample-3",
		Name:            "Lone Star Roll-Off",
		Category:        "Dumpster Rental",
		Description:     "Austin's highest-rated dumpster rental. Flat-rate pricing, no hidden fees, 7-day rental periods standard.",
		City:            "Austin",
		State:           "TX",
		Zipcode:         "78744",
		Latitude:        ptr(30.1975),
		Longitude:       ptr(-97.7405),
		Rating:          4.8,
		Reviews:         256,
		IsFeatured:      true,
		IsVerified:      true,
		IsClaimed:       true,
		PriceRange:      "$$",
		YearsInBusiness: 11,
		Services:        []string{"10 Yard Dumpster", "20 Yard Dumpster", "30 Yard Dumpster"},
		ServiceAreas:    []string{"Austin", "Round Rock", "Pflugerville"},
		OwnerName:       "Dana Whitfield",
		OwnerEmail:      "dana@lonestarrolloff.example.com",
		CreatedAt:       sampleCreatedAt,
		UpdatedAt:       sampleCreatedAt,
	},
	{
		ID:           "sample-4",
		Name:         "Capital City Junk Removal",
		Category:     "Junk Removal",
		Description:  "Full-service junk removal and hauling. We do the loading so you don't have to.",
		City:         "Austin",
		State:        "TX",
		Zipcode:      "78701",
		Rating:       4.5,
		Reviews:      98,
		PriceRange:   "$$$",
		Services:     []string{"Furniture Removal", "Appliance Removal", "Yard Waste"},
		ServiceAreas: []string{"Austin"},
		CreatedAt:    sampleCreatedAt,
		UpdatedAt:    sampleCreatedAt,
	},
	{
		ID:              "sample-5",
		Name:            "Sunshine State Dumpsters",
		Category:        "Dumpster Rental",
		Description:     "Roll-off containers across Tampa Bay. Hurricane cleanup specialists, permitted for street placement.",
		City:            "Tampa",
		State:           "FL",
		Zipcode:         "33605",
		Rating:          4.6,
		Reviews:         143,
		IsVerified:      true,
		PriceRange:      "$",
		YearsInBusiness: 6,
		Services:        []string{"10 Yard Dumpster", "15 Yard Dumpster", "20 Yard Dumpster"},
		ServiceAreas:    []string{"Tampa", "St. Petersburg", "Clearwater"},
		CreatedAt:       sampleCreatedAt,
		UpdatedAt:       sampleCreatedAt,
	},
	{
		ID:           "sample-6",
		Name:         "Bay Area Hauling Co",
		Category:     "Dumpster Rental",
		Description:  "Small-footprint dumpsters for tight driveways. Driveway-safe wheels on every container.",
		City:         "Tampa",
		State:        "FL",
		Zipcode:      "33609",
		Rating:       4.2,
		Reviews:      57,
		PriceRange:   "$",
		Services:     []string{"10 Yard Dumpster", "15 Yard Dumpster"},
		ServiceAreas: []string{"Tampa"},
		CreatedAt:    sampleCreatedAt,
		UpdatedAt:    sampleCreatedAt,
	},
}

// sampleBusinessList filters and orders the sample dataset in memory with
// the same semantics as the SQL path
func (s *Store) sampleBusinessList(filter models.BusinessFilter, degraded string) models.BusinessList {
	matched := filterSampleBusinesses(filter)
	sortBusinesses(matched)
	total := len(matched)

	// Pagination after ordering, mirroring LIMIT/OFFSET
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			matched = []models.Business{}
		} else {
			matched = matched[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	return models.BusinessList{
		Businesses: matched,
		Total:      total,
		Source:     models.SourceSample,
		Degraded:   degraded,
	}
}

func filterSampleBusinesses(filter models.BusinessFilter) []models.Business {
	matched := []models.Business{}
	for _, b := range sampleBusinesses {
		if filter.Category != "" && b.Category != filter.Category {
			continue
		}
		if filter.City != "" && b.City != filter.City {
			continue
		}
		if filter.State != "" && b.State != filter.State {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			haystack := strings.ToLower(b.Name + " " + b.Description + " " + b.Category)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		if filter.IsFeatured != nil && b.IsFeatured != *filter.IsFeatured {
			continue
		}
		if filter.IsVerified != nil && b.IsVerified != *filter.IsVerified {
			continue
		}
		matched = append(matched, b)
	}
	return matched
}

func sampleBusinessByID(id string) *models.Business {
	for _, b := range sampleBusinesses {
		if b.ID == id {
			copy := b
			return &copy
		}
	}
	return nil
}
