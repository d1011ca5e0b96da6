package seo

import (
	"fmt"
	"strings"

	"github.com/dumpsterly/dumpsterly-api/pkg/models"
)

// GenerateStructuredData assembles the JSON-LD objects for a page. Each
// entry is an independent schema.org object; callers render them as
// separate script tags.
func (e *Engine) GenerateStructuredData(ctx PageContext) []map[string]any {
	var data []map[string]any

	switch ctx.PageType {
	case PageHome, PageLocation:
		data = append(data, e.localBusiness(ctx))
	case PageService:
		data = append(data, e.serviceSchema(ctx))
	case PageSize:
		if product := e.productSchema(ctx); product != nil {
			data = append(data, product)
		}
	}

	if len(ctx.FAQs) > 0 {
		data = append(data, faqPage(ctx.FAQs))
	}

	if ctx.PageType != PageHome {
		data = append(data, e.breadcrumbList(ctx))
	}

	return data
}

// localBusiness builds the LocalBusiness block for home and location
// pages. City and state default to the configured home market; geo and
// aggregateRating blocks are included only when their inputs are present.
func (e *Engine) localBusiness(ctx PageContext) map[string]any {
	cfg := e.config()

	city := ctx.City
	if city == "" {
		city = cfg.Brand.City
	}
	state := ctx.State
	if state == "" {
		state = cfg.Brand.State
	}

	lat, lon := cfg.Brand.Latitude, cfg.Brand.Longitude
	if ctx.Latitude != nil && ctx.Longitude != nil {
		lat, lon = *ctx.Latitude, *ctx.Longitude
	}

	business := map[string]any{
		"@context":  "https://schema.org",
		"@type":     "LocalBusiness",
		"name":      cfg.Brand.Name,
		"url":       e.siteURL,
		"telephone": cfg.Brand.Phone,
		"address": map[string]any{
			"@type":           "PostalAddress",
			"addressLocality": city,
			"addressRegion":   state,
			"addressCountry":  "US",
		},
		"areaServed": map[string]any{
			"@type": "GeoCircle",
			"geoMidpoint": map[string]any{
				"@type":     "GeoCoordinates",
				"latitude":  lat,
				"longitude": lon,
			},
			"geoRadius": "50000",
		},
	}

	if ctx.Latitude != nil && ctx.Longitude != nil {
		business["geo"] = map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  *ctx.Latitude,
			"longitude": *ctx.Longitude,
		}
	}

	if len(ctx.Reviews) > 0 {
		var sum float64
		for _, r := range ctx.Reviews {
			sum += r.Rating
		}
		business["aggregateRating"] = map[string]any{
			"@type":       "AggregateRating",
			"ratingValue": fmt.Sprintf("%.1f", sum/float64(len(ctx.Reviews))),
			"reviewCount": len(ctx.Reviews),
			"bestRating":  "5",
		}
	}

	return business
}

// serviceSchema builds the Service block with an offer catalog drawn from
// configured product templates
func (e *Engine) serviceSchema(ctx PageContext) map[string]any {
	cfg := e.config()

	service := ctx.Service
	if service == "" {
		service = cfg.Keywords.NicheNoun
	}

	area := models.StateName(ctx.State)
	if area == "" {
		area = models.StateName(cfg.Brand.State)
	}

	schema := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Service",
		"name":        service,
		"serviceType": service,
		"provider": map[string]any{
			"@type": "LocalBusiness",
			"name":  cfg.Brand.Name,
			"url":   e.siteURL,
		},
		"areaServed": map[string]any{
			"@type": "State",
			"name":  area,
		},
	}

	if len(cfg.StructuredData.Products) > 0 {
		offers := make([]map[string]any, 0, len(cfg.StructuredData.Products))
		for _, p := range cfg.StructuredData.Products {
			offers = append(offers, map[string]any{
				"@type": "Offer",
				"itemOffered": map[string]any{
					"@type":       "Product",
					"name":        p.Name,
					"description": p.Description,
				},
			})
		}
		schema["hasOfferCatalog"] = map[string]any{
			"@type":           "OfferCatalog",
			"name":            cfg.Brand.Name + " " + cfg.Keywords.NicheNoun,
			"itemListElement": offers,
		}
	}

	return schema
}

// productSchema builds a Product block for size pages when a configured
// product template matches the requested size
func (e *Engine) productSchema(ctx PageContext) map[string]any {
	if ctx.Size == "" {
		return nil
	}

	cfg := e.config()
	size := strings.ToLower(ctx.Size)
	for _, p := range cfg.StructuredData.Products {
		if !strings.Contains(strings.ToLower(p.Name), size) {
			continue
		}
		return map[string]any{
			"@context":    "https://schema.org",
			"@type":       "Product",
			"name":        p.Name,
			"description": p.Description,
			"brand": map[string]any{
				"@type": "Brand",
				"name":  cfg.Brand.Name,
			},
		}
	}
	return nil
}

// faqPage renders question/answer pairs verbatim into a FAQPage block
func faqPage(faqs []FAQ) map[string]any {
	entities := make([]map[string]any, 0, len(faqs))
	for _, faq := range faqs {
		entities = append(entities, map[string]any{
			"@type": "Question",
			"name":  faq.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  faq.Answer,
			},
		})
	}
	return map[string]any{
		"@context":   "https://schema.org",
		"@type":      "FAQPage",
		"mainEntity": entities,
	}
}

// breadcrumbList builds the BreadcrumbList block from the page-type
// breadcrumb chain
func (e *Engine) breadcrumbList(ctx PageContext) map[string]any {
	crumbs := e.Breadcrumbs(ctx)

	items := make([]map[string]any, 0, len(crumbs))
	for i, crumb := range crumbs {
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     crumb.Name,
			"item":     e.siteURL + crumb.Path,
		})
	}

	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}
}
