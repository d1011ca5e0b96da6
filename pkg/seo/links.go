package seo

import (
	"strings"

	"github.com/dumpsterly/dumpsterly-api/pkg/models"
)

// Breadcrumb is one entry in a page's breadcrumb trail. Path is
// site-relative; structured-data assembly prefixes the site URL.
type Breadcrumb struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Breadcrumbs builds the page-type breadcrumb chain, always rooted at Home
func (e *Engine) Breadcrumbs(ctx PageContext) []Breadcrumb {
	crumbs := []Breadcrumb{{Name: "Home", Path: "/"}}

	switch ctx.PageType {
	case PageLocation:
		crumbs = append(crumbs, Breadcrumb{Name: "Locations", Path: "/locations"})
		if ctx.State != "" {
			crumbs = append(crumbs, Breadcrumb{Name: models.StateName(ctx.State), Path: "/" + slugify(ctx.State)})
			if ctx.City != "" {
				crumbs = append(crumbs, Breadcrumb{
					Name: ctx.City,
					Path: "/" + slugify(ctx.State) + "/" + slugify(ctx.City),
				})
			}
		}
	case PageService:
		crumbs = append(crumbs, Breadcrumb{Name: "Services", Path: "/services"})
		if ctx.Service != "" {
			crumbs = append(crumbs, Breadcrumb{Name: ctx.Service, Path: "/services/" + slugify(ctx.Service)})
		}
	case PageSize:
		crumbs = append(crumbs, Breadcrumb{Name: "Dumpster Sizes", Path: "/dumpster-sizes"})
		if ctx.Size != "" {
			crumbs = append(crumbs, Breadcrumb{Name: ctx.Size, Path: "/dumpster-sizes/" + slugify(ctx.Size)})
		}
	case PageGuide:
		crumbs = append(crumbs, Breadcrumb{Name: "Guides", Path: "/guides"})
	case PageBlog:
		crumbs = append(crumbs, Breadcrumb{Name: "Blog", Path: "/blog"})
	case PageAbout:
		crumbs = append(crumbs, Breadcrumb{Name: "About", Path: "/about"})
	case PageContact:
		crumbs = append(crumbs, Breadcrumb{Name: "Contact", Path: "/contact"})
	}

	return crumbs
}

// GenerateInternalLinks suggests internal links for the page body. An
// absent internal-linking config disables suggestions entirely.
func (e *Engine) GenerateInternalLinks(ctx PageContext) []InternalLink {
	linking := e.config().InternalLinking
	if linking == nil {
		return []InternalLink{}
	}

	var links []InternalLink

	if ctx.PageType != PageHome {
		for _, pillar := range linking.PillarPages {
			if len(pillar.AnchorTexts) == 0 {
				continue
			}
			links = append(links, InternalLink{
				URL:    pillar.URL,
				Anchor: pillar.AnchorTexts[0],
			})
		}
	}

	switch ctx.PageType {
	case PageService:
		for _, rule := range linking.ContextualRules {
			if len(rule.AnchorTexts) == 0 {
				continue
			}
			links = append(links, InternalLink{
				URL:     rule.LinkTo,
				Anchor:  rule.AnchorTexts[0],
				Context: rule.WhenMentioning,
			})
		}
	case PageLocation:
		if ctx.City != "" && ctx.State != "" {
			links = append(links,
				InternalLink{
					URL:    "/" + slugify(ctx.State),
					Anchor: "Dumpster rental in " + models.StateName(ctx.State),
				},
				InternalLink{
					URL:    "/" + slugify(ctx.State) + "/" + slugify(ctx.City) + "/services",
					Anchor: "All services in " + strings.TrimSpace(ctx.City),
				},
			)
		}
	}

	if links == nil {
		return []InternalLink{}
	}
	return links
}
