package seo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternalLinks_MissingConfigDisables(t *testing.T) {
	engine := newTestEngine(t, `{"brand": {"name": "Dumpsterly"}}`)

	links := engine.GenerateInternalLinks(PageContext{PageType: PageService, Service: "Roofing"})

	assert.Empty(t, links)
	assert.NotNil(t, links, "empty list, not nil")
}

func TestInternalLinks_PillarPagesOnNonHome(t *testing.T) {
	engine := newTestEngine(t, testConfig)

	links := engine.GenerateInternalLinks(PageContext{PageType: PageGuide})

	require.Len(t, links, 1)
	assert.Equal(t, "/dumpster-sizes", links[0].URL)
	assert.Equal(t, "dumpster size guide", links[0].Anchor, "first anchor variant is used")
}

func TestInternalLinks_HomeSkipsPillarPages(t *testing.T) {
	engine := newTestEngine(t, testConfig)

	links := engine.GenerateInternalLinks(PageContext{PageType: PageHome})

	assert.Empty(t, links)
}

func TestInternalLinks_ServiceContextualRules(t *testing.T) {
	engine := newTestEngine(t, testConfig)

	links := engine.GenerateInternalLinks(PageContext{PageType: PageService, Service: "Roofing"})

	require.Len(t, links, 2, "pillar link plus contextual rule")
	assert.Equal(t, "/services/roofing-dumpster-rental", links[1].URL)
	assert.Equal(t, "roofing dumpster rental", links[1].Anchor)
	assert.Equal(t, "roofing", links[1].Context)
}

func TestInternalLinks_LocationWithCityAndState(t *testing.T) {
	engine := newTestEngine(t, testConfig)

	links := engine.GenerateInternalLinks(PageContext{PageType: PageLocation, City: "Denver", State: "CO"})

	require.Len(t, links, 3)
	assert.Equal(t, "/co", links[1].URL)
	assert.Equal(t, "Dumpster rental in Colorado", links[1].Anchor)
	assert.Equal(t, "/co/denver/services", links[2].URL)
}

func TestInternalLinks_LocationWithoutCityHasNoCityLinks(t *testing.T) {
	engine := newTestEngine(t, testConfig)

	links := engine.GenerateInternalLinks(PageContext{PageType: PageLocation, State: "CO"})

	require.Len(t, links, 1, "only the pillar link remains")
	assert.Equal(t, "/dumpster-sizes", links[0].URL)
}

func TestBreadcrumbs_LocationChain(t *testing.T) {
	engine := newTestEngine(t, testConfig)

	crumbs := engine.Breadcrumbs(PageContext{PageType: PageLocation, City: "Colorado Springs", State: "CO"})

	require.Len(t, crumbs, 4)
	assert.Equal(t, Breadcrumb{Name: "Home", Path: "/"}, crumbs[0])
	assert.Equal(t, Breadcrumb{Name: "Locations", Path: "/locations"}, crumbs[1])
	assert.Equal(t, Breadcrumb{Name: "Colorado", Path: "/co"}, crumbs[2])
	assert.Equal(t, Breadcrumb{Name: "Colorado Springs", Path: "/co/colorado-springs"}, crumbs[3])
}

func TestBreadcrumbs_ServiceChain(t *testing.T) {
	engine := newTestEngine(t, testConfig)

	crumbs := engine.Breadcrumbs(PageContext{PageType: PageService, Service: "Roofing"})

	require.Len(t, crumbs, 3)
	assert.Equal(t, "Services", crumbs[1].Name)
	assert.Equal(t, "/services/roofing", crumbs[2].Path)
}

func TestBreadcrumbs_HomeOnly(t *testing.T) {
	engine := newTestEngine(t, testConfig)

	crumbs := engine.Breadcrumbs(PageContext{PageType: PageHome})

	require.Len(t, crumbs, 1)
	assert.Equal(t, "Home", crumbs[0].Name)
}
