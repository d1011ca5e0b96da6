// Package seo synthesizes head metadata, JSON-LD structured data, and
// internal-link suggestions for directory pages from a small page-context
// descriptor plus a cached niche configuration. Generation is deterministic
// except for description formula and filler choices, which draw from an
// injected randomness source.
package seo

import (
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dumpsterly/dumpsterly-api/pkg/logger"
	"github.com/dumpsterly/dumpsterly-api/pkg/models"
)

// PageType enumerates the page archetypes the engine knows how to describe
type PageType string

const (
	PageHome     PageType = "home"
	PageLocation PageType = "location"
	PageService  PageType = "service"
	PageSize     PageType = "size"
	PageGuide    PageType = "guide"
	PageBlog     PageType = "blog"
	PageAbout    PageType = "about"
	PageContact  PageType = "contact"
)

// FAQ is one question/answer pair rendered verbatim into FAQPage
// structured data
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Review is a customer review feeding the aggregateRating block
type Review struct {
	Author string  `json:"author,omitempty"`
	Rating float64 `json:"rating"`
	Text   string  `json:"text,omitempty"`
}

// PageContext is the request-scoped descriptor the engine generates from.
// Title, Description, Keywords and Canonical are caller overrides used
// verbatim when set.
type PageContext struct {
	PageType PageType `json:"page_type" query:"page_type" validate:"required,oneof=home location service size guide blog about contact"`
	City     string   `json:"city,omitempty" query:"city"`
	State    string   `json:"state,omitempty" query:"state"`
	Service  string   `json:"service,omitempty" query:"service"`
	Size     string   `json:"size,omitempty" query:"size"`

	Title       string `json:"title,omitempty" query:"title"`
	Description string `json:"description,omitempty" query:"description"`
	Keywords    string `json:"keywords,omitempty" query:"keywords"`
	Canonical   string `json:"canonical,omitempty" query:"canonical"`
	Noindex     bool   `json:"noindex,omitempty" query:"noindex"`

	Latitude  *float64 `json:"latitude,omitempty" query:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" query:"longitude"`
	FAQs      []FAQ    `json:"faqs,omitempty"`
	Reviews   []Review `json:"reviews,omitempty"`
}

// OGImage is one Open Graph preview image reference
type OGImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Alt    string `json:"alt,omitempty"`
}

// OpenGraph is the og: block
type OpenGraph struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	SiteName    string    `json:"site_name"`
	Type        string    `json:"type"`
	Images      []OGImage `json:"images"`
}

// Twitter is the twitter card block
type Twitter struct {
	Card        string   `json:"card"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

// Alternates holds canonical and alternate URL hints
type Alternates struct {
	Canonical string `json:"canonical"`
}

// GoogleBotRules is the extended googlebot sub-policy
type GoogleBotRules struct {
	Index           bool   `json:"index"`
	Follow          bool   `json:"follow"`
	MaxVideoPreview int    `json:"max_video_preview"`
	MaxImagePreview string `json:"max_image_preview"`
	MaxSnippet      int    `json:"max_snippet"`
}

// Robots holds indexing directives
type Robots struct {
	Index     bool           `json:"index"`
	Follow    bool           `json:"follow"`
	GoogleBot GoogleBotRules `json:"googlebot"`
}

// InternalLink is one suggested internal link for the page body
type InternalLink struct {
	URL     string `json:"url"`
	Anchor  string `json:"anchor"`
	Context string `json:"context,omitempty"`
}

// Metadata is the full head-metadata object for one page
type Metadata struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Keywords    string           `json:"keywords"`
	OpenGraph   OpenGraph        `json:"open_graph"`
	Twitter     Twitter          `json:"twitter"`
	Alternates  Alternates       `json:"alternates"`
	Robots      Robots           `json:"robots"`
	Structured  []map[string]any `json:"structured_data"`
	Links       []InternalLink   `json:"internal_links"`
}

// Engine generates page metadata. Safe for concurrent use: the niche config
// is loaded once and immutable afterwards, and the randomness source is
// mutex-guarded.
type Engine struct {
	configDir string
	niche     string
	siteURL   string
	log       logger.Logger

	mu  sync.Mutex
	rng *rand.Rand

	once sync.Once
	cfg  *NicheConfig
}

// New creates an engine. rng may be nil, in which case a time-seeded source
// is used; tests pass a fixed-seed source to pin description output.
func New(configDir, niche, siteURL string, rng *rand.Rand, log logger.Logger) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = logger.Default()
	}
	return &Engine{
		configDir: configDir,
		niche:     niche,
		siteURL:   strings.TrimRight(siteURL, "/"),
		rng:       rng,
		log:       log,
	}
}

// config returns the niche configuration, loading it on first use. Load
// failures substitute the minimal default so generation never errors.
func (e *Engine) config() *NicheConfig {
	e.once.Do(func() {
		cfg, err := loadNicheConfig(e.configDir, e.niche)
		if err != nil {
			e.log.Warn("niche config unavailable, using defaults", "niche", e.niche, "error", err)
			cfg = defaultNicheConfig()
		}
		e.cfg = cfg
	})
	return e.cfg
}

// GenerateMetadata produces the complete head-metadata object for a page
func (e *Engine) GenerateMetadata(ctx PageContext) Metadata {
	title := e.GenerateTitle(ctx)
	description := e.GenerateDescription(ctx)
	canonical := e.canonicalURL(ctx)

	ogType := "article"
	if ctx.PageType == PageHome {
		ogType = "website"
	}

	robots := Robots{
		Index:  true,
		Follow: true,
		GoogleBot: GoogleBotRules{
			Index:           true,
			Follow:          true,
			MaxVideoPreview: -1,
			MaxImagePreview: "large",
			MaxSnippet:      -1,
		},
	}
	if ctx.Noindex {
		robots = Robots{Index: false, Follow: false}
	}

	return Metadata{
		Title:       title,
		Description: description,
		Keywords:    e.GenerateKeywords(ctx),
		OpenGraph: OpenGraph{
			Title:       title,
			Description: description,
			URL:         canonical,
			SiteName:    e.config().Brand.Name,
			Type:        ogType,
			Images: []OGImage{
				{URL: e.siteURL + "/og-image.jpg", Width: 1200, Height: 630, Alt: title},
			},
		},
		Twitter: Twitter{
			Card:        "summary_large_image",
			Title:       title,
			Description: description,
			Images:      []string{e.siteURL + "/twitter-image.jpg"},
		},
		Alternates: Alternates{Canonical: canonical},
		Robots:     robots,
		Structured: e.GenerateStructuredData(ctx),
		Links:      e.GenerateInternalLinks(ctx),
	}
}

// GenerateTitle builds the page title. An explicit override is used
// verbatim with no templating. Otherwise a formula is selected by the page
// type's primary token, substituted, and trimmed toward a soft 60-character
// budget.
func (e *Engine) GenerateTitle(ctx PageContext) string {
	if ctx.Title != "" {
		return ctx.Title
	}

	cfg := e.config()
	formulas := cfg.Templates.TitleFormulas
	if len(formulas) == 0 {
		formulas = []string{"{brand}"}
	}

	formula := formulas[0]
selection:
	for _, token := range primaryTokens(ctx.PageType) {
		for _, f := range formulas {
			if strings.Contains(f, token) {
				formula = f
				break selection
			}
		}
	}

	title := collapsePipes(substitute(formula, e.tokens(ctx)))

	// Best-effort budget: past 60 characters a three-segment title keeps
	// its first and last segments only.
	if len(title) > 60 {
		segments := splitPipes(title)
		if len(segments) >= 3 {
			title = segments[0] + " | " + segments[len(segments)-1]
		}
	}

	return title
}

// GenerateDescription builds the meta description. The formula is chosen
// uniformly at random from the configured list; filler tokens (modifier,
// benefit, CTA) are drawn independently. Output is hard-capped at 160
// characters.
func (e *Engine) GenerateDescription(ctx PageContext) string {
	if ctx.Description != "" {
		return ctx.Description
	}

	cfg := e.config()
	formulas := cfg.Templates.DescriptionFormulas
	if len(formulas) == 0 {
		formulas = []string{"{brand}. {benefit}. {cta}."}
	}

	e.mu.Lock()
	formula := formulas[e.rng.Intn(len(formulas))]
	tokens := e.tokens(ctx)
	tokens["modifier"] = pick(e.rng, cfg.Templates.Modifiers, defaultModifiers)
	tokens["benefit"] = pick(e.rng, cfg.Templates.Benefits, defaultBenefits)
	tokens["cta"] = pick(e.rng, cfg.Templates.CTAs, defaultCTAs)
	e.mu.Unlock()

	description := collapseWhitespace(substitute(formula, tokens))

	if runes := []rune(description); len(runes) > 160 {
		description = string(runes[:157]) + "..."
	}

	return description
}

// GenerateKeywords builds the comma-joined keyword list: up to three
// primary keywords, page-type derived keywords, up to two seed keywords,
// deduplicated and capped at ten entries.
func (e *Engine) GenerateKeywords(ctx PageContext) string {
	if ctx.Keywords != "" {
		return ctx.Keywords
	}

	cfg := e.config()
	noun := cfg.Keywords.NicheNoun
	if noun == "" {
		noun = "dumpster rental"
	}

	var keywords []string
	keywords = append(keywords, firstN(cfg.Keywords.Primary, 3)...)

	switch ctx.PageType {
	case PageLocation:
		if ctx.City != "" {
			city := strings.ToLower(ctx.City)
			keywords = append(keywords, city+" "+noun, noun+" "+city)
		}
		if ctx.State != "" {
			keywords = append(keywords, noun+" "+strings.ToLower(models.StateName(ctx.State)))
		}
	case PageService:
		if ctx.Service != "" {
			service := strings.ToLower(ctx.Service)
			keywords = append(keywords, service, service+" rental")
		}
	case PageSize:
		if ctx.Size != "" {
			size := strings.ToLower(ctx.Size)
			keywords = append(keywords, size+" dumpster", size+" container")
		}
	}

	keywords = append(keywords, firstN(cfg.Keywords.Seed, 2)...)

	seen := make(map[string]bool, len(keywords))
	deduped := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		deduped = append(deduped, kw)
		if len(deduped) == 10 {
			break
		}
	}

	return strings.Join(deduped, ", ")
}

// tokens builds the deterministic substitution map for a page context
func (e *Engine) tokens(ctx PageContext) map[string]string {
	cfg := e.config()

	primary := ""
	if len(cfg.Keywords.Primary) > 0 {
		primary = cfg.Keywords.Primary[0]
	}
	modifier := ""
	if len(cfg.Templates.Modifiers) > 0 {
		modifier = cfg.Templates.Modifiers[0]
	}

	return map[string]string{
		"brand":           cfg.Brand.Name,
		"primary_keyword": primary,
		"city":            ctx.City,
		"state":           ctx.State,
		"service":         ctx.Service,
		"size":            ctx.Size,
		"project_type":    ctx.Service,
		"modifier":        modifier,
		"phone":           cfg.Brand.Phone,
	}
}

// canonicalURL builds the absolute canonical URL, honoring an explicit
// override
func (e *Engine) canonicalURL(ctx PageContext) string {
	if ctx.Canonical != "" {
		return ctx.Canonical
	}
	return e.siteURL + canonicalPath(ctx)
}

func canonicalPath(ctx PageContext) string {
	switch ctx.PageType {
	case PageHome:
		return "/"
	case PageLocation:
		if ctx.City != "" && ctx.State != "" {
			return "/" + slugify(ctx.State) + "/" + slugify(ctx.City)
		}
		if ctx.State != "" {
			return "/" + slugify(ctx.State)
		}
		return "/"
	case PageService:
		if ctx.Service != "" {
			return "/services/" + slugify(ctx.Service)
		}
		return "/services"
	case PageSize:
		if ctx.Size != "" {
			return "/dumpster-sizes/" + slugify(ctx.Size)
		}
		return "/dumpster-sizes"
	default:
		return "/"
	}
}

// primaryTokens lists the tokens that mark a formula as written for the
// page type, in preference order. Service pages may template on either
// {service} or {project_type}.
func primaryTokens(pageType PageType) []string {
	switch pageType {
	case PageLocation:
		return []string{"{city}"}
	case PageService:
		return []string{"{service}", "{project_type}"}
	case PageSize:
		return []string{"{size}"}
	default:
		return nil
	}
}

var tokenPattern = regexp.MustCompile(`\{[a-z_]+\}`)

// substitute replaces {token} placeholders; unmatched tokens resolve to
// empty string
func substitute(formula string, tokens map[string]string) string {
	return tokenPattern.ReplaceAllStringFunc(formula, func(match string) string {
		return tokens[strings.Trim(match, "{}")]
	})
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// collapsePipes normalizes whitespace and drops empty pipe-delimited
// segments left behind by empty token substitutions
func collapsePipes(s string) string {
	return strings.Join(splitPipes(s), " | ")
}

func splitPipes(s string) []string {
	parts := strings.Split(s, "|")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = collapseWhitespace(p); p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

var (
	defaultModifiers = []string{"Affordable", "Fast", "Local", "Reliable"}
	defaultBenefits  = []string{
		"free delivery and pickup",
		"transparent flat-rate pricing",
		"same-day service available",
	}
	defaultCTAs = []string{
		"Get your free quote today",
		"Call now for instant pricing",
		"Book online in minutes",
	}
)

func pick(rng *rand.Rand, candidates, fallback []string) string {
	if len(candidates) == 0 {
		candidates = fallback
	}
	return candidates[rng.Intn(len(candidates))]
}

func firstN(list []string, n int) []string {
	if len(list) < n {
		n = len(list)
	}
	return list[:n]
}

var slugStrip = regexp.MustCompile(`[^a-z0-9-]`)

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = slugStrip.ReplaceAllString(s, "")
	return strings.Trim(s, "-")
}
