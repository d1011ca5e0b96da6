package seo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// BrandConfig identifies the site brand used in templated copy and
// structured data
type BrandConfig struct {
	Name      string  `json:"name"`
	Domain    string  `json:"domain"`
	Phone     string  `json:"phone"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// KeywordConfig holds the niche keyword lists. NicheNoun is the generic
// noun phrase for the vertical ("dumpster rental") used to derive
// page-specific keywords.
type KeywordConfig struct {
	Seed      []string `json:"seed"`
	Primary   []string `json:"primary"`
	NicheNoun string   `json:"niche_noun"`
}

// TemplateConfig holds title/description formula strings. Formulas contain
// {placeholder} tokens substituted at generation time; unknown tokens
// resolve to empty string.
type TemplateConfig struct {
	TitleFormulas       []string `json:"title_formulas"`
	DescriptionFormulas []string `json:"description_formulas"`
	Modifiers           []string `json:"modifiers"`
	Benefits            []string `json:"benefits"`
	CTAs                []string `json:"ctas"`
}

// ProductTemplate describes one entry of the structured-data offer catalog
type ProductTemplate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// StructuredDataConfig holds JSON-LD building blocks
type StructuredDataConfig struct {
	Products []ProductTemplate `json:"products"`
}

// PillarPage is a cornerstone page every non-home page should link up to
type PillarPage struct {
	URL         string   `json:"url"`
	AnchorTexts []string `json:"anchor_texts"`
}

// ContextualRule links a trigger phrase to a target page: when a page
// mentions the phrase, suggest linking to the target.
type ContextualRule struct {
	WhenMentioning string   `json:"when_mentioning"`
	LinkTo         string   `json:"link_to"`
	AnchorTexts    []string `json:"anchor_texts"`
}

// InternalLinkingConfig is the internal-linking rule set. A nil value
// disables link suggestion entirely.
type InternalLinkingConfig struct {
	PillarPages     []PillarPage     `json:"pillar_pages"`
	ContextualRules []ContextualRule `json:"contextual_rules"`
}

// NicheConfig drives all SEO template content for one business vertical.
// Loaded once per process and never reloaded.
type NicheConfig struct {
	Brand           BrandConfig            `json:"brand"`
	Keywords        KeywordConfig          `json:"keywords"`
	Templates       TemplateConfig         `json:"templates"`
	StructuredData  StructuredDataConfig   `json:"structured_data"`
	InternalLinking *InternalLinkingConfig `json:"internal_linking,omitempty"`
}

// loadNicheConfig reads <dir>/<niche>.json
func loadNicheConfig(dir, niche string) (*NicheConfig, error) {
	path := filepath.Join(dir, niche+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed reading niche config %s: %w", path, err)
	}

	var cfg NicheConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed parsing niche config %s: %w", path, err)
	}
	return &cfg, nil
}

// defaultNicheConfig is the minimal safe configuration substituted when the
// niche file is missing or corrupt. Every generation method still produces
// well-formed output from it.
func defaultNicheConfig() *NicheConfig {
	return &NicheConfig{
		Brand: BrandConfig{
			Name: "Dumpsterly",
		},
		Keywords: KeywordConfig{
			Seed:      []string{},
			Primary:   []string{},
			NicheNoun: "dumpster rental",
		},
		Templates: TemplateConfig{
			TitleFormulas:       []string{"{brand}"},
			DescriptionFormulas: []string{"{brand}. {cta}."},
		},
	}
}
