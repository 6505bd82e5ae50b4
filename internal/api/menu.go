package api

// Section wire names, in display order.
const (
	SectionFeatures     = "features"
	SectionHowItWorks   = "how_it_works"
	SectionTestimonials = "testimonials"
	SectionPricing      = "pricing"
	SectionAuth         = "auth"
	SectionCTA          = "cta"
)

// SectionNames is the fixed set of menu sections in the order the landing
// page renders them.
var SectionNames = []string{
	SectionFeatures,
	SectionHowItWorks,
	SectionTestimonials,
	SectionPricing,
	SectionAuth,
	SectionCTA,
}

// MenuSection controls one landing page section. Visible only matters while
// Enabled is true.
type MenuSection struct {
	Enabled bool   `json:"enabled"`
	Visible bool   `json:"visible"`
	Title   string `json:"title"`
}

// MenuSettings is fetched and persisted as one object.
type MenuSettings struct {
	Features     MenuSection `json:"features"`
	HowItWorks   MenuSection `json:"how_it_works"`
	Testimonials MenuSection `json:"testimonials"`
	Pricing      MenuSection `json:"pricing"`
	Auth         MenuSection `json:"auth"`
	CTA          MenuSection `json:"cta"`
}

// Section returns a pointer to the named section so callers can mutate it
// in place. ok is false for unknown names.
func (m *MenuSettings) Section(name string) (s *MenuSection, ok bool) {
	switch name {
	case SectionFeatures:
		return &m.Features, true
	case SectionHowItWorks:
		return &m.HowItWorks, true
	case SectionTestimonials:
		return &m.Testimonials, true
	case SectionPricing:
		return &m.Pricing, true
	case SectionAuth:
		return &m.Auth, true
	case SectionCTA:
		return &m.CTA, true
	default:
		return nil, false
	}
}

// Each calls fn for every section in SectionNames order.
func (m *MenuSettings) Each(fn func(name string, s *MenuSection)) {
	for _, name := range SectionNames {
		s, _ := m.Section(name)
		fn(name, s)
	}
}

// DefaultMenuSettings returns every section enabled and visible.
func DefaultMenuSettings() MenuSettings {
	return MenuSettings{
		Features:     MenuSection{Enabled: true, Visible: true, Title: "Features"},
		HowItWorks:   MenuSection{Enabled: true, Visible: true, Title: "How It Works"},
		Testimonials: MenuSection{Enabled: true, Visible: true, Title: "Testimonials"},
		Pricing:      MenuSection{Enabled: true, Visible: true, Title: "Pricing"},
		Auth:         MenuSection{Enabled: true, Visible: true, Title: "Sign In"},
		CTA:          MenuSection{Enabled: true, Visible: true, Title: "Get Started"},
	}
}
