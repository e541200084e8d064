package view

import (
	"net/url"

	"github.com/vidsponential/website/internal/dataapi"
)

// AllNiches is the filter value that shows every script.
const AllNiches = "all"

// FilterControl is one button in the portfolio filter bar.
type FilterControl struct {
	Slug   string
	Label  string
	Active bool
	// Href is the pre-rendered page for this filter, used when the
	// in-place update is unavailable.
	Href string
}

// Filter tracks the selected portfolio niche. A Filter belongs to a single
// page render and is not safe for concurrent use.
type Filter struct {
	niches  []dataapi.Niche
	loaded  bool
	current string
}

// NewFilter returns a filter whose requested selection is slug. The
// selection is resolved once niches are set.
func NewFilter(slug string) *Filter {
	if slug == "" {
		slug = AllNiches
	}
	return &Filter{current: slug}
}

// SetNiches supplies the niche list and resolves the requested selection.
// An unknown slug falls back to all niches.
func (f *Filter) SetNiches(niches []dataapi.Niche) {
	f.niches = niches
	f.loaded = true
	if _, ok := f.lookup(f.current); !ok {
		f.current = AllNiches
	}
}

// Loaded reports whether the niche list is available.
func (f *Filter) Loaded() bool { return f.loaded }

// Current returns AllNiches or the selected slug.
func (f *Filter) Current() string {
	if !f.loaded {
		return AllNiches
	}
	return f.current
}

// NicheID returns the id of the selected niche, or nil for all niches.
func (f *Filter) NicheID() *int64 {
	if !f.loaded || f.current == AllNiches {
		return nil
	}
	n, ok := f.lookup(f.current)
	if !ok {
		return nil
	}
	id := n.ID
	return &id
}

// Select changes the selection and returns the niche id to query scripts
// with. It is a no-op returning ok=false when niches have not loaded.
func (f *Filter) Select(slug string) (nicheID *int64, ok bool) {
	if !f.loaded {
		return nil, false
	}
	if _, found := f.lookup(slug); !found {
		slug = AllNiches
	}
	f.current = slug
	return f.NicheID(), true
}

// Controls returns the filter bar: an "All" control followed by one per
// niche. Exactly one control is active.
func (f *Filter) Controls() []FilterControl {
	current := f.Current()
	controls := make([]FilterControl, 0, len(f.niches)+1)
	controls = append(controls, FilterControl{
		Slug:   AllNiches,
		Label:  "All",
		Active: current == AllNiches,
		Href:   "/portfolio/",
	})
	if !f.loaded {
		return controls
	}
	for _, n := range f.niches {
		controls = append(controls, FilterControl{
			Slug:   n.Slug,
			Label:  n.Name,
			Active: n.Slug == current,
			Href:   "/portfolio/" + url.PathEscape(n.Slug) + "/",
		})
	}
	return controls
}

func (f *Filter) lookup(slug string) (dataapi.Niche, bool) {
	if slug == AllNiches || slug == "" {
		return dataapi.Niche{}, false
	}
	for _, n := range f.niches {
		if n.Slug == slug {
			return n, true
		}
	}
	return dataapi.Niche{}, false
}
