package catalog

import "strings"

// Filter narrows a Listing. Nil bounds are open and all bounds are inclusive.
// U bounds apply to materials and openings, density bounds to materials only.
// Query matches key or name, case-insensitively, in every section.
type Filter struct {
	UMin, UMax             *float64
	DensityMin, DensityMax *float64
	Query                  string
}

func within(v float64, lo, hi *float64) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}

func (f Filter) matches(key, name string) bool {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(key), q) || strings.Contains(strings.ToLower(name), q)
}

func (f Filter) material(e MaterialEntry) bool {
	return within(e.U, f.UMin, f.UMax) && within(e.Density, f.DensityMin, f.DensityMax) && f.matches(e.Key, e.Name)
}

func (f Filter) opening(e OpeningEntry) bool {
	return within(e.U, f.UMin, f.UMax) && f.matches(e.Key, e.Name)
}

func (f Filter) hvac(e HVACEntry) bool {
	return f.matches(e.Key, e.Name)
}
