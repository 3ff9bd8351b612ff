package regions

import "sort"

// All is the no-restriction marker. Selecting it (or selecting nothing)
// means "every state", expressed as an empty state set.
const All = "All"

// Regions overlap on purpose: a coastal state like NY belongs to both
// North and East. Resolution takes the union, never a partition.
var regionStates = map[string][]string{
	"North": {"CT", "ME", "MA", "NH", "NJ", "NY", "PA", "RI", "VT", "MI", "MN", "WI", "IA", "ND", "SD", "NE", "OH", "IL", "IN"},
	"South": {"AL", "AR", "FL", "GA", "KY", "LA", "MS", "NC", "OK", "SC", "TN", "TX", "VA", "WV", "MD", "DE", "DC"},
	"East":  {"CT", "DE", "DC", "FL", "GA", "MA", "MD", "ME", "NC", "NH", "NJ", "NY", "PA", "RI", "SC", "VA", "VT"},
	"West":  {"AK", "AZ", "CA", "CO", "HI", "ID", "MT", "NM", "NV", "OR", "UT", "WA", "WY"},
}

// Names returns the closed set of selectable region names, All first.
func Names() []string {
	return []string{All, "North", "South", "East", "West"}
}

// StatesForRegions resolves a list of region names to the set of state codes
// belonging to at least one of them, deduplicated and sorted.
//
// An empty result means "no state filter" and must be treated as
// unrestricted by callers, never as "match zero states". That is what gets
// returned for an empty selection or any selection containing All.
// Unknown region names contribute no states.
func StatesForRegions(selected []string) []string {
	if len(selected) == 0 {
		return nil
	}
	for _, name := range selected {
		if name == All {
			return nil
		}
	}

	set := map[string]struct{}{}
	for _, name := range selected {
		for _, code := range regionStates[name] {
			set[code] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for code := range set {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
