//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"fmt"
	"sort"
)

// StatsKind selects a statistics endpoint; the empty kind is the overview.
type StatsKind string

const (
	StatsOverview StatsKind = ""
	StatsUsers    StatsKind = "users"
	StatsLoads    StatsKind = "loads"
	StatsTrucks   StatsKind = "trucks"
	StatsBids     StatsKind = "bids"
)

// StatsKinds lists the per-entity statistics endpoints.
func StatsKinds() []StatsKind {
	return []StatsKind{StatsUsers, StatsLoads, StatsTrucks, StatsBids}
}

// Valid reports whether the kind is the overview or a known entity.
func (k StatsKind) Valid() bool {
	if k == StatsOverview {
		return true
	}
	for _, v := range StatsKinds() {
		if k == v {
			return true
		}
	}
	return false
}

// Title is the heading shown above the kind's statistics.
func (k StatsKind) Title() string {
	switch k {
	case StatsUsers:
		return "Users"
	case StatsLoads:
		return "Loads"
	case StatsTrucks:
		return "Trucks"
	case StatsBids:
		return "Bids"
	default:
		return "Overview"
	}
}

// Stats is a flat bag of named counters returned by the statistics endpoints.
type Stats map[string]any

// Metric is one displayable counter.
type Metric struct {
	Name  string
	Value string
}

// Metrics flattens the bag into name-sorted display rows. Nested objects are
// expanded as "parent.child".
func (s Stats) Metrics() []Metric {
	var out []Metric
	flattenStats("", s, &out)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func flattenStats(prefix string, in map[string]any, out *[]Metric) {
	for k, v := range in {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}
		switch tv := v.(type) {
		case map[string]any:
			flattenStats(name, tv, out)
		case float64:
			if tv == float64(int64(tv)) {
				*out = append(*out, Metric{Name: name, Value: fmt.Sprintf("%d", int64(tv))})
			} else {
				*out = append(*out, Metric{Name: name, Value: fmt.Sprintf("%.2f", tv)})
			}
		case nil:
			*out = append(*out, Metric{Name: name, Value: "-"})
		default:
			*out = append(*out, Metric{Name: name, Value: fmt.Sprint(tv)})
		}
	}
}

// SearchKind selects a search endpoint.
type SearchKind string

const (
	SearchUsers  SearchKind = "users"
	SearchLoads  SearchKind = "loads"
	SearchTrucks SearchKind = "trucks"
)

// Valid reports whether the search kind is supported.
func (k SearchKind) Valid() bool {
	switch k {
	case SearchUsers, SearchLoads, SearchTrucks:
		return true
	default:
		return false
	}
}
