package project

import (
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// nameCollator orders names the way a locale-aware UI list does.
// Category ordering deliberately stays plain byte comparison; the two
// sorts have different comparison semantics.
var nameCollator = collate.New(language.Und)

// Filter returns the non-archived projects passing the category filter
// and search text. See FilterOptions for the matching rules. A project
// with no category never matches a non-empty search, but is selected by
// filtering on the "uncategorized" sentinel.
func Filter(projects []Project, opts FilterOptions) []Project {
	search := strings.ToLower(strings.TrimSpace(opts.Search))
	out := make([]Project, 0, len(projects))

	for _, p := range projects {
		if p.IsArchived {
			continue
		}
		if opts.Category != "" && opts.Category != CategoryAll {
			if p.NormalizedCategory() != opts.Category {
				continue
			}
		}
		if search != "" {
			name := strings.ToLower(p.Name)
			category := strings.ToLower(strings.TrimSpace(p.Category))
			if !strings.Contains(name, search) &&
				(category == "" || !strings.Contains(category, search)) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// SortProjects returns a copy of projects in the requested order. All
// three orderings are stable: ties keep their incoming relative order.
func SortProjects(projects []Project, option SortOption) []Project {
	out := slices.Clone(projects)
	switch option {
	case SortByNameAsc:
		slices.SortStableFunc(out, func(a, b Project) int {
			return nameCollator.CompareString(a.Name, b.Name)
		})
	case SortByCategoryAsc:
		slices.SortStableFunc(out, func(a, b Project) int {
			return strings.Compare(a.NormalizedCategory(), b.NormalizedCategory())
		})
	default: // SortByCreatedDesc
		slices.SortStableFunc(out, func(a, b Project) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
	return out
}

// CategoryGroup is one section of a grouped project listing.
type CategoryGroup struct {
	Category string    `json:"category"`
	Items    []Project `json:"items"`
}

// Group partitions projects by normalized category. Groups come back
// with labels ascending; items keep the incoming order, so callers
// group the output of SortProjects.
func Group(projects []Project) []CategoryGroup {
	byCategory := make(map[string][]Project)
	for _, p := range projects {
		key := p.NormalizedCategory()
		byCategory[key] = append(byCategory[key], p)
	}

	keys := make([]string, 0, len(byCategory))
	for key := range byCategory {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	groups := make([]CategoryGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, CategoryGroup{Category: key, Items: byCategory[key]})
	}
	return groups
}

// AvailableCategories returns the "all" sentinel followed by the sorted
// distinct non-empty categories among non-archived projects.
func AvailableCategories(projects []Project) []string {
	seen := make(map[string]struct{})
	for _, p := range projects {
		if p.IsArchived {
			continue
		}
		c := strings.TrimSpace(p.Category)
		if c == "" {
			continue
		}
		seen[c] = struct{}{}
	}

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	slices.Sort(categories)

	return append([]string{CategoryAll}, categories...)
}

// OverviewStats aggregates the whole collection for the overview and
// results views.
type OverviewStats struct {
	TotalProjects    int     `json:"total_projects"`
	ActiveProjects   int     `json:"active_projects"`
	ArchivedProjects int     `json:"archived_projects"`
	TotalProfit      float64 `json:"total_profit"`
	TotalLoss        float64 `json:"total_loss"`
	NetProfit        float64 `json:"net_profit"`
}

// Overview computes collection-level statistics. TotalProfit sums only
// positive amounts, TotalLoss is the absolute sum of negative amounts,
// NetProfit is the signed sum over archived projects.
func Overview(projects []Project) OverviewStats {
	stats := OverviewStats{TotalProjects: len(projects)}
	for _, p := range projects {
		if p.IsArchived {
			stats.ArchivedProjects++
		} else {
			stats.ActiveProjects++
		}
		if p.Profit == nil {
			continue
		}
		v := *p.Profit
		stats.NetProfit += v
		if v > 0 {
			stats.TotalProfit += v
		} else if v < 0 {
			stats.TotalLoss += math.Abs(v)
		}
	}
	return stats
}

// PickRandomActive returns a uniformly random non-archived project, or
// nil when there is none.
func PickRandomActive(projects []Project) *Project {
	active := make([]Project, 0, len(projects))
	for _, p := range projects {
		if !p.IsArchived {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return nil
	}
	pick := active[rand.IntN(len(active))]
	return &pick
}
