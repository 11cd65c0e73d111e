package nopost

import (
	"sort"
	"strings"
	"time"

	resourcemodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/resource"
)

// NoPostList is the set of rooms a company has blocked from posting charges.
// Stored comma-joined, exposed as a list.
type NoPostList struct {
	ID        int64     `json:"id"`
	CompanyID string    `json:"company_id"`
	Items     []string  `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromDataModel(n *resourcemodel.NoPostList) *NoPostList {
	return &NoPostList{
		ID:        n.ID,
		CompanyID: n.CompanyID,
		Items:     SplitItems(n.Items),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// SplitItems parses the stored comma-joined form back into a list.
func SplitItems(raw string) []string {
	items := make([]string, 0)
	for _, p := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(p); t != "" {
			items = append(items, t)
		}
	}
	return items
}

// NormalizeItems trims, drops empties, deduplicates and sorts a raw
// comma-separated input into the canonical stored form.
func NormalizeItems(raw string) string {
	seen := make(map[string]struct{})
	items := make([]string, 0)
	for _, p := range strings.Split(raw, ",") {
		t := strings.TrimSpace(p)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		items = append(items, t)
	}
	sort.Strings(items)
	return strings.Join(items, ",")
}
