package dataset

import (
	"math/rand"
	"sort"

	"traffic-dashboard-api/models"
)

// Table is the loaded traffic dataset, ordered newest first. It is read-only
// after construction; callers must not mutate the returned slices' records.
type Table struct {
	records []models.TrafficRecord
}

func (t *Table) Len() int {
	return len(t.records)
}

// Records returns all records, newest first.
func (t *Table) Records() []models.TrafficRecord {
	return t.records
}

// RoadTypes returns the distinct highway classifications, sorted.
func (t *Table) RoadTypes() []string {
	seen := make(map[string]struct{})
	var types []string
	for _, rec := range t.records {
		if _, ok := seen[rec.Highway]; ok {
			continue
		}
		seen[rec.Highway] = struct{}{}
		types = append(types, rec.Highway)
	}
	sort.Strings(types)
	return types
}

// Filter returns the records for one highway classification, preserving order.
// An empty highway returns the full table.
func (t *Table) Filter(highway string) []models.TrafficRecord {
	if highway == "" {
		return t.records
	}
	var out []models.TrafficRecord
	for _, rec := range t.records {
		if rec.Highway == highway {
			out = append(out, rec)
		}
	}
	return out
}

// Sample returns n records drawn without replacement. When n >= Len the whole
// table is returned.
func (t *Table) Sample(n int) []models.TrafficRecord {
	if n >= len(t.records) {
		return t.records
	}
	out := make([]models.TrafficRecord, 0, n)
	for _, idx := range rand.Perm(len(t.records))[:n] {
		out = append(out, t.records[idx])
	}
	return out
}
