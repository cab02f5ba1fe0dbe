// Package plot computes the deterministic swimmer-plot layout.
//
// The package is three pure stages composed in a fixed order: Organize
// sorts and partitions patients into cohort groups, PlanAxis derives the
// shared month domain and tick set, and BuildGeometry maps both onto the
// fixed drawing canvas. Identical inputs always produce identical output;
// nothing here holds state between calls.
package plot

import (
	"sort"

	"github.com/linker268/Swimmer-plot/pkg/trial"
)

// SortKey selects the patient ordering applied before grouping.
type SortKey string

// Supported sort keys.
const (
	// SortDuration orders descending by time on treatment; ties keep the
	// original input order.
	SortDuration SortKey = "duration"

	// SortID orders ascending lexicographic by patient ID.
	SortID SortKey = "id"
)

// AllLabel is the label of the single implicit group when cohort grouping
// is disabled.
const AllLabel = "All"

// CohortGroup is an ordered partition of patients sharing a cohort label.
type CohortGroup struct {
	Label    string          `json:"label" bson:"label"`
	Patients []trial.Patient `json:"patients" bson:"patients"`
}

// Organize sorts patients by sortKey and partitions them into ordered
// cohort groups.
//
// The two phases are deliberately sequenced: the sort establishes the
// intra-group patient order, then partitioning regroups without reordering.
// Within a cohort, patients therefore still appear by duration or ID even
// though grouping is the outer structure. When groupByCohort is false a
// single group labeled "All" holds every patient in sort order. Groups are
// ordered lexicographically by label.
func Organize(patients []trial.Patient, sortKey SortKey, groupByCohort bool) []CohortGroup {
	sorted := sortPatients(patients, sortKey)
	if !groupByCohort {
		return []CohortGroup{{Label: AllLabel, Patients: sorted}}
	}
	return partitionByCohort(sorted)
}

// sortPatients returns a sorted copy; the input slice is never mutated.
func sortPatients(patients []trial.Patient, key SortKey) []trial.Patient {
	sorted := make([]trial.Patient, len(patients))
	copy(sorted, patients)

	switch key {
	case SortID:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ID < sorted[j].ID
		})
	default:
		// Stable so equal durations preserve input order.
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].DurationMonths > sorted[j].DurationMonths
		})
	}
	return sorted
}

// partitionByCohort splits an already-sorted sequence into per-cohort
// groups, preserving the relative order from the sort step, and orders the
// groups lexicographically by label.
func partitionByCohort(sorted []trial.Patient) []CohortGroup {
	byLabel := make(map[string][]trial.Patient)
	labels := make([]string, 0)
	for _, p := range sorted {
		if _, seen := byLabel[p.Cohort]; !seen {
			labels = append(labels, p.Cohort)
		}
		byLabel[p.Cohort] = append(byLabel[p.Cohort], p)
	}
	sort.Strings(labels)

	groups := make([]CohortGroup, len(labels))
	for i, label := range labels {
		groups[i] = CohortGroup{Label: label, Patients: byLabel[label]}
	}
	return groups
}
