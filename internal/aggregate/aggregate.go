// Package aggregate accumulates classified evidence into per-dataset
// frequency tables with parallel raw-evidence logs.
package aggregate

import (
	"github.com/ordlabs/ordscan/internal/model"
)

// Aggregate holds one dataset's category→value→count tables and the raw
// evidence they were derived from. Both views are populated by the same Add
// call and stay in lock-step: counts[cat][value] equals the number of raw
// items under cat with that value. An aggregate only grows; it is filtered
// at most once and never mutated after serialization begins.
type Aggregate struct {
	Counts map[model.Category]map[string]int       `json:"counts"`
	Raw    map[model.Category][]model.EvidenceItem `json:"raw"`
}

// New returns an empty aggregate.
func New() *Aggregate {
	return &Aggregate{
		Counts: make(map[model.Category]map[string]int),
		Raw:    make(map[model.Category][]model.EvidenceItem),
	}
}

// Add records one evidence item under one category. An item tagged with
// several categories is added once per category.
func (a *Aggregate) Add(cat model.Category, item model.EvidenceItem) {
	if a.Counts[cat] == nil {
		a.Counts[cat] = make(map[string]int)
	}
	a.Counts[cat][item.Value]++
	a.Raw[cat] = append(a.Raw[cat], item)
}

// Len returns the total number of raw evidence items across categories.
func (a *Aggregate) Len() int {
	n := 0
	for _, items := range a.Raw {
		n += len(items)
	}
	return n
}

// FilterOptions are the output filters applied once population is complete.
type FilterOptions struct {
	// BaseOnly restricts the aggregate to the Base category.
	BaseOnly bool
	// SMILESOnly restricts raw evidence to SMILES-typed identifiers. Counts
	// are intentionally not recomputed from the filtered raw lists, so they
	// may overcount relative to raw. Known asymmetry, kept for artifact
	// compatibility.
	SMILESOnly bool
}

// Filter returns the aggregate with the options applied. With no filters set
// the aggregate is returned unchanged.
func (a *Aggregate) Filter(opts FilterOptions) *Aggregate {
	if !opts.BaseOnly && !opts.SMILESOnly {
		return a
	}

	out := New()
	if opts.BaseOnly {
		counts := a.Counts[model.CategoryBase]
		if counts == nil {
			counts = make(map[string]int)
		}
		out.Counts[model.CategoryBase] = counts
		out.Raw[model.CategoryBase] = filterItems(a.Raw[model.CategoryBase], opts.SMILESOnly)
		return out
	}

	out.Counts = a.Counts
	for cat, items := range a.Raw {
		out.Raw[cat] = filterItems(items, opts.SMILESOnly)
	}
	return out
}

func filterItems(items []model.EvidenceItem, smilesOnly bool) []model.EvidenceItem {
	kept := make([]model.EvidenceItem, 0, len(items))
	for _, item := range items {
		if smilesOnly && item.IdentifierType != model.IdentifierTypeSMILES {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

// RunResult maps dataset ids to their (possibly filtered) aggregates.
// Datasets that failed are simply absent.
type RunResult map[string]*Aggregate
