package engine

import (
	"gridCalc/contracts"
	"slices"
)

// DependentsVisitor is called for every dependent visited by NotifyDependents
type DependentsVisitor func(source contracts.CellKey, dependent contracts.CellKey)

// DependencyTracker keeps, for each cell, the list of cells reading it.
// Notification only visits dependents, it never recomputes them: there is
// no evaluation order and no cycle policy to recompute with.
type DependencyTracker struct {
	visitor DependentsVisitor
}

func NewDependencyTracker(visitor DependentsVisitor) *DependencyTracker {
	return &DependencyTracker{visitor: visitor}
}

// AddDependent records that dependent reads source
func (t *DependencyTracker) AddDependent(dependent *Cell, source *Cell) {
	if !slices.Contains(source.dependents, dependent.Key) {
		source.dependents = slices.Insert(source.dependents, 0, dependent.Key)
	}

	if !slices.Contains(dependent.precedents, source.Key) {
		dependent.precedents = append(dependent.precedents, source.Key)
	}
}

// Detach drops every edge registered by the last evaluation of cell
func (t *DependencyTracker) Detach(store *CellStore, cell *Cell) {
	for _, precedentKey := range cell.precedents {
		precedent, found := store.Find(precedentKey)
		if !found {
			continue
		}

		precedent.dependents = slices.DeleteFunc(precedent.dependents, func(key contracts.CellKey) bool {
			return key == cell.Key
		})
	}
	cell.precedents = nil
}

func (t *DependencyTracker) NotifyDependents(cell *Cell) {
	if cell == nil {
		return
	}

	for _, dependent := range cell.dependents {
		if t.visitor != nil {
			t.visitor(cell.Key, dependent)
		}
	}
}

// RefreshAll sweeps the whole store and notifies dependents of every cell having them
func (t *DependencyTracker) RefreshAll(store *CellStore) {
	store.Range(func(cell *Cell) bool {
		if cell.HasDependents() {
			t.NotifyDependents(cell)
		}
		return true
	})
}
