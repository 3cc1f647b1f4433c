package engine

import (
	"gridCalc/contracts"
	"math"
	"strconv"
)

// CellValue is either NumberValue or TextValue. Exactly one is active per cell.
type CellValue interface {
	isCellValue()
}

type NumberValue float64

type TextValue string

func (NumberValue) isCellValue() {}

func (TextValue) isCellValue() {}

// Cell is a single store entry. It is owned by CellStore and must not be kept across engine calls.
type Cell struct {
	Key          contracts.CellKey
	IsFormula    bool
	Value        CellValue
	OriginalText string

	dependents []contracts.CellKey
	precedents []contracts.CellKey

	next *Cell
}

// HasDependents reports whether some formula read this cell on its last evaluation
func (c *Cell) HasDependents() bool {
	return len(c.dependents) != 0
}

// Dependents returns the cells reading this cell, most recently registered first
func (c *Cell) Dependents() []contracts.CellKey {
	return append([]contracts.CellKey(nil), c.dependents...)
}

// Rendered is the text shown for the cell in a display
func (c *Cell) Rendered() string {
	switch value := c.Value.(type) {
	case NumberValue:
		return formatNumber(float64(value))
	case TextValue:
		return string(value)
	default:
		return ""
	}
}

// numeric is the value a formula sees when it references this cell.
// A formula which failed to evaluate propagates NaN.
func (c *Cell) numeric() float64 {
	switch value := c.Value.(type) {
	case NumberValue:
		return float64(value)
	case TextValue:
		if c.IsFormula {
			return math.NaN()
		}
	}
	return 0
}

func (c *Cell) reset() {
	c.IsFormula = false
	c.Value = nil
	c.OriginalText = ""
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
