package contracts

import (
	"errors"
	"fmt"
)

// CellKey is the (row, column) identity of a cell. Both are zero based.
type CellKey struct {
	Row int
	Col int
}

// Cell is the API view of a cell: the text as entered and the rendered result
type Cell struct {
	Value  string `json:"value"`
	Result string `json:"result"`
}

type CellList map[string]*Cell

// FormulaPrefix marks cell text which must be evaluated
const FormulaPrefix = "="

var CellNotFoundError = errors.New("cell not found")

var CellIdInvalidError = errors.New("cell id should be a column letters followed by a row number (e.g. A1)")

var CellCoordinateError = errors.New("cell coordinates should not be negative")

var TextTooLongError = errors.New("cell text is too long")

var StoreCapacityError = errors.New("sheet cell capacity exhausted")

func NewTextTooLongError(length int, limit int) error {
	return fmt.Errorf("%w: %d characters, limit is %d", TextTooLongError, length, limit)
}
