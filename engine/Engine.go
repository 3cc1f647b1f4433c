package engine

import (
	"errors"
	"fmt"
	"gridCalc/contracts"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const literalSpaces = " \t\n\v\f\r"

// Engine is one independent spreadsheet. It is not safe for concurrent use.
type Engine struct {
	store     *CellStore
	evaluator *FormulaEvaluator
	tracker   *DependencyTracker
	sink      contracts.DisplaySink

	maxTextLength int
}

type Option func(*engineOptions)

type engineOptions struct {
	maxTextLength int
	maxCells      int
	visitor       DependentsVisitor
}

// WithMaxTextLength rejects cell texts longer than limit characters. Zero means unbounded.
func WithMaxTextLength(limit int) Option {
	return func(o *engineOptions) {
		o.maxTextLength = limit
	}
}

// WithMaxCells limits how many cells the engine holds. Zero means unbounded.
func WithMaxCells(limit int) Option {
	return func(o *engineOptions) {
		o.maxCells = limit
	}
}

// WithDependentsVisitor sets the hook called for each dependent visited after an edit
func WithDependentsVisitor(visitor DependentsVisitor) Option {
	return func(o *engineOptions) {
		o.visitor = visitor
	}
}

func NewEngine(sink contracts.DisplaySink, options ...Option) *Engine {
	o := engineOptions{}
	for _, option := range options {
		option(&o)
	}

	if sink == nil {
		sink = contracts.DisplaySinkFunc(func(int, int, string) {})
	}

	store := NewCellStore(o.maxCells)
	tracker := NewDependencyTracker(o.visitor)

	return &Engine{
		store:         store,
		evaluator:     NewFormulaEvaluator(store, tracker),
		tracker:       tracker,
		sink:          sink,
		maxTextLength: o.maxTextLength,
	}
}

// Initialize empties the spreadsheet
func (e *Engine) Initialize() {
	e.store.Reset()
}

func (e *Engine) SetCellValue(row int, col int, text string) error {
	key := contracts.CellKey{Row: row, Col: col}
	if row < 0 || col < 0 {
		return fmt.Errorf("%d:%d: %w", row, col, contracts.CellCoordinateError)
	}

	if e.maxTextLength > 0 {
		if length := utf8.RuneCountInString(text); length > e.maxTextLength {
			return contracts.NewTextTooLongError(length, e.maxTextLength)
		}
	}

	cell, _, err := e.store.Upsert(key)
	if err != nil {
		return fmt.Errorf("%d:%d: %w", row, col, err)
	}

	// a self reference reads the previous content, so the flag changes with the value
	isFormula := strings.HasPrefix(text, contracts.FormulaPrefix)

	e.tracker.Detach(e.store, cell)
	var value CellValue
	if isFormula {
		result := e.evaluator.Evaluate(text, cell)
		if math.IsNaN(result) {
			value = TextValue(strings.TrimPrefix(text, contracts.FormulaPrefix))
		} else {
			value = NumberValue(result)
		}
	} else {
		value = parseLiteral(text)
	}

	cell.OriginalText = text
	cell.IsFormula = isFormula
	cell.Value = value

	e.sink.RenderCell(row, col, cell.Rendered())
	e.tracker.RefreshAll(e.store)
	return nil
}

// ClearCell removes the cell. Cells reading it keep their last result.
func (e *Engine) ClearCell(row int, col int) {
	key := contracts.CellKey{Row: row, Col: col}

	cell, found := e.store.Find(key)
	if !found {
		return
	}

	cell.reset()
	e.tracker.Detach(e.store, cell)
	e.store.Remove(key)
	e.sink.RenderCell(row, col, "")
}

// GetTextualValue returns the text the cell was set with, for editing
func (e *Engine) GetTextualValue(row int, col int) (string, bool) {
	cell, found := e.store.Find(contracts.CellKey{Row: row, Col: col})
	if !found {
		return "", false
	}
	return cell.OriginalText, true
}

// GetRenderedValue returns the text currently displayed for the cell
func (e *Engine) GetRenderedValue(row int, col int) (string, bool) {
	cell, found := e.store.Find(contracts.CellKey{Row: row, Col: col})
	if !found {
		return "", false
	}
	return cell.Rendered(), true
}

type CellSnapshot struct {
	Key          contracts.CellKey
	OriginalText string
	Rendered     string
}

// Cells returns every live cell in store order
func (e *Engine) Cells() []CellSnapshot {
	snapshots := make([]CellSnapshot, 0, e.store.Len())
	e.store.Range(func(cell *Cell) bool {
		snapshots = append(snapshots, CellSnapshot{
			Key:          cell.Key,
			OriginalText: cell.OriginalText,
			Rendered:     cell.Rendered(),
		})
		return true
	})
	return snapshots
}

func (e *Engine) Len() int {
	return e.store.Len()
}

// parseLiteral accepts leading white space but no trailing characters.
// The empty text is the number zero.
func parseLiteral(text string) CellValue {
	if text == "" {
		return NumberValue(0)
	}

	trimmed := strings.TrimLeft(text, literalSpaces)
	if trimmed == "" {
		return TextValue(text)
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err == nil {
		return NumberValue(value)
	}

	if errors.Is(err, strconv.ErrRange) {
		return NumberValue(value)
	}

	return TextValue(text)
}
