package engine

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gridCalc/contracts"
	"gridCalc/mocks"
	"testing"
)

type renderCall struct {
	row  int
	col  int
	text string
}

func _newRecordingEngine(options ...Option) (*Engine, *[]renderCall) {
	calls := make([]renderCall, 0)
	sink := contracts.DisplaySinkFunc(func(row int, col int, text string) {
		calls = append(calls, renderCall{row, col, text})
	})
	e := NewEngine(sink, options...)
	e.Initialize()
	return e, &calls
}

func TestEngine_GetTextualValue(t *testing.T) {
	e, _ := _newRecordingEngine()

	t.Run("never_written", func(t *testing.T) {
		for _, key := range []contracts.CellKey{{Row: 0, Col: 0}, {Row: 5, Col: 3}, {Row: 1000, Col: 25}} {
			text, found := e.GetTextualValue(key.Row, key.Col)
			assert.False(t, found)
			assert.Equal(t, "", text)
		}
	})

	t.Run("round_trip", func(t *testing.T) {
		for _, text := range []string{"42", "hello", "=A1+1", "=A", "", "3.14159", " 5"} {
			assert.NoError(t, e.SetCellValue(2, 2, text))
			actual, found := e.GetTextualValue(2, 2)
			assert.True(t, found)
			assert.Equal(t, text, actual)
		}
	})
}

func TestEngine_SetCellValue(t *testing.T) {
	t.Run("literal_number", func(t *testing.T) {
		sink := mocks.NewDisplaySink(t)
		sink.On("RenderCell", 0, 0, "42.00").Once()

		e := NewEngine(sink)
		e.Initialize()
		assert.NoError(t, e.SetCellValue(0, 0, "42"))

		text, _ := e.GetTextualValue(0, 0)
		assert.Equal(t, "42", text)
	})

	t.Run("literal_text", func(t *testing.T) {
		e, calls := _newRecordingEngine()
		assert.NoError(t, e.SetCellValue(1, 2, "hello"))
		assert.NoError(t, e.SetCellValue(1, 3, "12abc"))
		assert.NoError(t, e.SetCellValue(1, 4, ""))

		assert.Equal(t, []renderCall{{1, 2, "hello"}, {1, 3, "12abc"}, {1, 4, "0.00"}}, *calls)

		text, found := e.GetTextualValue(1, 4)
		assert.True(t, found)
		assert.Empty(t, text)
	})

	t.Run("literal_leading_space", func(t *testing.T) {
		e, calls := _newRecordingEngine()
		assert.NoError(t, e.SetCellValue(0, 0, " 42"))
		assert.NoError(t, e.SetCellValue(0, 1, "\t-1.5"))
		assert.NoError(t, e.SetCellValue(0, 2, "42 "))
		assert.NoError(t, e.SetCellValue(0, 3, "   "))

		assert.Equal(t, []renderCall{{0, 0, "42.00"}, {0, 1, "-1.50"}, {0, 2, "42 "}, {0, 3, "   "}}, *calls)

		text, _ := e.GetTextualValue(0, 0)
		assert.Equal(t, " 42", text)
	})

	t.Run("self_reference_after_text", func(t *testing.T) {
		e, calls := _newRecordingEngine()
		assert.NoError(t, e.SetCellValue(0, 0, "hello"))
		assert.NoError(t, e.SetCellValue(0, 0, "=A1+1"))

		assert.Equal(t, []renderCall{{0, 0, "hello"}, {0, 0, "1.00"}}, *calls)

		rendered, _ := e.GetRenderedValue(0, 0)
		assert.Equal(t, "1.00", rendered)
	})

	t.Run("self_reference_after_number", func(t *testing.T) {
		e, _ := _newRecordingEngine()
		assert.NoError(t, e.SetCellValue(0, 0, "4"))
		assert.NoError(t, e.SetCellValue(0, 0, "=A1*2"))

		rendered, _ := e.GetRenderedValue(0, 0)
		assert.Equal(t, "8.00", rendered)
	})

	t.Run("formula", func(t *testing.T) {
		e, calls := _newRecordingEngine()
		assert.NoError(t, e.SetCellValue(0, 0, "5"))
		assert.NoError(t, e.SetCellValue(0, 1, "=A1+1"))

		assert.Equal(t, renderCall{0, 1, "6.00"}, (*calls)[1])
		rendered, _ := e.GetRenderedValue(0, 1)
		assert.Equal(t, "6.00", rendered)

		text, _ := e.GetTextualValue(0, 1)
		assert.Equal(t, "=A1+1", text)
	})

	t.Run("malformed_reference", func(t *testing.T) {
		e, calls := _newRecordingEngine()
		assert.NotPanics(t, func() {
			assert.NoError(t, e.SetCellValue(0, 0, "=A"))
		})

		assert.Equal(t, []renderCall{{0, 0, "A"}}, *calls)
		text, _ := e.GetTextualValue(0, 0)
		assert.Equal(t, "=A", text)
	})

	t.Run("propagated_invalid", func(t *testing.T) {
		e, calls := _newRecordingEngine()
		assert.NoError(t, e.SetCellValue(0, 0, "=B"))
		assert.NoError(t, e.SetCellValue(0, 1, "=A1*2"))
		assert.NoError(t, e.SetCellValue(0, 2, "=B1+1"))

		assert.Equal(t, []renderCall{{0, 0, "B"}, {0, 1, "A1*2"}, {0, 2, "B1+1"}}, *calls)
	})

	t.Run("division_and_modulo_by_zero", func(t *testing.T) {
		e, calls := _newRecordingEngine()
		assert.NotPanics(t, func() {
			assert.NoError(t, e.SetCellValue(0, 0, "=5/0"))
			assert.NoError(t, e.SetCellValue(0, 1, "=5%0"))
		})

		assert.Equal(t, []renderCall{{0, 0, "+Inf"}, {0, 1, "5%0"}}, *calls)
	})

	t.Run("update_in_place", func(t *testing.T) {
		e, calls := _newRecordingEngine()
		assert.NoError(t, e.SetCellValue(3, 3, "1"))
		assert.NoError(t, e.SetCellValue(3, 3, "text"))
		assert.NoError(t, e.SetCellValue(3, 3, "=2*3"))

		assert.Equal(t, 1, e.Len())
		assert.Equal(t, []renderCall{{3, 3, "1.00"}, {3, 3, "text"}, {3, 3, "6.00"}}, *calls)
	})

	t.Run("colliding_cells_survive", func(t *testing.T) {
		e, _ := _newRecordingEngine()
		// (0,1), (1,0) and (59,9) share a bucket
		assert.NoError(t, e.SetCellValue(0, 1, "first"))
		assert.NoError(t, e.SetCellValue(1, 0, "second"))
		assert.NoError(t, e.SetCellValue(59, 9, "third"))
		assert.NoError(t, e.SetCellValue(1, 0, "second again"))

		for key, expected := range map[contracts.CellKey]string{
			{Row: 0, Col: 1}:  "first",
			{Row: 1, Col: 0}:  "second again",
			{Row: 59, Col: 9}: "third",
		} {
			text, found := e.GetTextualValue(key.Row, key.Col)
			assert.True(t, found)
			assert.Equal(t, expected, text)
		}
	})

	t.Run("negative_coordinates", func(t *testing.T) {
		e, calls := _newRecordingEngine()
		assert.ErrorIs(t, e.SetCellValue(-1, 0, "1"), contracts.CellCoordinateError)
		assert.ErrorIs(t, e.SetCellValue(0, -1, "1"), contracts.CellCoordinateError)
		assert.Empty(t, *calls)
		assert.Equal(t, 0, e.Len())
	})

	t.Run("text_bound", func(t *testing.T) {
		e, calls := _newRecordingEngine(WithMaxTextLength(19))
		assert.NoError(t, e.SetCellValue(0, 0, "nineteen characters"))

		err := e.SetCellValue(0, 0, "twenty characters!!!")
		assert.ErrorIs(t, err, contracts.TextTooLongError)

		text, _ := e.GetTextualValue(0, 0)
		assert.Equal(t, "nineteen characters", text)
		assert.Len(t, *calls, 1)
	})

	t.Run("unbounded_text", func(t *testing.T) {
		e, _ := _newRecordingEngine()
		long := "a text which is far longer than twenty characters"
		assert.NoError(t, e.SetCellValue(0, 0, long))

		text, _ := e.GetTextualValue(0, 0)
		assert.Equal(t, long, text)
	})

	t.Run("capacity", func(t *testing.T) {
		e, _ := _newRecordingEngine(WithMaxCells(1))
		assert.NoError(t, e.SetCellValue(0, 0, "1"))
		assert.NoError(t, e.SetCellValue(0, 0, "2"))
		assert.ErrorIs(t, e.SetCellValue(0, 1, "3"), contracts.StoreCapacityError)
	})
}

func TestEngine_ClearCell(t *testing.T) {
	t.Run("removes_and_renders_empty", func(t *testing.T) {
		sink := mocks.NewDisplaySink(t)
		sink.On("RenderCell", 4, 2, "abc").Once()
		sink.On("RenderCell", 4, 2, "").Once()

		e := NewEngine(sink)
		e.Initialize()
		assert.NoError(t, e.SetCellValue(4, 2, "abc"))

		e.ClearCell(4, 2)
		_, found := e.GetTextualValue(4, 2)
		assert.False(t, found)
		assert.Equal(t, 0, e.Len())
	})

	t.Run("idempotent", func(t *testing.T) {
		sink := mocks.NewDisplaySink(t)
		sink.On("RenderCell", mock.Anything, mock.Anything, mock.Anything).Twice()

		e := NewEngine(sink)
		e.Initialize()
		assert.NoError(t, e.SetCellValue(1, 1, "x"))

		assert.NotPanics(t, func() {
			e.ClearCell(1, 1)
			e.ClearCell(1, 1)
			e.ClearCell(7, 7)
		})
	})

	t.Run("dependents_keep_last_value", func(t *testing.T) {
		e, _ := _newRecordingEngine()
		assert.NoError(t, e.SetCellValue(0, 0, "5"))
		assert.NoError(t, e.SetCellValue(0, 1, "=A1+1"))

		e.ClearCell(0, 0)

		_, found := e.GetTextualValue(0, 0)
		assert.False(t, found)

		rendered, found := e.GetRenderedValue(0, 1)
		assert.True(t, found)
		assert.Equal(t, "6.00", rendered)
	})

	t.Run("colliding_neighbour_kept", func(t *testing.T) {
		e, _ := _newRecordingEngine()
		assert.NoError(t, e.SetCellValue(0, 1, "first"))
		assert.NoError(t, e.SetCellValue(1, 0, "second"))

		e.ClearCell(0, 1)

		text, found := e.GetTextualValue(1, 0)
		assert.True(t, found)
		assert.Equal(t, "second", text)
	})
}

func TestEngine_Dependents(t *testing.T) {
	visits := make([]contracts.CellKey, 0)
	e, calls := _newRecordingEngine(WithDependentsVisitor(func(source contracts.CellKey, dependent contracts.CellKey) {
		visits = append(visits, dependent)
	}))

	assert.NoError(t, e.SetCellValue(0, 0, "5"))
	assert.Empty(t, visits)

	assert.NoError(t, e.SetCellValue(0, 1, "=A1+1"))
	assert.Equal(t, []contracts.CellKey{{Row: 0, Col: 1}}, visits)

	t.Run("sweep_after_every_edit", func(t *testing.T) {
		visits = visits[:0]
		assert.NoError(t, e.SetCellValue(9, 9, "unrelated"))
		assert.Equal(t, []contracts.CellKey{{Row: 0, Col: 1}}, visits)
	})

	t.Run("no_recomputation", func(t *testing.T) {
		*calls = (*calls)[:0]
		assert.NoError(t, e.SetCellValue(0, 0, "10"))

		assert.Equal(t, []renderCall{{0, 0, "10.00"}}, *calls)
		rendered, _ := e.GetRenderedValue(0, 1)
		assert.Equal(t, "6.00", rendered)
	})

	t.Run("edges_follow_formula", func(t *testing.T) {
		assert.NoError(t, e.SetCellValue(0, 1, "=7"))

		visits = visits[:0]
		assert.NoError(t, e.SetCellValue(0, 0, "11"))
		assert.Empty(t, visits)
	})
}

func TestEngine_Independent(t *testing.T) {
	first, _ := _newRecordingEngine()
	second, _ := _newRecordingEngine()

	assert.NoError(t, first.SetCellValue(0, 0, "1"))

	_, found := second.GetTextualValue(0, 0)
	assert.False(t, found)

	first.Initialize()
	_, found = first.GetTextualValue(0, 0)
	assert.False(t, found)
}

func TestEngine_Cells(t *testing.T) {
	e := NewEngine(nil)
	assert.NoError(t, e.SetCellValue(0, 0, "2"))
	assert.NoError(t, e.SetCellValue(0, 1, "=A1*3"))

	assert.ElementsMatch(t, []CellSnapshot{
		{Key: contracts.CellKey{Row: 0, Col: 0}, OriginalText: "2", Rendered: "2.00"},
		{Key: contracts.CellKey{Row: 0, Col: 1}, OriginalText: "=A1*3", Rendered: "6.00"},
	}, e.Cells())
}
