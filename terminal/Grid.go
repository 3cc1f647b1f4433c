package terminal

import (
	"github.com/gdamore/tcell/v2"
	"gridCalc/contracts"
	"gridCalc/engine"
	"strconv"
)

// ColumnsCount is the number of columns a formula can reference, A to Z
const ColumnsCount = 'Z' - 'A' + 1

const (
	columnWidth = 10
	gutterWidth = 5
	headerLines = 1
	statusLines = 2
)

type gridMode int

const (
	modeNormal gridMode = iota
	modeEdit
)

var (
	headerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	cursorStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorLightGray)
	statusStyle = tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorWhite)
)

// Grid is an interactive sheet: it edits the engine and displays what the engine renders.
type Grid struct {
	engine   *engine.Engine
	rendered map[contracts.CellKey]string

	curRow  int
	curCol  int
	viewRow int
	viewCol int

	mode   gridMode
	input  []rune
	status string
	quit   bool
}

func NewGrid(options ...engine.Option) *Grid {
	grid := &Grid{
		rendered: map[contracts.CellKey]string{},
	}
	grid.engine = engine.NewEngine(grid, options...)
	grid.engine.Initialize()

	return grid
}

func (g *Grid) RenderCell(row int, col int, text string) {
	key := contracts.CellKey{Row: row, Col: col}
	if text == "" {
		delete(g.rendered, key)
	} else {
		g.rendered[key] = text
	}
}

func (g *Grid) Quit() bool {
	return g.quit
}

func (g *Grid) HandleKeyEvent(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		g.quit = true
		return
	}

	if g.mode == modeEdit {
		g.handleEditKey(ev)
		return
	}

	switch ev.Key() {
	case tcell.KeyEsc:
		g.quit = true
	case tcell.KeyUp:
		g.moveCursor(-1, 0)
	case tcell.KeyDown:
		g.moveCursor(1, 0)
	case tcell.KeyLeft:
		g.moveCursor(0, -1)
	case tcell.KeyRight, tcell.KeyTab:
		g.moveCursor(0, 1)
	case tcell.KeyEnter, tcell.KeyF2:
		text, _ := g.engine.GetTextualValue(g.curRow, g.curCol)
		g.startEdit([]rune(text))
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		g.engine.ClearCell(g.curRow, g.curCol)
		g.status = ""
	case tcell.KeyRune:
		g.startEdit([]rune{ev.Rune()})
	}
}

func (g *Grid) handleEditKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEsc:
		g.mode = modeNormal
		g.input = nil
	case tcell.KeyEnter:
		g.commit()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(g.input) > 0 {
			g.input = g.input[:len(g.input)-1]
		}
	case tcell.KeyRune:
		g.input = append(g.input, ev.Rune())
	}
}

func (g *Grid) startEdit(input []rune) {
	g.mode = modeEdit
	g.input = input
	g.status = ""
}

func (g *Grid) commit() {
	g.mode = modeNormal
	text := string(g.input)
	g.input = nil

	if text == "" {
		g.engine.ClearCell(g.curRow, g.curCol)
	} else if err := g.engine.SetCellValue(g.curRow, g.curCol, text); err != nil {
		g.status = err.Error()
		return
	}

	g.moveCursor(1, 0)
}

func (g *Grid) moveCursor(rows int, cols int) {
	g.curRow = max(0, g.curRow+rows)
	g.curCol = min(ColumnsCount-1, max(0, g.curCol+cols))
}

func (g *Grid) Draw(s tcell.Screen) {
	s.Clear()

	width, height := s.Size()
	visibleCols := max(1, (width-gutterWidth)/columnWidth)
	visibleRows := max(1, height-headerLines-statusLines)
	g.scrollToCursor(visibleRows, visibleCols)

	for i := 0; i < visibleCols && g.viewCol+i < ColumnsCount; i++ {
		col := g.viewCol + i
		style := headerStyle
		if col == g.curCol {
			style = cursorStyle
		}
		printFixedWidth(s, gutterWidth+i*columnWidth, 0, columnName(col), style, columnWidth)
	}

	for i := 0; i < visibleRows; i++ {
		row := g.viewRow + i
		y := headerLines + i

		style := headerStyle
		if row == g.curRow {
			style = cursorStyle
		}
		printFixedWidth(s, 0, y, strconv.Itoa(row+1), style, gutterWidth-1)

		for j := 0; j < visibleCols && g.viewCol+j < ColumnsCount; j++ {
			col := g.viewCol + j
			style = tcell.StyleDefault
			if row == g.curRow && col == g.curCol {
				style = cursorStyle
			}
			printFixedWidth(s, gutterWidth+j*columnWidth, y, g.rendered[contracts.CellKey{Row: row, Col: col}], style, columnWidth-1)
		}
	}

	statusY := height - statusLines
	original, _ := g.engine.GetTextualValue(g.curRow, g.curCol)
	printFixedWidth(s, 0, statusY, g.cellName()+" "+original, statusStyle, width)

	if g.mode == modeEdit {
		prompt := "> " + string(g.input)
		printFixedWidth(s, 0, statusY+1, prompt, tcell.StyleDefault, width)
		s.ShowCursor(len([]rune(prompt)), statusY+1)
	} else {
		printFixedWidth(s, 0, statusY+1, g.status, tcell.StyleDefault, width)
		s.HideCursor()
	}

	s.Show()
}

func (g *Grid) scrollToCursor(visibleRows int, visibleCols int) {
	if g.curRow < g.viewRow {
		g.viewRow = g.curRow
	} else if g.curRow >= g.viewRow+visibleRows {
		g.viewRow = g.curRow - visibleRows + 1
	}

	if g.curCol < g.viewCol {
		g.viewCol = g.curCol
	} else if g.curCol >= g.viewCol+visibleCols {
		g.viewCol = g.curCol - visibleCols + 1
	}
}

func (g *Grid) cellName() string {
	return columnName(g.curCol) + strconv.Itoa(g.curRow+1)
}

func columnName(col int) string {
	return string(rune('A' + col))
}

func printFixedWidth(s tcell.Screen, x int, y int, text string, style tcell.Style, width int) {
	i := 0
	for _, ch := range text {
		if i >= width {
			return
		}
		s.SetContent(x+i, y, ch, nil, style)
		i++
	}
	for ; i < width; i++ {
		s.SetContent(x+i, y, ' ', nil, style)
	}
}
