package contracts

// DisplaySink receives the rendered text of a cell every time it changes.
// An empty text means the cell was cleared.
type DisplaySink interface {
	RenderCell(row int, col int, text string)
}

// DisplaySinkFunc adapts a plain function to DisplaySink
type DisplaySinkFunc func(row int, col int, text string)

func (f DisplaySinkFunc) RenderCell(row int, col int, text string) {
	f(row, col, text)
}

// RenderEvent is the wire form of a single RenderCell call for a named sheet
type RenderEvent struct {
	SheetId string `json:"sheet_id"`
	CellId  string `json:"cell_id"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Result  string `json:"result"`
}
