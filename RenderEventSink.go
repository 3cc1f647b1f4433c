package main

import (
	"gridCalc/contracts"
)

// RenderEventSink turns RenderCell calls of one sheet's engine into RenderEvents
type RenderEventSink struct {
	sheetId       string
	canonicalizer *Canonicalizer
	notify        func(event contracts.RenderEvent)
}

func NewRenderEventSink(sheetId string, canonicalizer *Canonicalizer, notify func(event contracts.RenderEvent)) *RenderEventSink {
	return &RenderEventSink{
		sheetId:       sheetId,
		canonicalizer: canonicalizer,
		notify:        notify,
	}
}

func (s *RenderEventSink) RenderCell(row int, col int, text string) {
	s.notify(contracts.RenderEvent{
		SheetId: s.sheetId,
		CellId:  s.canonicalizer.Format(contracts.CellKey{Row: row, Col: col}),
		Row:     row,
		Col:     col,
		Result:  text,
	})
}
