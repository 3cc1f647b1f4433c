package main

import (
	"fmt"
	"gridCalc/contracts"
	"gridCalc/engine"
	"strings"
	"sync"
)

type SheetSinkFactory func(sheetId string) contracts.DisplaySink

type sheetEntry struct {
	mu     sync.Mutex
	engine *engine.Engine

	// written is set by the first successful edit, dropped when a sheet without one is unregistered
	written bool
	dropped bool
}

// SheetRepository holds one in-memory engine per sheet. An engine is not
// safe for concurrent use, so every call locks its sheet.
type SheetRepository struct {
	mu     sync.RWMutex
	sheets map[string]*sheetEntry

	canonicalizer *Canonicalizer
	sinkFactory   SheetSinkFactory
	engineOptions []engine.Option
}

func NewSheetRepository(canonicalizer *Canonicalizer, sinkFactory SheetSinkFactory, engineOptions ...engine.Option) *SheetRepository {
	return &SheetRepository{
		sheets:        map[string]*sheetEntry{},
		canonicalizer: canonicalizer,
		sinkFactory:   sinkFactory,
		engineOptions: engineOptions,
	}
}

func (s *SheetRepository) SetCell(sheetId string, cellId string, value string) (cell *contracts.Cell, err error) {
	sheetId = strings.ToLower(sheetId)
	cell = &contracts.Cell{Value: value}

	key, err := s.canonicalizer.Parse(cellId)
	if err != nil {
		return
	}

	sheet := s.getOrCreateSheet(sheetId)
	sheet.mu.Lock()
	for sheet.dropped {
		sheet.mu.Unlock()
		sheet = s.getOrCreateSheet(sheetId)
		sheet.mu.Lock()
	}
	defer sheet.mu.Unlock()

	err = sheet.engine.SetCellValue(key.Row, key.Col, value)
	if err != nil {
		if !sheet.written {
			s.dropSheet(sheetId, sheet)
		}
		err = fmt.Errorf("cell_id `%s`: %w", cellId, err)
		return
	}

	sheet.written = true
	cell.Result, _ = sheet.engine.GetRenderedValue(key.Row, key.Col)
	return
}

func (s *SheetRepository) GetCell(sheetId string, cellId string) (*contracts.Cell, error) {
	sheetId = strings.ToLower(sheetId)

	key, err := s.canonicalizer.Parse(cellId)
	if err != nil {
		return nil, err
	}

	sheet := s.lockSheet(sheetId)
	if sheet == nil {
		return nil, fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
	}
	defer sheet.mu.Unlock()

	value, found := sheet.engine.GetTextualValue(key.Row, key.Col)
	if !found {
		return nil, fmt.Errorf("%s: %w", cellId, contracts.CellNotFoundError)
	}

	result, _ := sheet.engine.GetRenderedValue(key.Row, key.Col)
	return &contracts.Cell{Value: value, Result: result}, nil
}

// ClearCell is a no-op for unknown sheets and cells
func (s *SheetRepository) ClearCell(sheetId string, cellId string) error {
	sheetId = strings.ToLower(sheetId)

	key, err := s.canonicalizer.Parse(cellId)
	if err != nil {
		return err
	}

	sheet := s.lockSheet(sheetId)
	if sheet == nil {
		return nil
	}
	defer sheet.mu.Unlock()

	sheet.engine.ClearCell(key.Row, key.Col)
	return nil
}

func (s *SheetRepository) GetCellList(sheetId string) (*contracts.CellList, error) {
	sheetId = strings.ToLower(sheetId)

	sheet := s.lockSheet(sheetId)
	if sheet == nil {
		return nil, fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
	}
	defer sheet.mu.Unlock()

	cellList := contracts.CellList{}
	for _, snapshot := range sheet.engine.Cells() {
		cellList[s.canonicalizer.Format(snapshot.Key)] = &contracts.Cell{
			Value:  snapshot.OriginalText,
			Result: snapshot.Rendered,
		}
	}

	return &cellList, nil
}

func (s *SheetRepository) getSheet(sheetId string) *sheetEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sheets[sheetId]
}

// lockSheet returns the registered sheet locked, or nil
func (s *SheetRepository) lockSheet(sheetId string) *sheetEntry {
	sheet := s.getSheet(sheetId)
	if sheet == nil {
		return nil
	}

	sheet.mu.Lock()
	if sheet.dropped {
		sheet.mu.Unlock()
		return nil
	}
	return sheet
}

// dropSheet unregisters a sheet whose first edit was rejected. The caller holds sheet.mu.
func (s *SheetRepository) dropSheet(sheetId string, sheet *sheetEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sheets[sheetId] == sheet {
		delete(s.sheets, sheetId)
	}
	sheet.dropped = true
}

func (s *SheetRepository) getOrCreateSheet(sheetId string) *sheetEntry {
	if existing := s.getSheet(sheetId); existing != nil {
		return existing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sheets[sheetId]; ok {
		return existing
	}

	var sink contracts.DisplaySink
	if s.sinkFactory != nil {
		sink = s.sinkFactory(sheetId)
	}

	created := &sheetEntry{engine: engine.NewEngine(sink, s.engineOptions...)}
	created.engine.Initialize()
	s.sheets[sheetId] = created
	return created
}
