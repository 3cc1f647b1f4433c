package engine

import (
	"gridCalc/contracts"
	"strconv"
)

const BucketsCount = 70

// CellStore is a fixed size hash table with separate chaining.
// Updating or removing a cell never touches other cells of the same chain.
type CellStore struct {
	buckets  [BucketsCount]*Cell
	length   int
	maxCells int
}

func NewCellStore(maxCells int) *CellStore {
	return &CellStore{maxCells: maxCells}
}

func (s *CellStore) hash(key contracts.CellKey) int {
	digits := strconv.AppendInt(make([]byte, 0, 20), int64(key.Row), 10)
	digits = strconv.AppendInt(digits, int64(key.Col), 10)

	sum := 0
	for _, digit := range digits {
		sum += int(digit)
	}
	return sum % BucketsCount
}

func (s *CellStore) Find(key contracts.CellKey) (*Cell, bool) {
	for current := s.buckets[s.hash(key)]; current != nil; current = current.next {
		if current.Key == key {
			return current, true
		}
	}
	return nil, false
}

// Upsert returns the cell stored under key, allocating and linking a new one when absent
func (s *CellStore) Upsert(key contracts.CellKey) (cell *Cell, created bool, err error) {
	if cell, found := s.Find(key); found {
		return cell, false, nil
	}

	if s.maxCells > 0 && s.length >= s.maxCells {
		return nil, false, contracts.StoreCapacityError
	}

	index := s.hash(key)
	cell = &Cell{Key: key, next: s.buckets[index]}
	s.buckets[index] = cell
	s.length++
	return cell, true, nil
}

// Remove unlinks the matching cell only
func (s *CellStore) Remove(key contracts.CellKey) bool {
	index := s.hash(key)

	var prev *Cell
	for current := s.buckets[index]; current != nil; current = current.next {
		if current.Key == key {
			if prev == nil {
				s.buckets[index] = current.next
			} else {
				prev.next = current.next
			}
			current.next = nil
			s.length--
			return true
		}
		prev = current
	}
	return false
}

// Range visits every cell bucket by bucket, chain order within a bucket.
// It stops when fn returns false.
func (s *CellStore) Range(fn func(cell *Cell) bool) {
	for _, head := range s.buckets {
		for current := head; current != nil; current = current.next {
			if !fn(current) {
				return
			}
		}
	}
}

func (s *CellStore) Len() int {
	return s.length
}

func (s *CellStore) Reset() {
	s.buckets = [BucketsCount]*Cell{}
	s.length = 0
}
