package main

import (
	"fmt"
	"gridCalc/contracts"
	"regexp"
	"strconv"
	"strings"
)

const lettersCount = 'Z' - 'A' + 1

// Canonicalizer converts API cell ids (`b3`, `AA10`) to engine coordinates and back
type Canonicalizer struct {
	cellIdRegex *regexp.Regexp
}

func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{
		cellIdRegex: regexp.MustCompile(`^([A-Z]{1,3})([1-9][0-9]{0,6})$`),
	}
}

func (c *Canonicalizer) Canonicalize(cellId string) string {
	return strings.ToUpper(strings.TrimSpace(cellId))
}

func (c *Canonicalizer) Parse(cellId string) (key contracts.CellKey, err error) {
	matches := c.cellIdRegex.FindStringSubmatch(c.Canonicalize(cellId))
	if matches == nil {
		return key, fmt.Errorf("cell_id `%s`: %w", cellId, contracts.CellIdInvalidError)
	}

	for _, letter := range matches[1] {
		key.Col = key.Col*lettersCount + int(letter-'A') + 1
	}
	key.Col--

	key.Row, err = strconv.Atoi(matches[2])
	key.Row--
	return
}

func (c *Canonicalizer) Format(key contracts.CellKey) string {
	column := make([]byte, 0, 3)
	for col := key.Col + 1; col > 0; col = (col - 1) / lettersCount {
		column = append([]byte{byte('A' + (col-1)%lettersCount)}, column...)
	}

	return string(column) + strconv.Itoa(key.Row+1)
}
