package engine

import (
	"gridCalc/contracts"
	"math"
	"strconv"
	"strings"
)

const formulaOperators = "+-*/%"

// FormulaEvaluator scans a formula once, left to right, without precedence.
// Digits are number literals, an uppercase letter followed by digits is a
// cell reference, operators set the operator for the next operand and any
// other character is skipped.
type FormulaEvaluator struct {
	store   *CellStore
	tracker *DependencyTracker
}

func NewFormulaEvaluator(store *CellStore, tracker *DependencyTracker) *FormulaEvaluator {
	return &FormulaEvaluator{
		store:   store,
		tracker: tracker,
	}
}

// Evaluate returns the formula result or NaN when a reference is malformed
// or a referenced cell holds an invalid result. Every resolved reference
// registers current as a dependent of the referenced cell.
func (e *FormulaEvaluator) Evaluate(formula string, current *Cell) float64 {
	result := 0.0
	operator := byte('+')

	for position := 0; position < len(formula); {
		char := formula[position]

		switch {
		case isDigit(char):
			var operand float64
			operand, position = scanNumber(formula, position)
			result = applyOperator(operator, result, operand)

		case char >= 'A' && char <= 'Z':
			key, end, ok := scanReference(formula, position)
			if !ok {
				return math.NaN()
			}
			position = end

			operand := 0.0
			if referenced, found := e.store.Find(key); found {
				operand = referenced.numeric()
				if math.IsNaN(operand) {
					return math.NaN()
				}
				if current != nil {
					e.tracker.AddDependent(current, referenced)
				}
			}
			result = applyOperator(operator, result, operand)

		case isOperator(char):
			operator = char
			position++

		default:
			position++
		}
	}

	return result
}

func applyOperator(operator byte, result float64, operand float64) float64 {
	switch operator {
	case '+':
		return result + operand
	case '-':
		return result - operand
	case '*':
		return result * operand
	case '/':
		return result / operand
	case '%':
		return math.Mod(result, operand)
	}
	return result
}

// scanNumber parses the longest decimal literal starting at a digit
func scanNumber(formula string, start int) (float64, int) {
	end := skipDigits(formula, start)

	if end < len(formula) && formula[end] == '.' {
		end = skipDigits(formula, end+1)
	}

	if end < len(formula) && (formula[end] == 'e' || formula[end] == 'E') {
		exponent := end + 1
		if exponent < len(formula) && (formula[exponent] == '+' || formula[exponent] == '-') {
			exponent++
		}
		if exponentEnd := skipDigits(formula, exponent); exponentEnd > exponent {
			end = exponentEnd
		}
	}

	// only overflow can fail here, ParseFloat then returns ±Inf
	value, _ := strconv.ParseFloat(formula[start:end], 64)
	return value, end
}

// scanReference parses a column letter followed by a 1-based row number
func scanReference(formula string, start int) (contracts.CellKey, int, bool) {
	digitsStart := start + 1
	end := skipDigits(formula, digitsStart)
	if end == digitsStart {
		return contracts.CellKey{}, end, false
	}

	row, err := strconv.Atoi(formula[digitsStart:end])
	if err != nil {
		return contracts.CellKey{}, end, false
	}

	return contracts.CellKey{Row: row - 1, Col: int(formula[start] - 'A')}, end, true
}

func skipDigits(formula string, position int) int {
	for position < len(formula) && isDigit(formula[position]) {
		position++
	}
	return position
}

func isDigit(char byte) bool {
	return char >= '0' && char <= '9'
}

func isOperator(char byte) bool {
	return strings.IndexByte(formulaOperators, char) >= 0
}
