package services

import "github.com/inventorysoft/backend/internal/models"

// FormulaResult is the outcome of combining two aggregated values. Undefined
// marks a division by zero; callers render it as a placeholder instead of a
// number. Value is meaningless when Undefined is set.
type FormulaResult struct {
	Value     float64
	Undefined bool
}

// EvaluateFormula applies an arithmetic operation to two already-aggregated
// values. It never panics and never produces NaN or infinities: division by
// zero (and an unrecognized operation) yields the Undefined sentinel.
func EvaluateFormula(operation string, value1, value2 float64) FormulaResult {
	switch operation {
	case models.FormulaAdd:
		return FormulaResult{Value: value1 + value2}
	case models.FormulaSubtract:
		return FormulaResult{Value: value1 - value2}
	case models.FormulaMultiply:
		return FormulaResult{Value: value1 * value2}
	case models.FormulaDivide:
		if value2 == 0 {
			return FormulaResult{Undefined: true}
		}
		return FormulaResult{Value: value1 / value2}
	default:
		return FormulaResult{Undefined: true}
	}
}
