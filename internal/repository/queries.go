package repository

import (
	"fmt"

	"progress-tracker/internal/difficulty"
)

// EffortColumns renders the two aggregate columns (completed effort, total
// effort) over a tasks relation. completedExpr is the backend's truth test
// for the completed column.
func EffortColumns(difficultyColumn, completedExpr string) string {
	effort := difficulty.EffortCaseSQL(difficultyColumn)
	return fmt.Sprintf(
		"COALESCE(SUM(CASE WHEN %s THEN %s ELSE 0 END), 0), COALESCE(SUM(%s), 0)",
		completedExpr, effort, effort,
	)
}
