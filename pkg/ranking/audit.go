package ranking

import (
	"time"

	"github.com/himkwtn/expression-mongo/pkg/expression"

	rankingTypes "github.com/himkwtn/expression-mongo/pkg/ranking/types"
)

// NeedsRecheck reports whether a stored formula was last checked longer than
// recheckAfter ago. A zero recheckAfter always rechecks.
func NeedsRecheck(formula rankingTypes.RankingFormula, now time.Time, recheckAfter time.Duration) bool {
	if recheckAfter <= 0 || formula.CheckedAt.IsZero() {
		return true
	}
	return now.Sub(formula.CheckedAt) >= recheckAfter
}

// CheckStoredFormula compiles a stored formula against the current whitelist.
// lastError is empty when the formula is valid.
func CheckStoredFormula(formula rankingTypes.RankingFormula, whitelist expression.Whitelist) (valid bool, lastError string) {
	if _, err := NewFormula(formula.Expression, whitelist); err != nil {
		return false, err.Error()
	}
	return true, ""
}
