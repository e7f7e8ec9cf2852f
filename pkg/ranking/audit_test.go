package ranking

import (
	"strings"
	"testing"
	"time"

	"github.com/himkwtn/expression-mongo/pkg/expression"

	rankingTypes "github.com/himkwtn/expression-mongo/pkg/ranking/types"
)

func TestNeedsRecheck(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name         string
		checkedAt    time.Time
		recheckAfter time.Duration
		want         bool
	}{
		{name: "never checked", checkedAt: time.Time{}, recheckAfter: time.Hour, want: true},
		{name: "no interval", checkedAt: now, recheckAfter: 0, want: true},
		{name: "checked recently", checkedAt: now.Add(-time.Minute), recheckAfter: time.Hour, want: false},
		{name: "check expired", checkedAt: now.Add(-2 * time.Hour), recheckAfter: time.Hour, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formula := rankingTypes.RankingFormula{Key: "hot", CheckedAt: tt.checkedAt}
			if got := NeedsRecheck(formula, now, tt.recheckAfter); got != tt.want {
				t.Errorf("NeedsRecheck() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckStoredFormula(t *testing.T) {
	whitelist := expression.DefaultWhitelist()

	t.Run("valid", func(t *testing.T) {
		valid, lastError := CheckStoredFormula(rankingTypes.RankingFormula{Expression: "commentsCount + sharedCount"}, whitelist)
		if !valid || lastError != "" {
			t.Errorf("unexpected result: %v %q", valid, lastError)
		}
	})

	t.Run("variable removed from whitelist", func(t *testing.T) {
		valid, lastError := CheckStoredFormula(rankingTypes.RankingFormula{Expression: "commentsCount + sharedCount"}, expression.NewWhitelist("commentsCount"))
		if valid {
			t.Error("formula should be invalid")
		}
		if !strings.Contains(lastError, "invalid variable sharedCount") {
			t.Errorf("unexpected error: %q", lastError)
		}
	})

	t.Run("unparsable", func(t *testing.T) {
		valid, lastError := CheckStoredFormula(rankingTypes.RankingFormula{Expression: "commentsCount +"}, whitelist)
		if valid || lastError == "" {
			t.Errorf("unexpected result: %v %q", valid, lastError)
		}
	})
}
