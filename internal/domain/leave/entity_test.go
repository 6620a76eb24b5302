package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTotalDaysBetween(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"single day", "2024-06-10", "2024-06-10", 1},
		{"three days inclusive", "2024-06-10", "2024-06-12", 3},
		{"across month boundary", "2024-06-29", "2024-07-02", 4},
		{"across DST-free year end", "2024-12-30", "2025-01-02", 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			start, _ := time.Parse("2006-01-02", c.start)
			end, _ := time.Parse("2006-01-02", c.end)
			assert.Equal(t, c.want, TotalDaysBetween(start, end))
		})
	}
}

func TestRequestStatusTransitions(t *testing.T) {
	assert.True(t, RequestStatusPending.CanTransitionTo(RequestStatusApproved))
	assert.True(t, RequestStatusPending.CanTransitionTo(RequestStatusRejected))
	assert.True(t, RequestStatusPending.CanTransitionTo(RequestStatusCancelled))
	assert.True(t, RequestStatusApproved.CanTransitionTo(RequestStatusCancelled))

	assert.False(t, RequestStatusApproved.CanTransitionTo(RequestStatusApproved))
	assert.False(t, RequestStatusApproved.CanTransitionTo(RequestStatusRejected))
	assert.False(t, RequestStatusRejected.CanTransitionTo(RequestStatusCancelled))
	assert.False(t, RequestStatusCancelled.CanTransitionTo(RequestStatusApproved))
}

func TestBalanceRemainingDays(t *testing.T) {
	b := Balance{TotalDays: 10, UsedDays: 2}
	assert.Equal(t, 8, b.RemainingDays())

	b.UsedDays = 10
	assert.Equal(t, 0, b.RemainingDays())
}

func TestFinancialYear(t *testing.T) {
	march := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	june := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 2024, FinancialYear(march, 1))
	assert.Equal(t, 2023, FinancialYear(march, 4))
	assert.Equal(t, 2024, FinancialYear(june, 4))
}
