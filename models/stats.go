// SPDX-License-Identifier: GPL-3.0-only

package models

import "strings"

// TransactionSummary aggregates a user's transaction history.
type TransactionSummary struct {
	TotalCount     int64
	TotalCompleted int64
	TotalPartial   int64
	TotalPending   int64
	TotalFailed    int64
	TotalSpent     float64
}

// JoinList stores a list in a comma separated column.
func JoinList(items []string) *string {
	if len(items) == 0 {
		return nil
	}
	s := strings.Join(items, ",")
	return &s
}

// SplitList is the inverse of JoinList.
func SplitList(s *string) []string {
	if s == nil || *s == "" {
		return nil
	}
	return strings.Split(*s, ",")
}
