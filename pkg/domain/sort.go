package domain

import "sort"

// Sort orders records by the kind's list rule: schedules by date ascending,
// everything else by created_at descending. Ties fall back to id.
func Sort[T any, P Record[T]](items []T) {
	if len(items) < 2 {
		return
	}
	if P(&items[0]).Kind() == KindSchedule {
		sort.SliceStable(items, func(i, j int) bool {
			a, b := any(items[i]).(Schedule), any(items[j]).(Schedule)
			if a.Date != b.Date {
				return a.Date < b.Date
			}
			return a.ID < b.ID
		})
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := P(&items[i]).Meta(), P(&items[j]).Meta()
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
