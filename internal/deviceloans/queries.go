package deviceloans

import (
	"sort"
	"time"
)

// 純粋なインメモリ絞り込み・並べ替え。入力スライスは変更しない。

// FilterActive returns the loans whose status is active.
func FilterActive(loans []DeviceLoan) []DeviceLoan {
	out := make([]DeviceLoan, 0, len(loans))
	for _, l := range loans {
		if l.Status == StatusActive {
			out = append(out, l)
		}
	}
	return out
}

// FilterOverdue returns the active loans whose due date has passed at ref.
// The reference time is explicit so the result is reproducible.
func FilterOverdue(loans []DeviceLoan, ref time.Time) []DeviceLoan {
	out := make([]DeviceLoan, 0, len(loans))
	for _, l := range loans {
		if l.Status == StatusActive && ref.After(l.DueDate) {
			out = append(out, l)
		}
	}
	return out
}

// SortByDueDate returns a copy sorted by due date. The sort is stable:
// loans with equal due dates keep their original relative order.
func SortByDueDate(loans []DeviceLoan, asc bool) []DeviceLoan {
	out := make([]DeviceLoan, len(loans))
	copy(out, loans)
	sort.SliceStable(out, func(i, j int) bool {
		if asc {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].DueDate.After(out[j].DueDate)
	})
	return out
}

// SortByStartDate returns a copy sorted by start date, stable.
func SortByStartDate(loans []DeviceLoan, asc bool) []DeviceLoan {
	out := make([]DeviceLoan, len(loans))
	copy(out, loans)
	sort.SliceStable(out, func(i, j int) bool {
		if asc {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out
}

// DurationDays returns the whole-day length of the loan, rounding any
// partial day up: exactly 24h counts as 1, 24h0m1s counts as 2.
func DurationDays(l DeviceLoan) int {
	ms := l.DueDate.Sub(l.StartDate).Milliseconds()
	const dayMs = 24 * 60 * 60 * 1000
	return int((ms + dayMs - 1) / dayMs)
}
