package models

import "time"

// DateOffset is added to every client supplied date before it is stored.
//
// Clients send calendar dates without a zone; shifting them into the middle
// of the day keeps the stored instant on the same calendar day for readers
// in the Americas. Remove once clients send zone aware instants.
const DateOffset = 6 * time.Hour

// NormalizeDate applies DateOffset to t.
func NormalizeDate(t time.Time) time.Time {
	return t.Add(DateOffset)
}

func normalizeDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	n := NormalizeDate(*t)
	return &n
}
