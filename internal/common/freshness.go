// Package common provides shared utilities for nivesh
package common

import "time"

// FreshnessCorporate is the TTL for corporate actions, shareholding and
// results fetched from the provider.
const FreshnessCorporate = 7 * 24 * time.Hour

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
