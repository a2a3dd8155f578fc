package logbuf

import "time"

// Prune applies the retention policy to a sequence of entries: first the age
// ceiling, then the count cap, so an old-but-within-count entry never
// survives past its age. Entries with an unparseable timestamp are dropped
// (fail safe toward deletion, not retention).
//
// Pure over the input; the returned slice is freshly allocated. A maxAge or
// maxEntries of zero disables that rule.
func Prune(entries []Entry, now time.Time, maxAge time.Duration, maxEntries int) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		t, err := e.Time()
		if err != nil {
			continue
		}
		if maxAge > 0 && now.Sub(t) > maxAge {
			continue
		}
		out = append(out, e)
	}
	if maxEntries > 0 && len(out) > maxEntries {
		out = out[len(out)-maxEntries:]
	}
	return out
}

// tail returns the most recent n entries without copying.
func tail(entries []Entry, n int) []Entry {
	if n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}
