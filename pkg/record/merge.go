package record

import "sort"

// Merge implements the equality join on joinKey.
//
// Both sides are concatenated and stable-sorted by (join value, side) with
// left before right, so at a given join value the candidate left row directly
// precedes its matching right rows. A single linear walk then pairs each left
// row with at most one right row. Sweep state (side, join validity, matched
// flag) lives in parallel entries indexed alongside the rows, so no scratch
// column ever touches a record and the inputs stay untouched.
//
// Rows lacking joinKey are never paired; they survive only when the outer
// policy keeps their side. Join values are assumed near-unique upstream: with
// duplicate keys only the first right row after a pending left pairs, and of
// several consecutive equal-key left rows only the last stays eligible.
func (rs *Records) Merge(right RecordsInterface, joinKey string, how How) RecordsInterface {
	how.validate()
	r := mustRecords(right)

	type mergeEntry struct {
		rec    *Record
		side   mergeSide
		stamp  int64
		hasKey bool
		found  bool
	}

	entries := make([]*mergeEntry, 0, len(rs.records)+len(r.records))
	addEntries := func(src *Records, side mergeSide) {
		for _, rec := range src.records {
			e := &mergeEntry{rec: rec.Clone(), side: side}
			e.stamp, e.hasKey = e.rec.Lookup(joinKey)
			entries = append(entries, e)
		}
	}
	addEntries(rs, sideLeft)
	addEntries(r, sideRight)

	// Missing join keys order after every present value; equal values keep
	// left rows first.
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.hasKey != b.hasKey {
			return a.hasKey
		}
		if a.hasKey && a.stamp != b.stamp {
			return a.stamp < b.stamp
		}
		return a.side < b.side
	})

	merged := NewRecords()
	var unmatched []*mergeEntry
	var pending *mergeEntry

	for _, e := range entries {
		if !e.hasKey {
			if keepSide(e.side, how) {
				merged.Append(e.rec)
			}
			continue
		}
		if e.side == sideLeft {
			if pending != nil && !pending.found {
				unmatched = append(unmatched, pending)
			}
			pending = e
			continue
		}
		if pending != nil && !pending.found && pending.stamp == e.stamp {
			pending.found = true
			m := pending.rec.Clone()
			m.Merge(e.rec)
			merged.Append(m)
		} else {
			unmatched = append(unmatched, e)
		}
	}
	if pending != nil && !pending.found {
		unmatched = append(unmatched, pending)
	}

	for _, e := range unmatched {
		if keepSide(e.side, how) {
			merged.Append(e.rec)
		}
	}

	return merged
}

type mergeSide int

const (
	sideLeft mergeSide = iota
	sideRight
)

func keepSide(side mergeSide, how How) bool {
	if side == sideLeft {
		return how.mergeLeft()
	}
	return how.mergeRight()
}
