package record

import "sort"

// MergeSequential pairs each left row with the nearest right row at or after
// it in time, by stamp columns that may differ per side. When joinKey is
// non-empty the pair must also agree on it; when empty every row shares one
// implicit join value and pairing degenerates to next-unused-right.
//
// Two passes over the stamp-sorted working sequence. The first walks forward
// keeping, per join value, the most recent left row still waiting for a
// partner; a right row claims and clears that slot. When two left rows with
// the same join value arrive before any right row, the earlier one loses its
// slot and is left unpaired - callers that cannot accept this deduplicate
// upstream. The second pass emits in sorted order: a pair at the position of
// its left row, everything else per the outer policy.
//
// Sweep state (side, stamps, pairing pointers, emitted flags) is held in
// parallel entries, never written into the rows.
func (rs *Records) MergeSequential(right RecordsInterface, leftStampKey, rightStampKey, joinKey string, how How) RecordsInterface {
	how.validate()
	r := mustRecords(right)

	type seqEntry struct {
		rec      *Record
		side     mergeSide
		stamp    int64
		hasStamp bool
		hasKey   bool
		sub      *seqEntry
		added    bool
	}

	joinValue := func(e *seqEntry) (int64, bool) {
		if joinKey == "" {
			return 0, true
		}
		return e.rec.Lookup(joinKey)
	}

	entries := make([]*seqEntry, 0, len(rs.records)+len(r.records))
	addEntries := func(src *Records, side mergeSide, stampKey string) {
		for _, rec := range src.records {
			e := &seqEntry{rec: rec.Clone(), side: side}
			e.stamp, e.hasStamp = e.rec.Lookup(stampKey)
			e.hasKey = joinKey == "" || e.rec.Has(joinKey)
			entries = append(entries, e)
		}
	}
	addEntries(rs, sideLeft, leftStampKey)
	addEntries(r, sideRight, rightStampKey)

	// Missing stamps order last; equal stamps keep left rows before right
	// rows, so a right row at the same stamp still counts as "after".
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.hasStamp != b.hasStamp {
			return a.hasStamp
		}
		return a.hasStamp && a.stamp < b.stamp
	})

	pending := make(map[int64]*seqEntry)
	for _, e := range entries {
		if !e.hasStamp {
			continue
		}
		jv, ok := joinValue(e)
		if !ok {
			continue
		}
		if e.side == sideLeft {
			pending[jv] = e
		} else if l, exists := pending[jv]; exists {
			l.sub = e
			delete(pending, jv)
		}
	}

	merged := NewRecords()
	for _, e := range entries {
		if e.added {
			continue
		}
		if !e.hasStamp || !e.hasKey {
			if keepSide(e.side, how) {
				merged.Append(e.rec)
				e.added = true
			}
			continue
		}
		if e.side == sideRight {
			// Pairing always happens from the left side.
			if how.mergeRight() {
				merged.Append(e.rec)
				e.added = true
			}
			continue
		}
		if e.sub == nil || e.sub.added {
			if how.mergeLeft() {
				merged.Append(e.rec)
				e.added = true
			}
			continue
		}
		m := e.rec.Clone()
		m.Merge(e.sub.rec)
		merged.Append(m)
		e.added = true
		e.sub.added = true
	}

	return merged
}
