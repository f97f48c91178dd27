package record

import "sort"

type trackType int

const (
	trackSource trackType = iota
	trackCopy
	trackSink
)

// aliasGroup is the set of identifiers currently known to name the same
// logical object. Processing records that were unified share one group, so a
// later extension is visible through every member.
type aliasGroup struct {
	ids map[int64]struct{}
}

func newAliasGroup(id int64) *aliasGroup {
	return &aliasGroup{ids: map[int64]struct{}{id: {}}}
}

func (g *aliasGroup) contains(id int64) bool {
	_, ok := g.ids[id]
	return ok
}

func (g *aliasGroup) overlaps(other *aliasGroup) bool {
	small, large := g, other
	if len(large.ids) < len(small.ids) {
		small, large = large, small
	}
	for id := range small.ids {
		if large.contains(id) {
			return true
		}
	}
	return false
}

// MergeSequentialForAddrTrack stitches each source row to every sink row its
// identifier reached through zero or more renaming copies.
//
// All three inputs are swept together in reverse chronological order, so a
// chain that never closes ages out instead of keeping its state alive
// forever. A sink opens a processing record holding the alias group of its
// from-identifier; a copy, walked backwards, extends the first group holding
// its to-identifier with its from-identifier and unifies every group that now
// overlaps; a source closes and emits every processing record whose group
// holds its identifier. Sinks never reached by a source and sources reaching
// no sink are dropped silently.
func (rs *Records) MergeSequentialForAddrTrack(
	sourceStampKey, sourceKey string,
	copyRecords RecordsInterface, copyStampKey, copyFromKey, copyToKey string,
	sinkRecords RecordsInterface, sinkStampKey, sinkFromKey string,
) RecordsInterface {
	copies := mustRecords(copyRecords)
	sinks := mustRecords(sinkRecords)

	type trackEntry struct {
		rec *Record
		typ trackType
		ts  int64
	}

	entries := make([]*trackEntry, 0, len(rs.records)+len(copies.records)+len(sinks.records))
	addEntries := func(src *Records, typ trackType, stampKey string) {
		for _, rec := range src.records {
			c := rec.Clone()
			entries = append(entries, &trackEntry{rec: c, typ: typ, ts: c.Get(stampKey)})
		}
	}
	addEntries(rs, trackSource, sourceStampKey)
	addEntries(copies, trackCopy, copyStampKey)
	addEntries(sinks, trackSink, sinkStampKey)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ts > entries[j].ts
	})

	type processingRecord struct {
		rec   *Record
		group *aliasGroup
	}
	var processing []*processingRecord

	// unify merges into updated's group every other group it overlaps. The
	// group grows while the walk advances, so transitively connected groups
	// collapse into one shared instance.
	unify := func(updated *processingRecord) {
		for _, other := range processing {
			if other.group == updated.group {
				continue
			}
			if !updated.group.overlaps(other.group) {
				continue
			}
			for id := range other.group.ids {
				updated.group.ids[id] = struct{}{}
			}
			other.group = updated.group
		}
	}

	merged := NewRecords()
	for _, e := range entries {
		switch e.typ {
		case trackSink:
			processing = append(processing, &processingRecord{
				rec:   e.rec,
				group: newAliasGroup(e.rec.Get(sinkFromKey)),
			})

		case trackCopy:
			to := e.rec.Get(copyToKey)
			for _, p := range processing {
				if !p.group.contains(to) {
					continue
				}
				p.group.ids[e.rec.Get(copyFromKey)] = struct{}{}
				unify(p)
				// One group is enough: unify already pulled in every
				// group this copy connects.
				break
			}

		case trackSource:
			id := e.rec.Get(sourceKey)
			remaining := processing[:0]
			for _, p := range processing {
				if !p.group.contains(id) {
					remaining = append(remaining, p)
					continue
				}
				p.rec.Merge(e.rec)
				merged.Append(p.rec)
			}
			processing = remaining
		}
	}

	merged.DropColumns([]string{sinkFromKey}, true)
	return merged
}
