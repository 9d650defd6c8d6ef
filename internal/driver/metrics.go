package driver

import (
	"fmt"
	"sync/atomic"
)

// Metrics counts what a run did. Safe for concurrent use.
type Metrics struct {
	unitsDone   atomic.Int64
	unitsFailed atomic.Int64
	diskHits    atomic.Int64
	diskMisses  atomic.Int64
	cacheErrors atomic.Int64
	stripped    atomic.Int64
	renamed     atomic.Int64
}

// Snapshot is a point-in-time copy of Metrics.
type Snapshot struct {
	UnitsDone   int64 `json:"units_done"`
	UnitsFailed int64 `json:"units_failed"`
	DiskHits    int64 `json:"disk_hits"`
	DiskMisses  int64 `json:"disk_misses"`
	CacheErrors int64 `json:"cache_errors,omitempty"`
	Stripped    int64 `json:"stripped,omitempty"`
	Renamed     int64 `json:"renamed,omitempty"`
}

func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	return Snapshot{
		UnitsDone:   m.unitsDone.Load(),
		UnitsFailed: m.unitsFailed.Load(),
		DiskHits:    m.diskHits.Load(),
		DiskMisses:  m.diskMisses.Load(),
		CacheErrors: m.cacheErrors.Load(),
		Stripped:    m.stripped.Load(),
		Renamed:     m.renamed.Load(),
	}
}

func (s Snapshot) String() string {
	total := s.DiskHits + s.DiskMisses
	rate := 0.0
	if total > 0 {
		rate = float64(s.DiskHits) / float64(total) * 100
	}
	return fmt.Sprintf(
		"units: %d done, %d with errors | cache: %d/%d (%.1f%%) | stripped: %d | renamed: %d",
		s.UnitsDone, s.UnitsFailed,
		s.DiskHits, total, rate,
		s.Stripped, s.Renamed,
	)
}

func (m *Metrics) record(r *UnitResult) {
	if m == nil || r == nil {
		return
	}
	m.unitsDone.Add(1)
	if r.Bag != nil && r.Bag.HasErrors() {
		m.unitsFailed.Add(1)
	}
	m.stripped.Add(int64(r.Stripped))
	if r.Crunch != nil {
		m.renamed.Add(int64(r.Crunch.Renamed))
	}
}

func (m *Metrics) cacheLookup(hit bool, err error) {
	if m == nil {
		return
	}
	switch {
	case err != nil:
		m.cacheErrors.Add(1)
	case hit:
		m.diskHits.Add(1)
	default:
		m.diskMisses.Add(1)
	}
}
