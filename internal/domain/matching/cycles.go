package matching

import "github.com/google/uuid"

// Cycle is a closed loop of postings from pairwise-distinct owners where
// every posting's expected location is the next posting's current location
// and all share the same title and grade.
type Cycle struct {
	Postings []Posting
}

// DefaultMaxCycleLen bounds cycle search. Three-way swaps are what users
// look for; longer chains rarely complete in practice.
const DefaultMaxCycleLen = 4

// FindCycles enumerates every directed cycle of length 3..maxLen over the
// snapshot. Candidates are bucketed by (title, grade) before the scan, so
// the search only walks postings that could possibly close a loop together.
// Each cycle is reported exactly once, rooted at its lowest-index posting.
func FindCycles(all []Posting, maxLen int) []Cycle {
	if maxLen < 3 {
		maxLen = 3
	}

	type key struct{ title, grade string }
	buckets := make(map[key][]Posting)
	for _, p := range all {
		if _, ok := SplitLocation(p.Current); !ok {
			continue
		}
		if _, ok := SplitLocation(p.Expected); !ok {
			continue
		}
		k := key{p.JobTitle, p.JobGrade}
		buckets[k] = append(buckets[k], p)
	}

	var cycles []Cycle
	for _, bucket := range buckets {
		sortPostings(bucket)
		cycles = append(cycles, cyclesInBucket(bucket, maxLen)...)
	}
	return cycles
}

// cyclesInBucket runs a bounded DFS from every posting. A path may only
// revisit its own start, and every hop must move to a new owner; rooting
// each cycle at its minimal index keeps rotations from being re-reported.
func cyclesInBucket(bucket []Posting, maxLen int) []Cycle {
	n := len(bucket)
	next := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if bucket[i].Expected == bucket[j].Current && bucket[i].OwnerID != bucket[j].OwnerID {
				next[i] = append(next[i], j)
			}
		}
	}

	var cycles []Cycle
	path := make([]int, 0, maxLen)
	usedOwner := make(map[uuid.UUID]bool, maxLen)

	var walk func(start, at int)
	walk = func(start, at int) {
		for _, to := range next[at] {
			if to == start && len(path) >= 3 {
				cp := make([]Posting, len(path))
				for i, idx := range path {
					cp[i] = bucket[idx]
				}
				cycles = append(cycles, Cycle{Postings: cp})
				continue
			}
			if to <= start || len(path) == maxLen {
				continue
			}
			if usedOwner[bucket[to].OwnerID] {
				continue
			}
			usedOwner[bucket[to].OwnerID] = true
			path = append(path, to)
			walk(start, to)
			path = path[:len(path)-1]
			delete(usedOwner, bucket[to].OwnerID)
		}
	}

	for start := 0; start < n; start++ {
		path = append(path[:0], start)
		usedOwner[bucket[start].OwnerID] = true
		walk(start, start)
		delete(usedOwner, bucket[start].OwnerID)
	}
	return cycles
}

// Involves reports whether any posting in the cycle belongs to ownerID.
func (c Cycle) Involves(ownerID uuid.UUID) bool {
	for _, p := range c.Postings {
		if p.OwnerID == ownerID {
			return true
		}
	}
	return false
}
