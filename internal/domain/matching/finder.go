package matching

import "sort"

// Matches holds the two-way match tiers for a subject posting.
//
// Exact: the other posting is a direct reciprocal swap, locations mirroring
// each other with identical title and grade.
// StateJob: same title and the state components mirror each other; grade and
// district are ignored.
type Matches struct {
	Exact    []Posting
	StateJob []Posting
}

// FindForPosting computes both match tiers for subject against all other
// postings. Postings owned by the subject's owner never match. Postings whose
// location strings cannot be parsed are skipped from the StateJob tier rather
// than failing the scan. Results are sorted by creation time for stable
// output; the function never mutates its inputs.
func FindForPosting(subject Posting, all []Posting) Matches {
	var m Matches

	subjCur, curOK := SplitLocation(subject.Current)
	subjExp, expOK := SplitLocation(subject.Expected)
	parseOK := curOK && expOK

	for _, other := range all {
		if other.OwnerID == subject.OwnerID || other.ID == subject.ID {
			continue
		}

		if other.Current == subject.Expected &&
			other.Expected == subject.Current &&
			other.JobTitle == subject.JobTitle &&
			other.JobGrade == subject.JobGrade {
			m.Exact = append(m.Exact, other)
		}

		if !parseOK || other.JobTitle != subject.JobTitle {
			continue
		}
		otherCur, ok := SplitLocation(other.Current)
		if !ok {
			continue
		}
		otherExp, ok := SplitLocation(other.Expected)
		if !ok {
			continue
		}
		if otherCur.State == subjExp.State && otherExp.State == subjCur.State {
			m.StateJob = append(m.StateJob, other)
		}
	}

	sortPostings(m.Exact)
	sortPostings(m.StateJob)
	return m
}

func sortPostings(ps []Posting) {
	sort.Slice(ps, func(i, j int) bool {
		if !ps[i].CreatedAt.Equal(ps[j].CreatedAt) {
			return ps[i].CreatedAt.Before(ps[j].CreatedAt)
		}
		return ps[i].ID.String() < ps[j].ID.String()
	})
}
