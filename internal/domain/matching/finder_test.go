package matching

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func post(owner uuid.UUID, title, grade, current, expected string) Posting {
	return Posting{
		ID:        uuid.New(),
		OwnerID:   owner,
		JobTitle:  title,
		JobGrade:  grade,
		Current:   current,
		Expected:  expected,
		CreatedAt: time.Now().UTC(),
	}
}

func containsID(ps []Posting, id uuid.UUID) bool {
	for _, p := range ps {
		if p.ID == id {
			return true
		}
	}
	return false
}

func TestFindForPosting_ExactMatchSymmetry(t *testing.T) {
	a := post(uuid.New(), "Pegawai Tadbir", "N41", "Selangor, Klang", "Johor, Johor Bahru")
	b := post(uuid.New(), "Pegawai Tadbir", "N41", "Johor, Johor Bahru", "Selangor, Klang")
	all := []Posting{a, b}

	ma := FindForPosting(a, all)
	mb := FindForPosting(b, all)

	if !containsID(ma.Exact, b.ID) {
		t.Fatalf("a's exact matches should contain b")
	}
	if !containsID(mb.Exact, a.ID) {
		t.Fatalf("b's exact matches should contain a")
	}
}

func TestFindForPosting_GradeMismatchIsNotExact(t *testing.T) {
	a := post(uuid.New(), "Pegawai Tadbir", "N41", "Selangor, Klang", "Johor, Johor Bahru")
	b := post(uuid.New(), "Pegawai Tadbir", "N44", "Johor, Johor Bahru", "Selangor, Klang")

	m := FindForPosting(a, []Posting{a, b})
	if len(m.Exact) != 0 {
		t.Fatalf("different grades must not match exactly")
	}
	// Same title and mirrored states still qualify for the state tier.
	if !containsID(m.StateJob, b.ID) {
		t.Fatalf("b should appear in the state+job tier")
	}
}

func TestFindForPosting_StateJobIgnoresDistrict(t *testing.T) {
	a := post(uuid.New(), "Jururawat", "U29", "Selangor, Klang", "Johor, Muar")
	b := post(uuid.New(), "Jururawat", "U32", "Johor, Kluang", "Selangor, Petaling")

	m := FindForPosting(a, []Posting{a, b})
	if len(m.Exact) != 0 {
		t.Fatalf("unexpected exact match")
	}
	if !containsID(m.StateJob, b.ID) {
		t.Fatalf("mirrored states with same title should match the state tier")
	}
}

func TestFindForPosting_SelfOwnerExcluded(t *testing.T) {
	owner := uuid.New()
	a := post(owner, "Pegawai Tadbir", "N41", "Selangor, Klang", "Johor, Johor Bahru")
	b := post(owner, "Pegawai Tadbir", "N41", "Johor, Johor Bahru", "Selangor, Klang")

	m := FindForPosting(a, []Posting{a, b})
	if len(m.Exact) != 0 || len(m.StateJob) != 0 {
		t.Fatalf("a user's own postings must never match each other")
	}
}

func TestFindForPosting_MalformedLocationSkipped(t *testing.T) {
	a := post(uuid.New(), "Pegawai Tadbir", "N41", "Selangor, Klang", "Johor, Johor Bahru")
	bad := post(uuid.New(), "Pegawai Tadbir", "N41", "JohorBahru", "Selangor, Klang")

	m := FindForPosting(a, []Posting{a, bad})
	if len(m.StateJob) != 0 {
		t.Fatalf("unparseable locations must be excluded from the state tier")
	}
}

func TestFindForPosting_Idempotent(t *testing.T) {
	a := post(uuid.New(), "Pegawai Tadbir", "N41", "Selangor, Klang", "Johor, Johor Bahru")
	b := post(uuid.New(), "Pegawai Tadbir", "N41", "Johor, Johor Bahru", "Selangor, Klang")
	c := post(uuid.New(), "Pegawai Tadbir", "N41", "Melaka, Jasin", "Perlis, Kangar")
	all := []Posting{a, b, c}

	first := FindForPosting(a, all)
	second := FindForPosting(a, all)
	if len(first.Exact) != len(second.Exact) || len(first.StateJob) != len(second.StateJob) {
		t.Fatalf("repeated runs over the same snapshot must agree")
	}
	for i := range first.Exact {
		if first.Exact[i].ID != second.Exact[i].ID {
			t.Fatalf("exact tier ordering changed between runs")
		}
	}
}

func TestSplitLocation(t *testing.T) {
	loc, ok := SplitLocation("Perak, Larut, Matang dan Selama")
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if loc.State != "Perak" || loc.District != "Larut, Matang dan Selama" {
		t.Fatalf("unexpected parse: %+v", loc)
	}
	if _, ok := SplitLocation("NoSeparator"); ok {
		t.Fatalf("expected parse failure")
	}
	if _, ok := SplitLocation("Selangor, "); ok {
		t.Fatalf("empty district must fail")
	}
}
