package matching

import (
	"testing"

	"github.com/google/uuid"
)

func TestFindCycles_ThreeWay(t *testing.T) {
	x := post(uuid.New(), "Pegawai Tadbir", "N41", "Selangor, Klang", "Johor, Johor Bahru")
	y := post(uuid.New(), "Pegawai Tadbir", "N41", "Johor, Johor Bahru", "Pahang, Kuantan")
	z := post(uuid.New(), "Pegawai Tadbir", "N41", "Pahang, Kuantan", "Selangor, Klang")
	unrelated := post(uuid.New(), "Pegawai Tadbir", "N41", "Perlis, Kangar", "Melaka, Jasin")

	cycles := FindCycles([]Posting{x, y, z, unrelated}, DefaultMaxCycleLen)
	if len(cycles) != 1 {
		t.Fatalf("expected exactly one cycle, got %d", len(cycles))
	}
	got := cycles[0]
	if len(got.Postings) != 3 {
		t.Fatalf("expected a 3-way cycle, got %d postings", len(got.Postings))
	}
	for _, want := range []Posting{x, y, z} {
		found := false
		for _, p := range got.Postings {
			if p.ID == want.ID {
				found = true
			}
		}
		if !found {
			t.Fatalf("cycle missing posting %s", want.ID)
		}
	}
	for _, p := range got.Postings {
		if p.ID == unrelated.ID {
			t.Fatalf("unrelated posting leaked into the cycle")
		}
	}
}

func TestFindCycles_RequiresDistinctOwners(t *testing.T) {
	shared := uuid.New()
	x := post(shared, "Pegawai Tadbir", "N41", "Selangor, Klang", "Johor, Johor Bahru")
	y := post(uuid.New(), "Pegawai Tadbir", "N41", "Johor, Johor Bahru", "Pahang, Kuantan")
	z := post(shared, "Pegawai Tadbir", "N41", "Pahang, Kuantan", "Selangor, Klang")

	if cycles := FindCycles([]Posting{x, y, z}, DefaultMaxCycleLen); len(cycles) != 0 {
		t.Fatalf("cycle with a repeated owner must not be reported, got %d", len(cycles))
	}
}

func TestFindCycles_TitleAndGradeMustAgree(t *testing.T) {
	x := post(uuid.New(), "Pegawai Tadbir", "N41", "Selangor, Klang", "Johor, Johor Bahru")
	y := post(uuid.New(), "Pegawai Tadbir", "N44", "Johor, Johor Bahru", "Pahang, Kuantan")
	z := post(uuid.New(), "Pegawai Tadbir", "N41", "Pahang, Kuantan", "Selangor, Klang")

	if cycles := FindCycles([]Posting{x, y, z}, DefaultMaxCycleLen); len(cycles) != 0 {
		t.Fatalf("mixed grades must not close a cycle")
	}
}

func TestFindCycles_FourWay(t *testing.T) {
	a := post(uuid.New(), "Jururawat", "U29", "Selangor, Klang", "Johor, Muar")
	b := post(uuid.New(), "Jururawat", "U29", "Johor, Muar", "Pahang, Pekan")
	c := post(uuid.New(), "Jururawat", "U29", "Pahang, Pekan", "Perak, Kinta")
	d := post(uuid.New(), "Jururawat", "U29", "Perak, Kinta", "Selangor, Klang")

	cycles := FindCycles([]Posting{a, b, c, d}, 4)
	if len(cycles) != 1 {
		t.Fatalf("expected one 4-way cycle, got %d", len(cycles))
	}
	if len(cycles[0].Postings) != 4 {
		t.Fatalf("expected 4 postings in the cycle, got %d", len(cycles[0].Postings))
	}

	// With the bound at 3 the same snapshot has no closed loop.
	if cycles := FindCycles([]Posting{a, b, c, d}, 3); len(cycles) != 0 {
		t.Fatalf("maxLen 3 must not report the 4-way cycle")
	}
}

func TestFindCycles_NoDuplicateRotations(t *testing.T) {
	x := post(uuid.New(), "Pegawai Tadbir", "N41", "Selangor, Klang", "Johor, Johor Bahru")
	y := post(uuid.New(), "Pegawai Tadbir", "N41", "Johor, Johor Bahru", "Pahang, Kuantan")
	z := post(uuid.New(), "Pegawai Tadbir", "N41", "Pahang, Kuantan", "Selangor, Klang")

	cycles := FindCycles([]Posting{x, y, z}, DefaultMaxCycleLen)
	seen := make(map[string]int)
	for _, c := range cycles {
		seen[c.Signature()]++
	}
	for sig, n := range seen {
		if n > 1 {
			t.Fatalf("cycle %s reported %d times", sig, n)
		}
	}
	if len(cycles) != 1 {
		t.Fatalf("expected a single canonical cycle, got %d", len(cycles))
	}
}

func TestDelta(t *testing.T) {
	prev := []string{"exact:a|b", "cycle:a|b|c"}
	cur := []string{"exact:a|b", "exact:c|d", "cycle:a|b|c"}

	fresh := Delta(prev, cur)
	if len(fresh) != 1 || fresh[0] != "exact:c|d" {
		t.Fatalf("unexpected delta: %v", fresh)
	}
	if d := Delta(cur, cur); len(d) != 0 {
		t.Fatalf("identical sets must produce an empty delta, got %v", d)
	}
}

func TestExactSignature_Unordered(t *testing.T) {
	a := post(uuid.New(), "Pegawai Tadbir", "N41", "Selangor, Klang", "Johor, Johor Bahru")
	b := post(uuid.New(), "Pegawai Tadbir", "N41", "Johor, Johor Bahru", "Selangor, Klang")
	if ExactSignature(a, b) != ExactSignature(b, a) {
		t.Fatalf("signature must not depend on argument order")
	}
}
